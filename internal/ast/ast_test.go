package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() *Document {
	return &Document{
		URI: "features/login.feature",
		Feature: &Feature{
			Tags:    NewTags("@auth"),
			Keyword: "Feature",
			Name:    "Login",
			Children: []Child{
				&Background{Keyword: "Background", Steps: []*Step{{Keyword: "Given ", Text: "a user"}}},
				&ScenarioOutline{
					Tags:    NewTags("smoke"),
					Keyword: "Scenario Outline",
					Name:    "Login as <role>",
					Steps: []*Step{{
						Keyword:   "When ",
						Text:      "they log in",
						DataTable: &DataTable{Rows: []*TableRow{{Cells: []string{"a", "b"}}}},
					}},
					Examples: []*Examples{{
						Keyword: "Examples",
						Header:  &TableRow{Cells: []string{"role"}},
						Body:    []*TableRow{{Cells: []string{"admin"}}},
					}},
				},
			},
		},
	}
}

func TestClone_DeepEqualButNotSame(t *testing.T) {
	doc := sampleDocument()
	c := doc.Clone()

	assert.Equal(t, doc, c)
	assert.NotSame(t, doc, c)
	assert.NotSame(t, doc.Feature, c.Feature)
	assert.NotSame(t, doc.Feature.Children[1], c.Feature.Children[1])
}

func TestClone_MutationDoesNotLeak(t *testing.T) {
	doc := sampleDocument()
	c := doc.Clone()

	outline := c.Feature.Children[1].(*ScenarioOutline)
	outline.Steps[0].DataTable.Rows[0].Cells[0] = "changed"
	outline.Examples[0].Header.Cells[0] = "changed"
	outline.Tags[0].Name = "@changed"
	c.Feature.Tags = append(c.Feature.Tags, &Tag{Name: "@extra"})

	orig := doc.Feature.Children[1].(*ScenarioOutline)
	assert.Equal(t, "a", orig.Steps[0].DataTable.Rows[0].Cells[0])
	assert.Equal(t, "role", orig.Examples[0].Header.Cells[0])
	assert.Equal(t, "@smoke", orig.Tags[0].Name)
	assert.Len(t, doc.Feature.Tags, 1)
}

func TestShell_DropsFeature(t *testing.T) {
	doc := sampleDocument()
	s := doc.Shell()

	assert.Nil(t, s.Feature)
	assert.Equal(t, doc.URI, s.URI)
}

func TestToScenario(t *testing.T) {
	outline := sampleDocument().Feature.Children[1].(*ScenarioOutline)
	s := outline.ToScenario()

	assert.Equal(t, KindScenario, s.Kind())
	assert.Equal(t, outline.Name, s.Name)
	require.Len(t, s.Steps, 1)
	assert.NotSame(t, outline.Steps[0], s.Steps[0])
	assert.Equal(t, []string{"@smoke"}, TagNames(s.Tags))
}

func TestTagHelpers(t *testing.T) {
	tags := NewTags("a", "@b")
	assert.Equal(t, []string{"@a", "@b"}, TagNames(tags))
	assert.True(t, HasTag(tags, "@b"))
	assert.False(t, HasTag(tags, "b"))
	assert.Equal(t, tags, TagsOf(&Scenario{Tags: tags}))
	assert.Nil(t, TagsOf(&Step{}))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "Scenario Outline", KindScenarioOutline.String())
	assert.Equal(t, "Rule", (&Rule{}).Kind().String())
}

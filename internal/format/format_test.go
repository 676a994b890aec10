package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chriserin/gpc/internal/ast"
	"github.com/chriserin/gpc/internal/parser"
)

const checkout = `@billing
Feature: Checkout
  Paying for things

  Background:
    Given a cart

  @smoke
  Scenario: Pay by card
    When the user pays:
      | card | amount |
      | visa | 10     |
    Then a receipt is sent
      """text
      Thanks!
      """

  Scenario Outline: Pay <amount>
    When the user pays <amount>

    @eu
    Examples: Amounts
      | amount |
      | 5      |
      | 50     |
`

const accounts = `Feature: Accounts

  Rule: Passwords

    Background:
      Given a user

    Scenario: Weak
      Then it is rejected
`

func TestFormat_RoundTrip(t *testing.T) {
	for name, text := range map[string]string{"checkout": checkout, "accounts": accounts} {
		t.Run(name, func(t *testing.T) {
			doc, err := parser.Parse(name+".feature", []byte(text))
			require.NoError(t, err)
			assert.Equal(t, text, Format(doc, Options{}))
		})
	}
}

func TestFormat_DescriptionKeepsRelativeIndent(t *testing.T) {
	text := `Feature: Reports
  Monthly totals
    grouped by region
  and sorted

  Scenario: Totals
    Given the report
`
	doc, err := parser.Parse("reports.feature", []byte(text))
	require.NoError(t, err)
	assert.Equal(t, text, Format(doc, Options{}))

	deep, err := parser.Parse("deep.feature", []byte("Feature: Deep\n      first\n        second\n"))
	require.NoError(t, err)
	assert.Equal(t, "Feature: Deep\n  first\n    second\n", Format(deep, Options{}))
}

func TestFormat_ReparseGivesEqualTree(t *testing.T) {
	doc, err := parser.Parse("checkout.feature", []byte(checkout))
	require.NoError(t, err)

	again, err := parser.Parse("checkout.feature", []byte(Format(doc, Options{})))
	require.NoError(t, err)
	assert.Equal(t, doc, again)
}

func TestFormat_EscapesCellsAndDocStrings(t *testing.T) {
	doc := &ast.Document{Feature: &ast.Feature{
		Name: "Escapes",
		Children: []ast.Child{&ast.Scenario{
			Name: "Special",
			Steps: []*ast.Step{
				{Keyword: "Given", Text: "a table", DataTable: &ast.DataTable{Rows: []*ast.TableRow{{Cells: []string{"a|b", `c\d`}}}}},
				{Keyword: "Then", Text: "a doc", DocString: &ast.DocString{Content: `say """hi"""`}},
			},
		}},
	}}

	text := Format(doc, Options{})
	assert.Contains(t, text, `| a\|b | c\\d |`)
	assert.Contains(t, text, `say \"\"\"hi\"\"\"`)

	parsed, err := parser.Parse("escapes.feature", []byte(text))
	require.NoError(t, err)
	s := parsed.Feature.Children[0].(*ast.Scenario)
	assert.Equal(t, []string{"a|b", `c\d`}, s.Steps[0].DataTable.Rows[0].Cells)
	assert.Equal(t, `say """hi"""`, s.Steps[1].DocString.Content)
}

func TestFormat_DefaultsAndIndent(t *testing.T) {
	doc := &ast.Document{Feature: &ast.Feature{
		Name:     "Bare",
		Language: "fr",
		Children: []ast.Child{&ast.Scenario{Steps: []*ast.Step{{Text: "something"}}}},
	}}

	assert.Equal(t, "# language: fr\nFeature: Bare\n\n    Scenario:\n        * something\n", Format(doc, Options{Indent: 4}))
}

func TestFormat_NoFeature(t *testing.T) {
	assert.Empty(t, Format(&ast.Document{}, Options{}))
	assert.Empty(t, Format(nil, Options{}))
}

func TestFormat_WideCharactersAlign(t *testing.T) {
	doc := &ast.Document{Feature: &ast.Feature{
		Name: "Wide",
		Children: []ast.Child{&ast.Scenario{Name: "CJK", Steps: []*ast.Step{{
			Keyword: "Given ", Text: "names",
			DataTable: &ast.DataTable{Rows: []*ast.TableRow{{Cells: []string{"名前"}}, {Cells: []string{"abcd"}}}},
		}}}},
	}}

	text := Format(doc, Options{})
	assert.Contains(t, text, "| 名前 |\n")
	assert.Contains(t, text, "| abcd |\n")
}

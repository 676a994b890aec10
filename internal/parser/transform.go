package parser

import (
	"strings"

	messages "github.com/cucumber/messages/go/v21"

	"github.com/chriserin/gpc/internal/ast"
)

// Transform converts a cucumber GherkinDocument into an ast Document.
func Transform(gd *messages.GherkinDocument, filename string) *ast.Document {
	doc := &ast.Document{URI: filename}
	if gd == nil || gd.Feature == nil {
		return doc
	}

	f := gd.Feature
	feature := &ast.Feature{
		Tags:        tags(f.Tags),
		Language:    f.Language,
		Keyword:     f.Keyword,
		Name:        f.Name,
		Description: f.Description,
	}
	for _, c := range f.Children {
		switch {
		case c.Rule != nil:
			feature.Children = append(feature.Children, rule(c.Rule))
		case c.Background != nil:
			feature.Children = append(feature.Children, background(c.Background))
		case c.Scenario != nil:
			feature.Children = append(feature.Children, scenario(c.Scenario))
		}
	}
	doc.Feature = feature
	return doc
}

func rule(r *messages.Rule) *ast.Rule {
	out := &ast.Rule{
		Tags:        tags(r.Tags),
		Keyword:     r.Keyword,
		Name:        r.Name,
		Description: r.Description,
	}
	for _, c := range r.Children {
		switch {
		case c.Background != nil:
			out.Children = append(out.Children, background(c.Background))
		case c.Scenario != nil:
			out.Children = append(out.Children, scenario(c.Scenario))
		}
	}
	return out
}

func background(b *messages.Background) *ast.Background {
	return &ast.Background{
		Keyword:     b.Keyword,
		Name:        b.Name,
		Description: b.Description,
		Steps:       steps(b.Steps),
	}
}

// scenario returns a ScenarioOutline when the cucumber scenario carries
// examples or an outline keyword, otherwise a Scenario.
func scenario(s *messages.Scenario) ast.Element {
	if len(s.Examples) > 0 || isOutlineKeyword(s.Keyword) {
		out := &ast.ScenarioOutline{
			Tags:        tags(s.Tags),
			Keyword:     s.Keyword,
			Name:        s.Name,
			Description: s.Description,
			Steps:       steps(s.Steps),
		}
		for _, e := range s.Examples {
			out.Examples = append(out.Examples, examples(e))
		}
		return out
	}
	return &ast.Scenario{
		Tags:        tags(s.Tags),
		Keyword:     s.Keyword,
		Name:        s.Name,
		Description: s.Description,
		Steps:       steps(s.Steps),
	}
}

func isOutlineKeyword(keyword string) bool {
	return strings.Contains(keyword, "Outline") || strings.Contains(keyword, "Template")
}

func examples(e *messages.Examples) *ast.Examples {
	out := &ast.Examples{
		Tags:        tags(e.Tags),
		Keyword:     e.Keyword,
		Name:        e.Name,
		Description: e.Description,
		Body:        rows(e.TableBody),
	}
	if e.TableHeader != nil {
		out.Header = row(e.TableHeader)
	}
	return out
}

func steps(in []*messages.Step) []*ast.Step {
	if len(in) == 0 {
		return nil
	}
	out := make([]*ast.Step, 0, len(in))
	for _, s := range in {
		step := &ast.Step{Keyword: s.Keyword, Text: s.Text}
		switch {
		case s.DocString != nil:
			step.DocString = &ast.DocString{
				Delimiter: s.DocString.Delimiter,
				MediaType: s.DocString.MediaType,
				Content:   s.DocString.Content,
			}
		case s.DataTable != nil:
			step.DataTable = &ast.DataTable{Rows: rows(s.DataTable.Rows)}
		}
		out = append(out, step)
	}
	return out
}

func rows(in []*messages.TableRow) []*ast.TableRow {
	if len(in) == 0 {
		return nil
	}
	out := make([]*ast.TableRow, 0, len(in))
	for _, r := range in {
		out = append(out, row(r))
	}
	return out
}

func row(r *messages.TableRow) *ast.TableRow {
	cells := make([]string, 0, len(r.Cells))
	for _, c := range r.Cells {
		cells = append(cells, c.Value)
	}
	return &ast.TableRow{Cells: cells}
}

func tags(in []*messages.Tag) []*ast.Tag {
	if len(in) == 0 {
		return nil
	}
	out := make([]*ast.Tag, 0, len(in))
	for _, t := range in {
		out = append(out, &ast.Tag{Name: t.Name})
	}
	return out
}

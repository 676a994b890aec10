// Package format renders ast Documents back to Gherkin text.
package format

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/chriserin/gpc/internal/ast"
)

// Options controls the rendered layout.
type Options struct {
	// Indent is the number of spaces per nesting level. Zero means 2.
	Indent int
}

// Format renders doc as Gherkin text. A document without a feature renders as
// an empty string.
func Format(doc *ast.Document, opts Options) string {
	if doc == nil || doc.Feature == nil {
		return ""
	}
	if opts.Indent <= 0 {
		opts.Indent = 2
	}
	w := &writer{unit: strings.Repeat(" ", opts.Indent)}
	w.feature(doc.Feature)
	return w.String()
}

type writer struct {
	strings.Builder
	unit string
}

func (w *writer) line(depth int, s string) {
	if s == "" {
		w.WriteString("\n")
		return
	}
	w.WriteString(strings.Repeat(w.unit, depth))
	w.WriteString(s)
	w.WriteString("\n")
}

func (w *writer) blank() {
	w.WriteString("\n")
}

func heading(keyword, fallback, name string) string {
	if keyword == "" {
		keyword = fallback
	}
	if name == "" {
		return keyword + ":"
	}
	return keyword + ": " + name
}

func (w *writer) tags(depth int, tags []*ast.Tag) {
	if len(tags) > 0 {
		w.line(depth, strings.Join(ast.TagNames(tags), " "))
	}
}

// description re-indents desc at depth, keeping each line's indent relative to
// the least indented non-blank line.
func (w *writer) description(depth int, desc string) {
	if strings.TrimSpace(desc) == "" {
		return
	}
	lines := strings.Split(desc, "\n")
	common := -1
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		n := len(l) - len(strings.TrimLeft(l, " \t"))
		if common < 0 || n < common {
			common = n
		}
	}
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			w.line(depth, "")
			continue
		}
		w.line(depth, strings.TrimRight(l[common:], " \t"))
	}
}

func (w *writer) feature(f *ast.Feature) {
	if f.Language != "" && f.Language != "en" {
		w.line(0, "# language: "+f.Language)
	}
	w.tags(0, f.Tags)
	w.line(0, heading(f.Keyword, "Feature", f.Name))
	w.description(1, f.Description)
	for _, c := range f.Children {
		w.blank()
		w.child(1, c)
	}
}

func (w *writer) child(depth int, c ast.Child) {
	switch n := c.(type) {
	case *ast.Rule:
		w.tags(depth, n.Tags)
		w.line(depth, heading(n.Keyword, "Rule", n.Name))
		w.description(depth+1, n.Description)
		for _, rc := range n.Children {
			w.blank()
			w.child(depth+1, rc)
		}
	case *ast.Background:
		w.line(depth, heading(n.Keyword, "Background", n.Name))
		w.description(depth+1, n.Description)
		w.steps(depth+1, n.Steps)
	case *ast.Scenario:
		w.tags(depth, n.Tags)
		w.line(depth, heading(n.Keyword, "Scenario", n.Name))
		w.description(depth+1, n.Description)
		w.steps(depth+1, n.Steps)
	case *ast.ScenarioOutline:
		w.tags(depth, n.Tags)
		w.line(depth, heading(n.Keyword, "Scenario Outline", n.Name))
		w.description(depth+1, n.Description)
		w.steps(depth+1, n.Steps)
		for _, e := range n.Examples {
			w.blank()
			w.examples(depth+1, e)
		}
	}
}

func (w *writer) steps(depth int, steps []*ast.Step) {
	for _, s := range steps {
		keyword := strings.TrimRight(s.Keyword, " ")
		if keyword == "" {
			keyword = "*"
		}
		w.line(depth, keyword+" "+s.Text)
		switch {
		case s.DocString != nil:
			w.docString(depth+1, s.DocString)
		case s.DataTable != nil:
			w.table(depth+1, s.DataTable.Rows)
		}
	}
}

func (w *writer) docString(depth int, ds *ast.DocString) {
	delim := ds.Delimiter
	if delim == "" {
		delim = `"""`
	}
	w.line(depth, delim+ds.MediaType)
	if ds.Content != "" {
		escaped := strings.ReplaceAll(ds.Content, delim, escapeDelimiter(delim))
		for _, l := range strings.Split(escaped, "\n") {
			w.line(depth, l)
		}
	}
	w.line(depth, delim)
}

func escapeDelimiter(delim string) string {
	var b strings.Builder
	for _, r := range delim {
		b.WriteRune('\\')
		b.WriteRune(r)
	}
	return b.String()
}

func (w *writer) examples(depth int, e *ast.Examples) {
	w.tags(depth, e.Tags)
	w.line(depth, heading(e.Keyword, "Examples", e.Name))
	w.description(depth+1, e.Description)
	rows := e.Body
	if e.Header != nil {
		rows = append([]*ast.TableRow{e.Header}, e.Body...)
	}
	w.table(depth+1, rows)
}

var cellEscaper = strings.NewReplacer(`\`, `\\`, "|", `\|`, "\n", `\n`)

// table writes rows with every column padded to its widest cell.
func (w *writer) table(depth int, rows []*ast.TableRow) {
	var widths []int
	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = make([]string, len(r.Cells))
		for j, c := range r.Cells {
			cells[i][j] = cellEscaper.Replace(c)
			if j >= len(widths) {
				widths = append(widths, 0)
			}
			widths[j] = max(widths[j], runewidth.StringWidth(cells[i][j]))
		}
	}
	for _, row := range cells {
		var b strings.Builder
		b.WriteString("|")
		for j, c := range row {
			fmt.Fprintf(&b, " %s%s |", c, strings.Repeat(" ", widths[j]-runewidth.StringWidth(c)))
		}
		w.line(depth, b.String())
	}
}

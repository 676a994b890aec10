// Package expander replaces scenario outlines with one scenario per
// examples row.
package expander

import (
	"context"
	"strings"

	"github.com/chriserin/gpc/internal/ast"
	"github.com/chriserin/gpc/internal/compiler"
)

type Options struct {
	// IgnoreTag marks outlines that are left as they are.
	IgnoreTag string `mapstructure:"ignoreTag"`
}

func DefaultOptions() Options {
	return Options{IgnoreTag: "@notExpand"}
}

type Expander struct {
	ignore string
}

func New(opts Options) *Expander {
	if opts.IgnoreTag != "" && !strings.HasPrefix(opts.IgnoreTag, "@") {
		opts.IgnoreTag = "@" + opts.IgnoreTag
	}
	return &Expander{ignore: opts.IgnoreTag}
}

func (e *Expander) Hooks() *compiler.Hooks {
	return &compiler.Hooks{
		Name: "scenario-outline-expander",
		OnScenarioOutline: func(_ context.Context, o *ast.ScenarioOutline, _ ast.Node, _ int) (compiler.Result[ast.Element], error) {
			if e.ignore != "" && ast.HasTag(o.Tags, e.ignore) {
				return compiler.Keep[ast.Element](), nil
			}
			return compiler.Expand(Expand(o)...), nil
		},
	}
}

// Expand returns the scenarios of o, one per examples body row, in order.
// Each carries the outline's tags followed by its examples' tags.
func Expand(o *ast.ScenarioOutline) []ast.Element {
	var out []ast.Element
	for _, ex := range o.Examples {
		if ex.Header == nil {
			continue
		}
		for _, row := range ex.Body {
			out = append(out, scenario(o, ex, row))
		}
	}
	return out
}

func scenario(o *ast.ScenarioOutline, ex *ast.Examples, row *ast.TableRow) *ast.Scenario {
	pairs := make([]string, 0, 2*len(ex.Header.Cells))
	for i, name := range ex.Header.Cells {
		value := ""
		if i < len(row.Cells) {
			value = row.Cells[i]
		}
		pairs = append(pairs, "<"+name+">", value)
	}
	r := strings.NewReplacer(pairs...)

	s := o.ToScenario()
	s.Name = r.Replace(s.Name)
	for _, t := range ex.Tags {
		s.Tags = append(s.Tags, t.Clone())
	}
	for _, step := range s.Steps {
		step.Text = r.Replace(step.Text)
		if step.DocString != nil {
			step.DocString.Content = r.Replace(step.DocString.Content)
		}
		if step.DataTable != nil {
			for _, tr := range step.DataTable.Rows {
				for i, c := range tr.Cells {
					tr.Cells[i] = r.Replace(c)
				}
			}
		}
	}
	return s
}

// Package replacer substitutes ${key} placeholders throughout a document.
package replacer

import (
	"context"
	"errors"
	"regexp"

	"github.com/chriserin/gpc/internal/ast"
	"github.com/chriserin/gpc/internal/compiler"
)

// ErrNoValues is returned by New when there is nothing to replace.
var ErrNoValues = errors.New("replacer needs at least one value")

var placeholder = regexp.MustCompile(`\$\{([^}]+)\}`)

// Replacer replaces ${key} with values[key]. Unknown keys are left as is.
type Replacer struct {
	values map[string]string
}

func New(values map[string]string) (*Replacer, error) {
	if len(values) == 0 {
		return nil, ErrNoValues
	}
	return &Replacer{values: values}, nil
}

func (r *Replacer) replace(s string) string {
	if s == "" {
		return s
	}
	return placeholder.ReplaceAllStringFunc(s, func(m string) string {
		if v, ok := r.values[m[2:len(m)-1]]; ok {
			return v
		}
		return m
	})
}

func (r *Replacer) replaceCells(row *ast.TableRow) {
	for i, c := range row.Cells {
		row.Cells[i] = r.replace(c)
	}
}

// Hooks rewrites text in place; no node is added or removed.
func (r *Replacer) Hooks() *compiler.Hooks {
	return &compiler.Hooks{
		Name: "replacer",
		OnFeature: func(_ context.Context, f *ast.Feature, _ ast.Node) (compiler.Result[*ast.Feature], error) {
			f.Name = r.replace(f.Name)
			f.Description = r.replace(f.Description)
			return compiler.Keep[*ast.Feature](), nil
		},
		OnRule: func(_ context.Context, n *ast.Rule, _ ast.Node, _ int) (compiler.Result[*ast.Rule], error) {
			n.Name = r.replace(n.Name)
			n.Description = r.replace(n.Description)
			return compiler.Keep[*ast.Rule](), nil
		},
		OnBackground: func(_ context.Context, n *ast.Background, _ ast.Node, _ int) (compiler.Result[*ast.Background], error) {
			n.Name = r.replace(n.Name)
			n.Description = r.replace(n.Description)
			return compiler.Keep[*ast.Background](), nil
		},
		OnScenario: func(_ context.Context, n *ast.Scenario, _ ast.Node, _ int) (compiler.Result[*ast.Scenario], error) {
			n.Name = r.replace(n.Name)
			n.Description = r.replace(n.Description)
			return compiler.Keep[*ast.Scenario](), nil
		},
		OnScenarioOutline: func(_ context.Context, n *ast.ScenarioOutline, _ ast.Node, _ int) (compiler.Result[ast.Element], error) {
			n.Name = r.replace(n.Name)
			n.Description = r.replace(n.Description)
			return compiler.Keep[ast.Element](), nil
		},
		OnExamples: func(_ context.Context, n *ast.Examples, _ ast.Node, _ int) (compiler.Result[*ast.Examples], error) {
			n.Name = r.replace(n.Name)
			n.Description = r.replace(n.Description)
			return compiler.Keep[*ast.Examples](), nil
		},
		OnStep: func(_ context.Context, n *ast.Step, _ ast.Node, _ int) (compiler.Result[*ast.Step], error) {
			n.Text = r.replace(n.Text)
			return compiler.Keep[*ast.Step](), nil
		},
		OnTag: func(_ context.Context, n *ast.Tag, _ ast.Node, _ int) (compiler.Result[*ast.Tag], error) {
			n.Name = r.replace(n.Name)
			return compiler.Keep[*ast.Tag](), nil
		},
		OnDocString: func(_ context.Context, n *ast.DocString, _ ast.Node) (compiler.Result[*ast.DocString], error) {
			n.Content = r.replace(n.Content)
			return compiler.Keep[*ast.DocString](), nil
		},
		OnTableHeader: func(_ context.Context, n *ast.TableRow, _ ast.Node) (compiler.Result[*ast.TableRow], error) {
			r.replaceCells(n)
			return compiler.Keep[*ast.TableRow](), nil
		},
		OnTableRow: func(_ context.Context, n *ast.TableRow, _ ast.Node, _ int) (compiler.Result[*ast.TableRow], error) {
			r.replaceCells(n)
			return compiler.Keep[*ast.TableRow](), nil
		},
	}
}

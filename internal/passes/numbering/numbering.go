// Package numbering prefixes scenario names with their position in the
// feature.
package numbering

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/chriserin/gpc/internal/ast"
	"github.com/chriserin/gpc/internal/compiler"
)

// ErrInvalidFormat is returned by New when the format has no ${i}.
var ErrInvalidFormat = errors.New("numbering format must contain ${i}")

type Options struct {
	// Format renders a numbered name from ${i} and ${name}.
	Format string `mapstructure:"format"`
}

func DefaultOptions() Options {
	return Options{Format: "${i}. ${name}"}
}

type Numbering struct {
	format string
	count  int
}

func New(opts Options) (*Numbering, error) {
	if opts.Format == "" {
		opts.Format = DefaultOptions().Format
	}
	if !strings.Contains(opts.Format, "${i}") {
		return nil, ErrInvalidFormat
	}
	return &Numbering{format: opts.Format}, nil
}

func (n *Numbering) next(name string) string {
	n.count++
	return strings.NewReplacer("${i}", strconv.Itoa(n.count), "${name}", name).Replace(n.format)
}

// Hooks numbers scenarios and outlines in document order, rules included.
// Numbering restarts with every feature.
func (n *Numbering) Hooks() *compiler.Hooks {
	return &compiler.Hooks{
		Name: "scenario-numbering",
		PreFeature: func(context.Context, *ast.Feature, ast.Node) (bool, error) {
			n.count = 0
			return true, nil
		},
		OnScenario: func(_ context.Context, s *ast.Scenario, _ ast.Node, _ int) (compiler.Result[*ast.Scenario], error) {
			s.Name = n.next(s.Name)
			return compiler.Keep[*ast.Scenario](), nil
		},
		OnScenarioOutline: func(_ context.Context, o *ast.ScenarioOutline, _ ast.Node, _ int) (compiler.Result[ast.Element], error) {
			o.Name = n.next(o.Name)
			return compiler.Keep[ast.Element](), nil
		},
	}
}

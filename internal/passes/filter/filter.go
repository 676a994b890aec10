// Package filter keeps the scenarios whose effective tags match a cucumber
// tag expression.
package filter

import (
	"context"
	"errors"
	"fmt"

	tagexpressions "github.com/cucumber/tag-expressions/go/v6"

	"github.com/chriserin/gpc/internal/ast"
	"github.com/chriserin/gpc/internal/compiler"
)

// ErrInvalidExpression is returned by New when the tag expression cannot be
// parsed.
var ErrInvalidExpression = errors.New("invalid tag expression")

type Options struct {
	Expression string `mapstructure:"expression"`
}

func DefaultOptions() Options {
	return Options{Expression: "not @wip"}
}

// Filter evaluates tags inherited from the feature and rule along with a
// node's own. Backgrounds and rules are never dropped.
type Filter struct {
	expr    tagexpressions.Evaluatable
	feature []string
	// outlines holds the inherited tags of each outline for its examples.
	outlines map[*ast.ScenarioOutline][]string
}

func New(opts Options) (*Filter, error) {
	if opts.Expression == "" {
		opts.Expression = DefaultOptions().Expression
	}
	expr, err := parse(opts.Expression)
	if err != nil {
		return nil, err
	}
	return &Filter{expr: expr}, nil
}

// parse turns a panic from the tag expression parser into an error. Some
// malformed expressions, such as a trailing operator, panic instead of
// failing.
func parse(expression string) (expr tagexpressions.Evaluatable, err error) {
	defer func() {
		if r := recover(); r != nil {
			expr, err = nil, fmt.Errorf("parsing tag expression %q: %w: %v", expression, ErrInvalidExpression, r)
		}
	}()
	expr, err = tagexpressions.Parse(expression)
	if err != nil {
		return nil, fmt.Errorf("parsing tag expression %q: %w", expression, err)
	}
	return expr, nil
}

func (f *Filter) Hooks() *compiler.Hooks {
	return &compiler.Hooks{
		Name: "filter",
		PreFeature: func(_ context.Context, feat *ast.Feature, _ ast.Node) (bool, error) {
			f.feature = ast.TagNames(feat.Tags)
			f.outlines = map[*ast.ScenarioOutline][]string{}
			return true, nil
		},
		PreScenario: func(_ context.Context, s *ast.Scenario, parent ast.Node, _ int) (bool, error) {
			return f.expr.Evaluate(f.with(f.inherited(parent), s.Tags)), nil
		},
		PreScenarioOutline: func(_ context.Context, o *ast.ScenarioOutline, parent ast.Node, _ int) (bool, error) {
			own := f.with(f.inherited(parent), o.Tags)
			f.outlines[o] = own
			if len(o.Examples) == 0 {
				return f.expr.Evaluate(own), nil
			}
			for _, e := range o.Examples {
				if f.expr.Evaluate(f.with(own, e.Tags)) {
					return true, nil
				}
			}
			return false, nil
		},
		PreExamples: func(_ context.Context, e *ast.Examples, parent ast.Node, _ int) (bool, error) {
			o, ok := parent.(*ast.ScenarioOutline)
			if !ok {
				return true, nil
			}
			return f.expr.Evaluate(f.with(f.outlines[o], e.Tags)), nil
		},
	}
}

func (f *Filter) inherited(parent ast.Node) []string {
	if r, ok := parent.(*ast.Rule); ok {
		return f.with(f.feature, r.Tags)
	}
	return f.feature
}

func (f *Filter) with(outer []string, tags []*ast.Tag) []string {
	out := make([]string, 0, len(outer)+len(tags))
	out = append(out, outer...)
	return append(out, ast.TagNames(tags)...)
}

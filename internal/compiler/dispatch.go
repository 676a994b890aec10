package compiler

import (
	"context"

	"github.com/chriserin/gpc/internal/ast"
)

// elementHooks adapts the per-kind element hooks to the mixed child list of a
// Feature or Rule. Each call is forwarded by the item's concrete kind, so an
// item returned by OnScenarioOutline as a Scenario is post-filtered by
// PostScenario. Kinds outside the element set pass through unchanged.
func (p *processor) elementHooks() listHooks[ast.Child] {
	return listHooks[ast.Child]{
		pre: func(ctx context.Context, c ast.Child, parent ast.Node, i int) (bool, error) {
			return p.filterElement(ctx, c, parent, i, p.h.PreBackground, p.h.PreScenario, p.h.PreScenarioOutline)
		},
		on: p.transformElement,
		post: func(ctx context.Context, c ast.Child, parent ast.Node, i int) (bool, error) {
			return p.filterElement(ctx, c, parent, i, p.h.PostBackground, p.h.PostScenario, p.h.PostScenarioOutline)
		},
	}
}

func (p *processor) filterElement(
	ctx context.Context, c ast.Child, parent ast.Node, i int,
	background Filter[*ast.Background], scenario Filter[*ast.Scenario], outline Filter[*ast.ScenarioOutline],
) (bool, error) {
	switch n := c.(type) {
	case *ast.Background:
		return callFilter(ctx, background, n, parent, i)
	case *ast.Scenario:
		return callFilter(ctx, scenario, n, parent, i)
	case *ast.ScenarioOutline:
		return callFilter(ctx, outline, n, parent, i)
	}
	return true, nil
}

func (p *processor) transformElement(ctx context.Context, c ast.Child, parent ast.Node, i int) (Result[ast.Child], error) {
	switch n := c.(type) {
	case *ast.Background:
		return callTransform(ctx, p.h.OnBackground, n, parent, i)
	case *ast.Scenario:
		return callTransform(ctx, p.h.OnScenario, n, parent, i)
	case *ast.ScenarioOutline:
		return callTransform(ctx, p.h.OnScenarioOutline, n, parent, i)
	}
	return Keep[ast.Child](), nil
}

func callFilter[T any](ctx context.Context, f Filter[T], n T, parent ast.Node, i int) (bool, error) {
	if f == nil {
		return true, nil
	}
	return f(ctx, n, parent, i)
}

func callTransform[T any, R ast.Child](ctx context.Context, f Transform[T, R], n T, parent ast.Node, i int) (Result[ast.Child], error) {
	if f == nil {
		return Keep[ast.Child](), nil
	}
	res, err := f(ctx, n, parent, i)
	if err != nil {
		return Result[ast.Child]{}, err
	}
	return asChild(res), nil
}

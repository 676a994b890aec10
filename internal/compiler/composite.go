package compiler

import (
	"context"

	"github.com/chriserin/gpc/internal/ast"
)

// feature processes the Feature slot of doc. Each surviving feature has its
// tags and then its children processed.
func (p *processor) feature(ctx context.Context, f *ast.Feature, doc *ast.Document) ([]*ast.Feature, error) {
	if f == nil {
		return nil, nil
	}
	features, err := executeSlot(ctx, f, doc, slotHooks[*ast.Feature]{
		pre:  p.h.PreFeature,
		on:   p.h.OnFeature,
		post: p.h.PostFeature,
	})
	if err != nil {
		return nil, err
	}
	for _, f := range features {
		if f.Tags, err = p.tags(ctx, f.Tags, f); err != nil {
			return nil, err
		}
		if hasRule(f.Children) {
			f.Children, err = p.rules(ctx, f.Children, f)
		} else {
			f.Children, err = p.elements(ctx, f.Children, f)
		}
		if err != nil {
			return nil, err
		}
	}
	return features, nil
}

func hasRule(children []ast.Child) bool {
	for _, c := range children {
		if c.Kind() == ast.KindRule {
			return true
		}
	}
	return false
}

// rules processes a Feature's children in rule mode. Only Rules are visited;
// any other child is carried through untouched.
func (p *processor) rules(ctx context.Context, children []ast.Child, parent *ast.Feature) ([]ast.Child, error) {
	out, err := executeList(ctx, children, parent, listHooks[ast.Child]{
		pre: func(ctx context.Context, c ast.Child, parent ast.Node, i int) (bool, error) {
			if r, ok := c.(*ast.Rule); ok && p.h.PreRule != nil {
				return p.h.PreRule(ctx, r, parent, i)
			}
			return true, nil
		},
		on: func(ctx context.Context, c ast.Child, parent ast.Node, i int) (Result[ast.Child], error) {
			r, ok := c.(*ast.Rule)
			if !ok || p.h.OnRule == nil {
				return Keep[ast.Child](), nil
			}
			res, err := p.h.OnRule(ctx, r, parent, i)
			return asChild(res), err
		},
		post: func(ctx context.Context, c ast.Child, parent ast.Node, i int) (bool, error) {
			if r, ok := c.(*ast.Rule); ok && p.h.PostRule != nil {
				return p.h.PostRule(ctx, r, parent, i)
			}
			return true, nil
		},
	})
	if err != nil {
		return nil, err
	}
	for _, c := range out {
		r, ok := c.(*ast.Rule)
		if !ok {
			continue
		}
		if r.Tags, err = p.tags(ctx, r.Tags, r); err != nil {
			return nil, err
		}
		if r.Children, err = p.elements(ctx, r.Children, r); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// elements processes a list of Backgrounds, Scenarios and Scenario Outlines,
// then recurses into each surviving element according to its actual kind.
func (p *processor) elements(ctx context.Context, children []ast.Child, parent ast.Node) ([]ast.Child, error) {
	out, err := executeList(ctx, children, parent, p.elementHooks())
	if err != nil {
		return nil, err
	}
	for _, c := range out {
		if err := p.elementChildren(ctx, c); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (p *processor) elementChildren(ctx context.Context, c ast.Child) error {
	var err error
	switch n := c.(type) {
	case *ast.Background:
		n.Steps, err = p.steps(ctx, n.Steps, n)
	case *ast.Scenario:
		if n.Tags, err = p.tags(ctx, n.Tags, n); err != nil {
			return err
		}
		n.Steps, err = p.steps(ctx, n.Steps, n)
	case *ast.ScenarioOutline:
		if n.Tags, err = p.tags(ctx, n.Tags, n); err != nil {
			return err
		}
		if n.Steps, err = p.steps(ctx, n.Steps, n); err != nil {
			return err
		}
		n.Examples, err = p.examples(ctx, n.Examples, n)
	}
	return err
}

// steps processes a step list, then the single argument of each surviving
// step.
func (p *processor) steps(ctx context.Context, steps []*ast.Step, parent ast.Node) ([]*ast.Step, error) {
	out, err := executeList(ctx, steps, parent, listHooks[*ast.Step]{
		pre:  p.h.PreStep,
		on:   p.h.OnStep,
		post: p.h.PostStep,
	})
	if err != nil {
		return nil, err
	}
	for _, s := range out {
		switch {
		case s.DocString != nil:
			s.DocString, err = p.docString(ctx, s.DocString, s)
		case s.DataTable != nil:
			s.DataTable, err = p.dataTable(ctx, s.DataTable, s)
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// examples processes the examples tables of an outline: tags, then header,
// then body rows of each surviving table.
func (p *processor) examples(ctx context.Context, examples []*ast.Examples, parent *ast.ScenarioOutline) ([]*ast.Examples, error) {
	out, err := executeList(ctx, examples, parent, listHooks[*ast.Examples]{
		pre:  p.h.PreExamples,
		on:   p.h.OnExamples,
		post: p.h.PostExamples,
	})
	if err != nil {
		return nil, err
	}
	for _, e := range out {
		if e.Tags, err = p.tags(ctx, e.Tags, e); err != nil {
			return nil, err
		}
		if e.Header, err = p.tableHeader(ctx, e.Header, e); err != nil {
			return nil, err
		}
		if e.Body, err = p.rows(ctx, e.Body, e); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Package compiler rewrites Gherkin document trees with composable passes.
//
// A pass is a Hooks value: optional pre-filter, transform and post-filter
// functions per node kind. Execute walks one document through one pass;
// Process chains passes, feeding every document produced by one pass into the
// next.
package compiler

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/chriserin/gpc/internal/ast"
)

// Execute runs one pass over a clone of doc. It returns one document per
// feature the pass produced, each built on a copy of doc's shell; doc itself
// is never modified. A document without a feature produces nothing.
func Execute(ctx context.Context, doc *ast.Document, h *Hooks) ([]*ast.Document, error) {
	if h == nil {
		return nil, ErrNilHooks
	}
	if doc == nil || doc.Feature == nil {
		return nil, nil
	}

	work := doc.Clone()
	p := &processor{h: h}
	features, err := p.feature(ctx, work.Feature, work)
	if err != nil {
		return nil, err
	}

	out := make([]*ast.Document, 0, len(features))
	for _, f := range features {
		d := doc.Shell()
		d.Feature = f
		out = append(out, d)
	}
	return out, nil
}

// Process runs passes in order. Each pass is applied to every document the
// previous pass produced and the outputs are concatenated. With no passes
// Process returns a clone of doc.
func Process(ctx context.Context, doc *ast.Document, passes ...*Hooks) ([]*ast.Document, error) {
	for i, h := range passes {
		if h == nil {
			return nil, fmt.Errorf("pass %d: %w", i+1, ErrNilHooks)
		}
	}
	if len(passes) == 0 {
		passes = []*Hooks{{Name: "identity"}}
	}

	docs := []*ast.Document{doc}
	for _, h := range passes {
		var next []*ast.Document
		for _, d := range docs {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			out, err := Execute(ctx, d, h)
			if err != nil {
				return nil, fmt.Errorf("pass %s: %w", h.name(), err)
			}
			next = append(next, out...)
		}
		log.Debug().
			Str("pass", h.name()).
			Int("in", len(docs)).
			Int("out", len(next)).
			Msg("pass applied")
		docs = next
	}
	return docs, nil
}

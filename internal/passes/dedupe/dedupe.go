// Package dedupe removes repeated tags and, optionally, repeated table rows.
package dedupe

import (
	"context"
	"slices"

	"github.com/rs/zerolog/log"

	"github.com/chriserin/gpc/internal/ast"
	"github.com/chriserin/gpc/internal/compiler"
)

type Options struct {
	// ProcessTags drops tags repeated on the same node or already carried by
	// an enclosing node.
	ProcessTags bool `mapstructure:"processTags"`
	// ProcessRows drops data table and examples rows equal to an earlier row.
	ProcessRows bool `mapstructure:"processRows"`
}

func DefaultOptions() Options {
	return Options{ProcessTags: true}
}

type Dedupe struct {
	opts Options
	// inherited holds, per tag owner, the tag names of its enclosing nodes.
	inherited map[ast.Node]map[string]bool
}

func New(opts Options) *Dedupe {
	return &Dedupe{opts: opts}
}

func (d *Dedupe) Hooks() *compiler.Hooks {
	h := &compiler.Hooks{Name: "remove-duplicates"}
	if d.opts.ProcessTags {
		h.OnFeature = d.collect
		h.PreTag = d.keepTag
	}
	if d.opts.ProcessRows {
		h.PreTableRow = d.keepRow
	}
	return h
}

func (d *Dedupe) collect(_ context.Context, f *ast.Feature, _ ast.Node) (compiler.Result[*ast.Feature], error) {
	d.inherited = map[ast.Node]map[string]bool{}
	d.walk(f.Children, names(nil, f.Tags))
	return compiler.Keep[*ast.Feature](), nil
}

func (d *Dedupe) walk(children []ast.Child, outer map[string]bool) {
	for _, c := range children {
		d.inherited[c] = outer
		switch n := c.(type) {
		case *ast.Rule:
			d.walk(n.Children, names(outer, n.Tags))
		case *ast.ScenarioOutline:
			own := names(outer, n.Tags)
			for _, e := range n.Examples {
				d.inherited[e] = own
			}
		}
	}
}

func names(outer map[string]bool, tags []*ast.Tag) map[string]bool {
	out := make(map[string]bool, len(outer)+len(tags))
	for name := range outer {
		out[name] = true
	}
	for _, t := range tags {
		out[t.Name] = true
	}
	return out
}

func (d *Dedupe) keepTag(_ context.Context, tag *ast.Tag, parent ast.Node, i int) (bool, error) {
	if d.inherited[parent][tag.Name] {
		log.Debug().Str("tag", tag.Name).Msg("dropping inherited tag")
		return false, nil
	}
	for _, earlier := range ast.TagsOf(parent)[:i] {
		if earlier.Name == tag.Name {
			log.Debug().Str("tag", tag.Name).Msg("dropping repeated tag")
			return false, nil
		}
	}
	return true, nil
}

func (d *Dedupe) keepRow(_ context.Context, row *ast.TableRow, parent ast.Node, i int) (bool, error) {
	var rows []*ast.TableRow
	switch p := parent.(type) {
	case *ast.DataTable:
		rows = p.Rows
	case *ast.Examples:
		rows = p.Body
	}
	for _, earlier := range rows[:i] {
		if slices.Equal(earlier.Cells, row.Cells) {
			return false, nil
		}
	}
	return true, nil
}

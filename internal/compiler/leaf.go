package compiler

import (
	"context"

	"github.com/chriserin/gpc/internal/ast"
)

// processor walks one document for one pass.
type processor struct {
	h *Hooks
}

func (p *processor) tags(ctx context.Context, tags []*ast.Tag, parent ast.Node) ([]*ast.Tag, error) {
	return executeList(ctx, tags, parent, listHooks[*ast.Tag]{
		pre:  p.h.PreTag,
		on:   p.h.OnTag,
		post: p.h.PostTag,
	})
}

// rows processes the body rows of a data table or an examples table.
func (p *processor) rows(ctx context.Context, rows []*ast.TableRow, parent ast.Node) ([]*ast.TableRow, error) {
	return executeList(ctx, rows, parent, listHooks[*ast.TableRow]{
		pre:  p.h.PreTableRow,
		on:   p.h.OnTableRow,
		post: p.h.PostTableRow,
	})
}

func (p *processor) tableHeader(ctx context.Context, header *ast.TableRow, parent *ast.Examples) (*ast.TableRow, error) {
	if header == nil {
		return nil, nil
	}
	out, ok, err := executeOne(ctx, "table header", header, parent, slotHooks[*ast.TableRow]{
		pre:  p.h.PreTableHeader,
		on:   p.h.OnTableHeader,
		post: p.h.PostTableHeader,
	})
	if err != nil || !ok {
		return nil, err
	}
	return out, nil
}

func (p *processor) docString(ctx context.Context, ds *ast.DocString, parent *ast.Step) (*ast.DocString, error) {
	if ds == nil {
		return nil, nil
	}
	out, ok, err := executeOne(ctx, "doc string", ds, parent, slotHooks[*ast.DocString]{
		pre:  p.h.PreDocString,
		on:   p.h.OnDocString,
		post: p.h.PostDocString,
	})
	if err != nil || !ok {
		return nil, err
	}
	return out, nil
}

// dataTable runs the table's own hooks and then processes the rows of the
// surviving table.
func (p *processor) dataTable(ctx context.Context, dt *ast.DataTable, parent *ast.Step) (*ast.DataTable, error) {
	if dt == nil {
		return nil, nil
	}
	out, ok, err := executeOne(ctx, "data table", dt, parent, slotHooks[*ast.DataTable]{
		pre:  p.h.PreDataTable,
		on:   p.h.OnDataTable,
		post: p.h.PostDataTable,
	})
	if err != nil || !ok {
		return nil, err
	}
	if out.Rows, err = p.rows(ctx, out.Rows, out); err != nil {
		return nil, err
	}
	return out, nil
}

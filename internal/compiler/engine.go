package compiler

import (
	"context"
	"fmt"
	"slices"

	"github.com/chriserin/gpc/internal/ast"
)

type listHooks[T any] struct {
	pre  Filter[T]
	on   Transform[T, T]
	post Filter[T]
}

type slotHooks[T any] struct {
	pre  SlotFilter[T]
	on   SlotTransform[T]
	post SlotFilter[T]
}

// executeList runs the hooks over a node collection of parent and returns the
// resulting collection. Pre-filtering sees original indices; transforms walk a
// cursor that stays put on deletion and skips past expansions; post-filtering
// sees indices in the transformed list.
func executeList[T any](ctx context.Context, items []T, parent ast.Node, h listHooks[T]) ([]T, error) {
	if len(items) == 0 {
		return items, nil
	}

	kept := make([]T, 0, len(items))
	for i, item := range items {
		if h.pre != nil {
			ok, err := h.pre(ctx, item, parent, i)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
		}
		kept = append(kept, item)
	}

	if h.on != nil {
		for i := 0; i < len(kept); {
			res, err := h.on(ctx, kept[i], parent, i)
			if err != nil {
				return nil, err
			}
			switch res.action {
			case actionKeep:
				i++
			case actionDelete:
				kept = slices.Delete(kept, i, i+1)
			case actionReplace:
				kept[i] = res.nodes[0]
				i++
			case actionExpand:
				kept = slices.Replace(kept, i, i+1, res.nodes...)
				i += len(res.nodes)
			}
		}
	}

	if h.post == nil {
		return kept, nil
	}
	out := make([]T, 0, len(kept))
	for i, item := range kept {
		ok, err := h.post(ctx, item, parent, i)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, item)
		}
	}
	return out, nil
}

// executeSlot runs the hooks over a node held in a single field of parent.
// It returns the surviving nodes: none when the node was filtered out or
// deleted, several when the transform expanded it.
func executeSlot[T any](ctx context.Context, node T, parent ast.Node, h slotHooks[T]) ([]T, error) {
	if h.pre != nil {
		ok, err := h.pre(ctx, node, parent)
		if err != nil || !ok {
			return nil, err
		}
	}

	nodes := []T{node}
	if h.on != nil {
		res, err := h.on(ctx, node, parent)
		if err != nil {
			return nil, err
		}
		switch res.action {
		case actionDelete:
			return nil, nil
		case actionReplace, actionExpand:
			nodes = res.nodes
		}
	}

	if h.post == nil {
		return nodes, nil
	}
	out := make([]T, 0, len(nodes))
	for _, n := range nodes {
		ok, err := h.post(ctx, n, parent)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, n)
		}
	}
	return out, nil
}

// executeOne is executeSlot for fields that can hold one node only. The
// boolean result is false when the slot ends up empty.
func executeOne[T any](ctx context.Context, kind string, node T, parent ast.Node, h slotHooks[T]) (T, bool, error) {
	var zero T
	out, err := executeSlot(ctx, node, parent, h)
	if err != nil {
		return zero, false, err
	}
	switch len(out) {
	case 0:
		return zero, false, nil
	case 1:
		return out[0], true, nil
	}
	return zero, false, fmt.Errorf("%s: %d nodes: %w", kind, len(out), ErrSlotExpansion)
}

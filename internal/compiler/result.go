package compiler

import "github.com/chriserin/gpc/internal/ast"

type action int

const (
	actionKeep action = iota
	actionDelete
	actionReplace
	actionExpand
)

// Result is what a transform hook returns to the engine. The zero value
// keeps the visited node unchanged.
type Result[T any] struct {
	action action
	nodes  []T
}

// Keep leaves the visited node in place. In-place field mutation of the node
// is still visible to the rest of the traversal.
func Keep[T any]() Result[T] {
	return Result[T]{}
}

// Delete removes the visited node and its subtree.
func Delete[T any]() Result[T] {
	return Result[T]{action: actionDelete}
}

// Replace puts n where the visited node stood.
func Replace[T any](n T) Result[T] {
	return Result[T]{action: actionReplace, nodes: []T{n}}
}

// Expand puts ns, in order, where the visited node stood. An empty expansion
// removes the node.
func Expand[T any](ns ...T) Result[T] {
	return Result[T]{action: actionExpand, nodes: ns}
}

// IsKeep reports whether r leaves the visited node unchanged.
func (r Result[T]) IsKeep() bool {
	return r.action == actionKeep
}

// Nodes returns the replacement nodes of r. It is empty for Keep and Delete.
func (r Result[T]) Nodes() []T {
	return r.nodes
}

// asChild widens a typed element result so it can be spliced into a mixed
// Feature or Rule child list.
func asChild[T ast.Child](r Result[T]) Result[ast.Child] {
	out := Result[ast.Child]{action: r.action}
	if r.nodes != nil {
		out.nodes = make([]ast.Child, len(r.nodes))
		for i, n := range r.nodes {
			out.nodes[i] = n
		}
	}
	return out
}

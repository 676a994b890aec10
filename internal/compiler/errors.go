package compiler

import "errors"

var (
	// ErrNilHooks is returned by Process before any traversal when a pass is nil.
	ErrNilHooks = errors.New("pass has no hooks")
	// ErrSlotExpansion is returned when a hook for a single-slot node kind
	// leaves more than one node for that slot.
	ErrSlotExpansion = errors.New("single-slot node expanded into several nodes")
)

package bsp

import "errors"

// NoIndex marks an absent reference, mirroring level.NoIndex for the
// output-side arena this package owns.
const NoIndex = -1

var (
	// ErrCancelled is returned by BuildTree when the cancel flag (or the
	// supplied context) is observed set before the tree could be built.
	ErrCancelled = errors.New("bsp: cancelled")

	// ErrEmptySegSet is returned if BuildTree is asked to partition zero
	// segs; a level with no linedefs has nothing to compile.
	ErrEmptySegSet = errors.New("bsp: empty seg set")

	// ErrInvariant marks an internal consistency failure: a seg that never
	// reached a subsector, a node with both or neither child kind set, or
	// a partner relation that isn't symmetric. spec.md §7 classifies this
	// as Fatal; the driver (package driver) recovers it at the top of a
	// level rather than letting it propagate as a generic panic.
	ErrInvariant = errors.New("bsp: internal invariant violated")
)

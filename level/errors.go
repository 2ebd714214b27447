package level

import "errors"

// NoIndex marks an absent reference (e.g. a one-sided linedef's back
// sidedef, or a canonical vertex's own equivalence pointer). It is never a
// valid slice index.
const NoIndex = -1

// Sentinel errors returned by Level's checked accessors. An out-of-range
// index passed to one of them fails fast with one of these rather than
// panicking (WallTip is unchecked and indexes the slice directly), so callers walking untrusted lump data can recover cleanly (spec.md's
// "Load error" class) instead of crashing the whole batch.
var (
	// ErrVertexRange indicates a vertex index outside [0, len(Vertices)).
	ErrVertexRange = errors.New("level: vertex index out of range")
	// ErrLinedefRange indicates a linedef index outside [0, len(Linedefs)).
	ErrLinedefRange = errors.New("level: linedef index out of range")
	// ErrSidedefRange indicates a sidedef index outside [0, len(Sidedefs)).
	ErrSidedefRange = errors.New("level: sidedef index out of range")
	// ErrSectorRange indicates a sector index outside [0, len(Sectors)).
	ErrSectorRange = errors.New("level: sector index out of range")
	// ErrThingRange indicates a thing index outside [0, len(Things)).
	ErrThingRange = errors.New("level: thing index out of range")
)

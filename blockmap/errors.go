package blockmap

import "errors"

// CellSize is the fixed width/height of one blockmap cell, in map units
// (spec.md §4.J).
const CellSize = 128

// ErrEmptyLevel is returned by Build when the level has no vertices, so no
// meaningful origin/bounds can be computed.
var ErrEmptyLevel = errors.New("blockmap: empty level")

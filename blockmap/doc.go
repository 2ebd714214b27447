// Package blockmap builds the 128-unit spatial acceleration grid spec.md
// §4.J describes: a rectangular array of cells, each holding the indices
// of every linedef whose segment touches it, with identical per-cell
// lists deduplicated via a checksum pre-filter before a full content
// compare. The package only computes the grid's logical contents; byte
// serialisation into the BLOCKMAP lump format is package wad's job.
package blockmap

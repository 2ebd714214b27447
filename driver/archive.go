package driver

import "github.com/katalvlaran/bspc/wad"

// Archive is the host-supplied view of a WAD file's levels: an ordered
// list of level markers plus, for each one, a reader over its input
// lumps and a writer for its output lumps. Package driver never opens a
// file itself — spec.md §1 treats file I/O and CLI parsing as an outer
// layer's concern, this interface is the seam.
type Archive interface {
	// Levels returns level marker names (e.g. "MAP01", "E1M1") in the
	// order they appear in the archive.
	Levels() []string

	// Reader returns the LumpReader scoped to one level's input lumps.
	Reader(levelName string) wad.LumpReader

	// Writer returns the LumpWriter scoped to one level's output lumps.
	Writer(levelName string) wad.LumpWriter
}

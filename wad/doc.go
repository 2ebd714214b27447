// Package wad defines the on-disk lump record layouts spec.md §6
// specifies (VERTEXES, LINEDEFS, SIDEDEFS, SECTORS, THINGS in both Doom
// and Hexen formats, and the SEGS/SSECTORS/NODES/BLOCKMAP/REJECT/GL-*
// lumps this module produces), plus the LumpReader/LumpWriter interfaces
// a host archive implementation must satisfy. Opening a real .wad file
// from disk is the host's job (spec.md §1's "deliberately out of scope"
// list); this package only knows how to turn lump bytes into level.Level
// data and back, using encoding/binary exactly as the teacher pack's
// direktiv-vorteil vmdk package encodes its own fixed-layout headers.
package wad

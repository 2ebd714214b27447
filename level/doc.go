// Package level implements the arena-owned input data model for a single
// map: vertices, linedefs, sidedefs, sectors, things, and the wall-tip fan
// built around each vertex.
//
// Every entity is stored in a bulk-growable slice on *Level and referenced
// everywhere else by its stable integer index, never by pointer — index
// zero is valid and "absent" is always spelled out as a named constant
// (NoIndex), matching the sentinel-based style the rest of this module
// uses for "optional reference" fields. A *Level owns its entire arena; the
// driver (package driver) tears it down in one pass at the end of a level
// by simply letting it go out of scope (Go's GC does the zeroing the
// source's explicit "free pass" did by hand).
//
// Output-side entities — Seg, Subsector, Node, and the BSP scaffolding
// built from this input (Superblock, Intersection) — live in package bsp,
// which imports Level and refers back into it by index. That split keeps
// this package a pure, append-only record of "what the map lumps said"
// plus the markers the analyser (package analyse) layers on top of it.
package level

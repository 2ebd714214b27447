package wad

import "errors"

var (
	// ErrMissingLump is returned when a required input lump (THINGS,
	// LINEDEFS, SIDEDEFS, VERTEXES or SECTORS) is absent from the current
	// level; LoadLevel does not check for BEHAVIOR. Classified as a Load error
	// (spec.md §7): the current level is abandoned, not the whole run.
	ErrMissingLump = errors.New("wad: missing required lump")

	// ErrTruncatedLump is returned when a lump's byte length is not an
	// exact multiple of its record size.
	ErrTruncatedLump = errors.New("wad: truncated lump")

	// ErrBadMagic is returned when a GL-VERT/GL-SEGS lump's 4-byte magic
	// prefix does not match any recognised version.
	ErrBadMagic = errors.New("wad: bad GL lump magic")

	// ErrOverflow16 is returned by an Encode function when a value meant
	// for a 16-bit wire field exceeds that range and the caller has not
	// opted into truncating it anyway (spec.md §7's Overflow class; the
	// driver decides soft vs hard and whether to proceed).
	ErrOverflow16 = errors.New("wad: value exceeds 16-bit wire range")
)

package bsp

import "github.com/katalvlaran/bspc/numeric"

// Seg is an oriented fragment of a linedef (or a miniseg with no
// linedef), carrying the precomputed geometry spec.md §3 lists: start and
// end point, delta, length, outbound angle, and the perpendicular/
// parallel distance constants (Perp/Para) that let this seg itself be
// evaluated as a candidate partition without recomputing them.
type Seg struct {
	StartV, EndV int // indices into Tree.Vertices

	PSX, PSY float64
	PEX, PEY float64
	PDX, PDY float64
	Length   float64
	Angle    float64
	Perp     float64
	Para     float64

	// Side is 0 for the linedef's front (right) orientation, 1 for back.
	Side int

	// Partner is the opposite-side seg of a two-sided edge, or nil.
	// Partnership is strictly one-to-one: Partner.Partner == this seg.
	Partner *Seg

	// Linedef is the owning linedef's index, or NoIndex for a miniseg.
	Linedef int

	// SourceLine is the linedef used for angle/collinearity comparisons:
	// equal to Linedef for a real seg, or the partition's owning linedef
	// for a miniseg (spec.md §4.G).
	SourceLine int

	// Sector is the sector this seg faces.
	Sector int

	// Precious mirrors the owning linedef's Precious marker (spec.md §3);
	// cached directly on the seg so the picker's hot scoring loop never
	// needs to look the linedef back up.
	Precious bool

	// Block is the Superblock leaf currently holding this seg, kept so a
	// split can increment the owning block's (and its ancestors') counts
	// in O(1) rather than walking the whole tree to find it.
	Block *Superblock

	// SubsecIndex is the owning Subsector's index, NoIndex until the BSP
	// recursor assigns a leaf.
	SubsecIndex int

	// Index is this seg's record position in the legacy SEGS lump,
	// assigned when the normalisation sweep strips minisegs; -1 until
	// then, and forever -1 for a miniseg.
	Index int

	// GLIndex is this seg's record position in the GL-SEGS lump (which
	// keeps minisegs), assigned by the clockwise finalisation sweep; -1
	// until then. Partner references in GL-SEGS records use this, not
	// Index.
	GLIndex int

	// Degenerate is set by the integer-rounding finalisation sweep when
	// this seg's rounded endpoints coincide.
	Degenerate bool
}

// IsMiniseg reports whether this seg has no owning linedef.
func (s *Seg) IsMiniseg() bool { return s.Linedef == NoIndex }

// Partition returns this seg's geometry as a numeric.Partition, letting
// the picker (picker.go) and splitter (splitter.go) evaluate other segs
// against it using the same fast-path distance functions a candidate
// partition uses.
func (s *Seg) Partition() numeric.Partition {
	return numeric.Partition{
		X: s.PSX, Y: s.PSY,
		DX: s.PDX, DY: s.PDY,
		Length: s.Length,
		PerpC:  s.Perp,
		ParaC:  s.Para,
	}
}

// newSegGeometry fills in the precomputed fields of a Seg from its two
// endpoints.
func newSegGeometry(s *Seg, psx, psy, pex, pey float64) {
	s.PSX, s.PSY = psx, psy
	s.PEX, s.PEY = pex, pey
	s.PDX, s.PDY = pex-psx, pey-psy
	s.Length = numeric.Dist(s.PDX, s.PDY)
	s.Angle = numeric.Angle(s.PDX, s.PDY)
	s.Perp = psy*s.PDX - psx*s.PDY
	s.Para = -psx*s.PDX - psy*s.PDY
}

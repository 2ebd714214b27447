package bsp

import (
	"math"

	"github.com/katalvlaran/bspc/numeric"
)

// StaleNode is one node of an original, pre-existing NODES lump carried
// along during a fast rebuild: just the partition line and the two child
// links (nil where the original child was a subsector). When the seg set
// at the matching depth of the new build is large enough, the recursor
// tries the stale partition before paying for a full picker scan
// (spec.md §4.H step 5).
type StaleNode struct {
	X, Y   float64
	DX, DY float64

	Right *StaleNode
	Left  *StaleNode
}

// reuseStalePartition looks for a seg in segs whose linedef lies on
// stale's partition line and validates it as a legal partition under the
// ordinary cost evaluation. Returns nil when no seg lies on the stale
// line or the one that does is rejected (one side empty), in which case
// the caller falls back to the full picker.
func (t *Tree) reuseStalePartition(ctx *Context, sb *Superblock, segs []*Seg, stale *StaleNode) *Seg {
	part := numeric.NewPartition(stale.X, stale.Y, stale.DX, stale.DY)
	if part.Length == 0 {
		return nil
	}

	for _, s := range segs {
		if s.IsMiniseg() {
			continue
		}
		a := part.PerpDist(s.PSX, s.PSY)
		b := part.PerpDist(s.PEX, s.PEY)
		if numeric.AbsFloat(a) > numeric.DistEpsilon || numeric.AbsFloat(b) > numeric.DistEpsilon {
			continue
		}
		if _, ok := EvaluatePartition(sb, s, ctx, math.Inf(1)); ok {
			return s
		}
	}

	return nil
}

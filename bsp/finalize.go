package bsp

import (
	"math"
	"sort"

	"github.com/katalvlaran/bspc/level"
	"github.com/katalvlaran/bspc/numeric"
	"github.com/katalvlaran/bspc/report"
)

// ClockwiseBspTree reorders every Subsector's segs into clockwise order
// around its centroid (spec.md §4.I step 1), the order the SEGS lump is
// expected to preserve within one subsector's run. It then rotates each
// subsector's list so the first seg is a real one and, when one exists,
// not self-referencing, and checks that consecutive seg endpoints meet
// within DistEpsilon, raising an "unclosed-subsector" diagnostic otherwise
// (spec.md §4.I, §8's closed-subsector invariant).
//
// rpt/levelIdx may be nil/0 when the caller doesn't want diagnostics
// (e.g. a unit test exercising geometry alone).
func (t *Tree) ClockwiseBspTree(rpt *report.Report, levelIdx int) {
	idx := 0
	for _, ss := range t.Subsectors {
		cx, cy := ss.CentreX, ss.CentreY
		sort.SliceStable(ss.Segs, func(i, j int) bool {
			return segAngleFrom(ss.Segs[i], cx, cy) > segAngleFrom(ss.Segs[j], cx, cy)
		})

		rotateToRealNonSelfRef(t, ss)
		checkClosed(t, ss, rpt, levelIdx)

		for _, s := range ss.Segs {
			s.GLIndex = idx
			idx++
		}
	}
}

// rotateToRealNonSelfRef rotates ss.Segs so the first entry is a real
// (non-miniseg) seg, preferring one that isn't self-referencing when both
// kinds are present, leaving the clockwise order otherwise intact.
func rotateToRealNonSelfRef(t *Tree, ss *Subsector) {
	n := len(ss.Segs)
	if n == 0 {
		return
	}

	best := -1
	for i, s := range ss.Segs {
		if s.IsMiniseg() {
			continue
		}
		if best == -1 {
			best = i
		}
		if !t.isSelfRef(s) {
			best = i
			break
		}
	}
	if best <= 0 {
		return
	}

	rotated := make([]*Seg, n)
	for i := 0; i < n; i++ {
		rotated[i] = ss.Segs[(best+i)%n]
	}
	ss.Segs = rotated
}

// checkClosed verifies that consecutive segs (wrapping around) share an
// endpoint within DistEpsilon and that every real seg of a
// non-coalescing sector in ss faces the same sector, raising a warning
// diagnostic for either failure instead of aborting the build (spec.md
// §7 classifies both as Warning, never Fatal).
func checkClosed(t *Tree, ss *Subsector, rpt *report.Report, levelIdx int) {
	if rpt == nil || len(ss.Segs) < 2 {
		return
	}

	for i, s := range ss.Segs {
		next := ss.Segs[(i+1)%len(ss.Segs)]
		ve := t.Vertex(s.EndV)
		vs := t.Vertex(next.StartV)
		if numeric.Dist(ve.X-vs.X, ve.Y-vs.Y) > numeric.DistEpsilon {
			rpt.Warn(levelIdx, "unclosed-subsector",
				"subsector %d: seg %d end does not meet seg %d start", ss.Index, i, (i+1)%len(ss.Segs))
			return
		}
	}

	sector := NoIndex
	for _, s := range ss.Segs {
		if s.IsMiniseg() || t.Level.Sectors[s.Sector].Coalesce {
			continue
		}
		if sector == NoIndex {
			sector = s.Sector
			continue
		}
		if s.Sector != sector {
			rpt.Warn(levelIdx, "sector-mismatch",
				"subsector %d: segs from sectors %d and %d share one leaf", ss.Index, sector, s.Sector)
			return
		}
	}
}

// segAngleFrom returns the angle of seg's midpoint as seen from (cx, cy),
// used purely as a clockwise sort key.
func segAngleFrom(s *Seg, cx, cy float64) float64 {
	mx, my := (s.PSX+s.PEX)/2, (s.PSY+s.PEY)/2

	return numeric.Angle(mx-cx, my-cy)
}

// NormaliseBspTree strips every miniseg from every subsector (they have
// no linedef to report in the legacy SEGS lump) along with any
// zero-length seg that slipped through, then re-indexes the survivors
// (spec.md §4.I step 2). GLSegs keeps the pre-strip list, including
// minisegs, for the GL-nodes writer. Returns the number of segs dropped.
func (t *Tree) NormaliseBspTree() int {
	dropped := 0
	idx := 0
	for _, ss := range t.Subsectors {
		ss.GLSegs = append([]*Seg(nil), ss.Segs...)

		kept := ss.Segs[:0]
		for _, s := range ss.Segs {
			if s.IsMiniseg() || s.Length < numeric.DistEpsilon {
				dropped++
				continue
			}
			if s.Partner != nil && s.Partner.Partner != s {
				s.Partner.Partner = s
			}
			kept = append(kept, s)
		}
		ss.Segs = kept
		for _, s := range ss.Segs {
			s.Index = idx
			idx++
		}
	}

	return dropped
}

// RoundOffBspTree fills in the integer-rounded twin of every vertex that
// doesn't have one yet (created by a split, rather than seeded from the
// original level), flags any seg whose rounded endpoints now coincide as
// Degenerate, and strips such segs from the legacy per-subsector lists —
// fabricating a replacement end vertex first when a subsector would
// otherwise lose every seg it has (spec.md §4.I step 3).
func (t *Tree) RoundOffBspTree() (degenerate int) {
	for i := range t.Vertices {
		v := &t.Vertices[i]
		if v.HasRound {
			continue
		}
		v.RoundX = int(math.Round(v.X))
		v.RoundY = int(math.Round(v.Y))
		v.HasRound = true
	}

	for _, s := range t.Segs {
		vs, ve := t.Vertex(s.StartV), t.Vertex(s.EndV)
		if vs.RoundX == ve.RoundX && vs.RoundY == ve.RoundY {
			s.Degenerate = true
			degenerate++
		}
	}

	for _, ss := range t.Subsectors {
		t.repairAllDegenerate(ss)
	}

	// Degenerate segs are useless in the integer-only SEGS lump (their
	// rounded endpoints coincide); drop them from the legacy lists and
	// renumber. The GL lists keep them: GL vertices carry the precise
	// fractional position, where the endpoints are still distinct.
	idx := 0
	for _, ss := range t.Subsectors {
		kept := ss.Segs[:0]
		for _, s := range ss.Segs {
			if s.Degenerate {
				continue
			}
			kept = append(kept, s)
		}
		ss.Segs = kept
		for _, s := range ss.Segs {
			s.Index = idx
			idx++
		}
	}

	return degenerate
}

// repairAllDegenerate checks whether every real seg in ss became
// degenerate after rounding; if so, it fabricates a replacement end
// vertex for the first seg (spec.md §4.I step 3's "fabricate a
// replacement end-vertex" case) so the subsector keeps at least one
// non-degenerate seg, per the invariant in spec.md §8.
func (t *Tree) repairAllDegenerate(ss *Subsector) {
	if len(ss.Segs) == 0 {
		return
	}
	for _, s := range ss.Segs {
		if !s.Degenerate {
			return
		}
	}

	s := ss.Segs[0]
	start := t.Vertex(s.StartV)
	newEnd := t.fabricateVertex(start, s.PDX, s.PDY)
	s.EndV = newEnd
	s.Degenerate = false
}

// fabricateVertex creates a new vertex by walking one map unit at a time
// along (dx, dy) from start, until its rounded position differs from
// start's rounded position, and returns its index.
//
// This mirrors the original NewVertexDegenerate's seed, including its
// "vert->y = start->x" quirk flagged as an open question in spec.md §9:
// the initial Y is seeded from start's X rather than start's own Y. The
// walk loop below adds each unit step onto that seed, so the returned Y
// keeps the seed's offset (start.X - start.Y): the vertex differs from
// start under integer rounding once the loop breaks, but it lies on the
// seg's line only when that offset is zero or the seg is vertical. The
// seed is preserved here rather than silently corrected.
func (t *Tree) fabricateVertex(start *level.Vertex, dx, dy float64) int {
	x, y := start.X, start.X

	length := numeric.Dist(dx, dy)
	var ux, uy float64
	if length > 0 {
		ux, uy = dx/length, dy/length
	}

	rx0, ry0 := start.RoundX, start.RoundY
	for i := 0; i < 1<<20; i++ {
		x += ux
		y += uy
		if int(math.Round(x)) != rx0 || int(math.Round(y)) != ry0 {
			break
		}
	}

	idx := t.AddVertex(x, y)
	v := t.Vertex(idx)
	v.RoundX = int(math.Round(x))
	v.RoundY = int(math.Round(y))
	v.HasRound = true

	return idx
}

// AssignNodeIndices numbers every Node in post order (both children
// before their parent), matching the NODES lump convention that the root
// node is the last, highest-indexed entry (spec.md §4.I step 4).
func (t *Tree) AssignNodeIndices() {
	idx := 0
	var walk func(n *Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		walk(n.RightNode)
		walk(n.LeftNode)
		n.Index = idx
		idx++
	}
	walk(t.Root)
}

// Finalize runs the three post-build sweeps and node numbering in the
// fixed order spec.md §4.I requires, returning the degenerate-seg count
// as a diagnostic. rpt/levelIdx may be nil/0; see ClockwiseBspTree.
func (t *Tree) Finalize(rpt *report.Report, levelIdx int) (degenerate int) {
	t.ClockwiseBspTree(rpt, levelIdx)
	t.NormaliseBspTree()
	degenerate = t.RoundOffBspTree()
	t.AssignNodeIndices()

	return degenerate
}

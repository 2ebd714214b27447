package bsp

import (
	"github.com/katalvlaran/bspc/numeric"
	"github.com/katalvlaran/bspc/report"
)

// minSegLength is the shortest gap between two merged intersections that
// is worth stitching into a miniseg pair; anything shorter is treated as
// the same point (spec.md §4.G).
const minSegLength = 0.2

// StitchMinisegs walks the sorted intersection list a partition produced
// (splitter.go's DivideSegs) and, for every gap between consecutive cut
// points where the same sector is open on both sides, appends a
// miniseg pair — one seg facing right, its partner facing left — to
// res.Right / res.Left so the two child seg sets close into valid
// subsector polygons.
//
// Gaps open on one side only (an OPEN/CLOSED or CLOSED/OPEN transition,
// meaning a sector isn't closed at this cut) and open gaps shorter than
// minSegLength raise a warning into rpt and are skipped — never an
// error, per spec.md §7. CLOSED/CLOSED gaps are plain void and skipped
// silently. The skipped count is returned for the caller's convenience.
// rpt/levelIdx may be nil/0.
func (t *Tree) StitchMinisegs(head *Intersection, candidate *Seg, res *splitResult, rpt *report.Report, levelIdx int) (skipped int) {
	points := mergeIntersections(head)
	defer t.freeIntersectionList(listFromSlice(points))

	for i := 0; i+1 < len(points); i++ {
		left, right := points[i], points[i+1]

		before, after := left.SectorAfter, right.SectorBefore
		if before == NoIndex && after == NoIndex {
			continue // void on both sides: nothing to stitch
		}
		if before == NoIndex || after == NoIndex || before != after {
			skipped++
			if rpt != nil {
				rpt.Warn(levelIdx, "unclosed-sector",
					"sector not closed at cut along partition of linedef %d (sectors %d/%d)",
					candidate.SourceLine, before, after)
			}
			continue
		}

		if right.Along-left.Along < minSegLength {
			skipped++
			if rpt != nil {
				rpt.Warn(levelIdx, "very-short-seg",
					"very short seg (%.3f units) skipped along partition of linedef %d",
					right.Along-left.Along, candidate.SourceLine)
			}
			continue
		}

		t.emitMinisegPair(left.Vertex, right.Vertex, before, candidate.SourceLine, res)
	}

	return skipped
}

// mergeIntersections collapses intersections within DistEpsilon of one
// another along the partition into a single point, keeping whichever
// SectorBefore/SectorAfter value is non-void when the two disagree. A
// self-referencing entry defers to a plain one (spec.md §4.G).
func mergeIntersections(head *Intersection) []*Intersection {
	var flat []*Intersection
	for it := head; it != nil; it = it.Next {
		flat = append(flat, it)
	}

	var merged []*Intersection
	for _, it := range flat {
		if n := len(merged); n > 0 && it.Along-merged[n-1].Along <= numeric.DistEpsilon {
			prev := merged[n-1]
			if prev.SelfRef && !it.SelfRef {
				prev.SelfRef = false
				prev.SectorBefore = it.SectorBefore
				prev.SectorAfter = it.SectorAfter
				continue
			}
			if prev.SectorAfter == NoIndex {
				prev.SectorAfter = it.SectorAfter
			}
			if prev.SectorBefore == NoIndex {
				prev.SectorBefore = it.SectorBefore
			}
			continue
		}
		merged = append(merged, it)
	}

	return merged
}

// listFromSlice re-links a slice of Intersections into a Next-chain so it
// can be returned to the tree's free list in one pass.
func listFromSlice(points []*Intersection) *Intersection {
	for i := range points {
		if i+1 < len(points) {
			points[i].Next = points[i+1]
		} else {
			points[i].Next = nil
		}
	}
	if len(points) == 0 {
		return nil
	}

	return points[0]
}

// emitMinisegPair creates two partnered, linedef-less segs between vA and
// vB facing opposite directions, both attributed to sector and sourceLine
// (spec.md §4.G: a miniseg's SourceLine is the partition's own owning
// linedef, so later collinearity checks treat it like any other seg on
// that line), and appends them to res.Right / res.Left.
func (t *Tree) emitMinisegPair(vA, vB, sector, sourceLine int, res *splitResult) {
	a, b := t.Vertex(vA), t.Vertex(vB)

	right := &Seg{StartV: vA, EndV: vB, Linedef: NoIndex, SourceLine: sourceLine, Sector: sector, SubsecIndex: NoIndex}
	newSegGeometry(right, a.X, a.Y, b.X, b.Y)
	t.NewSeg(right)

	left := &Seg{StartV: vB, EndV: vA, Linedef: NoIndex, SourceLine: sourceLine, Sector: sector, SubsecIndex: NoIndex}
	newSegGeometry(left, b.X, b.Y, a.X, a.Y)
	t.NewSeg(left)

	right.Partner = left
	left.Partner = right

	res.Right = append(res.Right, right)
	res.Left = append(res.Left, left)
}

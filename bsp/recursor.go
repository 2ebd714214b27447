package bsp

import (
	"math"

	"github.com/katalvlaran/bspc/level"
	"github.com/katalvlaran/bspc/numeric"
	"github.com/katalvlaran/bspc/report"
)

// BuildTree implements spec.md §4.H end to end for one level: seed a seg
// for each sidedef, recursively partition them with the picker and
// splitter, and stitch the result into a Tree whose Root (or, for a
// level with only one convex region, RootSub) is ready for finalize.go.
//
// stale may carry the root of an original NODES lump (fast mode); it is
// consulted only while the working seg set stays at or above
// SegReuseThreshold real segs. rpt/levelIdx may be nil/0 when the caller
// doesn't accumulate diagnostics.
func BuildTree(ctx *Context, t *Tree, stale *StaleNode, rpt *report.Report, levelIdx int) error {
	if ctx.Cancelled() {
		return ErrCancelled
	}

	initial := t.seedSegs()
	if len(initial) == 0 {
		return ErrEmptySegSet
	}

	minX, minY, maxX, maxY := t.Level.Bounds()
	root := NewSuperblockRoot(minX, minY, maxX, maxY)
	for _, s := range initial {
		t.Insert(root, s)
	}

	node, sub, err := t.buildNode(ctx, root, stale, rpt, levelIdx)
	if err != nil {
		return err
	}
	t.Root = node
	t.RootSub = sub

	return nil
}

// seedSegs creates one Seg per sidedef a linedef carries: always a front
// seg, plus a back seg (partnered with the front) when the linedef is
// two-sided (spec.md §3, §4.H step 1). Zero-length lines and lines marked
// as overlapping another are skipped — the canonical line already
// produces the segs for that geometry (spec.md §4.C step 7).
func (t *Tree) seedSegs() []*Seg {
	var out []*Seg
	for i := range t.Level.Linedefs {
		ld := &t.Level.Linedefs[i]
		if ld.ZeroLength || ld.OverlapOf != level.NoIndex {
			continue
		}

		vs, ve := t.Vertex(ld.Start), t.Vertex(ld.End)

		front := &Seg{
			StartV: ld.Start, EndV: ld.End,
			Linedef: i, SourceLine: i,
			Sector:  t.Level.Sidedefs[ld.FrontSide].Sector,
			Side:    0,
			Precious: ld.Precious,
		}
		newSegGeometry(front, vs.X, vs.Y, ve.X, ve.Y)
		t.NewSeg(front)
		out = append(out, front)

		if ld.IsOneSided() {
			continue
		}

		back := &Seg{
			StartV: ld.End, EndV: ld.Start,
			Linedef: i, SourceLine: i,
			Sector:  t.Level.Sidedefs[ld.BackSide].Sector,
			Side:    1,
			Precious: ld.Precious,
		}
		newSegGeometry(back, ve.X, ve.Y, vs.X, vs.Y)
		t.NewSeg(back)

		front.Partner = back
		back.Partner = front
		out = append(out, back)
	}

	return out
}

// buildNode recursively partitions the segs reachable from sb, returning
// either a Node (internal split) or a Subsector (convex leaf), never
// both. Ownership of sb is consumed: on a split, sb itself is returned to
// the tree's free list once its segs have been redistributed to two
// fresh child superblocks.
func (t *Tree) buildNode(ctx *Context, sb *Superblock, stale *StaleNode, rpt *report.Report, levelIdx int) (*Node, *Subsector, error) {
	if ctx.Cancelled() {
		return nil, nil, ErrCancelled
	}

	segs := sb.AllSegs()

	var best *Seg
	var staleRight, staleLeft *StaleNode
	if stale != nil && sb.RealNum >= SegReuseThreshold {
		if s := t.reuseStalePartition(ctx, sb, segs, stale); s != nil {
			best = s
			staleRight, staleLeft = stale.Right, stale.Left
		}
	}
	if best == nil {
		best = t.pickPartition(ctx, sb, segs)
	}
	if ctx.Cancelled() {
		return nil, nil, ErrCancelled
	}
	if best == nil {
		return nil, t.buildSubsector(segs), nil
	}

	res := t.DivideSegs(segs, best)
	t.StitchMinisegs(res.Intersections, best, &res, rpt, levelIdx)

	t.FreeSuperblock(sb)

	rightSB := t.buildChildSuperblock(res.Right)
	leftSB := t.buildChildSuperblock(res.Left)

	rightNode, rightSub, err := t.buildNode(ctx, rightSB, staleRight, rpt, levelIdx)
	if err != nil {
		return nil, nil, err
	}
	leftNode, leftSub, err := t.buildNode(ctx, leftSB, staleLeft, rpt, levelIdx)
	if err != nil {
		return nil, nil, err
	}

	n := t.NewNode()
	t.setPartitionLine(n, best, rpt, levelIdx)
	n.RightNode, n.RightSub = rightNode, rightSub
	n.LeftNode, n.LeftSub = leftNode, leftSub
	n.RightBox = boundingBox(res.Right)
	n.LeftBox = boundingBox(res.Left)

	return n, nil, nil
}

// setPartitionLine fills in n's partition origin and delta from the
// chosen seg's linedef, in the seg's own orientation: a side-0 seg uses
// start→end, a side-1 seg the reverse (spec.md §4.H step 3). A partition
// whose linedef spans 30000 or more map units sets TooLong (the writer
// halves the emitted delta); when, additionally, both deltas are non-zero
// and at least one of them is odd, the halving loses a half unit and a
// diagnostic is raised.
func (t *Tree) setPartitionLine(n *Node, best *Seg, rpt *report.Report, levelIdx int) {
	ld := &t.Level.Linedefs[best.Linedef]
	vs, ve := t.Vertex(ld.Start), t.Vertex(ld.End)
	if best.Side == 0 {
		n.X, n.Y = vs.X, vs.Y
		n.DX, n.DY = ve.X-vs.X, ve.Y-vs.Y
	} else {
		n.X, n.Y = ve.X, ve.Y
		n.DX, n.DY = vs.X-ve.X, vs.Y-ve.Y
	}

	if numeric.Dist(n.DX, n.DY) < TooLongPartition {
		return
	}
	n.TooLong = true
	if n.DX != 0 && n.DY != 0 && (int(n.DX)%2 != 0 || int(n.DY)%2 != 0) && rpt != nil {
		rpt.Warn(levelIdx, "node-accuracy",
			"loss of accuracy on VERY long node: (%.0f,%.0f) delta (%.0f,%.0f)", n.X, n.Y, n.DX, n.DY)
	}
}

// buildSubsector allocates a leaf Subsector owning every seg in segs,
// stamping each seg's SubsecIndex.
func (t *Tree) buildSubsector(segs []*Seg) *Subsector {
	ss := t.NewSubsector()
	ss.Segs = segs
	for _, s := range segs {
		s.SubsecIndex = ss.Index
	}

	var sx, sy float64
	for _, s := range segs {
		sx += s.PSX
		sy += s.PSY
	}
	if n := len(segs); n > 0 {
		ss.CentreX, ss.CentreY = sx/float64(n), sy/float64(n)
	}

	return ss
}

// pickPartition evaluates every non-miniseg in segs as a candidate
// partition and returns whichever scores lowest, or nil if none splits
// the set at all (every seg is collinear, meaning segs is already
// convex and belongs in a single Subsector). It also returns nil as soon
// as cancellation is observed (spec.md §4.E); the caller re-checks the
// flag to tell the two cases apart.
func (t *Tree) pickPartition(ctx *Context, sb *Superblock, segs []*Seg) *Seg {
	var best *Seg
	bestCost := math.Inf(1)

	for _, seg := range segs {
		if ctx.Cancelled() {
			return nil
		}
		if seg.IsMiniseg() {
			continue
		}
		cost, ok := EvaluatePartition(sb, seg, ctx, bestCost)
		if !ok {
			continue
		}
		if best == nil || cost < bestCost {
			bestCost = cost
			best = seg
		}
	}

	return best
}

// buildChildSuperblock sizes a fresh superblock root tightly around segs'
// bounding box and inserts every one of them.
func (t *Tree) buildChildSuperblock(segs []*Seg) *Superblock {
	minX, minY, maxX, maxY := boundsOf(segs)
	sb := NewSuperblockRoot(minX, minY, maxX, maxY)
	for _, s := range segs {
		t.Insert(sb, s)
	}

	return sb
}

// boundsOf returns the tight float bounding box of every seg's endpoints.
func boundsOf(segs []*Seg) (minX, minY, maxX, maxY float64) {
	if len(segs) == 0 {
		return 0, 0, 0, 0
	}
	minX, minY = segs[0].PSX, segs[0].PSY
	maxX, maxY = minX, minY
	for _, s := range segs {
		for _, p := range [2][2]float64{{s.PSX, s.PSY}, {s.PEX, s.PEY}} {
			if p[0] < minX {
				minX = p[0]
			}
			if p[0] > maxX {
				maxX = p[0]
			}
			if p[1] < minY {
				minY = p[1]
			}
			if p[1] > maxY {
				maxY = p[1]
			}
		}
	}

	return minX, minY, maxX, maxY
}

// boundingBox returns segs' tight bounding box rounded outward to
// integer map units, the form the NODES lump stores (spec.md §6).
func boundingBox(segs []*Seg) Box {
	minX, minY, maxX, maxY := boundsOf(segs)

	return Box{
		MinX: int(math.Floor(minX)),
		MinY: int(math.Floor(minY)),
		MaxX: int(math.Ceil(maxX)),
		MaxY: int(math.Ceil(maxY)),
	}
}

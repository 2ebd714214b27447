package bsp

import "github.com/katalvlaran/bspc/numeric"

// splitResult is the outcome of dividing one seg set around a chosen
// partition: the segs assigned to each child, plus the sorted
// intersection list the miniseg stitcher (miniseg.go) consumes.
type splitResult struct {
	Right, Left  []*Seg
	Intersections *Intersection // sorted by Along, ascending
}

// DivideSegs implements spec.md §4.F: classify every seg in segs against
// part (the geometry of candidate), truncating and re-pairing partners on
// every crossing, and recording an Intersection for every point where a
// seg lies on or crosses the partition line. At most one intersection is
// recorded per vertex.
//
// A crossed seg's partner is always split at the identical cut vertex in
// the same step, even when the partner was routed to a sibling branch by
// an earlier (collinear) partition — in that case the new partner half is
// spliced directly into the partner's owning superblock so the sibling
// branch's traversal picks it up, or, when that branch has already been
// built into a subsector, inserted right after the partner in the
// subsector's seg list.
func (t *Tree) DivideSegs(segs []*Seg, candidate *Seg) splitResult {
	part := candidate.Partition()
	res := splitResult{}

	inSet := make(map[*Seg]bool, len(segs))
	for _, s := range segs {
		inSet[s] = true
	}
	visited := make(map[*Seg]bool, len(segs))

	var intersections []*Intersection
	recorded := make(map[int]bool)
	record := func(vertex int, selfRef bool) {
		if recorded[vertex] {
			return
		}
		recorded[vertex] = true
		it := t.allocIntersection()
		v := t.Vertex(vertex)
		it.Vertex = vertex
		it.Along = part.ParallelDist(v.X, v.Y)
		it.SelfRef = selfRef
		it.SectorBefore = t.openAt(vertex, -part.DX, -part.DY)
		it.SectorAfter = t.openAt(vertex, part.DX, part.DY)
		intersections = append(intersections, it)
	}

	for _, s := range segs {
		if visited[s] {
			continue
		}
		visited[s] = true
		t.divideOne(s, candidate, part, &res, inSet, visited, record)
	}

	res.Intersections = sortIntersections(intersections)

	return res
}

// divideOne classifies a single seg against part, appending the
// resulting piece(s) to res.Right / res.Left and recording intersections
// via record. A crossing also splits the seg's partner (see crossSeg).
func (t *Tree) divideOne(s, candidate *Seg, part numeric.Partition, res *splitResult, inSet, visited map[*Seg]bool, record func(vertex int, selfRef bool)) {
	var a, b float64
	if s.SourceLine == candidate.SourceLine && s.SourceLine != NoIndex {
		a, b = 0, 0
	} else {
		a = part.PerpDist(s.PSX, s.PSY)
		b = part.PerpDist(s.PEX, s.PEY)
	}

	switch {
	case numeric.AbsFloat(a) <= numeric.DistEpsilon && numeric.AbsFloat(b) <= numeric.DistEpsilon:
		// Collinear: the seg runs along the cut. Both endpoints delimit
		// the stretch it seals; the openness lookup in record sees the
		// wall lying in the partition direction there and reports the
		// sealed side as closed.
		record(s.StartV, t.isSelfRef(s))
		record(s.EndV, t.isSelfRef(s))
		dot := part.DX*s.PDX + part.DY*s.PDY
		if dot >= 0 {
			res.Right = append(res.Right, s)
		} else {
			res.Left = append(res.Left, s)
		}

	case a > -numeric.DistEpsilon && b > -numeric.DistEpsilon:
		res.Right = append(res.Right, s)
		t.recordTouch(s, a, b, record)

	case a < numeric.DistEpsilon && b < numeric.DistEpsilon:
		res.Left = append(res.Left, s)
		t.recordTouch(s, a, b, record)

	default:
		t.crossSeg(s, a, b, part, res, inSet, visited, record)
	}
}

// recordTouch records an intersection for whichever endpoint of s lies
// within DistEpsilon of the partition, for a seg that was classified
// strictly to one side (not crossing).
func (t *Tree) recordTouch(s *Seg, a, b float64, record func(vertex int, selfRef bool)) {
	if numeric.AbsFloat(a) <= numeric.DistEpsilon {
		record(s.StartV, t.isSelfRef(s))
	}
	if numeric.AbsFloat(b) <= numeric.DistEpsilon {
		record(s.EndV, t.isSelfRef(s))
	}
}

// crossSeg truncates s at its crossing point with part, constructs the
// tail half, and — if s has a partner — performs the identical split on
// the partner using the swapped (b, a) perpendicular distances (exact by
// construction: the partner's endpoints are s's endpoints in reverse
// order). The four halves re-pair so each seg's partner remains its
// exact reverse: s with the partner's tail, s's tail with the truncated
// partner.
func (t *Tree) crossSeg(s *Seg, a, b float64, part numeric.Partition, res *splitResult, inSet, visited map[*Seg]bool, record func(vertex int, selfRef bool)) {
	cut := intersectionPoint(s, a, b, part)
	vIdx := t.AddVertex(cut[0], cut[1])

	backSector := NoIndex
	if s.Partner != nil {
		backSector = s.Partner.Sector
	}
	t.addSplitTips(vIdx, s.Angle, s.Sector, backSector)

	sTail := t.truncateAt(s, vIdx)
	assignSide(res, s, a)
	assignSide(res, sTail, b)
	record(vIdx, t.isSelfRef(s))

	p := s.Partner
	if p == nil {
		return
	}

	pBlock := p.Block
	pTail := t.truncateAt(p, vIdx)

	// s = [start, cut], pTail = [cut, start]; sTail = [cut, end],
	// p (truncated) = [end, cut].
	s.Partner, pTail.Partner = pTail, s
	sTail.Partner, p.Partner = p, sTail

	if inSet[p] {
		visited[p] = true
		assignSide(res, p, b)
		assignSide(res, pTail, a)

		return
	}

	// The partner's branch has already been built into a subsector: insert
	// its new half right after it in that subsector's seg list.
	if p.SubsecIndex != NoIndex {
		ss := t.Subsectors[p.SubsecIndex]
		for i, q := range ss.Segs {
			if q == p {
				ss.Segs = append(ss.Segs[:i+1], append([]*Seg{pTail}, ss.Segs[i+1:]...)...)
				break
			}
		}
		pTail.SubsecIndex = p.SubsecIndex
		p.Block = pBlock

		return
	}

	// The partner was routed to a sibling branch by an earlier collinear
	// partition: splice its new half into its owning superblock so that
	// branch's traversal encounters it.
	if pBlock != nil {
		p.Block = pBlock
		pTail.Block = pBlock
		pBlock.Segs = append(pBlock.Segs, pTail)
		pBlock.incrementCounts(pTail.IsMiniseg())
	}
}

// assignSide appends seg to res.Right if perp >= 0, else res.Left.
func assignSide(res *splitResult, seg *Seg, perp float64) {
	if perp >= 0 {
		res.Right = append(res.Right, seg)
	} else {
		res.Left = append(res.Left, seg)
	}
}

// truncateAt cuts s at vIdx: s keeps its original start and becomes the
// near half ending at vIdx; a new Seg is returned holding the tail half,
// from vIdx to s's original end, sharing every other field (sector,
// linedef, side, source line) with s.
func (t *Tree) truncateAt(s *Seg, vIdx int) *Seg {
	tail := &Seg{
		EndV:       s.EndV,
		Side:       s.Side,
		Linedef:    s.Linedef,
		SourceLine: s.SourceLine,
		Sector:     s.Sector,
		Precious:   s.Precious,
	}
	tail.StartV = vIdx
	v0 := t.Vertex(vIdx)
	vEnd := t.Vertex(s.EndV)
	newSegGeometry(tail, v0.X, v0.Y, vEnd.X, vEnd.Y)
	t.NewSeg(tail)

	v1 := t.Vertex(vIdx)
	vStart := t.Vertex(s.StartV)
	s.EndV = vIdx
	newSegGeometry(s, vStart.X, vStart.Y, v1.X, v1.Y)
	s.Block = nil

	return tail
}

// isSelfRef reports whether s belongs to a self-referencing linedef
// (spec.md §3's SelfRef marker, set by package analyse).
func (t *Tree) isSelfRef(s *Seg) bool {
	if s.Linedef == NoIndex {
		return false
	}

	return t.Level.Linedefs[s.Linedef].SelfRef
}

// intersectionPoint computes the exact point where s crosses part using
// the perp_c/(perp_c - perp_d) ratio along s; for horizontal/vertical
// partitions the fast paths take the partition's own Y (or X) exactly
// and interpolate only the other coordinate (spec.md §4.F).
func intersectionPoint(s *Seg, a, b float64, part numeric.Partition) [2]float64 {
	if part.DY == 0 {
		// Horizontal partition: the crossing has the partition's Y and an
		// X interpolated along s.
		t := a / (a - b)

		return [2]float64{s.PSX + t*s.PDX, part.Y}
	}
	if part.DX == 0 {
		t := a / (a - b)

		return [2]float64{part.X, s.PSY + t*s.PDY}
	}

	t := a / (a - b)

	return [2]float64{s.PSX + t*s.PDX, s.PSY + t*s.PDY}
}

// sortIntersections returns the Next-linked list of its (a fresh slice's
// contents) sorted by ascending Along; merging near-duplicates is the
// miniseg stitcher's pre-pass (spec.md §4.G).
func sortIntersections(all []*Intersection) *Intersection {
	// Insertion sort: intersection counts per partition are small.
	for i := 1; i < len(all); i++ {
		for j := i; j > 0 && all[j].Along < all[j-1].Along; j-- {
			all[j], all[j-1] = all[j-1], all[j]
		}
	}
	for i := range all {
		if i+1 < len(all) {
			all[i].Next = all[i+1]
		} else {
			all[i].Next = nil
		}
	}
	if len(all) == 0 {
		return nil
	}

	return all[0]
}

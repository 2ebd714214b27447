package bsp

import "github.com/katalvlaran/bspc/numeric"

// SuperblockLeafSize is the side length below which a Superblock stops
// subdividing and simply holds every seg assigned to it directly
// (spec.md §4.D: leaves are <=256x256 units).
const SuperblockLeafSize = 256.0

// Superblock is an axis-aligned rectangle, recursively halved along its
// longer axis until it reaches SuperblockLeafSize, used purely to
// accelerate the partition picker's per-candidate scan (package D in
// spec.md §2). A seg is attached to the shallowest block whose midline it
// straddles, or pushed down to a child when both its endpoints lie
// entirely within that child's half.
type Superblock struct {
	Bounds numeric.Box

	Parent      *Superblock
	Children    [2]*Superblock
	Segs        []*Seg
	RealNum     int // real segs in this block's entire subtree
	MiniNum     int // minisegs in this block's entire subtree

	next *Superblock // quick-alloc free-list link
}

// NewSuperblockRoot builds the root rectangle for a level: the map bounds
// rounded up to the next power-of-two multiple of 128 units (spec.md
// §4.D).
func NewSuperblockRoot(minX, minY, maxX, maxY float64) *Superblock {
	width := maxX - minX
	height := maxY - minY
	side := numeric.RoundPow2Up128(width)
	if h := numeric.RoundPow2Up128(height); h > side {
		side = h
	}

	return &Superblock{Bounds: numeric.Box{
		MinX: minX, MinY: minY,
		MaxX: minX + side, MaxY: minY + side,
	}}
}

// allocSuperblock returns a Superblock from t's quick-alloc free list, or a fresh
// one if the list is empty (spec.md §9's free-list-per-driver note).
func (t *Tree) allocSuperblock(bounds numeric.Box) *Superblock {
	if sb := t.freeSuperblocks; sb != nil {
		t.freeSuperblocks = sb.next
		*sb = Superblock{Bounds: bounds}

		return sb
	}

	return &Superblock{Bounds: bounds}
}

// FreeSuperblock returns sb and every descendant to t's quick-alloc free
// list, clearing their contents so the next alloc starts clean.
func (t *Tree) FreeSuperblock(sb *Superblock) {
	if sb == nil {
		return
	}
	for _, c := range sb.Children {
		t.FreeSuperblock(c)
	}
	sb.Children = [2]*Superblock{}
	sb.Segs = nil
	sb.Parent = nil
	sb.RealNum, sb.MiniNum = 0, 0
	sb.next = t.freeSuperblocks
	t.freeSuperblocks = sb
}

// width and height report this block's rectangle extent.
func (sb *Superblock) width() float64  { return sb.Bounds.MaxX - sb.Bounds.MinX }
func (sb *Superblock) height() float64 { return sb.Bounds.MaxY - sb.Bounds.MinY }

// subdivide splits sb into two children along its longer axis, halving
// it. No-op if sb is already at or below the leaf size on both axes.
func (t *Tree) subdivide(sb *Superblock) {
	if sb.width() <= SuperblockLeafSize && sb.height() <= SuperblockLeafSize {
		return
	}

	if sb.width() >= sb.height() {
		mid := (sb.Bounds.MinX + sb.Bounds.MaxX) / 2
		sb.Children[0] = t.allocSuperblock(numeric.Box{MinX: sb.Bounds.MinX, MinY: sb.Bounds.MinY, MaxX: mid, MaxY: sb.Bounds.MaxY})
		sb.Children[1] = t.allocSuperblock(numeric.Box{MinX: mid, MinY: sb.Bounds.MinY, MaxX: sb.Bounds.MaxX, MaxY: sb.Bounds.MaxY})
	} else {
		mid := (sb.Bounds.MinY + sb.Bounds.MaxY) / 2
		sb.Children[0] = t.allocSuperblock(numeric.Box{MinX: sb.Bounds.MinX, MinY: sb.Bounds.MinY, MaxX: sb.Bounds.MaxX, MaxY: mid})
		sb.Children[1] = t.allocSuperblock(numeric.Box{MinX: sb.Bounds.MinX, MinY: mid, MaxX: sb.Bounds.MaxX, MaxY: sb.Bounds.MaxY})
	}
	sb.Children[0].Parent = sb
	sb.Children[1].Parent = sb
}

// childFor reports which child (0 or 1) entirely contains point (x, y)
// along sb's split axis, or -1 if sb has no children.
func (sb *Superblock) childFor(x, y float64) int {
	if sb.Children[0] == nil {
		return -1
	}
	c0 := sb.Children[0]
	if sb.width() >= sb.height() || (sb.width() == sb.height() && c0.Bounds.MaxX < sb.Bounds.MaxX) {
		mid := c0.Bounds.MaxX
		if x < mid {
			return 0
		}
		if x > mid {
			return 1
		}

		return -1
	}
	mid := c0.Bounds.MaxY
	if y < mid {
		return 0
	}
	if y > mid {
		return 1
	}

	return -1
}

// Insert adds seg to the tree rooted at sb, descending as far as both of
// seg's endpoints agree on a single child, then attaching it at whichever
// block that search stops at (spec.md §4.D). The counts on that block and
// every ancestor are incremented by incrementCounts; callers normally rely on
// Insert to do that bookkeeping rather than calling it directly.
func (t *Tree) Insert(sb *Superblock, seg *Seg) {
	cur := sb
	for {
		if cur.Children[0] == nil {
			t.subdivide(cur)
			if cur.Children[0] == nil {
				break // at leaf size; stop descending
			}
		}

		cs := cur.childFor(seg.PSX, seg.PSY)
		ce := cur.childFor(seg.PEX, seg.PEY)
		if cs == -1 || ce == -1 || cs != ce {
			break // straddles the midline (or sits on it): attach here
		}
		cur = cur.Children[cs]
	}

	seg.Block = cur
	cur.Segs = append(cur.Segs, seg)
	cur.incrementCounts(seg.IsMiniseg())
}

// incrementCounts bumps sb's own real/mini counters and every ancestor's,
// in O(depth) — the "owning block's counts and all ancestors'" spec.md
// §4.D requires whenever a seg is attached or split in place.
func (sb *Superblock) incrementCounts(isMini bool) {
	for b := sb; b != nil; b = b.Parent {
		if isMini {
			b.MiniNum++
		} else {
			b.RealNum++
		}
	}
}

// Remove detaches seg from its owning block's Seg list without touching
// the counts. Nothing in this package calls it: the splitter truncates a
// crossed seg in place and rebuilds the child superblocks via Insert.
func (sb *Superblock) Remove(seg *Seg) {
	for i, s := range sb.Segs {
		if s == seg {
			sb.Segs = append(sb.Segs[:i], sb.Segs[i+1:]...)
			return
		}
	}
}

// Walk visits sb and every descendant, shallowest first, calling visit
// for each. Used by AllSegs for bulk seg collection; the picker's
// whole-block short-circuit recurses on its own (evaluateBlock).
func (sb *Superblock) Walk(visit func(*Superblock)) {
	if sb == nil {
		return
	}
	visit(sb)
	sb.Walk2(visit)
}

// Walk2 visits only sb's children and their descendants, without
// revisiting sb itself (used internally by Walk).
func (sb *Superblock) Walk2(visit func(*Superblock)) {
	for _, c := range sb.Children {
		c.Walk(visit)
	}
}

// AllSegs collects every seg owned anywhere in sb's subtree.
func (sb *Superblock) AllSegs() []*Seg {
	var out []*Seg
	sb.Walk(func(b *Superblock) { out = append(out, b.Segs...) })

	return out
}

// Total returns the combined real+mini seg count in sb's subtree.
func (sb *Superblock) Total() int { return sb.RealNum + sb.MiniNum }

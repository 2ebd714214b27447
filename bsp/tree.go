package bsp

import (
	"github.com/katalvlaran/bspc/level"
	"github.com/katalvlaran/bspc/numeric"
)

// Subsector is a convex leaf region: a list of segs, ultimately reordered
// clockwise around their centroid by the finaliser, plus the leaf's
// stable index and an approximate centre used for that reordering.
type Subsector struct {
	Segs       []*Seg
	Index      int
	CentreX    float64
	CentreY    float64

	// GLSegs preserves the clockwise-ordered seg list including minisegs,
	// stashed by NormaliseBspTree before it strips minisegs from Segs for
	// the legacy NODES/SEGS/SSECTORS output. Package wad's GL-nodes writer
	// reads this instead of Segs.
	GLSegs []*Seg
}

// Node is one BSP split: the partition line's origin/delta (taken from
// the chosen seg's linedef, in the seg's own orientation), each child's
// bounding box, and the two children, exactly one of which is set per
// side.
type Node struct {
	X, Y   float64
	DX, DY float64

	RightBox, LeftBox Box

	RightNode *Node
	RightSub  *Subsector
	LeftNode  *Node
	LeftSub   *Subsector

	// TooLong is set when the originating linedef's length is >= 30000
	// map units (spec.md §4.H step 3); the writer (package wad) halves
	// the emitted dx/dy for such nodes.
	TooLong bool

	// Index is assigned in post-order by AssignNodeIndices (run from
	// Finalize) so every child index is less than its parent's.
	Index int
}

// Box is an axis-aligned bounding box using int16-range map coordinates,
// matching the NODES lump's (maxy, miny, minx, maxx) fields.
type Box struct {
	MinX, MinY, MaxX, MaxY int
}

// Tree is the output-side arena for one level's BSP build: the working
// vertex set (seeded from level.Level's surviving vertices, then grown by
// every seg split), every Seg ever created, and the finished Subsectors
// and Nodes. A Tree is owned exclusively by the driver for the lifetime
// of one level's compilation.
type Tree struct {
	Level *level.Level

	Vertices []level.Vertex
	Segs     []*Seg

	Subsectors []*Subsector
	Nodes      []*Node

	Root *Node
	RootSub *Subsector

	freeIntersections *Intersection
	freeSuperblocks   *Superblock

	// tips holds, per vertex, the flattened angle-sorted wall-tip fan the
	// splitter's sector-openness lookups walk: seeded from the analyser's
	// rings for the level's original vertices, extended by addSplitTips
	// for every split-created vertex.
	tips [][]vertexTip
}

// vertexTip is one wall incidence at a vertex: the wall's outbound angle
// and the sectors open to its left and right as seen looking outward
// (NoIndex for void).
type vertexTip struct {
	angle       float64
	left, right int
}

// NewTree seeds a Tree's vertex arena from lv's surviving vertices and
// flattens their wall-tip rings into the per-vertex fan table the
// splitter's openness lookups use.
func NewTree(lv *level.Level) *Tree {
	t := &Tree{Level: lv}
	t.Vertices = make([]level.Vertex, len(lv.Vertices))
	copy(t.Vertices, lv.Vertices)
	for i := range t.Vertices {
		t.Vertices[i].RoundX = int(t.Vertices[i].X)
		t.Vertices[i].RoundY = int(t.Vertices[i].Y)
		t.Vertices[i].HasRound = true
	}

	t.tips = make([][]vertexTip, len(lv.Vertices))
	for i := range lv.Vertices {
		head := lv.Vertices[i].Tips
		if head == level.NoIndex {
			continue
		}
		cur := head
		for {
			wt := lv.WallTip(cur)
			t.tips[i] = append(t.tips[i], vertexTip{wt.Angle, wt.Left, wt.Right})
			cur = wt.Next
			if cur == head {
				break
			}
		}
	}

	return t
}

// AddVertex appends a newly split point to the tree's vertex arena and
// returns its index. The rounded twin is left unset (HasRound=false)
// until the round-off finalisation sweep fills it in.
func (t *Tree) AddVertex(x, y float64) int {
	idx := len(t.Vertices)
	t.Vertices = append(t.Vertices, level.Vertex{X: x, Y: y, Index: idx, Equiv: level.NoIndex, Tips: level.NoIndex})
	t.tips = append(t.tips, nil)

	return idx
}

// addSplitTips installs the two wall tips a split point has: the crossed
// seg's line continues through it in both directions, with front on the
// right of the outbound angle and back on its left (same convention the
// analyser's fan uses).
func (t *Tree) addSplitTips(vertex int, angle float64, front, back int) {
	reverse := angle + 180
	if reverse >= 360 {
		reverse -= 360
	}
	t.insertTip(vertex, vertexTip{angle, back, front})
	t.insertTip(vertex, vertexTip{reverse, front, back})
}

func (t *Tree) insertTip(vertex int, tip vertexTip) {
	fan := t.tips[vertex]
	at := len(fan)
	for i, existing := range fan {
		if existing.angle >= tip.angle {
			at = i
			break
		}
	}
	fan = append(fan, vertexTip{})
	copy(fan[at+1:], fan[at:])
	fan[at] = tip
	t.tips[vertex] = fan
}

// openAt reports the sector open at vertex in direction (dx, dy), or
// NoIndex when that direction is sealed: either a wall runs exactly that
// way, or the fan's enclosing pair of tips has void between them. This is
// the lookup the splitter uses to decide which stretches of a partition
// line need minisegs (spec.md §4.G).
func (t *Tree) openAt(vertex int, dx, dy float64) int {
	fan := t.tips[vertex]
	if len(fan) == 0 {
		return NoIndex
	}

	ang := numeric.Angle(dx, dy)
	for _, tip := range fan {
		if numeric.AbsFloat(numeric.AngleDiff(tip.angle, ang)) < numeric.AngEpsilon {
			return NoIndex // a wall lies exactly in this direction
		}
	}

	// The fan is sorted ascending; the first tip past our angle has us on
	// its right side. Wrapping past the largest angle lands on its left.
	for _, tip := range fan {
		if tip.angle > ang {
			return tip.right
		}
	}

	return fan[len(fan)-1].left
}

// Vertex returns the vertex at idx. Callers within this package trust
// idx is valid (it always originates from AddVertex or the seeded level
// vertices); out-of-range access panics rather than threading an error
// through every geometry call, matching spec.md §7's Fatal classification
// for arena misuse.
func (t *Tree) Vertex(idx int) *level.Vertex {
	return &t.Vertices[idx]
}

// NewSeg appends seg to the tree's seg arena and returns it. The arena
// entry exists purely for bulk iteration/diagnostics; ownership and
// traversal happen through Superblock membership and Partner/Next links.
func (t *Tree) NewSeg(seg *Seg) *Seg {
	seg.SubsecIndex = NoIndex
	seg.Index = NoIndex
	seg.GLIndex = NoIndex
	t.Segs = append(t.Segs, seg)

	return seg
}

// NewSubsector allocates a Subsector with a stable index and appends it to
// the tree.
func (t *Tree) NewSubsector() *Subsector {
	ss := &Subsector{Index: len(t.Subsectors)}
	t.Subsectors = append(t.Subsectors, ss)

	return ss
}

// NewNode allocates a Node and appends it to the tree. Index is filled in
// later by the post-order numbering pass.
func (t *Tree) NewNode() *Node {
	n := &Node{Index: NoIndex}
	t.Nodes = append(t.Nodes, n)

	return n
}

// SnapshotVertices returns the tree's full vertex set in output form:
// seeded level vertices unchanged, split-created vertices snapped to
// their integer-rounded twin. This is the vertex array the VERTEXES lump
// is written from once a build has run, so SEGS records can reference
// split points by index (spec.md §3's rounded-twin note; the precise
// positions still go to GL-VERT).
func (t *Tree) SnapshotVertices() []level.Vertex {
	out := make([]level.Vertex, len(t.Vertices))
	copy(out, t.Vertices)
	for i := t.Level.NumNormalVert; i < len(out); i++ {
		out[i].X = float64(out[i].RoundX)
		out[i].Y = float64(out[i].RoundY)
	}

	return out
}

// Height returns the number of nodes on the longest root-to-leaf path,
// zero for a tree whose root is already a convex leaf.
func (t *Tree) Height() int {
	var walk func(n *Node) int
	walk = func(n *Node) int {
		if n == nil {
			return 0
		}
		r, l := walk(n.RightNode), walk(n.LeftNode)
		if l > r {
			r = l
		}

		return r + 1
	}

	return walk(t.Root)
}

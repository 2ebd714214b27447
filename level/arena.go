package level

// Level is the per-map arena: every Vertex, Linedef, Sidedef, Sector,
// Thing, and WallTip belonging to one level lives in one of these slices,
// addressed everywhere else by stable index. A Level is owned exclusively
// by the driver (package driver) for the duration of one level's
// compilation; nothing about it is safe for concurrent mutation, matching
// spec.md §5's single-threaded cooperative model.
type Level struct {
	Vertices []Vertex
	Linedefs []Linedef
	Sidedefs []Sidedef
	Sectors  []Sector
	Things   []Thing
	WallTips []WallTip
	Polyobjs []Polyobj

	// Hexen selects the Hexen wire formats for THINGS/LINEDEFS and enables
	// polyobject grouping during analysis.
	Hexen bool

	// NumNormalVert is the surviving vertex count after the analyser's
	// duplicate/prune passes, set by analyse.Run. It excludes vertices
	// later created by seg splitting during BSP building.
	NumNormalVert int
}

// New returns an empty Level ready to receive lumps.
func New(hexen bool) *Level {
	return &Level{Hexen: hexen}
}

// AddVertex appends a new Vertex at (x, y) and returns its index.
//
// Complexity: amortised O(1).
func (lv *Level) AddVertex(x, y float64) int {
	idx := len(lv.Vertices)
	lv.Vertices = append(lv.Vertices, Vertex{
		X: x, Y: y, Index: idx, Equiv: NoIndex, Tips: NoIndex,
	})

	return idx
}

// Vertex returns the vertex at idx, or ErrVertexRange if idx is out of
// bounds.
func (lv *Level) Vertex(idx int) (*Vertex, error) {
	if idx < 0 || idx >= len(lv.Vertices) {
		return nil, ErrVertexRange
	}

	return &lv.Vertices[idx], nil
}

// ResolveVertex chases a vertex's Equiv chain to its canonical index.
// Returns idx itself if the vertex has no equivalence pointer set, or if
// idx is out of range (callers that need to distinguish the two should
// call Vertex first).
func (lv *Level) ResolveVertex(idx int) int {
	for idx >= 0 && idx < len(lv.Vertices) && lv.Vertices[idx].Equiv != NoIndex {
		idx = lv.Vertices[idx].Equiv
	}

	return idx
}

// AddLinedef appends a new Linedef and returns its index. FrontSide may
// not be NoIndex; BackSide may be, for a one-sided line.
func (lv *Level) AddLinedef(ld Linedef) int {
	idx := len(lv.Linedefs)
	ld.Index = idx
	if ld.OverlapOf == 0 {
		ld.OverlapOf = NoIndex
	}
	lv.Linedefs = append(lv.Linedefs, ld)

	return idx
}

// Linedef returns the linedef at idx, or ErrLinedefRange if out of bounds.
func (lv *Level) Linedef(idx int) (*Linedef, error) {
	if idx < 0 || idx >= len(lv.Linedefs) {
		return nil, ErrLinedefRange
	}

	return &lv.Linedefs[idx], nil
}

// AddSidedef appends a new Sidedef and returns its index.
func (lv *Level) AddSidedef(sd Sidedef) int {
	idx := len(lv.Sidedefs)
	sd.Index = idx
	sd.Equiv = NoIndex
	lv.Sidedefs = append(lv.Sidedefs, sd)

	return idx
}

// Sidedef returns the sidedef at idx, or ErrSidedefRange if out of bounds.
func (lv *Level) Sidedef(idx int) (*Sidedef, error) {
	if idx < 0 || idx >= len(lv.Sidedefs) {
		return nil, ErrSidedefRange
	}

	return &lv.Sidedefs[idx], nil
}

// ResolveSidedef chases a sidedef's Equiv chain to its canonical index.
func (lv *Level) ResolveSidedef(idx int) int {
	for idx >= 0 && idx < len(lv.Sidedefs) && lv.Sidedefs[idx].Equiv != NoIndex {
		idx = lv.Sidedefs[idx].Equiv
	}

	return idx
}

// AddSector appends a new Sector and returns its index.
func (lv *Level) AddSector(s Sector) int {
	idx := len(lv.Sectors)
	s.Index = idx
	s.RejectGroup = idx
	s.RejectRing = NoIndex
	lv.Sectors = append(lv.Sectors, s)

	return idx
}

// Sector returns the sector at idx, or ErrSectorRange if out of bounds.
func (lv *Level) Sector(idx int) (*Sector, error) {
	if idx < 0 || idx >= len(lv.Sectors) {
		return nil, ErrSectorRange
	}

	return &lv.Sectors[idx], nil
}

// AddThing appends a new Thing and returns its index.
func (lv *Level) AddThing(t Thing) int {
	idx := len(lv.Things)
	t.Index = idx
	lv.Things = append(lv.Things, t)

	return idx
}

// Thing returns the thing at idx, or ErrThingRange if out of bounds.
func (lv *Level) Thing(idx int) (*Thing, error) {
	if idx < 0 || idx >= len(lv.Things) {
		return nil, ErrThingRange
	}

	return &lv.Things[idx], nil
}

// NewWallTip appends a new WallTip record (not yet linked into any ring)
// and returns its index.
func (lv *Level) NewWallTip(vertex, linedef int, angle float64, left, right int) int {
	idx := len(lv.WallTips)
	lv.WallTips = append(lv.WallTips, WallTip{
		Vertex: vertex, Linedef: linedef, Angle: angle,
		Left: left, Right: right,
		Next: NoIndex, Prev: NoIndex, Index: idx,
	})

	return idx
}

// WallTip returns the wall tip at idx.
func (lv *Level) WallTip(idx int) *WallTip {
	return &lv.WallTips[idx]
}

// Bounds returns the axis-aligned bounding box of every surviving vertex.
// Used by both the superblock root sizing (package bsp) and the blockmap
// origin computation (package blockmap).
func (lv *Level) Bounds() (minX, minY, maxX, maxY float64) {
	if len(lv.Vertices) == 0 {
		return 0, 0, 0, 0
	}
	minX, minY = lv.Vertices[0].X, lv.Vertices[0].Y
	maxX, maxY = minX, minY
	for _, v := range lv.Vertices[1:] {
		if v.X < minX {
			minX = v.X
		}
		if v.X > maxX {
			maxX = v.X
		}
		if v.Y < minY {
			minY = v.Y
		}
		if v.Y > maxY {
			maxY = v.Y
		}
	}

	return minX, minY, maxX, maxY
}

package bsp

// Intersection is a cut point along a candidate partition: the vertex at
// that point, its signed along-distance from the partition's start, a
// self-referencing-sector marker, and the sector open to either side
// along the partition's direction (NoIndex meaning void). Intersections
// form a sorted singly linked list for one level of partitioning and are
// returned to Tree's quick-alloc free list once the miniseg stitcher
// (miniseg.go) has consumed them (spec.md §4.G, §9).
type Intersection struct {
	Vertex int
	Along  float64

	SelfRef bool

	SectorBefore int
	SectorAfter  int

	Next *Intersection

	next *Intersection // free-list link; distinct from Next (the sorted list link)
}

// allocIntersection returns an Intersection from t's free list, or a
// fresh one.
func (t *Tree) allocIntersection() *Intersection {
	if it := t.freeIntersections; it != nil {
		t.freeIntersections = it.next
		*it = Intersection{}

		return it
	}

	return &Intersection{}
}

// freeIntersectionList returns the entire Next-linked chain starting at
// head to t's free list.
func (t *Tree) freeIntersectionList(head *Intersection) {
	for head != nil {
		n := head.Next
		head.next = t.freeIntersections
		t.freeIntersections = head
		head = n
	}
}

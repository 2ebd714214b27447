package numeric

import "math"

// Partition is an oriented line used to split a seg set: a start point
// (X, Y) and a delta (DX, DY). Length and the two precomputed constants
// PerpC/ParaC let PerpDist/ParallelDist evaluate any point against the
// line with a single multiply-add instead of re-deriving the offset from
// the start point every call — the partition picker (package bsp) evaluates
// every seg against the candidate partition, so this runs in the hottest
// loop in the whole pipeline.
type Partition struct {
	X, Y   float64
	DX, DY float64
	Length float64

	// PerpC and ParaC are precomputed so PerpDist/ParallelDist of the
	// partition's own start point are exactly zero.
	PerpC float64
	ParaC float64
}

// NewPartition builds a Partition from a start point and delta, filling in
// Length, PerpC, and ParaC.
//
// Complexity: O(1).
func NewPartition(x, y, dx, dy float64) Partition {
	return Partition{
		X: x, Y: y, DX: dx, DY: dy,
		Length: Dist(dx, dy),
		PerpC:  y*dx - x*dy,
		ParaC:  -x*dx - y*dy,
	}
}

// PerpDist returns the signed perpendicular distance of (x, y) from part:
// positive on the right (front) side, negative on the left (back) side,
// zero on the line itself.
//
// Complexity: O(1); uses a division-free fast path when part is exactly
// horizontal or vertical.
func (part Partition) PerpDist(x, y float64) float64 {
	if part.DY == 0 {
		if part.DX > 0 {
			return part.Y - y
		}

		return y - part.Y
	}
	if part.DX == 0 {
		if part.DY > 0 {
			return x - part.X
		}

		return part.X - x
	}

	return (x*part.DY - y*part.DX + part.PerpC) / part.Length
}

// ParallelDist returns the signed distance of (x, y) projected onto part's
// own direction, measured from part's start point.
//
// Complexity: O(1); same fast paths as PerpDist.
func (part Partition) ParallelDist(x, y float64) float64 {
	if part.DX == 0 {
		if part.DY > 0 {
			return y - part.Y
		}

		return part.Y - y
	}
	if part.DY == 0 {
		if part.DX > 0 {
			return x - part.X
		}

		return part.X - x
	}

	return (x*part.DX + y*part.DY + part.ParaC) / part.Length
}

// Box is an axis-aligned bounding box in map units.
type Box struct {
	MinX, MinY, MaxX, MaxY float64
}

// BoxVsPartition classifies box against part, inflating box by 1.5*IffyLen
// on every side first so a box that merely grazes the partition is treated
// as straddling rather than strictly to one side.
//
// Complexity: O(1).
func BoxVsPartition(box Box, part Partition) Side {
	const inflate = 1.5 * IffyLen

	corners := [4][2]float64{
		{box.MinX - inflate, box.MinY - inflate},
		{box.MaxX + inflate, box.MinY - inflate},
		{box.MinX - inflate, box.MaxY + inflate},
		{box.MaxX + inflate, box.MaxY + inflate},
	}

	sawRight, sawLeft := false, false
	for _, c := range corners {
		d := part.PerpDist(c[0], c[1])
		switch {
		case d > DistEpsilon:
			sawRight = true
		case d < -DistEpsilon:
			sawLeft = true
		}
	}

	switch {
	case sawRight && sawLeft:
		return SideStraddle
	case sawRight:
		return SideRight
	case sawLeft:
		return SideLeft
	default:
		// Degenerate: the entire inflated box lies within epsilon of the
		// line. Treat as straddling so callers don't silently drop it.
		return SideStraddle
	}
}

// RoundPow2Up128 rounds v up to the next multiple of 128 that is itself a
// power of two times 128; used for the superblock's root rectangle sizing
// (package bsp).
func RoundPow2Up128(v float64) float64 {
	n := 128.0
	for n < v {
		n *= 2
	}

	return n
}

// AbsFloat returns the absolute value of v. A tiny helper kept here so
// callers never need a second import just for math.Abs.
func AbsFloat(v float64) float64 {
	return math.Abs(v)
}

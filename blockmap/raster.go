package blockmap

import "math"

// cellCoord is a (col, row) pair of grid cell coordinates.
type cellCoord struct{ Col, Row int }

// rasterizeLine returns every cell touched by the segment (x1,y1)-(x2,y2),
// expressed in grid space (already offset by the blockmap origin and
// divided by CellSize is NOT assumed: x/y are still in map units; origin
// and cols/rows bound the clamping). Horizontal and vertical segments use
// a direct fast path (spec.md §4.J); general diagonals are walked column
// by column, clipping the segment to each column's vertical strip to find
// the row span it touches there — the Cohen-Sutherland-like clipping
// helper spec.md §4.J refers to.
func rasterizeLine(x1, y1, x2, y2 float64, originX, originY float64, cols, rows int) []cellCoord {
	col := func(x float64) int {
		c := int(math.Floor((x - originX) / CellSize))
		return clamp(c, 0, cols-1)
	}
	row := func(y float64) int {
		r := int(math.Floor((y - originY) / CellSize))
		return clamp(r, 0, rows-1)
	}

	c1, r1 := col(x1), row(y1)
	c2, r2 := col(x2), row(y2)

	if c1 == c2 {
		return columnSpan(c1, r1, r2)
	}
	if r1 == r2 {
		return rowSpan(r1, c1, c2)
	}

	// General case: walk columns between c1 and c2, clipping the segment
	// to each column's [xlo, xhi) vertical strip to find the y-range (and
	// therefore row range) the segment occupies inside that column.
	lo, hi := c1, c2
	ax1, ay1, ax2, ay2 := x1, y1, x2, y2
	if lo > hi {
		lo, hi = hi, lo
		ax1, ay1, ax2, ay2 = ax2, ay2, ax1, ay1
	}

	var out []cellCoord
	seen := make(map[cellCoord]bool)
	add := func(cc cellCoord) {
		if !seen[cc] {
			seen[cc] = true
			out = append(out, cc)
		}
	}

	dx := ax2 - ax1
	dy := ay2 - ay1
	for c := lo; c <= hi; c++ {
		xlo := originX + float64(c)*CellSize
		xhi := xlo + CellSize

		// y at the column's left and right edges along the infinite line
		// through (ax1,ay1)-(ax2,ay2).
		var yAtLo, yAtHi float64
		if dx == 0 {
			yAtLo, yAtHi = ay1, ay2
		} else {
			t0 := (xlo - ax1) / dx
			t1 := (xhi - ax1) / dx
			yAtLo = ay1 + t0*dy
			yAtHi = ay1 + t1*dy
		}

		// Clip to the actual segment's y-range.
		segLoY, segHiY := ay1, ay2
		if segLoY > segHiY {
			segLoY, segHiY = segHiY, segLoY
		}

		loY, hiY := yAtLo, yAtHi
		if loY > hiY {
			loY, hiY = hiY, loY
		}
		if loY < segLoY {
			loY = segLoY
		}
		if hiY > segHiY {
			hiY = segHiY
		}
		if loY > hiY {
			continue
		}

		rLo, rHi := row(loY), row(hiY)
		for r := rLo; r <= rHi; r++ {
			add(cellCoord{Col: c, Row: r})
		}
	}

	return out
}

func columnSpan(c, r1, r2 int) []cellCoord {
	if r1 > r2 {
		r1, r2 = r2, r1
	}
	out := make([]cellCoord, 0, r2-r1+1)
	for r := r1; r <= r2; r++ {
		out = append(out, cellCoord{Col: c, Row: r})
	}

	return out
}

func rowSpan(r, c1, c2 int) []cellCoord {
	if c1 > c2 {
		c1, c2 = c2, c1
	}
	out := make([]cellCoord, 0, c2-c1+1)
	for c := c1; c <= c2; c++ {
		out = append(out, cellCoord{Col: c, Row: r})
	}

	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}

	return v
}

package blockmap

import (
	"math"

	"github.com/katalvlaran/bspc/level"
	"github.com/katalvlaran/bspc/report"
)

// shrinkFactor is applied to both dimensions, repeatedly, until the cell
// count fits the caller's budget (spec.md §4.J: "shrink both dimensions
// by 12.5%").
const shrinkFactor = 0.875

// BlockList is one deduplicated per-cell linedef index list. BlockList[0]
// in a Grid's Lists is always the shared empty list every untouched cell
// points at (spec.md §4.J's "null blocklist").
type BlockList struct {
	Lines []int
}

// Grid is the fully-built, deduplicated blockmap for one level: origin,
// dimensions, the unique blocklists, and a per-cell index into Lists.
// Package wad serialises this into the BLOCKMAP lump's byte layout.
type Grid struct {
	OriginX, OriginY int
	Cols, Rows       int

	Lists []BlockList

	// CellList holds len(Cols*Rows) entries, row-major, indexing Lists.
	CellList []int
}

// ListFor returns the blocklist belonging to cell (col, row).
func (g *Grid) ListFor(col, row int) BlockList {
	return g.Lists[g.CellList[row*g.Cols+col]]
}

// Build rasterises every non-zero-length linedef in lv into a blockmap
// grid sized to fit maxCells total cells, shrinking (and re-centring) the
// grid if the natural size exceeds that budget (spec.md §4.J). levelIdx
// is only used to tag any diagnostic raised into rpt.
func Build(lv *level.Level, maxCells int, rpt *report.Report, levelIdx int) (*Grid, error) {
	if len(lv.Vertices) == 0 {
		return nil, ErrEmptyLevel
	}

	minX, minY, maxX, maxY := lv.Bounds()

	originX := int(math.Floor(minX)) &^ 7
	originY := int(math.Floor(minY)) &^ 7

	cols := int(math.Ceil((maxX-float64(originX))/CellSize)) + 1
	rows := int(math.Ceil((maxY-float64(originY))/CellSize)) + 1

	shrunk := false
	for cols*rows > maxCells && cols > 1 && rows > 1 {
		shrunk = true
		cols = int(float64(cols) * shrinkFactor)
		rows = int(float64(rows) * shrinkFactor)
		if cols < 1 {
			cols = 1
		}
		if rows < 1 {
			rows = 1
		}
	}
	if shrunk {
		// Re-centre the (now smaller) grid on the original bounds so the
		// lost coverage is spread evenly rather than all lost on one edge.
		cx := (minX + maxX) / 2
		cy := (minY + maxY) / 2
		originX = int(math.Floor(cx-float64(cols)*CellSize/2)) &^ 7
		originY = int(math.Floor(cy-float64(rows)*CellSize/2)) &^ 7
		if rpt != nil {
			rpt.Warn(levelIdx, "blockmap-shrunk",
				"blockmap shrunk to %dx%d cells to fit budget %d", cols, rows, maxCells)
		}
	}

	g := &Grid{OriginX: originX, OriginY: originY, Cols: cols, Rows: rows}

	raw := make([][]int, cols*rows)
	for i := range lv.Linedefs {
		ld := &lv.Linedefs[i]
		if ld.ZeroLength {
			continue
		}
		vs, err := lv.Vertex(ld.Start)
		if err != nil {
			continue
		}
		ve, err := lv.Vertex(ld.End)
		if err != nil {
			continue
		}

		for _, cc := range rasterizeLine(vs.X, vs.Y, ve.X, ve.Y, float64(originX), float64(originY), cols, rows) {
			idx := cc.Row*cols + cc.Col
			raw[idx] = append(raw[idx], i)
		}
	}

	g.Lists, g.CellList = dedup(raw)

	return g, nil
}

// dedup assigns every raw cell list to a unique BlockList, sharing a
// single entry for lists with identical content (spec.md §4.J). Entry 0
// is always the shared empty list.
func dedup(raw [][]int) ([]BlockList, []int) {
	lists := []BlockList{{Lines: nil}}
	cellList := make([]int, len(raw))

	// byChecksum buckets candidate list indices (into lists) by checksum,
	// so equal-content cells collapse to one entry without an O(n^2) full
	// compare against every previously seen list.
	byChecksum := make(map[uint16][]int)

	for i, lines := range raw {
		if len(lines) == 0 {
			cellList[i] = 0
			continue
		}

		sum := checksum(lines)
		found := -1
		for _, candidate := range byChecksum[sum] {
			if sameContent(lists[candidate].Lines, lines) {
				found = candidate
				break
			}
		}
		if found == -1 {
			found = len(lists)
			lists = append(lists, BlockList{Lines: lines})
			byChecksum[sum] = append(byChecksum[sum], found)
		}
		cellList[i] = found
	}

	return lists, cellList
}

func sameContent(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

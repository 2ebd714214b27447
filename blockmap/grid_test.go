package blockmap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bspc/blockmap"
	"github.com/katalvlaran/bspc/level"
	"github.com/katalvlaran/bspc/report"
)

func squareLevel() *level.Level {
	lv := level.New(false)
	v0 := lv.AddVertex(0, 0)
	v1 := lv.AddVertex(256, 0)
	v2 := lv.AddVertex(256, 256)
	v3 := lv.AddVertex(0, 256)
	sd := lv.AddSidedef(level.Sidedef{Sector: lv.AddSector(level.Sector{})})
	for _, pair := range [][2]int{{v0, v1}, {v1, v2}, {v2, v3}, {v3, v0}} {
		lv.AddLinedef(level.Linedef{Start: pair[0], End: pair[1], FrontSide: sd, BackSide: level.NoIndex})
	}

	return lv
}

func TestBuildDimensions(t *testing.T) {
	lv := squareLevel()
	g, err := blockmap.Build(lv, 16000, nil, 0)
	require.NoError(t, err)

	assert.Equal(t, 0, g.OriginX)
	assert.Equal(t, 0, g.OriginY)
	assert.Equal(t, 3, g.Cols) // ceil(256/128)+1
	assert.Equal(t, 3, g.Rows)
}

func TestEmptyCellsShareNullList(t *testing.T) {
	lv := squareLevel()
	g, err := blockmap.Build(lv, 16000, nil, 0)
	require.NoError(t, err)

	// The centre of a 3x3 grid over a boundary-only square is untouched.
	centre := g.ListFor(1, 1)
	assert.Empty(t, centre.Lines)
	assert.Equal(t, 0, g.CellList[1*g.Cols+1])
}

func TestDeduplicatesIdenticalBlockLists(t *testing.T) {
	lv := squareLevel()
	g, err := blockmap.Build(lv, 16000, nil, 0)
	require.NoError(t, err)

	// Dedup keeps one entry per distinct line set: no two entries of
	// Lists may hold the same content.
	for i := range g.Lists {
		for j := i + 1; j < len(g.Lists); j++ {
			assert.NotEqual(t, g.Lists[i].Lines, g.Lists[j].Lines, "lists %d and %d are identical", i, j)
		}
	}
	assert.NotEmpty(t, g.Lists)
}

func TestShrinkToFitBudget(t *testing.T) {
	lv := level.New(false)
	v0 := lv.AddVertex(0, 0)
	v1 := lv.AddVertex(1 << 20, 0)
	v2 := lv.AddVertex(1<<20, 1<<20)
	sd := lv.AddSidedef(level.Sidedef{Sector: lv.AddSector(level.Sector{})})
	lv.AddLinedef(level.Linedef{Start: v0, End: v1, FrontSide: sd, BackSide: level.NoIndex})
	lv.AddLinedef(level.Linedef{Start: v1, End: v2, FrontSide: sd, BackSide: level.NoIndex})

	var rpt report.Report
	g, err := blockmap.Build(lv, 1000, &rpt, 0)
	require.NoError(t, err)
	assert.LessOrEqual(t, g.Cols*g.Rows, 1000)
	assert.NotEmpty(t, rpt.Entries)
}

package analyse_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/bspc/analyse"
	"github.com/katalvlaran/bspc/level"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func triangleLevel() *level.Level {
	lv := level.New(false)
	a := lv.AddVertex(0, 0)
	b := lv.AddVertex(128, 0)
	c := lv.AddVertex(0, 128)
	sec := lv.AddSector(level.Sector{FloorHeight: 0, CeilHeight: 128})

	mkSide := func() int {
		return lv.AddSidedef(level.Sidedef{Sector: sec})
	}
	lv.AddLinedef(level.Linedef{Start: a, End: b, FrontSide: mkSide(), BackSide: level.NoIndex})
	lv.AddLinedef(level.Linedef{Start: b, End: c, FrontSide: mkSide(), BackSide: level.NoIndex})
	lv.AddLinedef(level.Linedef{Start: c, End: a, FrontSide: mkSide(), BackSide: level.NoIndex})

	return lv
}

func TestRunTriangleSurvives(t *testing.T) {
	t.Parallel()

	lv := triangleLevel()
	err := analyse.Run(context.Background(), lv)
	require.NoError(t, err)

	assert.Equal(t, 3, len(lv.Vertices))
	assert.Equal(t, 3, len(lv.Linedefs))
	assert.Equal(t, 3, lv.NumNormalVert)
	for _, v := range lv.Vertices {
		assert.NotEqual(t, level.NoIndex, v.Tips, "every vertex should have a wall tip")
	}
}

func TestRunDropsDuplicateVertexAndZeroLengthLine(t *testing.T) {
	t.Parallel()

	lv := level.New(false)
	a := lv.AddVertex(0, 0)
	dup := lv.AddVertex(0, 0) // exact duplicate of a
	b := lv.AddVertex(64, 0)
	sec := lv.AddSector(level.Sector{})
	side := func() int { return lv.AddSidedef(level.Sidedef{Sector: sec}) }

	lv.AddLinedef(level.Linedef{Start: a, End: dup, FrontSide: side()}) // zero-length after merge
	lv.AddLinedef(level.Linedef{Start: a, End: b, FrontSide: side()})

	require.NoError(t, analyse.Run(context.Background(), lv))

	assert.Equal(t, 2, len(lv.Vertices))
	assert.Equal(t, 1, len(lv.Linedefs))
}

func TestRunCancelled(t *testing.T) {
	t.Parallel()

	lv := triangleLevel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := analyse.Run(ctx, lv)
	assert.ErrorIs(t, err, analyse.ErrCancelled)
}

func TestRunNilLevel(t *testing.T) {
	t.Parallel()

	err := analyse.Run(context.Background(), nil)
	assert.ErrorIs(t, err, analyse.ErrLevelNil)
}

func TestDetectOverlap(t *testing.T) {
	t.Parallel()

	lv := level.New(false)
	a := lv.AddVertex(0, 0)
	b := lv.AddVertex(64, 0)
	sec := lv.AddSector(level.Sector{})
	side := func() int { return lv.AddSidedef(level.Sidedef{Sector: sec}) }

	lv.AddLinedef(level.Linedef{Start: a, End: b, FrontSide: side()})
	lv.AddLinedef(level.Linedef{Start: b, End: a, FrontSide: side()}) // same corners, reversed

	require.NoError(t, analyse.Run(context.Background(), lv))

	overlapped := 0
	for _, ld := range lv.Linedefs {
		if ld.OverlapOf != level.NoIndex {
			overlapped++
		}
	}
	assert.Equal(t, 1, overlapped)
}

func TestPolyobjExplicitGrouping(t *testing.T) {
	t.Parallel()

	lv := level.New(true)
	v := make([]int, 4)
	v[0] = lv.AddVertex(0, 0)
	v[1] = lv.AddVertex(64, 0)
	v[2] = lv.AddVertex(64, 64)
	v[3] = lv.AddVertex(0, 64)
	sec := lv.AddSector(level.Sector{})
	side := func() int { return lv.AddSidedef(level.Sidedef{Sector: sec}) }

	const tag = 1
	for i := 0; i < 4; i++ {
		lv.AddLinedef(level.Linedef{
			Start: v[i], End: v[(i+1)%4],
			FrontSide: side(),
			BackSide:  side(),
			Special:   level.HexenLinePolyobjExplicit,
			Args:      [5]uint8{tag, uint8(i), 1, 0, 0},
		})
	}
	lv.AddThing(level.Thing{Type: level.PolyobjDoomedNumAnchor, Angle: tag, Hexen: true})

	require.NoError(t, analyse.Run(context.Background(), lv))

	require.Len(t, lv.Polyobjs, 1)
	assert.Equal(t, tag, lv.Polyobjs[0].Tag)
	assert.Len(t, lv.Polyobjs[0].Lines, 4)
	for _, ld := range lv.Linedefs {
		assert.True(t, ld.Precious)
		assert.True(t, lv.Sidedefs[ld.BackSide].DontPegBottom)
	}
}

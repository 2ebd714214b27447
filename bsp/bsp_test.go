package bsp_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/bspc/analyse"
	"github.com/katalvlaran/bspc/bsp"
	"github.com/katalvlaran/bspc/level"
	"github.com/katalvlaran/bspc/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// squareRoom builds a single convex four-wall room: every wall one-sided,
// facing sector 0.
func squareRoom() *level.Level {
	lv := level.New(false)
	v0 := lv.AddVertex(0, 0)
	v1 := lv.AddVertex(0, 100)
	v2 := lv.AddVertex(100, 100)
	v3 := lv.AddVertex(100, 0)
	sec := lv.AddSector(level.Sector{FloorHeight: 0, CeilHeight: 128})

	addOneSided := func(a, b int) {
		sd := lv.AddSidedef(level.Sidedef{Sector: sec})
		lv.AddLinedef(level.Linedef{Start: a, End: b, FrontSide: sd, BackSide: level.NoIndex})
	}
	addOneSided(v0, v1)
	addOneSided(v1, v2)
	addOneSided(v2, v3)
	addOneSided(v3, v0)

	return lv
}

// twoRooms builds two adjacent squares sharing one two-sided wall at
// x=100, separating sector 0 (left) from sector 1 (right).
func twoRooms() *level.Level {
	lv := level.New(false)
	v0 := lv.AddVertex(0, 0)
	v1 := lv.AddVertex(0, 100)
	v2 := lv.AddVertex(100, 100)
	v3 := lv.AddVertex(100, 0)
	v4 := lv.AddVertex(200, 100)
	v5 := lv.AddVertex(200, 0)

	secA := lv.AddSector(level.Sector{FloorHeight: 0, CeilHeight: 128})
	secB := lv.AddSector(level.Sector{FloorHeight: 0, CeilHeight: 128})

	addOneSided := func(a, b, sec int) {
		sd := lv.AddSidedef(level.Sidedef{Sector: sec})
		lv.AddLinedef(level.Linedef{Start: a, End: b, FrontSide: sd, BackSide: level.NoIndex})
	}
	addOneSided(v0, v1, secA)
	addOneSided(v1, v2, secA)
	addOneSided(v3, v0, secA)
	addOneSided(v2, v4, secB)
	addOneSided(v4, v5, secB)
	addOneSided(v5, v3, secB)

	front := lv.AddSidedef(level.Sidedef{Sector: secA})
	back := lv.AddSidedef(level.Sidedef{Sector: secB})
	lv.AddLinedef(level.Linedef{Start: v2, End: v3, FrontSide: front, BackSide: back, TwoSided: true})

	return lv
}

func TestCompileConvexRoomYieldsSingleSubsector(t *testing.T) {
	t.Parallel()

	lv := squareRoom()
	ctx := bsp.NewContext()
	res, err := bsp.Compile(ctx, lv, nil, 0)
	require.NoError(t, err)

	assert.Nil(t, res.Tree.Root)
	require.NotNil(t, res.Tree.RootSub)
	assert.Len(t, res.Tree.RootSub.Segs, 4)
	assert.Equal(t, 0, res.DegenerateSegs)
}

func TestCompileTwoSectorsYieldsOneSplit(t *testing.T) {
	t.Parallel()

	lv := twoRooms()
	ctx := bsp.NewContext()
	res, err := bsp.Compile(ctx, lv, nil, 0)
	require.NoError(t, err)

	require.NotNil(t, res.Tree.Root)
	assert.Nil(t, res.Tree.RootSub)

	n := res.Tree.Root
	assert.NotNil(t, n.RightSub)
	assert.NotNil(t, n.LeftSub)
	assert.Nil(t, n.RightNode)
	assert.Nil(t, n.LeftNode)

	totalSegs := len(n.RightSub.Segs) + len(n.LeftSub.Segs)
	assert.GreaterOrEqual(t, totalSegs, 7)
}

func TestCompileRejectsCancelledContext(t *testing.T) {
	t.Parallel()

	lv := squareRoom()
	ctx := bsp.NewContext()
	ctx.Cancel()

	_, err := bsp.Compile(ctx, lv, nil, 0)
	assert.ErrorIs(t, err, bsp.ErrCancelled)
}

func TestCompileEmptyLevelIsError(t *testing.T) {
	t.Parallel()

	lv := level.New(false)
	ctx := bsp.NewContext()

	_, err := bsp.Compile(ctx, lv, nil, 0)
	assert.ErrorIs(t, err, bsp.ErrEmptySegSet)
}

// doorwayRooms builds a 256x256 room divided at y=128 into two sectors
// joined by an open doorway: the dividing line exists only as two
// two-sided wall stubs, (0,128)-(96,128) and (160,128)-(256,128), so the
// partition along y=128 must stitch minisegs across the 64-unit gap.
func doorwayRooms() *level.Level {
	lv := level.New(false)
	c0 := lv.AddVertex(0, 0)
	c1 := lv.AddVertex(256, 0)
	c2 := lv.AddVertex(256, 256)
	c3 := lv.AddVertex(0, 256)
	m0 := lv.AddVertex(0, 128)
	m1 := lv.AddVertex(96, 128)
	m2 := lv.AddVertex(160, 128)
	m3 := lv.AddVertex(256, 128)

	secB := lv.AddSector(level.Sector{FloorHeight: 0, CeilHeight: 128})
	secT := lv.AddSector(level.Sector{FloorHeight: 16, CeilHeight: 128})

	addOneSided := func(a, b, sec int) {
		sd := lv.AddSidedef(level.Sidedef{Sector: sec})
		lv.AddLinedef(level.Linedef{Start: a, End: b, FrontSide: sd, BackSide: level.NoIndex})
	}

	// Outer boundary, clockwise so the front side faces inward.
	addOneSided(c0, m0, secB)
	addOneSided(m0, c3, secT)
	addOneSided(c3, c2, secT)
	addOneSided(c2, m3, secT)
	addOneSided(m3, c1, secB)
	addOneSided(c1, c0, secB)

	addTwoSided := func(a, b int) {
		front := lv.AddSidedef(level.Sidedef{Sector: secB})
		back := lv.AddSidedef(level.Sidedef{Sector: secT})
		lv.AddLinedef(level.Linedef{Start: a, End: b, FrontSide: front, BackSide: back})
	}
	addTwoSided(m0, m1)
	addTwoSided(m2, m3)

	return lv
}

func TestCompileDoorwayStitchesMinisegs(t *testing.T) {
	t.Parallel()

	lv := doorwayRooms()
	require.NoError(t, analyse.Run(context.Background(), lv))

	ctx := bsp.NewContext()
	rpt := &report.Report{}
	res, err := bsp.Compile(ctx, lv, rpt, 0)
	require.NoError(t, err)

	require.Len(t, res.Tree.Subsectors, 2)

	realSegs, glSegs := 0, 0
	for _, ss := range res.Tree.Subsectors {
		realSegs += len(ss.Segs)
		glSegs += len(ss.GLSegs)
	}
	assert.Equal(t, 10, realSegs)
	assert.Equal(t, 12, glSegs, "the doorway gap should gain one miniseg per side")

	for _, e := range rpt.Entries {
		assert.NotEqual(t, "unclosed-sector", e.Kind)
	}
}

func TestMinisegPartnerInvariant(t *testing.T) {
	t.Parallel()

	lv := doorwayRooms()
	require.NoError(t, analyse.Run(context.Background(), lv))

	res, err := bsp.Compile(bsp.NewContext(), lv, nil, 0)
	require.NoError(t, err)

	for _, s := range res.Tree.Segs {
		if s.Partner == nil {
			continue
		}
		assert.Same(t, s, s.Partner.Partner)
		assert.Equal(t, s.StartV, s.Partner.EndV)
		assert.Equal(t, s.EndV, s.Partner.StartV)
	}
}

func TestCompileFastFallsBackBelowReuseThreshold(t *testing.T) {
	t.Parallel()

	lv := twoRooms()
	stale := &bsp.StaleNode{X: 100, Y: 100, DX: 0, DY: -100}

	res, err := bsp.CompileFast(bsp.NewContext(), lv, stale, nil, 0)
	require.NoError(t, err)

	// Far below SegReuseThreshold the stale tree is never consulted; the
	// result matches a plain full build.
	require.NotNil(t, res.Tree.Root)
	assert.Len(t, res.Tree.Subsectors, 2)
}

func TestTreeHeight(t *testing.T) {
	t.Parallel()

	res, err := bsp.Compile(bsp.NewContext(), twoRooms(), nil, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Tree.Height())

	convex, err := bsp.Compile(bsp.NewContext(), squareRoom(), nil, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, convex.Tree.Height())
}

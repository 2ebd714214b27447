package reject_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bspc/level"
	"github.com/katalvlaran/bspc/reject"
)

func TestConnectedSectorsSeeEachOther(t *testing.T) {
	lv := level.New(false)
	v0 := lv.AddVertex(0, 0)
	v1 := lv.AddVertex(128, 0)
	v2 := lv.AddVertex(128, 128)
	v3 := lv.AddVertex(0, 128)
	s0 := lv.AddSector(level.Sector{FloorHeight: 0})
	s1 := lv.AddSector(level.Sector{FloorHeight: 16})
	sd0 := lv.AddSidedef(level.Sidedef{Sector: s0})
	sd1 := lv.AddSidedef(level.Sidedef{Sector: s1})
	lv.AddLinedef(level.Linedef{Start: v0, End: v1, FrontSide: sd0, BackSide: sd1})
	lv.AddLinedef(level.Linedef{Start: v1, End: v2, FrontSide: sd0, BackSide: level.NoIndex})
	lv.AddLinedef(level.Linedef{Start: v2, End: v3, FrontSide: sd1, BackSide: level.NoIndex})
	lv.AddLinedef(level.Linedef{Start: v3, End: v0, FrontSide: sd0, BackSide: level.NoIndex})

	m := reject.Build(lv)
	require.Equal(t, 2, m.N)
	assert.False(t, m.Get(s0, s1))
	assert.False(t, m.Get(s1, s0))
}

func TestDisconnectedSectorsCannotSeeEachOther(t *testing.T) {
	lv := level.New(false)
	s0 := lv.AddSector(level.Sector{})
	s1 := lv.AddSector(level.Sector{})
	// no linedef links the two sectors

	m := reject.Build(lv)
	assert.True(t, m.Get(s0, s1))
	assert.True(t, m.Get(s1, s0))
	assert.False(t, m.Get(s0, s0))
}

func TestMatrixDiagonalIsZero(t *testing.T) {
	lv := level.New(false)
	for i := 0; i < 4; i++ {
		lv.AddSector(level.Sector{})
	}
	m := reject.Build(lv)
	for i := 0; i < 4; i++ {
		assert.False(t, m.Get(i, i))
	}
}

func TestChainedUnionsMergeTransitively(t *testing.T) {
	lv := level.New(false)
	for i := 0; i < 4; i++ {
		lv.AddSector(level.Sector{})
	}

	link := func(a, b int) {
		sa := lv.AddSidedef(level.Sidedef{Sector: a})
		sb := lv.AddSidedef(level.Sidedef{Sector: b})
		lv.AddLinedef(level.Linedef{FrontSide: sa, BackSide: sb})
	}

	// Union order matters: merging (1,2) first forces the (0,1) union to
	// walk and relabel group 1's whole chain, not just its head.
	link(1, 2)
	link(0, 1)

	m := reject.Build(lv)
	require.Equal(t, 4, m.N)

	for _, pair := range [][2]int{{0, 1}, {0, 2}, {1, 2}} {
		assert.False(t, m.Get(pair[0], pair[1]), "sectors %v are connected", pair)
		assert.False(t, m.Get(pair[1], pair[0]), "sectors %v are connected", pair)
	}
	for i := 0; i < 3; i++ {
		assert.True(t, m.Get(i, 3))
		assert.True(t, m.Get(3, i))
	}
}

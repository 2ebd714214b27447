package level_test

import (
	"testing"

	"github.com/katalvlaran/bspc/level"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAndResolveVertex(t *testing.T) {
	t.Parallel()

	lv := level.New(false)
	a := lv.AddVertex(0, 0)
	b := lv.AddVertex(0, 0)

	vb, err := lv.Vertex(b)
	require.NoError(t, err)
	vb.Equiv = a

	assert.Equal(t, a, lv.ResolveVertex(b))
	assert.Equal(t, a, lv.ResolveVertex(a))
}

func TestVertexOutOfRange(t *testing.T) {
	t.Parallel()

	lv := level.New(false)
	_, err := lv.Vertex(5)
	assert.ErrorIs(t, err, level.ErrVertexRange)
}

func TestLevelBounds(t *testing.T) {
	t.Parallel()

	lv := level.New(false)
	lv.AddVertex(0, 0)
	lv.AddVertex(128, 256)
	lv.AddVertex(-64, 32)

	minX, minY, maxX, maxY := lv.Bounds()
	assert.Equal(t, -64.0, minX)
	assert.Equal(t, 0.0, minY)
	assert.Equal(t, 128.0, maxX)
	assert.Equal(t, 256.0, maxY)
}

func TestAddSectorInitialisesRejectFields(t *testing.T) {
	t.Parallel()

	lv := level.New(false)
	idx := lv.AddSector(level.Sector{FloorHeight: 0, CeilHeight: 128})

	sec, err := lv.Sector(idx)
	require.NoError(t, err)
	assert.Equal(t, idx, sec.RejectGroup)
	assert.Equal(t, level.NoIndex, sec.RejectRing)
}

package wad_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bspc/bsp"
	"github.com/katalvlaran/bspc/level"
	"github.com/katalvlaran/bspc/wad"
)

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

func TestWriteTreeLumps(t *testing.T) {
	lv := squareRoom()
	ctx := bsp.NewContext()
	result, err := bsp.Compile(ctx, lv, nil, 0)
	require.NoError(t, err)

	arc := newFakeArchive()
	_, err = wad.WriteSegs(arc, result.Tree)
	require.NoError(t, err)
	require.NoError(t, wad.WriteSubsectors(arc, result.Tree))
	require.NoError(t, wad.WriteNodes(arc, result.Tree))

	segs, ok := arc.Lump("SEGS")
	require.True(t, ok)
	assert.Zero(t, len(segs)%12)

	ssectors, ok := arc.Lump("SSECTORS")
	require.True(t, ok)
	assert.Zero(t, len(ssectors)%4)

	nodes, ok := arc.Lump("NODES")
	require.True(t, ok)
	assert.Zero(t, len(nodes)%28)
}

func TestWriteGLLumps(t *testing.T) {
	lv := squareRoom()
	ctx := bsp.NewContext()
	result, err := bsp.Compile(ctx, lv, nil, 0)
	require.NoError(t, err)

	arc := newFakeArchive()
	require.NoError(t, wad.WriteGLVert(arc, result.Tree, false))
	require.NoError(t, wad.WriteGLSegsV1(arc, result.Tree))
	require.NoError(t, wad.WriteGLSubsectors(arc, result.Tree))
	require.NoError(t, wad.WriteGLNodes(arc, result.Tree))

	glVert, ok := arc.Lump("GL_VERT")
	require.True(t, ok)
	assert.Equal(t, wad.GLVertMagicV2, string(glVert[:4]))

	glNodes, ok := arc.Lump("GL_NODES")
	require.True(t, ok)
	assert.Zero(t, len(glNodes)%28)
}

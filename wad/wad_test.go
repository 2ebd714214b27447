package wad_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bspc/wad"
)

type fakeArchive struct {
	lumps map[string][]byte
}

func newFakeArchive() *fakeArchive { return &fakeArchive{lumps: map[string][]byte{}} }

func (f *fakeArchive) Lump(name string) ([]byte, bool) {
	d, ok := f.lumps[name]
	return d, ok
}

func (f *fakeArchive) WriteLump(name string, data []byte) error {
	f.lumps[name] = append([]byte(nil), data...)
	return nil
}

func encodeRecs(t *testing.T, recs any) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, recs))
	return buf.Bytes()
}

func TestLoadLevelDoomRoundTrip(t *testing.T) {
	arc := newFakeArchive()
	arc.lumps["VERTEXES"] = encodeRecs(t, []wad.VertexRec{{X: 0, Y: 0}, {X: 128, Y: 0}})
	arc.lumps["SECTORS"] = encodeRecs(t, []wad.SectorRec{{FloorHeight: 0, CeilHeight: 128, Light: 200}})
	arc.lumps["SIDEDEFS"] = encodeRecs(t, []wad.SidedefRec{{Sector: 0}})
	arc.lumps["LINEDEFS"] = encodeRecs(t, []wad.LinedefDoomRec{{Start: 0, End: 1, Right: 0, Left: wad.NoRef}})
	arc.lumps["THINGS"] = encodeRecs(t, []wad.ThingDoomRec{{X: 10, Y: 10, Type: 1}})

	lv, err := wad.LoadLevel(arc, false)
	require.NoError(t, err)

	assert.Len(t, lv.Vertices, 2)
	assert.Len(t, lv.Sectors, 1)
	assert.Len(t, lv.Sidedefs, 1)
	assert.Len(t, lv.Linedefs, 1)
	assert.Len(t, lv.Things, 1)
	assert.Equal(t, 128.0, lv.Vertices[1].X)
	assert.Equal(t, 0, lv.Linedefs[0].FrontSide)
	assert.Equal(t, -1, lv.Linedefs[0].BackSide)
}

func TestLoadLevelMissingLumpErrors(t *testing.T) {
	arc := newFakeArchive()
	_, err := wad.LoadLevel(arc, false)
	assert.ErrorIs(t, err, wad.ErrMissingLump)
}

func TestLoadLevelHexen(t *testing.T) {
	arc := newFakeArchive()
	arc.lumps["VERTEXES"] = encodeRecs(t, []wad.VertexRec{{X: 0, Y: 0}, {X: 64, Y: 0}})
	arc.lumps["SECTORS"] = encodeRecs(t, []wad.SectorRec{{}})
	arc.lumps["SIDEDEFS"] = encodeRecs(t, []wad.SidedefRec{{Sector: 0}})
	arc.lumps["LINEDEFS"] = encodeRecs(t, []wad.LinedefHexenRec{
		{Start: 0, End: 1, Special: 1, Args: [5]uint8{1, 0, 0, 0, 0}, Right: 0, Left: wad.NoRef},
	})
	arc.lumps["THINGS"] = encodeRecs(t, []wad.ThingHexenRec{{TID: 5, Type: 3000}})

	lv, err := wad.LoadLevel(arc, true)
	require.NoError(t, err)
	assert.True(t, lv.Hexen)
	assert.Equal(t, uint8(1), lv.Linedefs[0].Special)
	assert.True(t, lv.Things[0].Hexen)
	assert.Equal(t, int16(5), lv.Things[0].TID)
}

func TestWriteLevelLumpsRoundTrip(t *testing.T) {
	arcIn := newFakeArchive()
	arcIn.lumps["VERTEXES"] = encodeRecs(t, []wad.VertexRec{{X: 0, Y: 0}, {X: 64, Y: 0}})
	arcIn.lumps["SECTORS"] = encodeRecs(t, []wad.SectorRec{{FloorHeight: 0, CeilHeight: 64}})
	arcIn.lumps["SIDEDEFS"] = encodeRecs(t, []wad.SidedefRec{{Sector: 0}})
	arcIn.lumps["LINEDEFS"] = encodeRecs(t, []wad.LinedefDoomRec{{Start: 0, End: 1, Right: 0, Left: wad.NoRef}})
	arcIn.lumps["THINGS"] = encodeRecs(t, []wad.ThingDoomRec{{Type: 1}})

	lv, err := wad.LoadLevel(arcIn, false)
	require.NoError(t, err)

	arcOut := newFakeArchive()
	require.NoError(t, wad.WriteLevelLumps(arcOut, lv))

	assert.Equal(t, arcIn.lumps["VERTEXES"], arcOut.lumps["VERTEXES"])
	assert.Equal(t, arcIn.lumps["SECTORS"], arcOut.lumps["SECTORS"])
	assert.Equal(t, arcIn.lumps["LINEDEFS"], arcOut.lumps["LINEDEFS"])
}

func TestLoadStaleNodesRoundTrip(t *testing.T) {
	arc := newFakeArchive()
	arc.lumps["NODES"] = encodeRecs(t, []wad.NodeRec{
		{X: 100, Y: 100, DX: 0, DY: -100, Right: wad.NodeChildSubsector | 0, Left: wad.NodeChildSubsector | 1},
	})

	stale, err := wad.LoadStaleNodes(arc)
	require.NoError(t, err)
	require.NotNil(t, stale)
	assert.Equal(t, 100.0, stale.X)
	assert.Equal(t, -100.0, stale.DY)
	assert.Nil(t, stale.Right)
	assert.Nil(t, stale.Left)
}

func TestLoadStaleNodesAbsentLump(t *testing.T) {
	arc := newFakeArchive()
	stale, err := wad.LoadStaleNodes(arc)
	require.NoError(t, err)
	assert.Nil(t, stale)
}

func TestLoadStaleNodesBadChild(t *testing.T) {
	arc := newFakeArchive()
	arc.lumps["NODES"] = encodeRecs(t, []wad.NodeRec{
		{X: 0, Y: 0, DX: 1, DY: 0, Right: 5, Left: wad.NodeChildSubsector | 0},
	})

	_, err := wad.LoadStaleNodes(arc)
	assert.ErrorIs(t, err, wad.ErrTruncatedLump)
}

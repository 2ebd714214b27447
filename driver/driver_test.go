package driver_test

import (
	"bytes"
	"context"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bspc/bsp"
	"github.com/katalvlaran/bspc/driver"
	"github.com/katalvlaran/bspc/report"
	"github.com/katalvlaran/bspc/wad"
)

// fakeLevelArchive is a single in-memory level's worth of named lumps,
// shared as both the LumpReader and LumpWriter package wad expects.
type fakeLevelArchive struct {
	lumps map[string][]byte
}

func newFakeLevelArchive() *fakeLevelArchive {
	return &fakeLevelArchive{lumps: map[string][]byte{}}
}

func (f *fakeLevelArchive) Lump(name string) ([]byte, bool) {
	d, ok := f.lumps[name]
	return d, ok
}

func (f *fakeLevelArchive) WriteLump(name string, data []byte) error {
	f.lumps[name] = append([]byte(nil), data...)
	return nil
}

func encodeRecs(t *testing.T, recs any) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, recs))
	return buf.Bytes()
}

func squareRoomLumps(t *testing.T) *fakeLevelArchive {
	arc := newFakeLevelArchive()
	arc.lumps["VERTEXES"] = encodeRecs(t, []wad.VertexRec{
		{X: 0, Y: 0}, {X: 0, Y: 100}, {X: 100, Y: 100}, {X: 100, Y: 0},
	})
	arc.lumps["SECTORS"] = encodeRecs(t, []wad.SectorRec{{FloorHeight: 0, CeilHeight: 128, Light: 200}})
	arc.lumps["SIDEDEFS"] = encodeRecs(t, []wad.SidedefRec{
		{Sector: 0}, {Sector: 0}, {Sector: 0}, {Sector: 0},
	})
	arc.lumps["LINEDEFS"] = encodeRecs(t, []wad.LinedefDoomRec{
		{Start: 0, End: 1, Right: 0, Left: wad.NoRef},
		{Start: 1, End: 2, Right: 1, Left: wad.NoRef},
		{Start: 2, End: 3, Right: 2, Left: wad.NoRef},
		{Start: 3, End: 0, Right: 3, Left: wad.NoRef},
	})
	arc.lumps["THINGS"] = encodeRecs(t, []wad.ThingDoomRec{{X: 50, Y: 50, Type: 1}})
	return arc
}

// fakeArchive implements driver.Archive over a fixed set of named levels,
// each a fakeLevelArchive serving as both reader and writer.
type fakeArchive struct {
	names  []string
	levels map[string]*fakeLevelArchive
}

func (f *fakeArchive) Levels() []string                 { return f.names }
func (f *fakeArchive) Reader(name string) wad.LumpReader { return f.levels[name] }
func (f *fakeArchive) Writer(name string) wad.LumpWriter { return f.levels[name] }

type recordingCallbacks struct {
	messages []string
	fatals   []string
}

func (c *recordingCallbacks) Progress(float64)  {}
func (c *recordingCallbacks) Message(m string)  { c.messages = append(c.messages, m) }
func (c *recordingCallbacks) Fatal(m string)    { c.fatals = append(c.fatals, m) }

func TestCompileLevelSuccess(t *testing.T) {
	arc := squareRoomLumps(t)
	bctx := bsp.NewContext()
	rpt := &report.Report{}

	res, err := driver.CompileLevel(context.Background(), bctx, arc, arc, driver.Options{EmitGL: true}, rpt, 0, driver.NopCallbacks{})
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Len(t, res.Level.Sectors, 1)
	assert.NotNil(t, res.Blockmap)
	assert.NotNil(t, res.Reject)

	_, ok := arc.Lump("NODES")
	assert.True(t, ok)
	_, ok = arc.Lump("BLOCKMAP")
	assert.True(t, ok)
	_, ok = arc.Lump("REJECT")
	assert.True(t, ok)
	_, ok = arc.Lump("GL_NODES")
	assert.True(t, ok)
	_, ok = arc.Lump("GL_SEGS")
	assert.True(t, ok)
	_, ok = arc.Lump("GL_PVS")
	assert.True(t, ok)
}

func TestCompileLevelFastModeAfterFullPass(t *testing.T) {
	arc := squareRoomLumps(t)
	bctx := bsp.NewContext()
	rpt := &report.Report{}

	// First pass writes NODES back into the archive; the second pass runs
	// in fast mode against that archive. The square room is one convex
	// subsector, so the NODES lump holds no records and the fast pass has
	// no stale partition to reuse: it builds the tree in full.
	_, err := driver.CompileLevel(context.Background(), bctx, arc, arc, driver.Options{}, rpt, 0, nil)
	require.NoError(t, err)

	res, err := driver.CompileLevel(context.Background(), bctx, arc, arc, driver.Options{Fast: true}, rpt, 0, nil)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.NotNil(t, res.Tree)
}

func TestCompileLevelCancelledBeforeStart(t *testing.T) {
	arc := squareRoomLumps(t)
	bctx := bsp.NewContext()
	bctx.Cancel()
	rpt := &report.Report{}

	_, err := driver.CompileLevel(context.Background(), bctx, arc, arc, driver.Options{}, rpt, 0, driver.NopCallbacks{})
	assert.ErrorIs(t, err, driver.ErrCancelled)
}

func TestCompileAllContinuesPastLoadError(t *testing.T) {
	broken := newFakeLevelArchive() // missing every required lump
	good := squareRoomLumps(t)

	arc := &fakeArchive{
		names:  []string{"MAP01", "MAP02"},
		levels: map[string]*fakeLevelArchive{"MAP01": broken, "MAP02": good},
	}
	bctx := bsp.NewContext()
	cb := &recordingCallbacks{}

	outcomes, _, err := driver.CompileAll(context.Background(), bctx, arc, driver.Options{}, cb)
	require.NoError(t, err)
	require.Len(t, outcomes, 2)

	assert.Equal(t, "MAP01", outcomes[0].Name)
	assert.Error(t, outcomes[0].Err)
	assert.Nil(t, outcomes[0].Result)

	assert.Equal(t, "MAP02", outcomes[1].Name)
	assert.NoError(t, outcomes[1].Err)
	assert.NotNil(t, outcomes[1].Result)
}

func TestCompileAllStopsOnContextCancel(t *testing.T) {
	good := squareRoomLumps(t)
	arc := &fakeArchive{
		names:  []string{"MAP01", "MAP02"},
		levels: map[string]*fakeLevelArchive{"MAP01": good, "MAP02": good},
	}
	bctx := bsp.NewContext()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcomes, _, err := driver.CompileAll(ctx, bctx, arc, driver.Options{}, nil)
	require.NoError(t, err)
	require.Len(t, outcomes, 2)
	for _, o := range outcomes {
		assert.ErrorIs(t, o.Err, driver.ErrCancelled)
	}
}

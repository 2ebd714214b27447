package driver

import (
	"github.com/katalvlaran/bspc/blockmap"
	"github.com/katalvlaran/bspc/bsp"
	"github.com/katalvlaran/bspc/level"
	"github.com/katalvlaran/bspc/reject"
	"github.com/katalvlaran/bspc/report"
	"github.com/katalvlaran/bspc/wad"
)

// writeLevel emits every output lump for one compiled level: the
// canonicalised input lumps (with VERTEXES extended by the split points
// the build created, snapped to their integer twins so SEGS can
// reference them), the legacy NODES/SEGS/SSECTORS triple, BLOCKMAP,
// REJECT, and — when requested — the GL-nodes lump group.
func writeLevel(w wad.LumpWriter, lv *level.Level, t *bsp.Tree, grid *blockmap.Grid, matrix *reject.Matrix, bctx *bsp.Context, opts Options, rpt *report.Report, levelIdx int) error {
	lv.Vertices = t.SnapshotVertices()

	checkLimits(lv, t, rpt, levelIdx)

	if err := wad.WriteLevelLumps(w, lv); err != nil {
		return err
	}

	if _, err := wad.WriteSegs(w, t); err != nil {
		return err
	}
	if err := wad.WriteSubsectors(w, t); err != nil {
		return err
	}
	if err := wad.WriteNodes(w, t); err != nil {
		return err
	}

	if err := wad.WriteBlockmap(w, grid, rpt, levelIdx); err != nil {
		return err
	}

	if err := wad.WriteReject(w, matrix); err != nil {
		return err
	}

	if !opts.EmitGL {
		return nil
	}

	version := glVersion(bctx, t, rpt, levelIdx)
	if err := wad.WriteGLVert(w, t, version >= 5); err != nil {
		return err
	}
	if version >= 3 {
		if err := wad.WriteGLSegsV3(w, t); err != nil {
			return err
		}
	} else {
		if err := wad.WriteGLSegsV1(w, t); err != nil {
			return err
		}
	}
	if err := wad.WriteGLSubsectors(w, t); err != nil {
		return err
	}
	if err := wad.WriteGLNodes(w, t); err != nil {
		return err
	}

	return wad.WriteGLPVS(w)
}

// checkLimits records soft and hard overflows of the legacy format's
// 16-bit index ranges (spec.md §7's Overflow class). A node or
// subsector count past 0x7FFF is hard: the 0x8000 child bit makes such
// indices unrepresentable everywhere. A seg count past 0x7FFF is soft
// (ports reading the index as signed misbehave; most modern ones don't),
// past 0xFFFF hard.
func checkLimits(lv *level.Level, t *bsp.Tree, rpt *report.Report, levelIdx int) {
	if rpt == nil {
		return
	}

	if n := len(lv.Vertices); n > 0xFFFF {
		rpt.HardOverflow(levelIdx, "vertex-count", "%d vertices exceed the 16-bit index range", n)
	}

	segs := 0
	for _, ss := range t.Subsectors {
		segs += len(ss.Segs)
	}
	switch {
	case segs > 0xFFFF:
		rpt.HardOverflow(levelIdx, "seg-count", "%d segs exceed the 16-bit index range", segs)
	case segs > 0x7FFF:
		rpt.SoftOverflow(levelIdx, "seg-count", "%d segs exceed the signed 16-bit range", segs)
	}

	if n := len(t.Subsectors); n > 0x7FFF {
		rpt.HardOverflow(levelIdx, "subsector-count", "%d subsectors collide with the node child flag", n)
	}
	if n := len(t.Nodes); n > 0x7FFF {
		rpt.HardOverflow(levelIdx, "node-count", "%d nodes collide with the node child flag", n)
	}
}

// glVersion resolves the GL-nodes spec version to emit: the configured
// one, silently escalated to V5 when the GL vertex or seg counts no
// longer fit the V1/V2 16-bit record fields (spec.md §7's
// Overflow-triggered V2→V3/V5 upgrade).
func glVersion(bctx *bsp.Context, t *bsp.Tree, rpt *report.Report, levelIdx int) int {
	version := bctx.SpecVersion

	glSegs := 0
	for _, ss := range t.Subsectors {
		glSegs += len(ss.GLSegs)
	}
	glVerts := len(t.Vertices) - t.Level.NumNormalVert

	if version < 3 && (glVerts > 0x7FFF || len(t.Vertices) > 0xFFFF || glSegs > 0xFFFF) {
		version = 5
		if rpt != nil {
			rpt.SoftOverflow(levelIdx, "gl-format-upgrade",
				"GL counts (%d verts, %d segs) exceed V2 limits; upgrading to V5", glVerts, glSegs)
			rpt.UpgradedSpecVersion = version
		}
	}

	return version
}

package driver

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/bspc/analyse"
	"github.com/katalvlaran/bspc/blockmap"
	"github.com/katalvlaran/bspc/bsp"
	"github.com/katalvlaran/bspc/level"
	"github.com/katalvlaran/bspc/reject"
	"github.com/katalvlaran/bspc/report"
	"github.com/katalvlaran/bspc/wad"
)

// Options configures one CompileLevel invocation beyond the shared
// bsp.Context: the wire format, whether to skip the reject builder (the
// -noreject CLI flag's effect, spec.md §6), whether to emit GL-nodes
// lumps alongside the legacy ones, and whether to reuse any original
// NODES lump as stale partitions for a fast rebuild (spec.md §4.H step
// 5's fast/GL-only path).
//
// Hexen may be left false for Hexen-format input: a BEHAVIOR lump in
// the level forces Hexen decoding regardless (spec.md §6 names BEHAVIOR
// as the format signal).
type Options struct {
	Hexen    bool
	NoReject bool
	EmitGL   bool
	Fast     bool
}

// Result is everything one successful level compilation produced.
type Result struct {
	Level    *level.Level
	Tree     *bsp.Tree
	Blockmap *blockmap.Grid
	Reject   *reject.Matrix
}

// CompileLevel runs Load -> Analyse -> Build -> Finalise -> Blockmap ->
// Reject -> Write for one level (spec.md §4.L), recovering any internal
// Fatal panic at this single boundary (spec.md §7, §9) and turning it
// into ErrFatal plus a report.Entry rather than crashing the caller.
func CompileLevel(ctx context.Context, bctx *bsp.Context, r wad.LumpReader, w wad.LumpWriter, opts Options, rpt *report.Report, levelIdx int, cb Callbacks) (res *Result, err error) {
	if cb == nil {
		cb = NopCallbacks{}
	}

	defer func() {
		if rec := recover(); rec != nil {
			msg := fmt.Sprintf("level %d: internal invariant violated: %v", levelIdx, rec)
			rpt.Warn(levelIdx, "fatal", msg)
			cb.Fatal(msg)
			res, err = nil, fmt.Errorf("%w: %v", ErrFatal, rec)
		}
	}()

	if ctx.Err() != nil || bctx.Cancelled() {
		return nil, ErrCancelled
	}

	hexen := opts.Hexen
	if !hexen {
		_, hexen = r.Lump("BEHAVIOR")
	}

	lv, loadErr := wad.LoadLevel(r, hexen)
	if loadErr != nil {
		return nil, fmt.Errorf("level %d: %w", levelIdx, loadErr)
	}

	if err := analyse.Run(ctx, lv); err != nil {
		if errors.Is(err, analyse.ErrCancelled) {
			return nil, ErrCancelled
		}
		return nil, fmt.Errorf("level %d: analyse: %w", levelIdx, err)
	}
	for i := range lv.Linedefs {
		if lv.Linedefs[i].WindowEffect {
			rpt.Warn(levelIdx, "window-effect", "one-sided linedef %d faces an open sector", i)
		}
	}
	cb.Progress(0.3)

	var treeResult *bsp.Result
	if opts.Fast {
		stale, staleErr := wad.LoadStaleNodes(r)
		if staleErr != nil {
			rpt.Warn(levelIdx, "stale-nodes", "original NODES unusable, full rebuild: %v", staleErr)
		}
		treeResult, err = bsp.CompileFast(bctx, lv, stale, rpt, levelIdx)
	} else {
		treeResult, err = bsp.Compile(bctx, lv, rpt, levelIdx)
	}
	if err != nil {
		if errors.Is(err, bsp.ErrCancelled) {
			return nil, ErrCancelled
		}
		return nil, fmt.Errorf("level %d: bsp: %w", levelIdx, err)
	}
	if treeResult.DegenerateSegs > 0 {
		rpt.Warn(levelIdx, "degenerate-seg", "%d seg(s) became degenerate after integer rounding", treeResult.DegenerateSegs)
	}
	cb.Progress(0.6)

	grid, err := blockmap.Build(lv, bctx.MaxBlockmapCells, rpt, levelIdx)
	if err != nil {
		return nil, fmt.Errorf("level %d: blockmap: %w", levelIdx, err)
	}
	cb.Progress(0.8)

	var matrix *reject.Matrix
	if opts.NoReject {
		matrix = reject.NewMatrix(len(lv.Sectors))
	} else {
		matrix = reject.Build(lv)
	}

	if err := writeLevel(w, lv, treeResult.Tree, grid, matrix, bctx, opts, rpt, levelIdx); err != nil {
		return nil, fmt.Errorf("level %d: write: %w", levelIdx, err)
	}
	cb.Progress(1)

	return &Result{Level: lv, Tree: treeResult.Tree, Blockmap: grid, Reject: matrix}, nil
}

package bsp

import (
	"github.com/katalvlaran/bspc/level"
	"github.com/katalvlaran/bspc/report"
)

// Result is everything a successful Compile produces for one level: the
// output-side vertex/seg/subsector/node arena plus a diagnostic count of
// segs whose endpoints coincided after integer rounding.
type Result struct {
	Tree            *Tree
	DegenerateSegs  int
}

// Compile runs the full BSP pipeline for one analysed level: seed segs,
// recursively partition (components D-G, driven from recursor.go), then
// run the three finalisation sweeps and post-order node numbering
// (finalize.go). This is the single entry point package driver calls per
// level (spec.md §4.H-I, §2's component table).
//
// rpt/levelIdx may be nil/0 when the caller has no report to accumulate
// diagnostics into (e.g. a unit test exercising geometry alone).
func Compile(ctx *Context, lv *level.Level, rpt *report.Report, levelIdx int) (*Result, error) {
	return compile(ctx, lv, nil, rpt, levelIdx)
}

// CompileFast is Compile with a stale original node tree supplied
// (spec.md §4.H step 5): wherever the working seg set is still large
// (>= SegReuseThreshold real segs), the recursor first tries to reuse
// the stale partition at the matching depth before running the full
// picker, trading a little partition quality for a much cheaper rebuild.
func CompileFast(ctx *Context, lv *level.Level, stale *StaleNode, rpt *report.Report, levelIdx int) (*Result, error) {
	return compile(ctx, lv, stale, rpt, levelIdx)
}

func compile(ctx *Context, lv *level.Level, stale *StaleNode, rpt *report.Report, levelIdx int) (*Result, error) {
	t := NewTree(lv)

	if err := BuildTree(ctx, t, stale, rpt, levelIdx); err != nil {
		return nil, err
	}

	degenerate := t.Finalize(rpt, levelIdx)

	return &Result{Tree: t, DegenerateSegs: degenerate}, nil
}

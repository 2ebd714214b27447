package driver

import (
	"context"
	"errors"

	"github.com/katalvlaran/bspc/bsp"
	"github.com/katalvlaran/bspc/report"
)

// LevelOutcome is one level's result within a CompileAll run: exactly one
// of Result or Err is set.
type LevelOutcome struct {
	Name   string
	Result *Result
	Err    error
}

// CompileAll runs CompileLevel over every level an Archive reports, in
// order. A Load error or a Cancelled outcome abandons only that level
// (spec.md §7) and CompileAll continues to the next one; a Fatal error
// aborts the whole run immediately, since it signals an internal
// invariant the rest of the batch cannot be trusted against.
func CompileAll(ctx context.Context, bctx *bsp.Context, arc Archive, opts Options, cb Callbacks) ([]LevelOutcome, *report.Report, error) {
	if cb == nil {
		cb = NopCallbacks{}
	}
	rpt := &report.Report{}

	var outcomes []LevelOutcome
	for i, name := range arc.Levels() {
		if ctx.Err() != nil || bctx.Cancelled() {
			outcomes = append(outcomes, LevelOutcome{Name: name, Err: ErrCancelled})
			continue
		}

		cb.Message("compiling " + name)
		res, err := CompileLevel(ctx, bctx, arc.Reader(name), arc.Writer(name), opts, rpt, i, cb)
		if err != nil {
			if errors.Is(err, ErrFatal) {
				outcomes = append(outcomes, LevelOutcome{Name: name, Err: err})
				return outcomes, rpt, err
			}
			outcomes = append(outcomes, LevelOutcome{Name: name, Err: err})
			continue
		}
		outcomes = append(outcomes, LevelOutcome{Name: name, Result: res})
	}

	return outcomes, rpt, nil
}

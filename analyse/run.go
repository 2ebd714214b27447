package analyse

import (
	"context"

	"github.com/katalvlaran/bspc/level"
)

// Run executes the nine-step analysis pipeline from spec.md §4.C, in the
// fixed order later steps depend on:
//
//  1. Detect duplicate vertices
//  2. Detect duplicate sidedefs
//  3. Prune linedefs (chase equivalences, drop zero-length)
//  4. Prune vertices
//  5. Prune sidedefs & sectors
//  6. Build the wall-tip fan
//  7. Detect linedef overlaps
//  8. Detect window-effect one-sided linedefs
//  9. Group Hexen polyobject lines
//
// ctx is polled between every step (spec.md §5's cancellation model); a
// cancelled context aborts with ErrCancelled and the level is left in
// whatever partially-pruned state the last completed step produced — the
// driver (package driver) discards it rather than resuming.
func Run(ctx context.Context, lv *level.Level) error {
	if lv == nil {
		return ErrLevelNil
	}

	markPreciousTags(lv)
	markCoalesceSectors(lv)

	steps := []func(*level.Level) error{
		func(l *level.Level) error { detectDuplicateVertices(l); return nil },
		func(l *level.Level) error { detectDuplicateSidedefs(l); return nil },
		func(l *level.Level) error { pruneLinedefs(l); return nil },
		func(l *level.Level) error { pruneVertices(l); return nil },
		func(l *level.Level) error {
			pruneSidedefs(l)
			pruneSectors(l)

			return nil
		},
		buildWallTipFan,
		detectOverlaps,
		detectWindowEffect,
		func(l *level.Level) error { groupPolyobjs(l); return nil },
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return ErrCancelled
		}
		if err := step(lv); err != nil {
			return err
		}
	}

	return nil
}

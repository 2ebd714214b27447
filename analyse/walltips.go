package analyse

import (
	"github.com/katalvlaran/bspc/level"
	"github.com/katalvlaran/bspc/numeric"
)

// buildWallTipFan implements spec.md §4.C step 6: for every linedef,
// record a tip at each endpoint carrying the outbound direction and the
// sectors open to either side, keeping each vertex's circular tip list
// sorted by ascending angle.
//
// Left/Right convention: looking from a tip's vertex outward along its
// Angle, Right names the sector on the line's front (right) side and
// Left the back side — which, at the line's End vertex, is the mirror of
// the Start vertex's sense because the outbound direction there is
// reversed by 180 degrees.
//
// Complexity: O(n log k) where k is the average tips-per-vertex fan size.
func buildWallTipFan(lv *level.Level) error {
	for i := range lv.Linedefs {
		ld := &lv.Linedefs[i]
		sv, err := lv.Vertex(ld.Start)
		if err != nil {
			return err
		}
		ev, err := lv.Vertex(ld.End)
		if err != nil {
			return err
		}

		front := level.NoIndex
		if ld.FrontSide != level.NoIndex {
			front = lv.Sidedefs[ld.FrontSide].Sector
		}
		back := level.NoIndex
		if ld.BackSide != level.NoIndex {
			back = lv.Sidedefs[ld.BackSide].Sector
		}

		angleFwd := numeric.Angle(ev.X-sv.X, ev.Y-sv.Y)
		angleBack := angleFwd + 180.0
		if angleBack >= 360.0 {
			angleBack -= 360.0
		}

		startTip := lv.NewWallTip(ld.Start, ld.Index, angleFwd, back, front)
		insertWallTip(lv, ld.Start, startTip)

		endTip := lv.NewWallTip(ld.End, ld.Index, angleBack, front, back)
		insertWallTip(lv, ld.End, endTip)
	}

	return nil
}

// insertWallTip splices tip into vertex's circular, angle-sorted wall-tip
// ring, creating the ring if this is the vertex's first tip.
func insertWallTip(lv *level.Level, vertexIdx, tipIdx int) {
	v := &lv.Vertices[vertexIdx]
	tip := lv.WallTip(tipIdx)

	if v.Tips == level.NoIndex {
		tip.Next, tip.Prev = tipIdx, tipIdx
		v.Tips = tipIdx

		return
	}

	// Walk the ring to find the first tip whose angle is >= tip.Angle;
	// insert immediately before it. A tiny ring (a handful of tips per
	// vertex in practice) makes a linear scan the simplest correct choice.
	head := v.Tips
	cur := head
	for {
		curTip := lv.WallTip(cur)
		if curTip.Angle >= tip.Angle {
			break
		}
		cur = curTip.Next
		if cur == head {
			break
		}
	}

	curTip := lv.WallTip(cur)
	prev := curTip.Prev
	prevTip := lv.WallTip(prev)

	tip.Next = cur
	tip.Prev = prev
	prevTip.Next = tipIdx
	curTip.Prev = tipIdx

	if cur == head && tip.Angle < curTip.Angle {
		v.Tips = tipIdx
	}
}

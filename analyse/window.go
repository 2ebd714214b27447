package analyse

import "github.com/katalvlaran/bspc/level"

// oddOneSidedTipsWithTwoSided reports whether vertex vidx's wall-tip fan
// has an odd number of one-sided tips and at least one two-sided tip —
// the topological signature spec.md §4.C step 8 requires before a
// one-sided linedef there is even considered a window-effect candidate.
func oddOneSidedTipsWithTwoSided(lv *level.Level, vidx int) bool {
	v := &lv.Vertices[vidx]
	if v.Tips == level.NoIndex {
		return false
	}

	oneSided, twoSided := 0, 0
	head := v.Tips
	cur := head
	for {
		tip := lv.WallTip(cur)
		ld := &lv.Linedefs[tip.Linedef]
		if ld.IsOneSided() {
			oneSided++
		} else {
			twoSided++
		}
		cur = tip.Next
		if cur == head {
			break
		}
	}

	return oneSided%2 == 1 && twoSided > 0
}

// castWindowRay casts an axis-aligned ray in +X from (mx, my) and reports
// whether the nearest two-sided linedef it crosses belongs to an open
// (real) sector — i.e. whether the ray hits anything at all before
// escaping the level's extent, which is the signature of a one-sided wall
// that faces open interior space rather than the map's void exterior.
func castWindowRay(lv *level.Level, mx, my float64, skip int) (hit bool, sector int) {
	bestX := 0.0
	found := false
	bestSector := level.NoIndex

	for i := range lv.Linedefs {
		if i == skip {
			continue
		}
		ld := &lv.Linedefs[i]
		if ld.IsOneSided() {
			continue
		}
		sv, err1 := lv.Vertex(ld.Start)
		ev, err2 := lv.Vertex(ld.End)
		if err1 != nil || err2 != nil {
			continue
		}

		loY, hiY := sv.Y, ev.Y
		if loY > hiY {
			loY, hiY = hiY, loY
		}
		if my < loY || my > hiY || loY == hiY {
			continue // horizontal or doesn't straddle the ray's row
		}

		t := (my - sv.Y) / (ev.Y - sv.Y)
		x := sv.X + t*(ev.X-sv.X)
		if x <= mx {
			continue // behind the ray origin
		}
		if !found || x < bestX {
			found = true
			bestX = x
			bestSector = lv.Sidedefs[ld.FrontSide].Sector
		}
	}

	return found, bestSector
}

// detectWindowEffect implements spec.md §4.C step 8: every one-sided
// linedef whose endpoints show the odd-tip-count signature gets an
// axis-aligned ray cast from its midpoint; if the nearest hit belongs to
// an open sector the line is marked WindowEffect.
//
// Complexity: O(n^2) worst case (each candidate ray scans every two-sided
// linedef); levels are small enough (≈O(1000) linedefs) for this to be
// acceptable, matching spec.md §1's scale assumption.
func detectWindowEffect(lv *level.Level) error {
	for i := range lv.Linedefs {
		ld := &lv.Linedefs[i]
		if !ld.IsOneSided() {
			continue
		}
		if !oddOneSidedTipsWithTwoSided(lv, ld.Start) && !oddOneSidedTipsWithTwoSided(lv, ld.End) {
			continue
		}

		sv, err := lv.Vertex(ld.Start)
		if err != nil {
			return err
		}
		ev, err := lv.Vertex(ld.End)
		if err != nil {
			return err
		}
		mx, my := (sv.X+ev.X)/2, (sv.Y+ev.Y)/2

		if hit, sector := castWindowRay(lv, mx, my, ld.Index); hit {
			ld.WindowEffect = true
			_ = sector
		}
	}

	return nil
}

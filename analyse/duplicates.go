package analyse

import (
	"sort"

	"github.com/katalvlaran/bspc/level"
)

// markSpecialSidedefs flags every sidedef attached to a linedef bearing an
// interactive type (Doom) or action special (Hexen) as Special, so the
// duplicate-sidedef pass below never merges it away. Must run before
// detectDuplicateSidedefs.
func markSpecialSidedefs(lv *level.Level) {
	for _, ld := range lv.Linedefs {
		isSpecial := ld.Type != 0 || ld.Special != 0
		if !isSpecial {
			continue
		}
		if ld.FrontSide != level.NoIndex {
			lv.Sidedefs[ld.FrontSide].Special = true
		}
		if ld.BackSide != level.NoIndex {
			lv.Sidedefs[ld.BackSide].Special = true
		}
	}
}

// detectDuplicateVertices implements spec.md §4.C step 1: sort vertex
// indices by (truncated X, truncated Y), then map every vertex in a run of
// adjacent equals onto the first (canonical) index of that run via Equiv.
//
// Complexity: O(n log n).
func detectDuplicateVertices(lv *level.Level) {
	n := len(lv.Vertices)
	if n == 0 {
		return
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	key := func(i int) (int64, int64) {
		return int64(lv.Vertices[i].X), int64(lv.Vertices[i].Y)
	}
	sort.Slice(order, func(i, j int) bool {
		xi, yi := key(order[i])
		xj, yj := key(order[j])
		if xi != xj {
			return xi < xj
		}

		return yi < yj
	})

	canon := order[0]
	cx, cy := key(canon)
	for _, idx := range order[1:] {
		x, y := key(idx)
		if x == cx && y == cy {
			lv.Vertices[idx].Equiv = canon
			continue
		}
		canon = idx
		cx, cy = x, y
	}
}

// detectDuplicateSidedefs implements spec.md §4.C step 2: sort non-special
// sidedef indices by (sector, offset, textures); adjacent equals are
// merged via Equiv, same as vertices.
//
// Complexity: O(n log n).
func detectDuplicateSidedefs(lv *level.Level) {
	markSpecialSidedefs(lv)

	candidates := make([]int, 0, len(lv.Sidedefs))
	for i, sd := range lv.Sidedefs {
		if !sd.Special {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return
	}

	type skey struct {
		sector           int
		xoff, yoff       int
		upper, lower, mid string
	}
	keyOf := func(i int) skey {
		sd := lv.Sidedefs[i]

		return skey{sd.Sector, sd.XOff, sd.YOff, sd.UpperTex, sd.LowerTex, sd.MidTex}
	}
	less := func(a, b skey) bool {
		if a.sector != b.sector {
			return a.sector < b.sector
		}
		if a.xoff != b.xoff {
			return a.xoff < b.xoff
		}
		if a.yoff != b.yoff {
			return a.yoff < b.yoff
		}
		if a.upper != b.upper {
			return a.upper < b.upper
		}
		if a.lower != b.lower {
			return a.lower < b.lower
		}

		return a.mid < b.mid
	}

	sort.Slice(candidates, func(i, j int) bool {
		return less(keyOf(candidates[i]), keyOf(candidates[j]))
	})

	canon := candidates[0]
	ck := keyOf(canon)
	for _, idx := range candidates[1:] {
		k := keyOf(idx)
		if k == ck {
			lv.Sidedefs[idx].Equiv = canon
			continue
		}
		canon = idx
		ck = k
	}
}

package reject

import "github.com/katalvlaran/bspc/level"

// Build computes the full reject matrix for lv (spec.md §4.K): every
// sector starts in its own group; every two-sided linedef with both
// sides present unions its two sectors' groups; the output matrix marks
// (i,j) and its symmetric (j,i) as "cannot see" exactly when i and j
// ended up in different groups.
func Build(lv *level.Level) *Matrix {
	n := len(lv.Sectors)
	m := NewMatrix(n)
	if n == 0 {
		return m
	}

	for i := range lv.Linedefs {
		ld := &lv.Linedefs[i]
		if ld.FrontSide == level.NoIndex || ld.BackSide == level.NoIndex {
			continue
		}
		front := lv.Sidedefs[ld.FrontSide].Sector
		back := lv.Sidedefs[ld.BackSide].Sector
		if front == back {
			continue
		}
		union(lv.Sectors, front, back)
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if lv.Sectors[i].RejectGroup != lv.Sectors[j].RejectGroup {
				m.Set(i, j)
				m.Set(j, i)
			}
		}
	}

	return m
}

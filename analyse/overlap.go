package analyse

import "github.com/katalvlaran/bspc/level"

// detectOverlaps implements spec.md §4.C step 7: any two linedefs whose
// endpoints span the same lower-left/upper-right corners overlap each
// other exactly. All but the first-seen in each such group are marked
// OverlapOf and must be skipped by seg creation (package bsp).
//
// Complexity: O(n) with a map keyed on the corner pair.
func detectOverlaps(lv *level.Level) error {
	type corner struct{ lx, ly, ux, uy float64 }
	seen := make(map[corner]int, len(lv.Linedefs))

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

		lx, ux := sv.X, ev.X
		if lx > ux {
			lx, ux = ux, lx
		}
		ly, uy := sv.Y, ev.Y
		if ly > uy {
			ly, uy = uy, ly
		}
		key := corner{lx, ly, ux, uy}

		if canon, ok := seen[key]; ok {
			ld.OverlapOf = canon
			continue
		}
		seen[key] = ld.Index
	}

	return nil
}

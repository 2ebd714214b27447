package analyse

import "github.com/katalvlaran/bspc/level"

// preciousTagLow and preciousTagHigh bound the tag range spec.md's data
// model calls out as "precious" regardless of polyobject membership:
// [900, 1000).
const (
	preciousTagLow  = 900
	preciousTagHigh = 1000
)

// markPreciousTags flags every linedef whose Tag falls in [900, 1000) as
// Precious, independent of the polyobject grouping pass.
func markPreciousTags(lv *level.Level) {
	for i := range lv.Linedefs {
		tag := int(lv.Linedefs[i].Tag)
		if tag >= preciousTagLow && tag < preciousTagHigh {
			lv.Linedefs[i].Precious = true
		}
	}
}

// markCoalesceSectors flags every sector whose Tag falls in [900, 1000)
// as Coalesce, permitting segs from other sectors into the same
// subsector (spec.md §3's Sector entity).
func markCoalesceSectors(lv *level.Level) {
	for i := range lv.Sectors {
		tag := int(lv.Sectors[i].Tag)
		if tag >= preciousTagLow && tag < preciousTagHigh {
			lv.Sectors[i].Coalesce = true
		}
	}
}

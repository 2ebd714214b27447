package analyse

import "github.com/katalvlaran/bspc/level"

// pruneLinedefs implements spec.md §4.C step 3: resolve every linedef's
// endpoint and sidedef references through their equivalence chains, then
// drop any linedef that has become zero-length as a result (both
// endpoints resolving to the same canonical vertex).
//
// Complexity: O(n).
func pruneLinedefs(lv *level.Level) {
	kept := lv.Linedefs[:0]
	for _, ld := range lv.Linedefs {
		ld.Start = lv.ResolveVertex(ld.Start)
		ld.End = lv.ResolveVertex(ld.End)
		if ld.FrontSide != level.NoIndex {
			ld.FrontSide = lv.ResolveSidedef(ld.FrontSide)
		}
		if ld.BackSide != level.NoIndex {
			ld.BackSide = lv.ResolveSidedef(ld.BackSide)
		}
		if ld.Start == ld.End {
			ld.ZeroLength = true
			continue // dropped
		}
		ld.TwoSided = ld.BackSide != level.NoIndex
		ld.SelfRef = ld.TwoSided &&
			lv.Sidedefs[ld.FrontSide].Sector == lv.Sidedefs[ld.BackSide].Sector
		kept = append(kept, ld)
	}
	lv.Linedefs = kept
	for i := range lv.Linedefs {
		lv.Linedefs[i].Index = i
	}
}

// pruneVertices implements spec.md §4.C step 4: recompute vertex ref
// counts from the surviving linedef endpoints, drop ref-count-zero
// vertices, renumber survivors, and set lv.NumNormalVert.
//
// Complexity: O(n).
func pruneVertices(lv *level.Level) {
	refs := make([]int, len(lv.Vertices))
	for _, ld := range lv.Linedefs {
		refs[ld.Start]++
		refs[ld.End]++
	}

	remap := make([]int, len(lv.Vertices))
	kept := lv.Vertices[:0]
	for i, v := range lv.Vertices {
		if refs[i] == 0 {
			remap[i] = level.NoIndex
			continue
		}
		v.RefCount = refs[i]
		v.Index = len(kept)
		remap[i] = v.Index
		kept = append(kept, v)
	}
	lv.Vertices = kept
	lv.NumNormalVert = len(lv.Vertices)

	for i := range lv.Linedefs {
		lv.Linedefs[i].Start = remap[lv.Linedefs[i].Start]
		lv.Linedefs[i].End = remap[lv.Linedefs[i].End]
	}
}

// pruneSidedefs implements spec.md §4.C step 5 (sidedef half): recompute
// sidedef ref counts from surviving linedef front/back references, drop
// ref-count-zero sidedefs, and renumber survivors.
//
// Complexity: O(n).
func pruneSidedefs(lv *level.Level) {
	refs := make([]int, len(lv.Sidedefs))
	for _, ld := range lv.Linedefs {
		if ld.FrontSide != level.NoIndex {
			refs[ld.FrontSide]++
		}
		if ld.BackSide != level.NoIndex {
			refs[ld.BackSide]++
		}
	}

	remap := make([]int, len(lv.Sidedefs))
	kept := lv.Sidedefs[:0]
	for i, sd := range lv.Sidedefs {
		if refs[i] == 0 {
			remap[i] = level.NoIndex
			continue
		}
		sd.RefCount = refs[i]
		sd.Index = len(kept)
		remap[i] = sd.Index
		kept = append(kept, sd)
	}
	lv.Sidedefs = kept

	for i := range lv.Linedefs {
		if lv.Linedefs[i].FrontSide != level.NoIndex {
			lv.Linedefs[i].FrontSide = remap[lv.Linedefs[i].FrontSide]
		}
		if lv.Linedefs[i].BackSide != level.NoIndex {
			lv.Linedefs[i].BackSide = remap[lv.Linedefs[i].BackSide]
		}
	}
}

// pruneSectors implements spec.md §4.C step 5 (sector half): recompute
// sector ref counts from surviving sidedefs, drop ref-count-zero sectors,
// and renumber survivors.
//
// Complexity: O(n).
func pruneSectors(lv *level.Level) {
	refs := make([]int, len(lv.Sectors))
	for _, sd := range lv.Sidedefs {
		refs[sd.Sector]++
	}

	remap := make([]int, len(lv.Sectors))
	kept := lv.Sectors[:0]
	for i, s := range lv.Sectors {
		if refs[i] == 0 {
			remap[i] = level.NoIndex
			continue
		}
		s.RefCount = refs[i]
		s.Index = len(kept)
		s.RejectGroup = s.Index
		s.RejectRing = level.NoIndex
		remap[i] = s.Index
		kept = append(kept, s)
	}
	lv.Sectors = kept

	for i := range lv.Sidedefs {
		lv.Sidedefs[i].Sector = remap[lv.Sidedefs[i].Sector]
	}
}

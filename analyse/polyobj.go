package analyse

import "github.com/katalvlaran/bspc/level"

// groupPolyobjs implements spec.md §4.C step 9 (Hexen only): for every
// polyobject anchor Thing, locate its tag's starting or explicit line(s),
// flood-fill the remaining member lines by endpoint connectivity (start
// mode) or explicit ordering (explicit mode), and record a level.Polyobj.
// Every member line is marked Precious; a member line with a back side
// gains DontPegBottom on that sidedef, matching the legacy Hexen
// convention for polyobject walls that must not scroll with the object.
//
// Complexity: O(p * n) for p polyobjects over n linedefs; levels carry at
// most a handful of polyobjects.
func groupPolyobjs(lv *level.Level) {
	if !lv.Hexen {
		return
	}

	for _, th := range lv.Things {
		if th.Type != level.PolyobjDoomedNumAnchor &&
			th.Type != level.PolyobjDoomedNumSpawn &&
			th.Type != level.PolyobjDoomedNumSpawnCrush {
			continue
		}
		tag := int(th.Angle)

		if po, ok := groupExplicit(lv, tag); ok {
			finishPolyobj(lv, po)
			continue
		}
		if po, ok := groupByStartChain(lv, tag); ok {
			finishPolyobj(lv, po)
		}
	}
}

// groupExplicit collects every linedef tagged PO_LINE_EXPLICIT for tag,
// ordered by its arg[1] explicit order index.
func groupExplicit(lv *level.Level, tag int) (level.Polyobj, bool) {
	type member struct {
		line, order int
	}
	var members []member
	for i := range lv.Linedefs {
		ld := &lv.Linedefs[i]
		if int(ld.Special) != level.HexenLinePolyobjExplicit {
			continue
		}
		if int(ld.Args[0]) != tag {
			continue
		}
		members = append(members, member{i, int(ld.Args[1])})
	}
	if len(members) == 0 {
		return level.Polyobj{}, false
	}

	// Insertion sort by order: polyobjects have a handful of lines.
	for i := 1; i < len(members); i++ {
		for j := i; j > 0 && members[j].order < members[j-1].order; j-- {
			members[j], members[j-1] = members[j-1], members[j]
		}
	}

	po := level.Polyobj{Tag: tag}
	seqLine := &lv.Linedefs[members[0].line]
	po.SequenceType = int(seqLine.Args[2])
	for _, m := range members {
		po.Lines = append(po.Lines, m.line)
	}

	return po, true
}

// groupByStartChain locates the PO_LINE_START line for tag, then walks
// connected linedefs end-vertex-to-start-vertex until the loop closes
// back on the start line's own start vertex.
func groupByStartChain(lv *level.Level, tag int) (level.Polyobj, bool) {
	startIdx := level.NoIndex
	for i := range lv.Linedefs {
		ld := &lv.Linedefs[i]
		if int(ld.Special) == level.HexenLinePolyobjStart && int(ld.Args[0]) == tag {
			startIdx = i
			break
		}
	}
	if startIdx == level.NoIndex {
		return level.Polyobj{}, false
	}

	start := &lv.Linedefs[startIdx]
	po := level.Polyobj{Tag: tag, SequenceType: int(start.Args[2])}
	po.Lines = append(po.Lines, startIdx)

	visited := map[int]bool{startIdx: true}
	cur := start
	for cur.End != start.Start {
		next := level.NoIndex
		for i := range lv.Linedefs {
			if visited[i] {
				continue
			}
			if lv.Linedefs[i].Start == cur.End {
				next = i
				break
			}
		}
		if next == level.NoIndex {
			return level.Polyobj{}, false // chain does not close: abandon
		}
		visited[next] = true
		po.Lines = append(po.Lines, next)
		cur = &lv.Linedefs[next]
	}

	return po, true
}

// finishPolyobj marks every member line Precious and, for members with a
// back sidedef, sets DontPegBottom on that sidedef, then records the
// polyobject on the level.
func finishPolyobj(lv *level.Level, po level.Polyobj) {
	for _, li := range po.Lines {
		ld := &lv.Linedefs[li]
		ld.Precious = true
		ld.PolyobjOwner = true
		ld.PolyobjTag = po.Tag
		if ld.BackSide != level.NoIndex {
			lv.Sidedefs[ld.BackSide].DontPegBottom = true
		}
	}
	lv.Polyobjs = append(lv.Polyobjs, po)
}

package wad

import "github.com/katalvlaran/bspc/level"

// WriteLevelLumps re-emits the canonicalised VERTEXES, SECTORS, SIDEDEFS,
// LINEDEFS, and THINGS lumps from lv's (possibly pruned) post-analysis
// state, in the Doom or Hexen wire shape matching lv.Hexen. Run before
// analyse.Run (with pruning disabled) this reproduces the input
// byte-for-byte, per spec.md §8's round-trip property; run after, it
// reflects every dedup/prune decision the analyser made.
func WriteLevelLumps(w LumpWriter, lv *level.Level) error {
	if err := writeVertexesFromLevel(w, lv); err != nil {
		return err
	}
	if err := writeSectorsFromLevel(w, lv); err != nil {
		return err
	}
	if err := writeSidedefsFromLevel(w, lv); err != nil {
		return err
	}
	if lv.Hexen {
		if err := writeLinedefsHexenFromLevel(w, lv); err != nil {
			return err
		}
		return writeThingsHexenFromLevel(w, lv)
	}
	if err := writeLinedefsDoomFromLevel(w, lv); err != nil {
		return err
	}

	return writeThingsDoomFromLevel(w, lv)
}

func refOrSentinel(idx int) uint16 {
	if idx == level.NoIndex {
		return NoRef
	}

	return uint16(idx)
}

func writeVertexesFromLevel(w LumpWriter, lv *level.Level) error {
	recs := make([]VertexRec, len(lv.Vertices))
	for i, v := range lv.Vertices {
		recs[i] = VertexRec{X: int16(v.X), Y: int16(v.Y)}
	}

	return w.WriteLump("VERTEXES", encode(recs))
}

func writeSectorsFromLevel(w LumpWriter, lv *level.Level) error {
	recs := make([]SectorRec, len(lv.Sectors))
	for i, s := range lv.Sectors {
		recs[i] = SectorRec{
			FloorHeight: int16(s.FloorHeight), CeilHeight: int16(s.CeilHeight),
			FloorTex: [8]byte(clampString(s.FloorTex, 8)), CeilTex: [8]byte(clampString(s.CeilTex, 8)),
			Light: uint16(s.Light), Special: uint16(s.Special), Tag: s.Tag,
		}
	}

	return w.WriteLump("SECTORS", encode(recs))
}

func writeSidedefsFromLevel(w LumpWriter, lv *level.Level) error {
	recs := make([]SidedefRec, len(lv.Sidedefs))
	for i, s := range lv.Sidedefs {
		recs[i] = SidedefRec{
			XOff: int16(s.XOff), YOff: int16(s.YOff),
			Upper: [8]byte(clampString(s.UpperTex, 8)), Lower: [8]byte(clampString(s.LowerTex, 8)),
			Middle: [8]byte(clampString(s.MidTex, 8)), Sector: uint16(s.Sector),
		}
	}

	return w.WriteLump("SIDEDEFS", encode(recs))
}

func writeLinedefsDoomFromLevel(w LumpWriter, lv *level.Level) error {
	recs := make([]LinedefDoomRec, len(lv.Linedefs))
	for i, ld := range lv.Linedefs {
		recs[i] = LinedefDoomRec{
			Start: uint16(ld.Start), End: uint16(ld.End), Flags: ld.Flags,
			Type: ld.Type, Tag: ld.Tag,
			Right: refOrSentinel(ld.FrontSide), Left: refOrSentinel(ld.BackSide),
		}
	}

	return w.WriteLump("LINEDEFS", encode(recs))
}

func writeLinedefsHexenFromLevel(w LumpWriter, lv *level.Level) error {
	recs := make([]LinedefHexenRec, len(lv.Linedefs))
	for i, ld := range lv.Linedefs {
		recs[i] = LinedefHexenRec{
			Start: uint16(ld.Start), End: uint16(ld.End), Flags: ld.Flags,
			Special: ld.Special, Args: ld.Args,
			Right: refOrSentinel(ld.FrontSide), Left: refOrSentinel(ld.BackSide),
		}
	}

	return w.WriteLump("LINEDEFS", encode(recs))
}

func writeThingsDoomFromLevel(w LumpWriter, lv *level.Level) error {
	recs := make([]ThingDoomRec, len(lv.Things))
	for i, t := range lv.Things {
		recs[i] = ThingDoomRec{
			X: int16(t.X), Y: int16(t.Y), Angle: int16(t.Angle),
			Type: t.Type, Flags: t.Flags,
		}
	}

	return w.WriteLump("THINGS", encode(recs))
}

func writeThingsHexenFromLevel(w LumpWriter, lv *level.Level) error {
	recs := make([]ThingHexenRec, len(lv.Things))
	for i, t := range lv.Things {
		recs[i] = ThingHexenRec{
			TID: t.TID, X: int16(t.X), Y: int16(t.Y), Height: t.Height,
			Angle: int16(t.Angle), Type: t.Type, Options: t.Options,
			Special: t.Special, Args: t.Args,
		}
	}

	return w.WriteLump("THINGS", encode(recs))
}

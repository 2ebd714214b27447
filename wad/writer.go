package wad

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/katalvlaran/bspc/blockmap"
	"github.com/katalvlaran/bspc/bsp"
	"github.com/katalvlaran/bspc/reject"
	"github.com/katalvlaran/bspc/report"
)

// LumpWriter appends a named lump to whatever the host currently
// considers "the current level" (spec.md §6). Actually persisting an
// archive to disk is the host's responsibility.
type LumpWriter interface {
	WriteLump(name string, data []byte) error
}

// clampString returns s truncated to n bytes and right-padded with NULs
// to exactly n bytes, the fixed-width, non-terminated wire convention
// spec.md §6's SIDEDEFS/SECTORS texture fields use.
func clampString(s string, n int) []byte {
	out := make([]byte, n)
	copy(out, s)

	return out
}

func bam(angleDeg float64) uint16 {
	for angleDeg < 0 {
		angleDeg += 360
	}
	for angleDeg >= 360 {
		angleDeg -= 360
	}

	return uint16(uint32(angleDeg*65536/360) & 0xFFFF)
}

func encode(recs ...any) []byte {
	var buf bytes.Buffer
	for _, r := range recs {
		_ = binary.Write(&buf, binary.LittleEndian, r)
	}

	return buf.Bytes()
}

// WriteVertexes emits the VERTEXES lump in index order (spec.md §6).
func WriteVertexes(w LumpWriter, verts []VertexRec) error {
	return w.WriteLump("VERTEXES", encode(verts))
}

// WriteSegs emits the SEGS lump for the normalised (miniseg-free) tree
// built by package bsp's Finalize, walking subsectors in index order so
// the seg run matches each SSECTORS record's first_seg_idx.
func WriteSegs(w LumpWriter, t *bsp.Tree) ([]SegRec, error) {
	recs := make([]SegRec, 0, len(t.Segs))
	for _, ss := range t.Subsectors {
		for _, s := range ss.Segs {
			vs := t.Vertex(s.StartV)
			ld := t.Level.Linedefs[s.Linedef]
			anchor := t.Vertex(ld.Start)
			along := int(math.Round(numericDist(anchor.RoundX, anchor.RoundY, vs.RoundX, vs.RoundY)))
			recs = append(recs, SegRec{
				StartV:    uint16(s.StartV),
				EndV:      uint16(s.EndV),
				Angle:     bam(s.Angle),
				Linedef:   uint16(s.Linedef),
				Flip:      uint16(s.Side),
				AlongDist: uint16(along),
			})
		}
	}

	return recs, w.WriteLump("SEGS", encode(recs))
}

func numericDist(x0, y0, x1, y1 int) float64 {
	dx := float64(x1 - x0)
	dy := float64(y1 - y0)

	return math.Hypot(dx, dy)
}


// WriteSubsectors emits the SSECTORS lump for the normalised tree.
func WriteSubsectors(w LumpWriter, t *bsp.Tree) error {
	recs := make([]SubsectorRec, 0, len(t.Subsectors))
	first := 0
	for _, ss := range t.Subsectors {
		recs = append(recs, SubsectorRec{NumSegs: uint16(len(ss.Segs)), FirstSeg: uint16(first)})
		first += len(ss.Segs)
	}

	return w.WriteLump("SSECTORS", encode(recs))
}

// WriteNodes emits the NODES lump in post-order (spec.md §4.I, §6): every
// child index is less than its parent's, and a 0x8000 high bit marks a
// subsector reference.
func WriteNodes(w LumpWriter, t *bsp.Tree) error {
	recs := make([]NodeRec, len(t.Nodes))

	var walk func(n *bsp.Node) uint16
	walk = func(n *bsp.Node) uint16 {
		if n == nil {
			return 0
		}
		var right, left uint16
		if n.RightSub != nil {
			right = NodeChildSubsector | uint16(n.RightSub.Index)
		} else {
			right = walk(n.RightNode)
		}
		if n.LeftSub != nil {
			left = NodeChildSubsector | uint16(n.LeftSub.Index)
		} else {
			left = walk(n.LeftNode)
		}

		dx, dy := n.DX, n.DY
		if n.TooLong {
			dx /= 2
			dy /= 2
		}

		recs[n.Index] = NodeRec{
			X: int16(n.X), Y: int16(n.Y), DX: int16(dx), DY: int16(dy),
			RightBox: boxRec(n.RightBox), LeftBox: boxRec(n.LeftBox),
			Right: right, Left: left,
		}

		return uint16(n.Index)
	}

	if t.Root != nil {
		walk(t.Root)
	}

	return w.WriteLump("NODES", encode(recs))
}

func boxRec(b bsp.Box) [4]int16 {
	return [4]int16{int16(b.MaxY), int16(b.MinY), int16(b.MinX), int16(b.MaxX)}
}

// WriteBlockmap emits the BLOCKMAP lump: header, offset table, the shared
// null blocklist, then every other deduplicated blocklist, matching
// spec.md §4.J/§6's layout. rpt/levelIdx are used only to surface an
// offset overflow (>65535) as a report.Entry rather than corrupting
// output silently (spec.md §9's Open Question on this exact behaviour:
// this implementation treats it as a hard failure the caller can opt out
// of, by checking rpt.HasHardOverflow() before accepting the lump).
func WriteBlockmap(w LumpWriter, g *blockmap.Grid, rpt *report.Report, levelIdx int) error {
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.LittleEndian, BlockmapHeaderRec{
		OriginX: int16(g.OriginX), OriginY: int16(g.OriginY),
		Cols: uint16(g.Cols), Rows: uint16(g.Rows),
	})

	numCells := g.Cols * g.Rows
	offsets := make([]uint16, numCells)

	// Blocklists are appended after the offset table; word-offsets are
	// counted from the start of the lump, in units of uint16 (the
	// original format's "pointer" unit).
	headerWords := 4 + numCells
	cursor := headerWords

	listOffset := make([]int, len(g.Lists))
	listOffset[0] = cursor // shared null blocklist, written first
	cursor += 2            // 0x0000, 0xFFFF

	for i := 1; i < len(g.Lists); i++ {
		listOffset[i] = cursor
		cursor += 2 + len(g.Lists[i].Lines)
	}

	for i, idx := range g.CellList {
		off := listOffset[idx]
		if off > 0xFFFF {
			if rpt != nil {
				rpt.HardOverflow(levelIdx, "blockmap-offset", "cell %d offset %d exceeds 65535", i, off)
			}
		}
		offsets[i] = uint16(off)
	}

	for _, off := range offsets {
		_ = binary.Write(&buf, binary.LittleEndian, off)
	}

	// Shared null blocklist.
	_ = binary.Write(&buf, binary.LittleEndian, uint16(BlockmapListHead))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(BlockmapListTail))

	for i := 1; i < len(g.Lists); i++ {
		_ = binary.Write(&buf, binary.LittleEndian, uint16(BlockmapListHead))
		for _, line := range g.Lists[i].Lines {
			if line > 0xFFFF && rpt != nil {
				rpt.HardOverflow(levelIdx, "blockmap-line", "linedef index %d exceeds 65535", line)
			}
			_ = binary.Write(&buf, binary.LittleEndian, uint16(line))
		}
		_ = binary.Write(&buf, binary.LittleEndian, uint16(BlockmapListTail))
	}

	return w.WriteLump("BLOCKMAP", buf.Bytes())
}

// WriteReject emits the REJECT lump: ⌈N²/8⌉ bytes, bit-packed row-major
// (spec.md §4.K/§6).
func WriteReject(w LumpWriter, m *reject.Matrix) error {
	return w.WriteLump("REJECT", m.Bits)
}

// WriteGLVert emits a V2 or V5 GL-VERT lump: a 4-byte magic prefix
// followed by 16.16 fixed-point (x, y) pairs for every vertex created
// during BSP building beyond the level's original, surviving vertices
// (spec.md §6's GL-VERT description; original vertices are addressed
// directly by index in GL-SEGS, only split-created vertices need the
// GL-VERT lump).
func WriteGLVert(w LumpWriter, t *bsp.Tree, v5 bool) error {
	magic := GLVertMagicV2
	if v5 {
		magic = GLVertMagicV5
	}

	var buf bytes.Buffer
	buf.WriteString(magic)

	for i := t.Level.NumNormalVert; i < len(t.Vertices); i++ {
		v := t.Vertices[i]
		rec := GLVertRec{X: toFixed1616(v.X), Y: toFixed1616(v.Y)}
		_ = binary.Write(&buf, binary.LittleEndian, rec)
	}

	name := "GL_VERT"
	return w.WriteLump(name, buf.Bytes())
}

func toFixed1616(v float64) int32 {
	return int32(math.Round(v * 65536))
}

// glVertexIndex reports whether v names a vertex created during BSP
// building (i.e. lives only in GL-VERT, not VERTEXES), and if so its
// index within the GL-VERT lump's record array.
func glVertexIndex(t *bsp.Tree, v int) (glIdx int, isGL bool) {
	if v < t.Level.NumNormalVert {
		return 0, false
	}

	return v - t.Level.NumNormalVert, true
}

// WriteGLSegsV1 emits the GL-SEGS lump in the V1/V2 10-byte-record shape,
// walking the pre-normalisation seg lists (including minisegs) the
// finaliser stashed in Subsector.GLSegs.
func WriteGLSegsV1(w LumpWriter, t *bsp.Tree) error {
	var recs []GLSegRecV1
	for _, ss := range t.Subsectors {
		for _, s := range ss.GLSegs {
			recs = append(recs, glSegRecV1(t, s))
		}
	}

	return w.WriteLump("GL_SEGS", encode(recs))
}

func glSegRecV1(t *bsp.Tree, s *bsp.Seg) GLSegRecV1 {
	rec := GLSegRecV1{Side: uint16(s.Side), Partner: NoRef}
	if idx, isGL := glVertexIndex(t, s.StartV); isGL {
		rec.StartV = GLVertexFlag | uint16(idx)
	} else {
		rec.StartV = uint16(s.StartV)
	}
	if idx, isGL := glVertexIndex(t, s.EndV); isGL {
		rec.EndV = GLVertexFlag | uint16(idx)
	} else {
		rec.EndV = uint16(s.EndV)
	}
	if s.IsMiniseg() {
		rec.Linedef = NoRef
	} else {
		rec.Linedef = uint16(s.Linedef)
	}
	if s.Partner != nil {
		rec.Partner = uint16(s.Partner.GLIndex)
	}

	return rec
}

// WriteGLSegsV3 emits the GL-SEGS lump in the magic-prefixed V3/V5
// 32-bit-widened record shape, for levels whose vertex or seg counts no
// longer fit the V1/V2 16-bit fields (spec.md §6, §7's format
// escalation).
func WriteGLSegsV3(w LumpWriter, t *bsp.Tree) error {
	var buf bytes.Buffer
	buf.WriteString(GLSegMagicV3)

	for _, ss := range t.Subsectors {
		for _, s := range ss.GLSegs {
			rec := GLSegRecV3{Side: uint16(s.Side), Linedef: NoRef, Partner: NoRef32}
			if idx, isGL := glVertexIndex(t, s.StartV); isGL {
				rec.StartV = GLVertexFlagV3 | uint32(idx)
			} else {
				rec.StartV = uint32(s.StartV)
			}
			if idx, isGL := glVertexIndex(t, s.EndV); isGL {
				rec.EndV = GLVertexFlagV3 | uint32(idx)
			} else {
				rec.EndV = uint32(s.EndV)
			}
			if !s.IsMiniseg() {
				rec.Linedef = uint16(s.Linedef)
			}
			if s.Partner != nil {
				rec.Partner = uint32(s.Partner.GLIndex)
			}
			_ = binary.Write(&buf, binary.LittleEndian, rec)
		}
	}

	return w.WriteLump("GL_SEGS", buf.Bytes())
}

// WriteGLPVS emits an empty GL_PVS lump: the slot is reserved in the
// GL-nodes lump group, and an empty body tells the consuming renderer no
// potentially-visible-set data was computed (spec.md §6).
func WriteGLPVS(w LumpWriter) error {
	return w.WriteLump("GL_PVS", nil)
}

// WriteGLSubsectors emits the GL-SSECT lump, analogous to SSECTORS but
// counting into the GL-SEGS run (including minisegs).
func WriteGLSubsectors(w LumpWriter, t *bsp.Tree) error {
	recs := make([]SubsectorRec, 0, len(t.Subsectors))
	first := 0
	for _, ss := range t.Subsectors {
		recs = append(recs, SubsectorRec{NumSegs: uint16(len(ss.GLSegs)), FirstSeg: uint16(first)})
		first += len(ss.GLSegs)
	}

	return w.WriteLump("GL_SSECT", encode(recs))
}

// WriteGLNodes emits the GL-NODES lump: structurally identical to NODES
// (same partition tree, same subsector index space) but conventionally
// kept as a separate lump name for GL-aware renderers.
func WriteGLNodes(w LumpWriter, t *bsp.Tree) error {
	return WriteNodes(&renamingWriter{w: w, name: "GL_NODES"}, t)
}

// renamingWriter forwards WriteLump under a fixed name, letting
// WriteNodes be reused verbatim for the GL-NODES lump.
type renamingWriter struct {
	w    LumpWriter
	name string
}

func (r *renamingWriter) WriteLump(_ string, data []byte) error {
	return r.w.WriteLump(r.name, data)
}

package wad

// NoRef is the wire sentinel meaning "absent" in a sidedef/vertex
// reference field (spec.md §6).
const NoRef = 0xFFFF

// VertexRec is the 4-byte VERTEXES record.
type VertexRec struct {
	X int16 // 0
	Y int16 // 2
}

// LinedefDoomRec is the 14-byte Doom-format LINEDEFS record.
type LinedefDoomRec struct {
	Start uint16 // 0
	End   uint16 // 2
	Flags uint16 // 4
	Type  uint16 // 6
	Tag   int16  // 8
	Right uint16 // 10
	Left  uint16 // 12
}

// LinedefHexenRec is the 16-byte Hexen-format LINEDEFS record.
type LinedefHexenRec struct {
	Start   uint16   // 0
	End     uint16   // 2
	Flags   uint16   // 4
	Special uint8    // 6
	Args    [5]uint8 // 7
	Right   uint16   // 12
	Left    uint16   // 14
}

// SidedefRec is the 30-byte SIDEDEFS record. Texture names are
// zero-padded, non-NUL-terminated 8-byte fields.
type SidedefRec struct {
	XOff   int16   // 0
	YOff   int16   // 2
	Upper  [8]byte // 4
	Lower  [8]byte // 12
	Middle [8]byte // 20
	Sector uint16  // 28
}

// SectorRec is the 26-byte SECTORS record.
type SectorRec struct {
	FloorHeight int16   // 0
	CeilHeight  int16   // 2
	FloorTex    [8]byte // 4
	CeilTex     [8]byte // 12
	Light       uint16  // 20
	Special     uint16  // 22
	Tag         int16   // 24
}

// ThingDoomRec is the 10-byte Doom-format THINGS record.
type ThingDoomRec struct {
	X     int16  // 0
	Y     int16  // 2
	Angle int16  // 4
	Type  uint16 // 6
	Flags uint16 // 8
}

// ThingHexenRec is the 20-byte Hexen-format THINGS record.
type ThingHexenRec struct {
	TID     int16    // 0
	X       int16    // 2
	Y       int16    // 4
	Height  int16    // 6
	Angle   int16    // 8
	Type    uint16   // 10
	Options uint16   // 12
	Special uint8    // 14
	Args    [5]uint8 // 15
}

// SegRec is the 12-byte SEGS record.
type SegRec struct {
	StartV    uint16 // 0
	EndV      uint16 // 2
	Angle     uint16 // 4 BAM
	Linedef   uint16 // 6
	Flip      uint16 // 8
	AlongDist uint16 // 10
}

// SubsectorRec is the 4-byte SSECTORS record.
type SubsectorRec struct {
	NumSegs  uint16 // 0
	FirstSeg uint16 // 2
}

// NodeChildSubsector is the high bit a NODES child index sets to mark
// itself as a subsector reference rather than another node.
const NodeChildSubsector = 0x8000

// NodeRec is the 28-byte NODES record. Box fields are stored
// (maxy, miny, minx, maxx) per spec.md §6.
type NodeRec struct {
	X, Y, DX, DY    int16    // 0,2,4,6
	RightBox        [4]int16 // 8
	LeftBox         [4]int16 // 16
	Right, Left     uint16   // 24, 26
}

// BlockmapHeaderRec is the fixed 8-byte prefix of the BLOCKMAP lump.
type BlockmapHeaderRec struct {
	OriginX int16  // 0
	OriginY int16  // 2
	Cols    uint16 // 4
	Rows    uint16 // 6
}

// BlockmapListHead and BlockmapListTail are the sentinel u16 values
// bracketing every blocklist (spec.md §6): a zero word, then the line
// indices, then 0xFFFF.
const (
	BlockmapListHead = 0x0000
	BlockmapListTail = 0xFFFF
)

// GL vertex/seg magic prefixes (spec.md §6).
const (
	GLVertMagicV2 = "gNd2"
	GLVertMagicV5 = "gNd5"
	GLSegMagicV3  = "gNd3"
)

// GLVertRec is one V2/V5 GL-VERT record: 16.16 fixed-point coordinates.
type GLVertRec struct {
	X int32 // 0
	Y int32 // 4
}

// GLSegRecV1 is the V1/V2-style 10-byte GL-SEGS record. Vertex indices
// carry bit 0x8000 when they name a GL vertex rather than a normal one.
type GLSegRecV1 struct {
	StartV  uint16 // 0, high bit 0x8000 marks a GL vertex
	EndV    uint16 // 2, high bit 0x8000 marks a GL vertex
	Linedef uint16 // 4
	Side    uint16 // 6
	Partner uint16 // 8, NoRef if none
}

// GLVertexFlag marks a GL-SEGS vertex reference as pointing into the
// GL-VERT lump rather than the ordinary VERTEXES lump.
const GLVertexFlag = 0x8000

// GLSegRecV3 is the V3/V5 32-bit-widened GL-SEGS record, used once a
// level's vertex or seg count overflows the V1/V2 16-bit fields.
type GLSegRecV3 struct {
	StartV  uint32 // 0, high bit 0x80000000 marks a GL vertex
	EndV    uint32 // 4, high bit 0x80000000 marks a GL vertex
	Linedef uint16 // 8
	Side    uint16 // 10
	Partner uint32 // 12, 0xFFFFFFFF if none
}

// NoRef32 is GLSegRecV3's "absent" sentinel.
const NoRef32 = 0xFFFFFFFF

// GLVertexFlagV3 is GLSegRecV3's GL-vertex marker bit.
const GLVertexFlagV3 = 0x80000000

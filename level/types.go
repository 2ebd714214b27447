package level

// Vertex is a 2D point in map coordinates. The source format stores
// integers; a vertex produced by splitting a seg during BSP building can
// carry a sub-unit position, which is why X/Y are float64 here rather than
// the wire format's int16.
type Vertex struct {
	X, Y float64

	// Index is this vertex's position in Level.Vertices. Kept on the value
	// itself so a *Vertex obtained once can still answer "what is my own
	// index" without a reverse lookup.
	Index int

	// RefCount counts linedef endpoints (post equivalence-chasing) that
	// still use this vertex. A vertex reaching zero is dropped by the
	// pruning pass (package analyse).
	RefCount int

	// Equiv points at this vertex's canonical duplicate, or NoIndex if this
	// vertex is itself canonical. Chase Equiv to resolve duplicates.
	Equiv int

	// Tips is the head of the circular wall-tip fan around this vertex,
	// or NoIndex if none has been built yet (or the vertex has none).
	// Tips are stored in Level.WallTips and linked via WallTip.Next/Prev.
	Tips int

	// RoundX, RoundY is the integer-rounded twin used when a GL build and
	// a legacy build are produced from the same working vertex set.
	RoundX, RoundY int
	HasRound       bool
}

// WallTip records a single (linedef, vertex) incidence: linedef touches
// vertex at one of its two endpoints, with an outbound angle away from
// that vertex. WallTips around a given vertex form a circular doubly
// linked list (via Next/Prev, both indices into Level.WallTips) kept
// sorted by Angle ascending.
type WallTip struct {
	Vertex  int
	Linedef int
	Angle   float64

	// Left and Right name the sectors open on each side of the wall as
	// seen from this vertex looking outward along Angle; NoIndex if that
	// side is void (one-sided wall).
	Left, Right int

	Next, Prev int
	Index      int
}

// Linedef is an oriented pair of vertices bearing up to two Sidedefs, plus
// the analysis markers the pipeline accumulates on top of the raw lump
// fields.
type Linedef struct {
	Start, End   int
	FrontSide    int // NoIndex absent, but a linedef always has a front
	BackSide     int // NoIndex if one-sided
	Flags        uint16
	Type         uint16
	Tag          int16
	Special      uint8    // Hexen action special (Doom stores it as Type)
	Args         [5]uint8 // Hexen args; unused fields zero in Doom format

	// Analysis markers (package analyse).
	ZeroLength   bool
	TwoSided     bool
	SelfRef      bool
	Precious     bool
	OverlapOf    int // NoIndex unless this line duplicates another
	WindowEffect bool
	PolyobjOwner bool
	PolyobjTag   int

	// Index is this linedef's position in Level.Linedefs.
	Index int
}

// IsOneSided reports whether this linedef has no back sidedef.
func (ld *Linedef) IsOneSided() bool {
	return ld.BackSide == NoIndex
}

// Sidedef is a wall's material references plus offsets, owned by exactly
// one Sector.
type Sidedef struct {
	XOff, YOff             int
	UpperTex, LowerTex     string
	MidTex                 string
	Sector                 int
	RefCount               int
	Equiv                  int // NoIndex if canonical
	Special                bool
	DontPegBottom          bool
	Index                  int
}

// Sector is a floor/ceiling pair with texture, light, and gameplay tag
// fields, plus the union-find bookkeeping the reject builder (package
// reject) threads through every sector in the level.
type Sector struct {
	FloorHeight, CeilHeight int
	FloorTex, CeilTex       string
	Light                   int
	Special                 int
	Tag                     int16

	// Coalesce permits segs belonging to a different sector into the same
	// subsector; true when Tag is in [900, 1000).
	Coalesce bool

	RefCount int
	Index    int

	// RejectGroup/RejectRing are the union-find fields the reject builder
	// (package reject) uses; AddSector seeds each sector as its own
	// one-member group, and reject.Build merges them.
	RejectGroup int
	RejectRing  int // next sector index in this group's ring, NoIndex to close
}

// Thing is a map object placement: a monster, decoration, player start, or
// (Hexen-only) a polyobject anchor/spawn-spot.
type Thing struct {
	X, Y    int
	Angle   int
	Type    uint16
	Flags   uint16
	Index   int

	// Hexen-only fields; zero in Doom-format levels.
	TID     int16
	Height  int16
	Options uint16
	Special uint8
	Args    [5]uint8
	Hexen   bool
}

// PolyobjDoomedNumAnchor, PolyobjDoomedNumSpawn and
// PolyobjDoomedNumSpawnCrush are Hexen thing type numbers recognised by the polyobject grouping pass (package analyse).
const (
	PolyobjDoomedNumAnchor    = 3000
	PolyobjDoomedNumSpawn     = 3001
	PolyobjDoomedNumSpawnCrush = 3002
)

// Hexen linedef specials recognised while grouping polyobject lines.
const (
	HexenLinePolyobjStart = 1
	HexenLinePolyobjExplicit = 5
)

// Polyobj is a discovered, ordered group of linedefs belonging to one
// movable polyobject (Hexen only).
type Polyobj struct {
	Tag          int
	SequenceType int
	Lines        []int // linedef indices, in discovery order
	AnchorX      int
	AnchorY      int
}

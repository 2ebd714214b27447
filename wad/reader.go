package wad

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/katalvlaran/bspc/level"
)

// LumpReader exposes named lumps within whatever the host currently
// considers "the current level" (spec.md §6). Opening an archive file
// and tracking level boundaries is the host's responsibility; this
// package only consumes whatever bytes it hands back.
type LumpReader interface {
	// Lump returns the raw bytes of the named lump, and whether it was
	// present at all.
	Lump(name string) (data []byte, ok bool)
}

// LoadLevel decodes the five required lumps (VERTEXES, SECTORS, SIDEDEFS,
// LINEDEFS, THINGS) from r into a fresh level.Level. hexen selects the
// THINGS/LINEDEFS record shape; BEHAVIOR is neither read nor required
// here (the driver uses its presence to set hexen).
func LoadLevel(r LumpReader, hexen bool) (*level.Level, error) {
	lv := level.New(hexen)

	if err := loadVertexes(r, lv); err != nil {
		return nil, err
	}
	if err := loadSectors(r, lv); err != nil {
		return nil, err
	}
	if err := loadSidedefs(r, lv); err != nil {
		return nil, err
	}
	if hexen {
		if err := loadLinedefsHexen(r, lv); err != nil {
			return nil, err
		}
		if err := loadThingsHexen(r, lv); err != nil {
			return nil, err
		}
	} else {
		if err := loadLinedefsDoom(r, lv); err != nil {
			return nil, err
		}
		if err := loadThingsDoom(r, lv); err != nil {
			return nil, err
		}
	}

	return lv, nil
}

func refOrNoIndex(v uint16) int {
	if v == NoRef {
		return level.NoIndex
	}

	return int(v)
}

func cstr(b []byte) string {
	n := bytes.IndexByte(b, 0)
	if n < 0 {
		n = len(b)
	}

	return string(b[:n])
}

func decodeRecords(name string, data []byte, recSize int, decode func([]byte) error) error {
	if len(data)%recSize != 0 {
		return fmt.Errorf("wad: %s: %w", name, ErrTruncatedLump)
	}
	for off := 0; off < len(data); off += recSize {
		if err := decode(data[off : off+recSize]); err != nil {
			return fmt.Errorf("wad: %s: %w", name, err)
		}
	}

	return nil
}

func loadVertexes(r LumpReader, lv *level.Level) error {
	data, ok := r.Lump("VERTEXES")
	if !ok {
		return fmt.Errorf("VERTEXES: %w", ErrMissingLump)
	}

	return decodeRecords("VERTEXES", data, 4, func(b []byte) error {
		var rec VertexRec
		if err := binary.Read(bytes.NewReader(b), binary.LittleEndian, &rec); err != nil {
			return err
		}
		lv.AddVertex(float64(rec.X), float64(rec.Y))

		return nil
	})
}

func loadSectors(r LumpReader, lv *level.Level) error {
	data, ok := r.Lump("SECTORS")
	if !ok {
		return fmt.Errorf("SECTORS: %w", ErrMissingLump)
	}

	return decodeRecords("SECTORS", data, 26, func(b []byte) error {
		var rec SectorRec
		if err := binary.Read(bytes.NewReader(b), binary.LittleEndian, &rec); err != nil {
			return err
		}
		lv.AddSector(level.Sector{
			FloorHeight: int(rec.FloorHeight),
			CeilHeight:  int(rec.CeilHeight),
			FloorTex:    cstr(rec.FloorTex[:]),
			CeilTex:     cstr(rec.CeilTex[:]),
			Light:       int(rec.Light),
			Special:     int(rec.Special),
			Tag:         rec.Tag,
		})

		return nil
	})
}

func loadSidedefs(r LumpReader, lv *level.Level) error {
	data, ok := r.Lump("SIDEDEFS")
	if !ok {
		return fmt.Errorf("SIDEDEFS: %w", ErrMissingLump)
	}

	return decodeRecords("SIDEDEFS", data, 30, func(b []byte) error {
		var rec SidedefRec
		if err := binary.Read(bytes.NewReader(b), binary.LittleEndian, &rec); err != nil {
			return err
		}
		lv.AddSidedef(level.Sidedef{
			XOff:     int(rec.XOff),
			YOff:     int(rec.YOff),
			UpperTex: cstr(rec.Upper[:]),
			LowerTex: cstr(rec.Lower[:]),
			MidTex:   cstr(rec.Middle[:]),
			Sector:   int(rec.Sector),
		})

		return nil
	})
}

func loadLinedefsDoom(r LumpReader, lv *level.Level) error {
	data, ok := r.Lump("LINEDEFS")
	if !ok {
		return fmt.Errorf("LINEDEFS: %w", ErrMissingLump)
	}

	return decodeRecords("LINEDEFS", data, 14, func(b []byte) error {
		var rec LinedefDoomRec
		if err := binary.Read(bytes.NewReader(b), binary.LittleEndian, &rec); err != nil {
			return err
		}
		lv.AddLinedef(level.Linedef{
			Start:     int(rec.Start),
			End:       int(rec.End),
			FrontSide: refOrNoIndex(rec.Right),
			BackSide:  refOrNoIndex(rec.Left),
			Flags:     rec.Flags,
			Type:      rec.Type,
			Tag:       rec.Tag,
		})

		return nil
	})
}

func loadLinedefsHexen(r LumpReader, lv *level.Level) error {
	data, ok := r.Lump("LINEDEFS")
	if !ok {
		return fmt.Errorf("LINEDEFS: %w", ErrMissingLump)
	}

	return decodeRecords("LINEDEFS", data, 16, func(b []byte) error {
		var rec LinedefHexenRec
		if err := binary.Read(bytes.NewReader(b), binary.LittleEndian, &rec); err != nil {
			return err
		}
		lv.AddLinedef(level.Linedef{
			Start:     int(rec.Start),
			End:       int(rec.End),
			FrontSide: refOrNoIndex(rec.Right),
			BackSide:  refOrNoIndex(rec.Left),
			Flags:     rec.Flags,
			Special:   rec.Special,
			Args:      rec.Args,
		})

		return nil
	})
}

func loadThingsDoom(r LumpReader, lv *level.Level) error {
	data, ok := r.Lump("THINGS")
	if !ok {
		return fmt.Errorf("THINGS: %w", ErrMissingLump)
	}

	return decodeRecords("THINGS", data, 10, func(b []byte) error {
		var rec ThingDoomRec
		if err := binary.Read(bytes.NewReader(b), binary.LittleEndian, &rec); err != nil {
			return err
		}
		lv.AddThing(level.Thing{
			X: int(rec.X), Y: int(rec.Y), Angle: int(rec.Angle),
			Type: rec.Type, Flags: rec.Flags,
		})

		return nil
	})
}

func loadThingsHexen(r LumpReader, lv *level.Level) error {
	data, ok := r.Lump("THINGS")
	if !ok {
		return fmt.Errorf("THINGS: %w", ErrMissingLump)
	}

	return decodeRecords("THINGS", data, 20, func(b []byte) error {
		var rec ThingHexenRec
		if err := binary.Read(bytes.NewReader(b), binary.LittleEndian, &rec); err != nil {
			return err
		}
		lv.AddThing(level.Thing{
			X: int(rec.X), Y: int(rec.Y), Angle: int(rec.Angle),
			Type: rec.Type, Hexen: true,
			TID: rec.TID, Height: rec.Height, Options: rec.Options,
			Special: rec.Special, Args: rec.Args,
		})

		return nil
	})
}

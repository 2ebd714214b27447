package wad

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/katalvlaran/bspc/bsp"
)

// LoadStaleNodes decodes an original NODES lump from r into the
// bsp.StaleNode tree a fast rebuild reuses for partition selection
// (spec.md §4.H step 5). Returns (nil, nil) when the level carries no
// NODES lump at all — fast mode then simply degrades to a full build.
func LoadStaleNodes(r LumpReader) (*bsp.StaleNode, error) {
	data, ok := r.Lump("NODES")
	if !ok || len(data) == 0 {
		// Absent (or empty: the original level was a single convex leaf)
		// means nothing to reuse, not an error.
		return nil, nil
	}
	if len(data)%28 != 0 {
		return nil, fmt.Errorf("wad: NODES: %w", ErrTruncatedLump)
	}

	recs := make([]NodeRec, len(data)/28)
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, recs); err != nil {
		return nil, fmt.Errorf("wad: NODES: %w", err)
	}

	// The root is the last record; a child always indexes an earlier
	// record (post-order numbering), so anything else marks a corrupt
	// lump — and refusing it also rules out reference cycles.
	var build func(idx, parent int) (*bsp.StaleNode, error)
	build = func(idx, parent int) (*bsp.StaleNode, error) {
		if idx < 0 || idx >= parent {
			return nil, fmt.Errorf("wad: NODES: child %d of node %d out of order: %w", idx, parent, ErrTruncatedLump)
		}
		rec := recs[idx]
		n := &bsp.StaleNode{
			X: float64(rec.X), Y: float64(rec.Y),
			DX: float64(rec.DX), DY: float64(rec.DY),
		}
		var err error
		if rec.Right&NodeChildSubsector == 0 {
			if n.Right, err = build(int(rec.Right), idx); err != nil {
				return nil, err
			}
		}
		if rec.Left&NodeChildSubsector == 0 {
			if n.Left, err = build(int(rec.Left), idx); err != nil {
				return nil, err
			}
		}

		return n, nil
	}

	return build(len(recs)-1, len(recs))
}

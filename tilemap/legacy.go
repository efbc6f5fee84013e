package tilemap

import (
	"fmt"

	"github.com/milk9111/tileforge/tile"
)

// LegacyLayer is the old fixed-size layer shape: one value per cell in a
// flat row-major array of length Width*Height. Cell values are sprite
// indices into a single implicit tileset; 0 still means empty.
//
// The core never operates on this shape directly. Loaders detect it and
// convert through FromLegacy so everything downstream sees one canonical
// chunked representation.
type LegacyLayer struct {
	Width  int   `json:"width"`
	Height int   `json:"height"`
	Cells  []int `json:"cells"`
}

// FromLegacy converts a legacy flat layer into a chunked layer. Cell values
// are sprite indices; columns is the tileset's width in tiles, used to turn
// an index back into a sprite position, and order is the tileset order every
// converted ref is assigned. Zero cells produce no chunk at all.
func FromLegacy(lg LegacyLayer, name string, tileWidth, tileHeight, columns, order int) (*Layer, error) {
	if lg.Width <= 0 || lg.Height <= 0 {
		return nil, fmt.Errorf("tilemap: invalid legacy dimensions %dx%d", lg.Width, lg.Height)
	}
	if len(lg.Cells) != lg.Width*lg.Height {
		return nil, fmt.Errorf("tilemap: legacy layer has %d cells, want %d", len(lg.Cells), lg.Width*lg.Height)
	}
	if columns <= 0 {
		return nil, fmt.Errorf("tilemap: legacy conversion needs a positive tileset column count, got %d", columns)
	}

	out := NewLayer(name, tileWidth, tileHeight)
	for y := 0; y < lg.Height; y++ {
		for x := 0; x < lg.Width; x++ {
			v := lg.Cells[y*lg.Width+x]
			if v == 0 {
				continue
			}
			if v < 0 {
				return nil, fmt.Errorf("tilemap: legacy cell (%d, %d) has negative value %d", x, y, v)
			}
			// Legacy indices are 1-based so 0 can mean empty.
			idx := v - 1
			sx := (idx % columns) * tileWidth
			sy := (idx / columns) * tileHeight
			ref, err := tile.Pack(sx, sy, order, false, false)
			if err != nil {
				return nil, fmt.Errorf("tilemap: legacy cell (%d, %d): %w", x, y, err)
			}
			out.SetTile(x, y, ref)
		}
	}
	return out, nil
}

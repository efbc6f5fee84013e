package autotile

import (
	"github.com/milk9111/tileforge/tile"
	"github.com/milk9111/tileforge/tilemap"
	"github.com/milk9111/tileforge/tileset"
)

// Apply recomputes the sprite for the tile at (x, y) from its neighbors'
// terrain continuity.
//
// ok is false when there is nothing to do for the cell: it is empty, its
// tileset is not loaded, its sprite has no terrain type, or the tileset has
// no terrain layer for that type. When a terrain layer exists but lacks a
// sprite for the computed bitmask, the current ref comes back unchanged with
// ok=true; an incomplete catalog must never erase the author's tile.
func Apply(layer *tilemap.Layer, x, y int, tilesets tileset.Collection) (tile.Ref, bool) {
	current := layer.Tile(x, y)
	if current.IsEmpty() {
		return tile.Empty, false
	}
	ts := tilesets.ByOrder(current.Order())
	if ts == nil {
		return tile.Empty, false
	}
	def := ts.TileDefAt(current.X(), current.Y())
	if def == nil || def.Type == "" {
		return tile.Empty, false
	}
	tl := ts.TerrainLayerForType(def.Type)
	if tl == nil {
		return tile.Empty, false
	}

	mask := Bitmask(func(dx, dy int) bool {
		return tilesets.IsTerrainAt(layer, x+dx, y+dy, tl.ID)
	})

	match := FindByBitmask(tl, mask)
	if match == nil {
		// No rule for this arrangement; leave the tile as it is.
		return current, true
	}

	ref, err := tile.Pack(match.X, match.Y, current.Order(), current.FlipX(), current.FlipY())
	if err != nil {
		// A catalog entry outside packing range is bad data, not an edit.
		return current, true
	}
	return ref, true
}

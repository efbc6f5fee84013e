package tileset

import (
	"github.com/milk9111/tileforge/tile"
	"github.com/milk9111/tileforge/tilemap"
)

// Collection is the set of tilesets loaded for a project. Lookups by order
// never panic; a ref whose tileset is not loaded simply resolves to nothing.
type Collection []*Tileset

// ByOrder returns the tileset with the given order, or nil when no loaded
// tileset carries it.
func (c Collection) ByOrder(order int) *Tileset {
	if order < 1 {
		return nil
	}
	for _, ts := range c {
		if ts != nil && ts.Order == order {
			return ts
		}
	}
	return nil
}

// TerrainLayerForTile resolves a stored ref to the terrain layer that
// contains its sprite. ok is false when the ref is empty, its tileset is not
// loaded, or no terrain layer lists the sprite.
func (c Collection) TerrainLayerForTile(ref tile.Ref) (id string, ok bool) {
	if ref.IsEmpty() {
		return "", false
	}
	ts := c.ByOrder(ref.Order())
	if ts == nil {
		return "", false
	}
	x, y := ref.X(), ref.Y()
	for i := range ts.TerrainLayers {
		for _, tt := range ts.TerrainLayers[i].Tiles {
			if tt.X == x && tt.Y == y {
				return ts.TerrainLayers[i].ID, true
			}
		}
	}
	return "", false
}

// TerrainByID finds the terrain layer with the given id across the whole
// collection, returning it together with its owning tileset. Both are nil
// when no loaded tileset defines the terrain.
func (c Collection) TerrainByID(id string) (*Tileset, *TerrainLayer) {
	if id == "" {
		return nil, nil
	}
	for _, ts := range c {
		if tl := ts.TerrainLayerByID(id); tl != nil {
			return ts, tl
		}
	}
	return nil, nil
}

// IsTerrainAt reports whether the tile stored at (x, y) belongs to the given
// terrain layer. An empty cell reads false, and so does a cell outside any
// allocated chunk, which keeps terrain continuity well-defined everywhere on
// an infinite map.
func (c Collection) IsTerrainAt(layer *tilemap.Layer, x, y int, terrainID string) bool {
	ref := layer.Tile(x, y)
	if ref.IsEmpty() {
		return false
	}
	id, ok := c.TerrainLayerForTile(ref)
	return ok && id == terrainID
}

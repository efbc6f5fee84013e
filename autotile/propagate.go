package autotile

import (
	"github.com/milk9111/tileforge/tile"
	"github.com/milk9111/tileforge/tilemap"
	"github.com/milk9111/tileforge/tileset"
)

// Position is a tile coordinate pair. It keys the de-duplication set during
// propagation, so overlapping neighborhoods collapse.
type Position struct {
	X, Y int
}

// Update is one resolved autotiling result: the ref that belongs at Pos.
type Update struct {
	Pos Position
	Ref tile.Ref
}

// UpdateTileAndNeighbors recomputes autotiling across every edited position
// and its 8 neighbors. Neighborhoods of nearby edits are merged before any
// cell is visited, so each unique position is applied exactly once. The
// layer is read, never written; callers commit the returned batch (and only
// then invalidate the render cache) via ApplyUpdates.
//
// Positions outside every allocated chunk simply read as empty, so there is
// no edge case at any map boundary. Re-running with no intervening edits
// returns updates that change nothing.
func UpdateTileAndNeighbors(layer *tilemap.Layer, positions []Position, tilesets tileset.Collection) []Update {
	seen := make(map[Position]struct{}, len(positions)*9)
	order := make([]Position, 0, len(positions)*9)
	for _, p := range positions {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				q := Position{X: p.X + dx, Y: p.Y + dy}
				if _, ok := seen[q]; ok {
					continue
				}
				seen[q] = struct{}{}
				order = append(order, q)
			}
		}
	}

	var out []Update
	for _, p := range order {
		ref, ok := Apply(layer, p.X, p.Y, tilesets)
		if !ok {
			continue
		}
		out = append(out, Update{Pos: p, Ref: ref})
	}
	return out
}

// ApplyUpdates commits a batch produced by UpdateTileAndNeighbors.
func ApplyUpdates(layer *tilemap.Layer, updates []Update) {
	for _, u := range updates {
		layer.SetTile(u.Pos.X, u.Pos.Y, u.Ref)
	}
}

// PlaceTerrainTile paints one cell of the named terrain: it picks the sprite
// matching the cell's bitmask against already-placed same-terrain neighbors,
// writes it, then revisits the 8 neighbors so their sprites account for the
// new tile. Propagation reaches exactly one ring; brush strokes call this
// per painted cell.
//
// When the catalog lacks an exact variant the isolated sprite (mask 16) is
// used so painting into an incomplete catalog still places something; with
// no isolated entry either, nothing is written and ok is false.
func PlaceTerrainTile(layer *tilemap.Layer, x, y int, terrainID string, tilesets tileset.Collection) bool {
	ts, tl := tilesets.TerrainByID(terrainID)
	if ts == nil || tl == nil {
		return false
	}

	mask := Bitmask(func(dx, dy int) bool {
		return tilesets.IsTerrainAt(layer, x+dx, y+dy, terrainID)
	})
	match := FindByBitmask(tl, mask)
	if match == nil {
		match = FindByBitmask(tl, BitCenter)
	}
	if match == nil {
		return false
	}

	ref, err := tile.Pack(match.X, match.Y, ts.Order, false, false)
	if err != nil {
		return false
	}
	layer.SetTile(x, y, ref)
	UpdateNeighborsAround(layer, x, y, tilesets)
	return true
}

// RemoveTerrainTile erases the cell and re-tiles its neighbors, which no
// longer see it as continuous terrain.
func RemoveTerrainTile(layer *tilemap.Layer, x, y int, tilesets tileset.Collection) {
	layer.SetTile(x, y, tile.Empty)
	UpdateNeighborsAround(layer, x, y, tilesets)
}

// UpdateNeighborsAround re-applies autotiling to the 8 cells around (x, y),
// skipping the center itself.
func UpdateNeighborsAround(layer *tilemap.Layer, x, y int, tilesets tileset.Collection) {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			ref, ok := Apply(layer, x+dx, y+dy, tilesets)
			if !ok {
				continue
			}
			layer.SetTile(x+dx, y+dy, ref)
		}
	}
}

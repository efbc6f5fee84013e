package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/tileforge/autotile"
	"github.com/milk9111/tileforge/tile"
	"github.com/milk9111/tileforge/tilemap"
)

// Tool selects what a left click paints on the canvas.
type Tool int

const (
	ToolTerrain Tool = iota
	ToolBrush
	ToolErase
	ToolFill
)

func (t Tool) String() string {
	switch t {
	case ToolTerrain:
		return "terrain"
	case ToolBrush:
		return "brush"
	case ToolErase:
		return "erase"
	case ToolFill:
		return "fill"
	}
	return "unknown"
}

// fillLimit caps flood fill on the unbounded map.
const fillLimit = 4096

func (e *Editor) handlePaint(mx, my int) {
	layer := e.lvl.Layer(e.currentLayer)
	if layer == nil {
		return
	}

	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	if !left && !right {
		if e.painting {
			e.painting = false
			e.commitStroke()
		}
		return
	}

	tx, ty, ok := e.screenToTile(mx, my)
	if !ok {
		return
	}

	justPressed := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight)
	if !e.painting {
		if !justPressed {
			return
		}
		e.painting = true
		e.paintErase = right
		e.beginStroke(layer.Name)
	}

	switch {
	case e.paintErase || e.tool == ToolErase:
		e.eraseAt(layer, tx, ty)
	case e.tool == ToolTerrain:
		e.paintTerrainAt(layer, tx, ty)
	case e.tool == ToolBrush:
		e.paintBrushAt(layer, tx, ty)
	case e.tool == ToolFill:
		// fill acts once per click, not per drag frame
		if justPressed {
			e.fillAt(layer, tx, ty)
		}
	}
}

// paintTerrainAt stamps terrain and lets the autotiler resolve this tile
// and its neighbors. Previous refs in the 3x3 neighborhood are recorded
// before the write so the whole stamp undoes as one step.
func (e *Editor) paintTerrainAt(layer *tilemap.Layer, x, y int) {
	if e.terrainID == "" {
		return
	}
	e.recordNeighborhood(layer, x, y)
	if !autotile.PlaceTerrainTile(layer, x, y, e.terrainID, e.tilesets) {
		e.setStatus("terrain %q has no variant catalog", e.terrainID)
		return
	}
	e.invalidateNeighborhood(layer, x, y)
}

func (e *Editor) paintBrushAt(layer *tilemap.Layer, x, y int) {
	if !e.brushTile.Active {
		return
	}
	ref, err := tile.Pack(e.brushTile.X, e.brushTile.Y, e.brushTile.Order, false, false)
	if err != nil {
		return
	}
	if layer.Tile(x, y) == ref {
		return
	}
	e.recordTile(layer, x, y)
	layer.SetTile(x, y, ref)
	e.cache.InvalidateTiles(layer.Name, [][2]int{{x, y}})
}

func (e *Editor) eraseAt(layer *tilemap.Layer, x, y int) {
	if layer.Tile(x, y).IsEmpty() {
		return
	}
	e.recordNeighborhood(layer, x, y)
	autotile.RemoveTerrainTile(layer, x, y, e.tilesets)
	e.invalidateNeighborhood(layer, x, y)
}

// fillAt replaces the connected region of refs equal to the clicked tile
// with the brush sprite. The region is capped so a click on empty space
// in an unbounded map cannot run away.
func (e *Editor) fillAt(layer *tilemap.Layer, x, y int) {
	if !e.brushTile.Active {
		return
	}
	ref, err := tile.Pack(e.brushTile.X, e.brushTile.Y, e.brushTile.Order, false, false)
	if err != nil {
		return
	}
	target := layer.Tile(x, y)
	if target == ref {
		return
	}
	if target.IsEmpty() {
		e.setStatus("fill needs an existing tile region")
		return
	}

	type pos struct{ x, y int }
	queue := []pos{{x, y}}
	seen := map[pos]bool{{x, y}: true}
	var changed [][2]int
	for len(queue) > 0 && len(changed) < fillLimit {
		p := queue[0]
		queue = queue[1:]
		if layer.Tile(p.x, p.y) != target {
			continue
		}
		e.recordTile(layer, p.x, p.y)
		layer.SetTile(p.x, p.y, ref)
		changed = append(changed, [2]int{p.x, p.y})
		for _, d := range [4]pos{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			n := pos{p.x + d.x, p.y + d.y}
			if !seen[n] {
				seen[n] = true
				queue = append(queue, n)
			}
		}
	}
	if len(changed) > 0 {
		e.cache.InvalidateTiles(layer.Name, changed)
	}
	if len(changed) == fillLimit {
		e.setStatus("fill stopped at %d tiles", fillLimit)
	}
}

func (e *Editor) recordNeighborhood(layer *tilemap.Layer, x, y int) {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			e.recordTile(layer, x+dx, y+dy)
		}
	}
}

func (e *Editor) invalidateNeighborhood(layer *tilemap.Layer, x, y int) {
	tiles := make([][2]int, 0, 9)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			tiles = append(tiles, [2]int{x + dx, y + dy})
		}
	}
	e.cache.InvalidateTiles(layer.Name, tiles)
}

func newLayerLike(src *tilemap.Layer, name string) *tilemap.Layer {
	tw, th := 32, 32
	if src != nil {
		tw, th = src.TileWidth, src.TileHeight
	}
	return tilemap.NewLayer(name, tw, th)
}

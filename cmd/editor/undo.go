package main

import (
	"github.com/milk9111/tileforge/autotile"
	"github.com/milk9111/tileforge/tile"
	"github.com/milk9111/tileforge/tilemap"
)

// strokeDelta records, per layer, the refs a stroke overwrote. One stroke
// (press to release) undoes as a single step no matter how many tiles the
// drag and its autotile propagation touched.
type strokeDelta struct {
	Layer string
	Prev  map[autotile.Position]tile.Ref
}

type undoStack []strokeDelta

type pendingStroke struct {
	layer string
	prev  map[autotile.Position]tile.Ref
}

func (e *Editor) beginStroke(layerName string) {
	e.pending = &pendingStroke{
		layer: layerName,
		prev:  make(map[autotile.Position]tile.Ref),
	}
}

// recordTile captures the current ref at (x,y) if this stroke has not
// already recorded it. First write wins so undo restores pre-stroke state.
func (e *Editor) recordTile(layer *tilemap.Layer, x, y int) {
	if e.pending == nil || e.pending.layer != layer.Name {
		return
	}
	p := autotile.Position{X: x, Y: y}
	if _, seen := e.pending.prev[p]; seen {
		return
	}
	e.pending.prev[p] = layer.Tile(x, y)
}

func (e *Editor) commitStroke() {
	if e.pending == nil || len(e.pending.prev) == 0 {
		e.pending = nil
		return
	}
	e.undo = append(e.undo, strokeDelta{Layer: e.pending.layer, Prev: e.pending.prev})
	if len(e.undo) > maxUndo {
		e.undo = e.undo[1:]
	}
	e.pending = nil
}

// Undo restores the most recent stroke's previous refs.
func (e *Editor) Undo() {
	n := len(e.undo)
	if n == 0 {
		return
	}
	delta := e.undo[n-1]
	e.undo = e.undo[:n-1]

	var layer *tilemap.Layer
	for _, l := range e.lvl.Layers {
		if l.Name == delta.Layer {
			layer = l
			break
		}
	}
	if layer == nil {
		return
	}

	tiles := make([][2]int, 0, len(delta.Prev))
	for p, ref := range delta.Prev {
		layer.SetTile(p.X, p.Y, ref)
		tiles = append(tiles, [2]int{p.X, p.Y})
	}
	e.cache.InvalidateTiles(layer.Name, tiles)
	e.setStatus("undo (%d tiles)", len(tiles))
}

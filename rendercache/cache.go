// Package rendercache caches rendered tile imagery per (layer, chunk) so a
// repaint only redraws the chunks an edit touched.
//
// Each entry moves absent -> dirty -> clean -> dirty -> ... Writes to the
// tile storage must finish before the affected chunks are invalidated, and
// invalidation must happen before the next repaint reads the cache.
package rendercache

import "github.com/milk9111/tileforge/tilemap"

// Cache holds one rendered surface per (layer, cache chunk) pair with a
// dirty flag driving re-renders.
type Cache struct {
	chunkSize  int
	newSurface SurfaceFactory
	layers     map[string]map[tilemap.ChunkKey]*entry
}

// Surface is one chunk's backing image. The ebiten implementation lives in
// ebiten.go; tests substitute an in-memory fake.
type Surface interface {
	Size() (w, h int)
	Dispose()
}

// SurfaceFactory allocates a chunk surface. Returning nil signals that no
// surface could be obtained; the cache entry stays dirty so the next call
// retries.
type SurfaceFactory func(w, h int) Surface

// DefaultChunkSize is the per-surface chunk edge used by the editor. It is
// deliberately larger than tilemap.ChunkSize: one cached image covers many
// storage chunks.
const DefaultChunkSize = 64

type entry struct {
	surface Surface
	dirty   bool
}

// New creates a cache whose surfaces cover chunkSize x chunkSize tiles.
// A chunkSize <= 0 falls back to DefaultChunkSize.
func New(chunkSize int, factory SurfaceFactory) *Cache {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Cache{
		chunkSize:  chunkSize,
		newSurface: factory,
		layers:     make(map[string]map[tilemap.ChunkKey]*entry),
	}
}

// ChunkSize returns the cache's chunk edge in tiles.
func (c *Cache) ChunkSize() int {
	return c.chunkSize
}

// ChunkCoord maps a tile coordinate pair to cache chunk coordinates, floor
// division like the storage layer but over the cache's own chunk size.
func (c *Cache) ChunkCoord(tx, ty int) (cx, cy int) {
	return floorDiv(tx, c.chunkSize), floorDiv(ty, c.chunkSize)
}

func floorDiv(a, n int) int {
	q := a / n
	if a%n != 0 && (a < 0) != (n < 0) {
		q--
	}
	return q
}

// ChunkSurface returns the rendered surface for one cache chunk of a layer.
//
// On first use the surface is materialized dirty. A dirty entry invokes
// render before returning, then counts as clean; a clean entry returns
// without rendering. A surface whose size no longer matches is disposed and
// rebuilt. When the factory yields no surface the call returns nil and the
// entry stays dirty for retry.
func (c *Cache) ChunkSurface(layerID string, cx, cy, w, h int, render func(Surface)) Surface {
	chunks, ok := c.layers[layerID]
	if !ok {
		chunks = make(map[tilemap.ChunkKey]*entry)
		c.layers[layerID] = chunks
	}

	key := tilemap.KeyFor(cx, cy)
	e, ok := chunks[key]
	if !ok {
		e = &entry{dirty: true}
		chunks[key] = e
	}

	if e.surface != nil {
		if sw, sh := e.surface.Size(); sw != w || sh != h {
			e.surface.Dispose()
			e.surface = nil
			e.dirty = true
		}
	}
	if e.surface == nil {
		e.surface = c.newSurface(w, h)
		if e.surface == nil {
			e.dirty = true
			return nil
		}
		e.dirty = true
	}

	if e.dirty {
		if render != nil {
			render(e.surface)
		}
		e.dirty = false
	}
	return e.surface
}

// InvalidateTiles dirties only the cache chunks containing the given tile
// coordinates. Chunks never materialized are skipped; they will render on
// first use anyway.
func (c *Cache) InvalidateTiles(layerID string, tiles [][2]int) {
	chunks, ok := c.layers[layerID]
	if !ok {
		return
	}
	for _, t := range tiles {
		cx, cy := c.ChunkCoord(t[0], t[1])
		if e, ok := chunks[tilemap.KeyFor(cx, cy)]; ok {
			e.dirty = true
		}
	}
}

// InvalidateLayer dirties every materialized chunk of one layer.
func (c *Cache) InvalidateLayer(layerID string) {
	for _, e := range c.layers[layerID] {
		e.dirty = true
	}
}

// InvalidateAll dirties every chunk of every layer.
func (c *Cache) InvalidateAll() {
	for _, chunks := range c.layers {
		for _, e := range chunks {
			e.dirty = true
		}
	}
}

// RemoveLayer drops all cache state for a layer, disposing its surfaces.
func (c *Cache) RemoveLayer(layerID string) {
	for _, e := range c.layers[layerID] {
		if e.surface != nil {
			e.surface.Dispose()
		}
	}
	delete(c.layers, layerID)
}

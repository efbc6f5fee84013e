package level

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/tileforge/tilemap"
	"github.com/milk9111/tileforge/tileset"
)

const (
	// CollisionTypeSolid tags static level geometry in the space.
	CollisionTypeSolid cp.CollisionType = iota + 1
)

const solidFriction = 0.8

// BuildSpace constructs a static chipmunk space from every physics-enabled
// layer. Contiguous full-size solid tiles are merged into larger boxes
// (width first, then height) so the space holds far fewer shapes than tiles.
// Tiles whose definition carries explicit colliders get those boxes
// verbatim instead of joining a merged rectangle.
func BuildSpace(l *Level, tilesets tileset.Collection, gravity float64) *cp.Space {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: gravity})
	if l == nil {
		return space
	}
	for _, layer := range l.Layers {
		if HasPhysics(layer) {
			addLayerShapes(space, layer, tilesets)
		}
	}
	return space
}

func addLayerShapes(space *cp.Space, layer *tilemap.Layer, tilesets tileset.Collection) {
	b, ok := layer.Chunks.ChunkBounds()
	if !ok {
		return
	}
	tw, th := float64(layer.TileWidth), float64(layer.TileHeight)

	type pos struct{ x, y int }
	processed := make(map[pos]bool)

	solid := func(x, y int) bool {
		return !layer.Tile(x, y).IsEmpty()
	}
	// custom reports whether the tile's definition carries its own colliders.
	custom := func(x, y int) []tileset.Collider {
		ref := layer.Tile(x, y)
		if ref.IsEmpty() {
			return nil
		}
		ts := tilesets.ByOrder(ref.Order())
		if ts == nil {
			return nil
		}
		def := ts.TileDefAt(ref.X(), ref.Y())
		if def == nil {
			return nil
		}
		return def.Colliders
	}

	for y := b.MinY; y <= b.MaxY; y++ {
		for x := b.MinX; x <= b.MaxX; x++ {
			if processed[pos{x, y}] || !solid(x, y) {
				processed[pos{x, y}] = true
				continue
			}

			x0, y0 := float64(x)*tw, float64(y)*th
			if colliders := custom(x, y); len(colliders) > 0 {
				for _, col := range colliders {
					bb := cp.BB{
						L: x0 + col.X,
						B: y0 + col.Y,
						R: x0 + col.X + col.Width,
						T: y0 + col.Y + col.Height,
					}
					shape := cp.NewBox2(space.StaticBody, bb, 0)
					shape.SetFriction(solidFriction)
					shape.SetCollisionType(CollisionTypeSolid)
					space.AddShape(shape)
				}
				processed[pos{x, y}] = true
				continue
			}

			// Greedily expand a rectangle over contiguous plain solid tiles.
			mergeable := func(x, y int) bool {
				return !processed[pos{x, y}] && solid(x, y) && len(custom(x, y)) == 0
			}
			w := 1
			for x+w <= b.MaxX && mergeable(x+w, y) {
				w++
			}
			h := 1
		heightLoop:
			for y+h <= b.MaxY {
				for xi := x; xi < x+w; xi++ {
					if !mergeable(xi, y+h) {
						break heightLoop
					}
				}
				h++
			}

			bb := cp.BB{L: x0, B: y0, R: x0 + float64(w)*tw, T: y0 + float64(h)*th}
			shape := cp.NewBox2(space.StaticBody, bb, 0)
			shape.SetFriction(solidFriction)
			shape.SetCollisionType(CollisionTypeSolid)
			space.AddShape(shape)

			for yy := y; yy < y+h; yy++ {
				for xx := x; xx < x+w; xx++ {
					processed[pos{xx, yy}] = true
				}
			}
		}
	}
}

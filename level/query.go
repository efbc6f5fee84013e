package level

import (
	"math"

	"github.com/milk9111/tileforge/common"
)

// tileSize returns the level's cell dimensions in pixels.
func (l *Level) tileSize() (int, int) {
	if l == nil || len(l.Layers) == 0 {
		return common.TileSize, common.TileSize
	}
	return l.Layers[0].TileWidth, l.Layers[0].TileHeight
}

// TileAt reports whether any layer has a tile at tile coordinates (x, y).
// The map is unbounded; cells outside every chunk simply read empty.
func (l *Level) TileAt(x, y int) bool {
	if l == nil {
		return false
	}
	for _, layer := range l.Layers {
		if !layer.Tile(x, y).IsEmpty() {
			return true
		}
	}
	return false
}

// physicsTileAt reports whether a physics-enabled layer has a tile at (x, y).
func (l *Level) physicsTileAt(x, y int) bool {
	if l == nil {
		return false
	}
	for _, layer := range l.Layers {
		if HasPhysics(layer) && !layer.Tile(x, y).IsEmpty() {
			return true
		}
	}
	return false
}

// Query returns all solid tiles within one tile of the rect's bounding tile
// area, as world-pixel rects.
func (l *Level) Query(r common.Rect) []common.Rect {
	if l == nil {
		return nil
	}
	tw, th := l.tileSize()
	minX := int(math.Floor(float64(r.X)/float64(tw))) - 1
	minY := int(math.Floor(float64(r.Y)/float64(th))) - 1
	maxX := int(math.Floor(float64(r.X+r.Width)/float64(tw))) + 1
	maxY := int(math.Floor(float64(r.Y+r.Height)/float64(th))) + 1

	var out []common.Rect
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if l.physicsTileAt(x, y) {
				out = append(out, common.Rect{
					X:      float32(x * tw),
					Y:      float32(y * th),
					Width:  float32(tw),
					Height: float32(th),
				})
			}
		}
	}
	return out
}

// QueryHorizontal returns solid tiles in the columns immediately left and
// right of r, over the rows the rect overlaps.
func (l *Level) QueryHorizontal(r common.Rect) []common.Rect {
	if l == nil {
		return nil
	}
	tw, th := l.tileSize()
	tileLeft := int(math.Floor(float64(r.X) / float64(tw)))
	tileRight := int(math.Floor(float64(r.X+r.Width-1) / float64(tw)))
	tileTop := int(math.Floor(float64(r.Y) / float64(th)))
	tileBottom := int(math.Floor(float64(r.Y+r.Height-1) / float64(th)))

	var out []common.Rect
	for _, x := range []int{tileLeft - 1, tileRight + 1} {
		for y := tileTop; y <= tileBottom; y++ {
			if l.physicsTileAt(x, y) {
				out = append(out, common.Rect{
					X:      float32(x * tw),
					Y:      float32(y * th),
					Width:  float32(tw),
					Height: float32(th),
				})
			}
		}
	}
	return out
}

// QueryVertical returns solid tiles in the rows immediately above and below
// r, over the columns the rect overlaps.
func (l *Level) QueryVertical(r common.Rect) []common.Rect {
	if l == nil {
		return nil
	}
	tw, th := l.tileSize()
	tileTop := int(math.Floor(float64(r.Y) / float64(th)))
	tileBottom := int(math.Floor(float64(r.Y+r.Height-1) / float64(th)))
	tileLeft := int(math.Floor(float64(r.X) / float64(tw)))
	tileRight := int(math.Floor(float64(r.X+r.Width-1) / float64(tw)))

	var out []common.Rect
	for _, y := range []int{tileTop - 1, tileBottom + 1} {
		for x := tileLeft; x <= tileRight; x++ {
			if l.physicsTileAt(x, y) {
				out = append(out, common.Rect{
					X:      float32(x * tw),
					Y:      float32(y * th),
					Width:  float32(tw),
					Height: float32(th),
				})
			}
		}
	}
	return out
}

// IsGrounded reports whether the rect rests exactly on top of a solid tile.
func (l *Level) IsGrounded(r common.Rect) bool {
	if l == nil {
		return false
	}
	tw, th := l.tileSize()
	eps := float32(0.001)
	bottom := r.Y + r.Height
	row := int(math.Floor(float64((bottom + eps) / float32(th))))
	left := int(math.Floor(float64(r.X) / float64(tw)))
	right := int(math.Floor(float64((r.X + r.Width - 1) / float32(tw))))
	for x := left; x <= right; x++ {
		if l.physicsTileAt(x, row) {
			tileTop := float32(row * th)
			if bottom >= tileTop-eps && bottom <= tileTop+eps {
				return true
			}
		}
	}
	return false
}

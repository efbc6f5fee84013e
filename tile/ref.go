// Package tile defines the packed tile reference used by every grid cell.
//
// A Ref identifies one sprite inside one tileset plus two flip flags. The
// zero value is reserved to mean "no tile here", which is why a tileset
// order of 0 can never be packed.
package tile

import "fmt"

// Ref packs a sprite's pixel position inside its tileset image, the owning
// tileset's order and the flip flags into a single integer.
//
// Layout (low to high): x bits 0-15, y bits 16-31, order bits 32-45,
// flipX bit 46, flipY bit 47.
type Ref uint64

// Empty is the reserved "no tile present" value.
const Empty Ref = 0

const (
	// MaxCoord is the largest sprite pixel offset a Ref can carry.
	MaxCoord = 0xffff
	// MaxOrder is the largest tileset order a Ref can carry. Order 0 is
	// reserved so that an all-zero Ref always means "empty".
	MaxOrder = 0x3fff

	shiftY     = 16
	shiftOrder = 32
	bitFlipX   = 1 << 46
	bitFlipY   = 1 << 47
)

// Pack builds a Ref from its parts. It returns an error when x, y or order
// fall outside their fields, and in particular rejects order 0: the all-zero
// encoding belongs to Empty. Out-of-range values are never clamped.
func Pack(x, y, order int, flipX, flipY bool) (Ref, error) {
	if x < 0 || x > MaxCoord {
		return Empty, fmt.Errorf("tile: x %d out of range [0, %d]", x, MaxCoord)
	}
	if y < 0 || y > MaxCoord {
		return Empty, fmt.Errorf("tile: y %d out of range [0, %d]", y, MaxCoord)
	}
	if order < 1 || order > MaxOrder {
		return Empty, fmt.Errorf("tile: tileset order %d out of range [1, %d]", order, MaxOrder)
	}

	r := Ref(uint64(x) | uint64(y)<<shiftY | uint64(order)<<shiftOrder)
	if flipX {
		r |= bitFlipX
	}
	if flipY {
		r |= bitFlipY
	}
	return r, nil
}

// MustPack is Pack for known-good inputs. It panics on a range error and is
// intended for literals in tests and built-in catalogs.
func MustPack(x, y, order int, flipX, flipY bool) Ref {
	r, err := Pack(x, y, order, flipX, flipY)
	if err != nil {
		panic(err)
	}
	return r
}

// Unpack splits the Ref back into its parts. Unpacking Empty yields all
// zeroes and false flags.
func (r Ref) Unpack() (x, y, order int, flipX, flipY bool) {
	x = int(uint64(r) & MaxCoord)
	y = int(uint64(r) >> shiftY & MaxCoord)
	order = int(uint64(r) >> shiftOrder & MaxOrder)
	flipX = r&bitFlipX != 0
	flipY = r&bitFlipY != 0
	return
}

// IsEmpty reports whether the Ref is the reserved empty value.
func (r Ref) IsEmpty() bool {
	return r == Empty
}

// X returns the sprite's x pixel offset inside its tileset image.
func (r Ref) X() int { return int(uint64(r) & MaxCoord) }

// Y returns the sprite's y pixel offset inside its tileset image.
func (r Ref) Y() int { return int(uint64(r) >> shiftY & MaxCoord) }

// Order returns the owning tileset's order, or 0 for Empty.
func (r Ref) Order() int { return int(uint64(r) >> shiftOrder & MaxOrder) }

// FlipX reports whether the sprite is mirrored horizontally.
func (r Ref) FlipX() bool { return r&bitFlipX != 0 }

// FlipY reports whether the sprite is mirrored vertically.
func (r Ref) FlipY() bool { return r&bitFlipY != 0 }

func (r Ref) String() string {
	if r.IsEmpty() {
		return "tile.Empty"
	}
	x, y, order, fx, fy := r.Unpack()
	return fmt.Sprintf("tile.Ref{x:%d y:%d order:%d flipX:%v flipY:%v}", x, y, order, fx, fy)
}

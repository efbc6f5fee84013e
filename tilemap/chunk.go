// Package tilemap stores tile layers as sparse grids of fixed-size chunks.
//
// Chunks are allocated on first write and pruned once every slot is empty
// again, so memory and serialized size track the occupied area of the map
// rather than its extent. Tile coordinates are unbounded in every direction;
// negative coordinates are first-class.
package tilemap

import "github.com/milk9111/tileforge/tile"

// ChunkSize is the width and height, in tiles, of one storage chunk.
const ChunkSize = 16

// Chunk is a flat row-major block of ChunkSize x ChunkSize tile refs.
type Chunk []tile.Ref

// NewChunk allocates an empty chunk.
func NewChunk() Chunk {
	return make(Chunk, ChunkSize*ChunkSize)
}

// IsEmpty reports whether every slot in the chunk is tile.Empty. A nil or
// short chunk counts as empty.
func (c Chunk) IsEmpty() bool {
	for _, ref := range c {
		if !ref.IsEmpty() {
			return false
		}
	}
	return true
}

// ChunkKey identifies a chunk by its chunk coordinates packed into a single
// integer, so negative coordinates need no string formatting to act as map
// keys.
type ChunkKey int64

// KeyFor builds the key for chunk coordinates (cx, cy).
func KeyFor(cx, cy int) ChunkKey {
	return ChunkKey(int64(cx)<<32 | int64(uint32(cy)))
}

// Coords returns the chunk coordinates the key was built from.
func (k ChunkKey) Coords() (cx, cy int) {
	return int(int64(k) >> 32), int(int32(uint32(k)))
}

// ChunkCoord maps a tile coordinate pair to the coordinates of its owning
// chunk using floor division, so tile -1 lands in chunk -1 rather than 0.
func ChunkCoord(tx, ty int) (cx, cy int) {
	return floorDiv(tx, ChunkSize), floorDiv(ty, ChunkSize)
}

// LocalCoord maps a tile coordinate pair to its offset inside the owning
// chunk. The result is always in [0, ChunkSize), for any integer input.
func LocalCoord(tx, ty int) (lx, ly int) {
	return mod(tx, ChunkSize), mod(ty, ChunkSize)
}

func floorDiv(a, n int) int {
	q := a / n
	if a%n != 0 && (a < 0) != (n < 0) {
		q--
	}
	return q
}

func mod(a, n int) int {
	return (a%n + n) % n
}

// ChunkMap is the sparse grid: present chunks keyed by chunk coordinates.
type ChunkMap map[ChunkKey]Chunk

// Tile returns the ref stored at tile coordinates (x, y), or tile.Empty when
// the owning chunk does not exist. It never fails, for any integer x, y.
func (m ChunkMap) Tile(x, y int) tile.Ref {
	cx, cy := ChunkCoord(x, y)
	c, ok := m[KeyFor(cx, cy)]
	if !ok {
		return tile.Empty
	}
	lx, ly := LocalCoord(x, y)
	i := ly*ChunkSize + lx
	if i >= len(c) {
		return tile.Empty
	}
	return c[i]
}

// SetTile writes ref at tile coordinates (x, y), creating the owning chunk
// on demand. There is no bounds restriction; the map is infinite.
func (m ChunkMap) SetTile(x, y int, ref tile.Ref) {
	cx, cy := ChunkCoord(x, y)
	key := KeyFor(cx, cy)
	c, ok := m[key]
	if !ok {
		if ref.IsEmpty() {
			// Clearing a tile in a chunk that was never allocated is a no-op.
			return
		}
		c = NewChunk()
		m[key] = c
	}
	lx, ly := LocalCoord(x, y)
	c[ly*ChunkSize+lx] = ref
}

// Prune removes every chunk whose slots are all empty. Call after bulk
// erases and before serialization so the on-disk form only carries occupied
// chunks.
func (m ChunkMap) Prune() {
	for key, c := range m {
		if c.IsEmpty() {
			delete(m, key)
		}
	}
}

// Bounds is a tile-space bounding box, inclusive on all sides.
type Bounds struct {
	MinX, MinY int
	MaxX, MaxY int
}

// ChunkBounds returns the tile-space bounding box covering every present
// chunk. ok is false when the map holds no chunks at all.
func (m ChunkMap) ChunkBounds() (b Bounds, ok bool) {
	for key := range m {
		cx, cy := key.Coords()
		minX, minY := cx*ChunkSize, cy*ChunkSize
		maxX, maxY := minX+ChunkSize-1, minY+ChunkSize-1
		if !ok {
			b = Bounds{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
			ok = true
			continue
		}
		if minX < b.MinX {
			b.MinX = minX
		}
		if minY < b.MinY {
			b.MinY = minY
		}
		if maxX > b.MaxX {
			b.MaxX = maxX
		}
		if maxY > b.MaxY {
			b.MaxY = maxY
		}
	}
	return b, ok
}

// Clone returns a deep copy of the chunk map. The editor's undo stack
// snapshots layers this way before destructive bulk operations.
func (m ChunkMap) Clone() ChunkMap {
	out := make(ChunkMap, len(m))
	for key, c := range m {
		cc := make(Chunk, len(c))
		copy(cc, c)
		out[key] = cc
	}
	return out
}

package tilemap

import (
	"testing"

	"github.com/milk9111/tileforge/tile"
)

func TestChunkCoordFloorDivision(t *testing.T) {
	cases := []struct {
		name   string
		tx, ty int
		cx, cy int
	}{
		{"origin", 0, 0, 0, 0},
		{"inside_first_chunk", 15, 15, 0, 0},
		{"second_chunk", 16, 0, 1, 0},
		{"neg_one", -1, -1, -1, -1},
		{"neg_chunk_edge", -16, -16, -1, -1},
		{"neg_past_edge", -17, -17, -2, -2},
		{"far_positive", 1000, 1000, 62, 62},
		{"far_negative", -1000, -1000, -63, -63},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cx, cy := ChunkCoord(c.tx, c.ty)
			if cx != c.cx || cy != c.cy {
				t.Fatalf("ChunkCoord(%d, %d) = (%d, %d), want (%d, %d)", c.tx, c.ty, cx, cy, c.cx, c.cy)
			}
		})
	}
}

func TestLocalCoordAlwaysInRange(t *testing.T) {
	cases := []struct {
		name   string
		tx, ty int
		lx, ly int
	}{
		{"origin", 0, 0, 0, 0},
		{"neg_one", -1, -1, 15, 15},
		{"neg_chunk_edge", -16, -16, 0, 0},
		{"neg_past_edge", -17, -17, 15, 15},
		{"positive_wrap", 17, 33, 1, 1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			lx, ly := LocalCoord(c.tx, c.ty)
			if lx != c.lx || ly != c.ly {
				t.Fatalf("LocalCoord(%d, %d) = (%d, %d), want (%d, %d)", c.tx, c.ty, lx, ly, c.lx, c.ly)
			}
		})
	}

	for tx := -40; tx <= 40; tx++ {
		lx, ly := LocalCoord(tx, -tx)
		if lx < 0 || lx >= ChunkSize || ly < 0 || ly >= ChunkSize {
			t.Fatalf("LocalCoord(%d, %d) = (%d, %d) outside [0, %d)", tx, -tx, lx, ly, ChunkSize)
		}
	}
}

func TestChunkKeyRoundTrip(t *testing.T) {
	coords := [][2]int{{0, 0}, {1, -1}, {-1, 1}, {-1, -1}, {1 << 20, -(1 << 20)}}
	seen := make(map[ChunkKey]bool)
	for _, c := range coords {
		key := KeyFor(c[0], c[1])
		if seen[key] {
			t.Fatalf("key collision for (%d, %d)", c[0], c[1])
		}
		seen[key] = true
		cx, cy := key.Coords()
		if cx != c[0] || cy != c[1] {
			t.Fatalf("KeyFor(%d, %d).Coords() = (%d, %d)", c[0], c[1], cx, cy)
		}
	}
}

func TestSparseReadsAndLazyAllocation(t *testing.T) {
	m := make(ChunkMap)
	probes := [][2]int{{0, 0}, {-1, -1}, {1 << 20, 1 << 20}, {-(1 << 20), 5}}
	for _, p := range probes {
		if got := m.Tile(p[0], p[1]); !got.IsEmpty() {
			t.Fatalf("empty map Tile(%d, %d) = %v, want Empty", p[0], p[1], got)
		}
	}
	if len(m) != 0 {
		t.Fatalf("reads must not allocate chunks, have %d", len(m))
	}

	ref := tile.MustPack(32, 0, 1, false, false)
	m.SetTile(-1, -1, ref)
	if len(m) != 1 {
		t.Fatalf("one write should allocate exactly one chunk, have %d", len(m))
	}
	if got := m.Tile(-1, -1); got != ref {
		t.Fatalf("Tile(-1, -1) = %v, want %v", got, ref)
	}
	if _, ok := m[KeyFor(-1, -1)]; !ok {
		t.Fatalf("write at (-1, -1) should land in chunk (-1, -1)")
	}

	// A second write into the same chunk must not allocate another.
	m.SetTile(-16, -16, ref)
	if len(m) != 1 {
		t.Fatalf("second write in same chunk allocated a new one, have %d", len(m))
	}

	// Clearing a never-allocated chunk stays a no-op.
	m.SetTile(500, 500, tile.Empty)
	if len(m) != 1 {
		t.Fatalf("clearing an absent chunk must not allocate, have %d", len(m))
	}
}

func TestPrune(t *testing.T) {
	m := make(ChunkMap)
	ref := tile.MustPack(0, 0, 1, false, false)
	m.SetTile(3, 3, ref)
	m.SetTile(100, 100, ref)

	m.SetTile(3, 3, tile.Empty)
	m.Prune()

	if _, ok := m[KeyFor(0, 0)]; ok {
		t.Fatalf("fully cleared chunk should be pruned")
	}
	if _, ok := m[KeyFor(ChunkCoord(100, 100))]; !ok {
		t.Fatalf("occupied chunk must never be pruned")
	}
	if got := m.Tile(100, 100); got != ref {
		t.Fatalf("Tile(100, 100) = %v after prune, want %v", got, ref)
	}
}

func TestChunkBounds(t *testing.T) {
	m := make(ChunkMap)
	if _, ok := m.ChunkBounds(); ok {
		t.Fatalf("empty map should have no bounds")
	}

	ref := tile.MustPack(0, 0, 1, false, false)
	m.SetTile(0, 0, ref)
	m.SetTile(-20, 35, ref)

	b, ok := m.ChunkBounds()
	if !ok {
		t.Fatalf("expected bounds")
	}
	want := Bounds{MinX: -32, MinY: 0, MaxX: 15, MaxY: 47}
	if b != want {
		t.Fatalf("ChunkBounds() = %+v, want %+v", b, want)
	}
}

func TestClone(t *testing.T) {
	m := make(ChunkMap)
	ref := tile.MustPack(16, 0, 2, false, false)
	m.SetTile(4, 4, ref)

	c := m.Clone()
	c.SetTile(4, 4, tile.Empty)
	if got := m.Tile(4, 4); got != ref {
		t.Fatalf("mutating a clone changed the original: %v", got)
	}
}

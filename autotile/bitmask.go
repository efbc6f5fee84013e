// Package autotile picks terrain sprites from neighbor bitmasks and keeps a
// neighborhood consistent after edits.
//
// The bitmask walks the 3x3 neighborhood row-major, one bit per cell. The
// center bit is always set, so an isolated tile matches a catalog entry with
// mask 16 rather than 0, and a fully surrounded tile matches 511.
package autotile

import "github.com/milk9111/tileforge/tileset"

// One bit per cell of the 3x3 neighborhood, row-major from the top-left.
const (
	BitNW = 1 << iota
	BitN
	BitNE
	BitW
	BitCenter
	BitE
	BitSE
	BitS
	BitSW
)

// MaxBitmask is the fully surrounded mask: all eight neighbors plus center.
const MaxBitmask = 511

// neighborOffsets lists the 8 surrounding cells in bit order (center
// excluded). Index i corresponds to the i-th neighbor bit.
var neighborOffsets = [8]struct {
	dx, dy int
	bit    int
}{
	{-1, -1, BitNW},
	{0, -1, BitN},
	{1, -1, BitNE},
	{-1, 0, BitW},
	{1, 0, BitE},
	{1, 1, BitSE},
	{0, 1, BitS},
	{-1, 1, BitSW},
}

// Bitmask computes the neighbor bitmask for a cell. has is called once per
// neighbor offset and reports whether that neighbor continues the terrain.
// The center bit is always included.
func Bitmask(has func(dx, dy int) bool) int {
	mask := BitCenter
	for _, n := range neighborOffsets {
		if has(n.dx, n.dy) {
			mask |= n.bit
		}
	}
	return mask
}

// FindByBitmask returns the catalog entry whose bitmask equals mask exactly,
// or nil when the catalog has no entry for it. It never falls back to the
// closest mask: a missing variant should surface to the map author, not be
// papered over. Ties on the same bitmask resolve to the highest weight, then
// to declaration order.
func FindByBitmask(tl *tileset.TerrainLayer, mask int) *tileset.TerrainTile {
	if tl == nil {
		return nil
	}
	var best *tileset.TerrainTile
	for i := range tl.Tiles {
		tt := &tl.Tiles[i]
		if tt.Bitmask != mask {
			continue
		}
		if best == nil || tt.Weight > best.Weight {
			best = tt
		}
	}
	return best
}

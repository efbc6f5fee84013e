package tileset

import (
	"testing"
	"testing/fstest"

	"github.com/milk9111/tileforge/tile"
	"github.com/milk9111/tileforge/tilemap"
)

func grassTileset(order int) *Tileset {
	return &Tileset{
		Name:       "meadow",
		Order:      order,
		TileWidth:  32,
		TileHeight: 32,
		Tiles: []TileDef{
			{X: 0, Y: 0, Type: "grass"},
			{X: 32, Y: 0, Type: "grass"},
			{X: 64, Y: 0, Type: "dirt"},
			{X: 96, Y: 0},
		},
		TerrainLayers: []TerrainLayer{
			{
				ID:   "grass",
				Name: "grass",
				Tiles: []TerrainTile{
					{X: 0, Y: 0, Bitmask: 16},
					{X: 32, Y: 0, Bitmask: 511},
				},
			},
			{
				ID:   "dirt",
				Name: "dirt",
				Tiles: []TerrainTile{
					{X: 64, Y: 0, Bitmask: 16},
				},
			},
		},
	}
}

func TestByOrder(t *testing.T) {
	c := Collection{grassTileset(1), grassTileset(3)}
	cases := []struct {
		name  string
		order int
		found bool
	}{
		{"first", 1, true},
		{"gap", 2, false},
		{"second", 3, true},
		{"zero_reserved", 0, false},
		{"negative", -1, false},
		{"missing", 99, false},
	}
	for _, cse := range cases {
		t.Run(cse.name, func(t *testing.T) {
			ts := c.ByOrder(cse.order)
			if (ts != nil) != cse.found {
				t.Fatalf("ByOrder(%d) found=%v, want %v", cse.order, ts != nil, cse.found)
			}
		})
	}
}

func TestTerrainLayerForTile(t *testing.T) {
	c := Collection{grassTileset(1)}
	cases := []struct {
		name   string
		ref    tile.Ref
		wantID string
		wantOK bool
	}{
		{"empty_ref", tile.Empty, "", false},
		{"grass_sprite", tile.MustPack(0, 0, 1, false, false), "grass", true},
		{"grass_full_sprite", tile.MustPack(32, 0, 1, false, false), "grass", true},
		{"dirt_sprite", tile.MustPack(64, 0, 1, false, false), "dirt", true},
		{"untagged_sprite", tile.MustPack(96, 0, 1, false, false), "", false},
		{"unknown_tileset", tile.MustPack(0, 0, 5, false, false), "", false},
	}
	for _, cse := range cases {
		t.Run(cse.name, func(t *testing.T) {
			id, ok := c.TerrainLayerForTile(cse.ref)
			if id != cse.wantID || ok != cse.wantOK {
				t.Fatalf("TerrainLayerForTile(%v) = (%q, %v), want (%q, %v)", cse.ref, id, ok, cse.wantID, cse.wantOK)
			}
		})
	}
}

func TestIsTerrainAt(t *testing.T) {
	c := Collection{grassTileset(1)}
	l := tilemap.NewLayer("ground", 32, 32)
	l.SetTile(0, 0, tile.MustPack(0, 0, 1, false, false))
	l.SetTile(1, 0, tile.MustPack(64, 0, 1, false, false))

	if !c.IsTerrainAt(l, 0, 0, "grass") {
		t.Fatalf("grass tile should match grass")
	}
	if c.IsTerrainAt(l, 0, 0, "dirt") {
		t.Fatalf("grass tile should not match dirt")
	}
	if c.IsTerrainAt(l, 1, 0, "grass") {
		t.Fatalf("dirt tile should not match grass")
	}
	// Holes and unallocated chunks both read as "not this terrain".
	if c.IsTerrainAt(l, 5, 5, "grass") {
		t.Fatalf("empty cell should never match")
	}
	if c.IsTerrainAt(l, -4000, 9000, "grass") {
		t.Fatalf("cell far outside any chunk should never match")
	}
}

const defYAML = `
name: meadow
path: meadow.png
order: 1
tile_width: 32
tile_height: 32
tiles:
  - x: 0
    y: 0
    type: grass
terrain_layers:
  - id: grass
    name: grass
    tiles:
      - x: 0
        y: 0
        bitmask: 16
      - x: 32
        y: 0
        bitmask: 511
        weight: 2
`

func TestParse(t *testing.T) {
	ts, err := Parse([]byte(defYAML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if ts.Name != "meadow" || ts.Order != 1 || ts.TileWidth != 32 {
		t.Fatalf("unexpected tileset: %+v", ts)
	}
	tl := ts.TerrainLayerByID("grass")
	if tl == nil || len(tl.Tiles) != 2 {
		t.Fatalf("terrain layer not parsed: %+v", tl)
	}
	if tl.Tiles[1].Weight != 2 {
		t.Fatalf("weight not parsed: %+v", tl.Tiles[1])
	}
	if def := ts.TileDefAt(0, 0); def == nil || def.Type != "grass" {
		t.Fatalf("tile def not parsed: %+v", def)
	}
}

func TestParseValidation(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"order_zero", "name: a\norder: 0\ntile_width: 32\ntile_height: 32\n"},
		{"zero_tile_size", "name: a\norder: 1\ntile_width: 0\ntile_height: 32\n"},
		{"bitmask_out_of_range", "name: a\norder: 1\ntile_width: 32\ntile_height: 32\nterrain_layers:\n  - id: g\n    name: g\n    tiles:\n      - {x: 0, y: 0, bitmask: 512}\n"},
		{"terrain_without_id", "name: a\norder: 1\ntile_width: 32\ntile_height: 32\nterrain_layers:\n  - name: g\n    tiles: []\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := Parse([]byte(c.in)); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestLoadDir(t *testing.T) {
	fsys := fstest.MapFS{
		"defs/meadow.yaml": {Data: []byte(defYAML)},
		"defs/cave.yml":    {Data: []byte("name: cave\npath: cave.png\norder: 2\ntile_width: 32\ntile_height: 32\n")},
		"defs/notes.txt":   {Data: []byte("ignored")},
	}
	c, err := LoadDir(fsys, "defs")
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if len(c) != 2 {
		t.Fatalf("expected 2 tilesets, got %d", len(c))
	}
	if c[0].Order != 1 || c[1].Order != 2 {
		t.Fatalf("collection not sorted by order: %d, %d", c[0].Order, c[1].Order)
	}

	dup := fstest.MapFS{
		"defs/a.yaml": {Data: []byte("name: a\norder: 1\ntile_width: 32\ntile_height: 32\n")},
		"defs/b.yaml": {Data: []byte("name: b\norder: 1\ntile_width: 32\ntile_height: 32\n")},
	}
	if _, err := LoadDir(dup, "defs"); err == nil {
		t.Fatalf("duplicate orders should fail")
	}
}

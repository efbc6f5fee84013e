package tilesets

import "testing"

func TestDefaults(t *testing.T) {
	defs, err := Defaults()
	if err != nil {
		t.Fatalf("defaults: %v", err)
	}
	if len(defs) < 2 {
		t.Fatalf("expected at least 2 embedded tilesets, got %d", len(defs))
	}

	grass := defs.ByOrder(1)
	if grass == nil || grass.Name != "grass" {
		t.Fatalf("order 1 = %+v, want grass", grass)
	}
	tl := grass.TerrainLayerByID("grass")
	if tl == nil {
		t.Fatal("grass tileset missing grass terrain layer")
	}
	for _, tt := range tl.Tiles {
		if grass.TileDefAt(tt.X, tt.Y) == nil {
			t.Errorf("terrain variant (%d,%d) has no tile definition", tt.X, tt.Y)
		}
	}

	stone := defs.ByOrder(2)
	if stone == nil || stone.Name != "stone" {
		t.Fatalf("order 2 = %+v, want stone", stone)
	}
	slab := stone.TileDefAt(64, 0)
	if slab == nil || len(slab.Colliders) != 1 {
		t.Fatalf("stone slab def = %+v, want one collider", slab)
	}
}

func TestLoadPrefersDiskThenEmbed(t *testing.T) {
	data, err := Load("tilesets/grass.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty definition")
	}
}

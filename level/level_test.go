package level

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/milk9111/tileforge/common"
	"github.com/milk9111/tileforge/tile"
)

func solidRef(t *testing.T) tile.Ref {
	t.Helper()
	return tile.MustPack(0, 0, 1, false, false)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	lvl := New(32, 32)
	lvl.SpawnX, lvl.SpawnY = -3, 7
	lvl.Transitions = []Transition{{X: 0, Y: 0, W: 2, H: 2, Target: "cave.json"}}
	lvl.Entities = []PlacedEntity{{Name: "torch", Sprite: "torch.png", X: 4, Y: 4}}
	lvl.Layers[0].SetTile(-10, 20, solidRef(t))
	SetPhysics(lvl.Layers[0], true)

	b, err := lvl.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	back, err := Decode(b)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if back.Version != FormatVersion {
		t.Fatalf("version = %d, want %d", back.Version, FormatVersion)
	}
	if back.SpawnX != -3 || back.SpawnY != 7 {
		t.Fatalf("spawn lost: (%d, %d)", back.SpawnX, back.SpawnY)
	}
	if got := back.Layers[0].Tile(-10, 20); got != solidRef(t) {
		t.Fatalf("tile lost: %v", got)
	}
	if !HasPhysics(back.Layers[0]) {
		t.Fatalf("physics property lost")
	}
	if len(back.Transitions) != 1 || back.Transitions[0].Target != "cave.json" {
		t.Fatalf("transitions lost: %+v", back.Transitions)
	}
	if len(back.Entities) != 1 || back.Entities[0].Name != "torch" {
		t.Fatalf("entities lost: %+v", back.Entities)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.json")

	lvl := New(32, 32)
	lvl.Layers[0].SetTile(5, 5, solidRef(t))
	// Leave an allocated-but-empty chunk behind; Save must prune it.
	lvl.Layers[0].SetTile(100, 100, solidRef(t))
	lvl.Layers[0].SetTile(100, 100, tile.Empty)

	if err := lvl.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := back.Layers[0].Tile(5, 5); got != solidRef(t) {
		t.Fatalf("tile lost through save/load: %v", got)
	}
	if len(back.Layers[0].Chunks) != 1 {
		t.Fatalf("empty chunk not pruned: %d chunks", len(back.Layers[0].Chunks))
	}
}

const legacyJSON = `{
	"width": 3,
	"height": 2,
	"layers": [[1, 0, 2, 0, 1, 0]],
	"layer_meta": [{"has_physics": true, "name": "ground"}],
	"spawn_x": 1,
	"spawn_y": 1,
	"entities": [{"name": "torch", "sprite": "torch.png", "x": 0, "y": 0}]
}`

func TestIsLegacy(t *testing.T) {
	if !IsLegacy([]byte(legacyJSON)) {
		t.Fatalf("legacy file not detected")
	}
	chunked, _ := New(32, 32).Encode()
	if IsLegacy(chunked) {
		t.Fatalf("chunked file misdetected as legacy")
	}
	if IsLegacy([]byte("not json")) {
		t.Fatalf("garbage misdetected as legacy")
	}
}

func TestDecodeRejectsLegacy(t *testing.T) {
	if _, err := Decode([]byte(legacyJSON)); err == nil {
		t.Fatalf("Decode should refuse the legacy shape")
	}
}

func TestDecodeLegacy(t *testing.T) {
	lvl, err := DecodeLegacy([]byte(legacyJSON), MigrateOptions{
		Columns: 4, Order: 1, TileWidth: 32, TileHeight: 32,
	})
	if err != nil {
		t.Fatalf("DecodeLegacy: %v", err)
	}
	if len(lvl.Layers) != 1 {
		t.Fatalf("expected 1 layer, got %d", len(lvl.Layers))
	}
	layer := lvl.Layers[0]
	if layer.Name != "ground" || !HasPhysics(layer) {
		t.Fatalf("layer metadata lost: %+v", layer)
	}
	// Legacy cell value 1 -> sprite index 0 -> (0, 0); value 2 -> (32, 0).
	if got := layer.Tile(0, 0); got.X() != 0 || got.Y() != 0 || got.Order() != 1 {
		t.Fatalf("cell (0, 0) = %v", got)
	}
	if got := layer.Tile(2, 0); got.X() != 32 {
		t.Fatalf("cell (2, 0) = %v", got)
	}
	if !layer.Tile(1, 0).IsEmpty() {
		t.Fatalf("legacy empty cell should stay empty")
	}
	if lvl.SpawnX != 1 || lvl.SpawnY != 1 {
		t.Fatalf("spawn lost: (%d, %d)", lvl.SpawnX, lvl.SpawnY)
	}
	if len(lvl.Entities) != 1 {
		t.Fatalf("entities lost")
	}
}

func buildPhysicsLevel(t *testing.T) *Level {
	t.Helper()
	lvl := New(32, 32)
	SetPhysics(lvl.Layers[0], true)
	// Floor from (-2, 3) to (4, 3).
	for x := -2; x <= 4; x++ {
		lvl.Layers[0].SetTile(x, 3, solidRef(t))
	}
	return lvl
}

func TestQuery(t *testing.T) {
	lvl := buildPhysicsLevel(t)

	// A rect resting just above the floor at x = 0 (tile row 3 starts at 96px).
	r := common.Rect{X: 0, Y: 64, Width: 32, Height: 32}
	hits := lvl.Query(r)
	if len(hits) == 0 {
		t.Fatalf("expected floor tiles near rect")
	}
	for _, h := range hits {
		if h.Y != 96 {
			t.Fatalf("unexpected hit at %+v", h)
		}
	}

	// Negative-coordinate floor tiles are found just like positive ones.
	hits = lvl.Query(common.Rect{X: -64, Y: 64, Width: 32, Height: 32})
	if len(hits) == 0 {
		t.Fatalf("expected hits over negative coordinates")
	}

	// Far away: nothing, and no allocation-driven surprises.
	if hits := lvl.Query(common.Rect{X: 10000, Y: 10000, Width: 32, Height: 32}); len(hits) != 0 {
		t.Fatalf("expected no hits far from the floor, got %d", len(hits))
	}
}

func TestQueryIgnoresNonPhysicsLayers(t *testing.T) {
	lvl := New(32, 32)
	lvl.Layers[0].SetTile(0, 3, solidRef(t)) // no physics flag
	if hits := lvl.Query(common.Rect{X: 0, Y: 64, Width: 32, Height: 32}); len(hits) != 0 {
		t.Fatalf("decorative layer should not collide, got %d hits", len(hits))
	}
}

func TestIsGrounded(t *testing.T) {
	lvl := buildPhysicsLevel(t)
	on := common.Rect{X: 0, Y: 64, Width: 32, Height: 32} // bottom at 96 = floor top
	if !lvl.IsGrounded(on) {
		t.Fatalf("rect flush on the floor should be grounded")
	}
	off := common.Rect{X: 0, Y: 40, Width: 32, Height: 32}
	if lvl.IsGrounded(off) {
		t.Fatalf("airborne rect should not be grounded")
	}
}

func TestQueryHorizontalVertical(t *testing.T) {
	lvl := New(32, 32)
	SetPhysics(lvl.Layers[0], true)
	lvl.Layers[0].SetTile(-1, 0, solidRef(t)) // wall left of origin
	lvl.Layers[0].SetTile(0, 1, solidRef(t))  // floor below origin

	r := common.Rect{X: 0, Y: 0, Width: 32, Height: 32}
	if hits := lvl.QueryHorizontal(r); len(hits) != 1 || hits[0].X != -32 {
		t.Fatalf("QueryHorizontal = %+v, want wall at x=-32", hits)
	}
	if hits := lvl.QueryVertical(r); len(hits) != 1 || hits[0].Y != 32 {
		t.Fatalf("QueryVertical = %+v, want floor at y=32", hits)
	}
}

func TestLevelJSONShape(t *testing.T) {
	lvl := New(32, 32)
	lvl.Layers[0].SetTile(0, 0, solidRef(t))
	b, err := lvl.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Fatalf("unmarshal raw: %v", err)
	}
	if _, ok := raw["version"]; !ok {
		t.Fatalf("chunked files must carry a version field")
	}
	if _, ok := raw["width"]; ok {
		t.Fatalf("chunked files must not carry legacy width/height")
	}
}

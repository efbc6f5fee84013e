package levels

import (
	"testing"

	"github.com/milk9111/tileforge/level"
)

func TestLoadMeadow(t *testing.T) {
	lvl, err := Load("meadow.json")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if lvl.Version != level.FormatVersion {
		t.Fatalf("version = %d, want %d", lvl.Version, level.FormatVersion)
	}
	ground := lvl.Layer(0)
	if ground == nil || ground.Name != "ground" {
		t.Fatalf("first layer = %+v, want ground", ground)
	}
	if !level.HasPhysics(ground) {
		t.Fatal("ground layer should have physics enabled")
	}

	ref := ground.Tile(5, 10)
	if ref.IsEmpty() {
		t.Fatal("expected ground strip tile at (5,10)")
	}
	if ref.Order() != 1 {
		t.Fatalf("order = %d, want 1", ref.Order())
	}
	if !ground.Tile(5, 9).IsEmpty() {
		t.Fatal("row above the strip should be empty")
	}
}

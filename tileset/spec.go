package tileset

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parse decodes one tileset definition and validates the fields the core
// relies on.
func Parse(data []byte) (*Tileset, error) {
	var ts Tileset
	if err := yaml.Unmarshal(data, &ts); err != nil {
		return nil, fmt.Errorf("tileset: unmarshal: %w", err)
	}
	if err := validate(&ts); err != nil {
		return nil, err
	}
	return &ts, nil
}

// LoadFile reads a tileset definition from a YAML file on disk.
func LoadFile(path string) (*Tileset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tileset: load %s: %w", path, err)
	}
	ts, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("tileset: %s: %w", path, err)
	}
	return ts, nil
}

// LoadDir reads every .yaml/.yml tileset definition under root (an fs.FS, so
// embedded defaults and on-disk project dirs load the same way) and returns
// them ordered by their Order field. Duplicate orders are an error: a ref
// must resolve to at most one tileset.
func LoadDir(fsys fs.FS, root string) (Collection, error) {
	var out Collection
	err := fs.WalkDir(fsys, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isDefFile(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("tileset: read %s: %w", path, err)
		}
		ts, err := Parse(data)
		if err != nil {
			return fmt.Errorf("tileset: %s: %w", path, err)
		}
		out = append(out, ts)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	for i := 1; i < len(out); i++ {
		if out[i].Order == out[i-1].Order {
			return nil, fmt.Errorf("tileset: order %d used by both %q and %q", out[i].Order, out[i-1].Name, out[i].Name)
		}
	}
	return out, nil
}

func validate(ts *Tileset) error {
	if ts.Order < 1 {
		return fmt.Errorf("tileset: %q has order %d, want >= 1", ts.Name, ts.Order)
	}
	if ts.TileWidth <= 0 || ts.TileHeight <= 0 {
		return fmt.Errorf("tileset: %q has tile size %dx%d", ts.Name, ts.TileWidth, ts.TileHeight)
	}
	for i := range ts.TerrainLayers {
		tl := &ts.TerrainLayers[i]
		if tl.ID == "" {
			return fmt.Errorf("tileset: %q terrain layer %d has no id", ts.Name, i)
		}
		for _, tt := range tl.Tiles {
			if tt.Bitmask < 0 || tt.Bitmask > 511 {
				return fmt.Errorf("tileset: %q terrain %q sprite (%d, %d) has bitmask %d, want [0, 511]",
					ts.Name, tl.ID, tt.X, tt.Y, tt.Bitmask)
			}
		}
	}
	return nil
}

func isDefFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

package level

import (
	"encoding/json"
	"fmt"

	"github.com/milk9111/tileforge/tilemap"
)

// legacyLevel is the old fixed-size level file: flat row-major layers plus
// per-layer metadata. Decoded only here; see tilemap.FromLegacy for the cell
// conversion.
type legacyLevel struct {
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	Layers    [][]int `json:"layers"`
	LayerMeta []struct {
		HasPhysics bool   `json:"has_physics"`
		Color      string `json:"color"`
		Name       string `json:"name"`
	} `json:"layer_meta"`
	SpawnX      int               `json:"spawn_x"`
	SpawnY      int               `json:"spawn_y"`
	Backgrounds []BackgroundEntry `json:"backgrounds"`
	Transitions []Transition      `json:"transitions"`
	Entities    []PlacedEntity    `json:"entities"`
}

// MigrateOptions tells the legacy converter how to interpret flat cell
// values, which carried no tileset identity of their own.
type MigrateOptions struct {
	// Columns is the implicit tileset's width in tiles.
	Columns int
	// Order is the tileset order assigned to every migrated ref.
	Order int
	// TileWidth/TileHeight are the cell dimensions in pixels.
	TileWidth  int
	TileHeight int
}

// IsLegacy reports whether the bytes hold a legacy flat-array level: no
// version field, explicit width/height, layers as arrays of numbers.
func IsLegacy(b []byte) bool {
	var probe struct {
		Version int             `json:"version"`
		Width   int             `json:"width"`
		Height  int             `json:"height"`
		Layers  json.RawMessage `json:"layers"`
	}
	if err := json.Unmarshal(b, &probe); err != nil {
		return false
	}
	if probe.Version != 0 || probe.Width <= 0 || probe.Height <= 0 {
		return false
	}
	var flat [][]int
	return json.Unmarshal(probe.Layers, &flat) == nil
}

// DecodeLegacy converts a legacy flat-array level into the chunked shape.
// Spawn, backgrounds, transitions and entities carry over unchanged; each
// flat layer becomes a chunked layer named after its metadata.
func DecodeLegacy(b []byte, opt MigrateOptions) (*Level, error) {
	var lg legacyLevel
	if err := json.Unmarshal(b, &lg); err != nil {
		return nil, fmt.Errorf("level: decode legacy: %w", err)
	}
	if opt.TileWidth <= 0 || opt.TileHeight <= 0 {
		return nil, fmt.Errorf("level: legacy migration needs positive tile dimensions, got %dx%d", opt.TileWidth, opt.TileHeight)
	}

	out := &Level{
		Version:     FormatVersion,
		SpawnX:      lg.SpawnX,
		SpawnY:      lg.SpawnY,
		Backgrounds: lg.Backgrounds,
		Transitions: lg.Transitions,
		Entities:    lg.Entities,
	}
	for i, cells := range lg.Layers {
		name := fmt.Sprintf("layer_%d", i)
		physics := false
		if i < len(lg.LayerMeta) {
			if lg.LayerMeta[i].Name != "" {
				name = lg.LayerMeta[i].Name
			}
			physics = lg.LayerMeta[i].HasPhysics
		}
		layer, err := tilemap.FromLegacy(tilemap.LegacyLayer{
			Width:  lg.Width,
			Height: lg.Height,
			Cells:  cells,
		}, name, opt.TileWidth, opt.TileHeight, opt.Columns, opt.Order)
		if err != nil {
			return nil, fmt.Errorf("level: legacy layer %d: %w", i, err)
		}
		SetPhysics(layer, physics)
		out.Layers = append(out.Layers, layer)
	}
	if len(out.Layers) == 0 {
		out.Layers = []*tilemap.Layer{tilemap.NewLayer("ground", opt.TileWidth, opt.TileHeight)}
	}
	return out, nil
}

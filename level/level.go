// Package level is the runtime map: chunked tile layers plus the spawn,
// background, transition and entity metadata stored alongside them. Legacy
// fixed-size levels are migrated to the chunked shape on load; nothing past
// the loader ever sees the old format.
package level

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"github.com/milk9111/tileforge/tilemap"
)

// FormatVersion marks the chunked level format. Legacy files carry no
// version field at all.
const FormatVersion = 2

// Level is one map file's contents.
type Level struct {
	Version int              `json:"version"`
	Layers  []*tilemap.Layer `json:"layers"`

	// Spawn is in tile coordinates; negative values are valid.
	SpawnX int `json:"spawn_x,omitempty"`
	SpawnY int `json:"spawn_y,omitempty"`

	Backgrounds []BackgroundEntry `json:"backgrounds,omitempty"`
	Transitions []Transition      `json:"transitions,omitempty"`
	Entities    []PlacedEntity    `json:"entities,omitempty"`
}

// Transition defines a rectangular transition zone in tile coordinates.
type Transition struct {
	X         int    `json:"x"`
	Y         int    `json:"y"`
	W         int    `json:"w"`
	H         int    `json:"h"`
	ID        string `json:"id,omitempty"`
	Target    string `json:"target"`
	LinkID    string `json:"link_id,omitempty"`
	Direction string `json:"direction,omitempty"`
}

// PlacedEntity represents an entity instance placed in a level.
type PlacedEntity struct {
	Name   string `json:"name"`
	Sprite string `json:"sprite"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
}

// BackgroundEntry stores a background image reference and optional parallax factor.
type BackgroundEntry struct {
	Path     string  `json:"path"`
	Parallax float64 `json:"parallax,omitempty"`
}

// New creates an empty level with a single ground layer.
func New(tileWidth, tileHeight int) *Level {
	return &Level{
		Version: FormatVersion,
		Layers:  []*tilemap.Layer{tilemap.NewLayer("ground", tileWidth, tileHeight)},
	}
}

// Decode parses a chunked level file. Legacy flat-array files are rejected
// with an error naming the migration entry point; use DecodeLegacy (or the
// migrate command) for those.
func Decode(b []byte) (*Level, error) {
	if IsLegacy(b) {
		return nil, fmt.Errorf("level: legacy flat-array format; convert with DecodeLegacy or the migrate command")
	}
	var lvl Level
	if err := json.Unmarshal(b, &lvl); err != nil {
		return nil, fmt.Errorf("level: decode: %w", err)
	}
	if len(lvl.Layers) == 0 {
		lvl.Layers = []*tilemap.Layer{tilemap.NewLayer("ground", 32, 32)}
	}
	for _, l := range lvl.Layers {
		if l.Chunks == nil {
			l.Chunks = make(tilemap.ChunkMap)
		}
	}
	return &lvl, nil
}

// Load reads a chunked level from a JSON file on disk.
func Load(path string) (*Level, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lvl, err := Decode(b)
	if err != nil {
		return nil, fmt.Errorf("level: %s: %w", path, err)
	}
	return lvl, nil
}

// LoadFS reads a chunked level from an fs.FS (e.g. embedded levels).
func LoadFS(fsys fs.FS, path string) (*Level, error) {
	b, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, err
	}
	lvl, err := Decode(b)
	if err != nil {
		return nil, fmt.Errorf("level: %s: %w", path, err)
	}
	return lvl, nil
}

// Save writes the level, pruning empty chunks first so the file only
// carries occupied regions.
func (l *Level) Save(path string) error {
	for _, layer := range l.Layers {
		layer.Chunks.Prune()
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(l)
}

// Encode marshals the level after pruning, mirroring Save.
func (l *Level) Encode() ([]byte, error) {
	for _, layer := range l.Layers {
		layer.Chunks.Prune()
	}
	return json.MarshalIndent(l, "", "  ")
}

// Layer returns the i-th layer, or nil when out of range.
func (l *Level) Layer(i int) *tilemap.Layer {
	if l == nil || i < 0 || i >= len(l.Layers) {
		return nil
	}
	return l.Layers[i]
}

// HasPhysics reports whether a layer participates in collision. The flag
// rides the layer's free-form properties.
func HasPhysics(layer *tilemap.Layer) bool {
	return layer != nil && layer.Properties["physics"] == "true"
}

// SetPhysics toggles a layer's collision participation.
func SetPhysics(layer *tilemap.Layer, on bool) {
	if layer == nil {
		return
	}
	if layer.Properties == nil {
		layer.Properties = make(map[string]string)
	}
	if on {
		layer.Properties["physics"] = "true"
	} else {
		delete(layer.Properties, "physics")
	}
}

// SpawnPosition returns the spawn point in world pixels (top-left of the
// spawn cell). The map is unbounded, so no clamping applies.
func (l *Level) SpawnPosition() (float32, float32) {
	if l == nil || len(l.Layers) == 0 {
		return 0, 0
	}
	tw, th := l.Layers[0].TileWidth, l.Layers[0].TileHeight
	return float32(l.SpawnX * tw), float32(l.SpawnY * th)
}

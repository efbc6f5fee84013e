// Package tileset models tileset metadata: which sprites a tileset image
// contains, their per-tile definitions and the terrain catalogs used by the
// autotiler. Definitions are authored as YAML files.
package tileset

// Tileset describes one tileset image plus its metadata. Order uniquely
// identifies the tileset within a loaded project and is always >= 1, because
// order 0 belongs to the empty tile ref.
type Tileset struct {
	Name       string `yaml:"name" json:"name"`
	Path       string `yaml:"path" json:"path"`
	Order      int    `yaml:"order" json:"order"`
	TileWidth  int    `yaml:"tile_width" json:"tile_width"`
	TileHeight int    `yaml:"tile_height" json:"tile_height"`

	Tiles         []TileDef      `yaml:"tiles,omitempty" json:"tiles,omitempty"`
	TerrainLayers []TerrainLayer `yaml:"terrain_layers,omitempty" json:"terrain_layers,omitempty"`
}

// TileDef is per-sprite metadata keyed by the sprite's pixel position inside
// the tileset image. Width/Height of 0 mean "use the tileset default".
type TileDef struct {
	X      int    `yaml:"x" json:"x"`
	Y      int    `yaml:"y" json:"y"`
	Type   string `yaml:"type,omitempty" json:"type,omitempty"`
	Width  int    `yaml:"width,omitempty" json:"width,omitempty"`
	Height int    `yaml:"height,omitempty" json:"height,omitempty"`

	Colliders []Collider `yaml:"colliders,omitempty" json:"colliders,omitempty"`
}

// Collider is an axis-aligned collision box in pixels, relative to the
// sprite's top-left corner.
type Collider struct {
	X      float64 `yaml:"x" json:"x"`
	Y      float64 `yaml:"y" json:"y"`
	Width  float64 `yaml:"width" json:"width"`
	Height float64 `yaml:"height" json:"height"`
}

// TerrainLayer is a named terrain catalog local to one tileset: every sprite
// that can represent the terrain, tagged with the exact neighbor bitmask it
// depicts. Sprite coordinates are tileset-local.
type TerrainLayer struct {
	ID    string        `yaml:"id" json:"id"`
	Name  string        `yaml:"name" json:"name"`
	Tiles []TerrainTile `yaml:"tiles" json:"tiles"`
}

// TerrainTile binds one sprite to the 9-bit neighbor bitmask it represents.
// Weight breaks ties when several sprites claim the same bitmask.
type TerrainTile struct {
	X       int `yaml:"x" json:"x"`
	Y       int `yaml:"y" json:"y"`
	Bitmask int `yaml:"bitmask" json:"bitmask"`
	Weight  int `yaml:"weight,omitempty" json:"weight,omitempty"`
}

// TileDefAt returns the definition for the sprite at (x, y), or nil when the
// tileset has none for that position.
func (ts *Tileset) TileDefAt(x, y int) *TileDef {
	if ts == nil {
		return nil
	}
	for i := range ts.Tiles {
		if ts.Tiles[i].X == x && ts.Tiles[i].Y == y {
			return &ts.Tiles[i]
		}
	}
	return nil
}

// TerrainLayerByID returns the terrain layer with the given id, or nil.
func (ts *Tileset) TerrainLayerByID(id string) *TerrainLayer {
	if ts == nil {
		return nil
	}
	for i := range ts.TerrainLayers {
		if ts.TerrainLayers[i].ID == id {
			return &ts.TerrainLayers[i]
		}
	}
	return nil
}

// TerrainLayerForType returns the first terrain layer whose name matches the
// given tile type, or nil. Tile types and terrain names share a vocabulary
// ("grass", "dirt", ...).
func (ts *Tileset) TerrainLayerForType(typ string) *TerrainLayer {
	if ts == nil || typ == "" {
		return nil
	}
	for i := range ts.TerrainLayers {
		if ts.TerrainLayers[i].Name == typ {
			return &ts.TerrainLayers[i]
		}
	}
	return nil
}

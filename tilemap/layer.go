package tilemap

import (
	"encoding/json"
	"fmt"

	"github.com/milk9111/tileforge/tile"
)

// Layer is one tile layer of a map: a sparse chunk grid plus the display
// properties the editor and renderer care about.
type Layer struct {
	Name       string
	TileWidth  int
	TileHeight int
	Visible    bool
	Foreground bool
	Tint       string // "#rrggbb", empty for none
	Properties map[string]string

	Chunks ChunkMap
}

// NewLayer creates an empty layer with the given tile dimensions.
func NewLayer(name string, tileWidth, tileHeight int) *Layer {
	return &Layer{
		Name:       name,
		TileWidth:  tileWidth,
		TileHeight: tileHeight,
		Visible:    true,
		Chunks:     make(ChunkMap),
	}
}

// Tile reads the ref at (x, y); see ChunkMap.Tile.
func (l *Layer) Tile(x, y int) tile.Ref {
	if l == nil || l.Chunks == nil {
		return tile.Empty
	}
	return l.Chunks.Tile(x, y)
}

// SetTile writes the ref at (x, y); see ChunkMap.SetTile.
func (l *Layer) SetTile(x, y int, ref tile.Ref) {
	if l == nil {
		return
	}
	if l.Chunks == nil {
		l.Chunks = make(ChunkMap)
	}
	l.Chunks.SetTile(x, y, ref)
}

// layerJSON is the persisted shape: chunks keyed "cx,cy", each a flat array
// of ChunkSize*ChunkSize refs, with empty chunks omitted.
type layerJSON struct {
	Name       string              `json:"name,omitempty"`
	TileWidth  int                 `json:"tile_width"`
	TileHeight int                 `json:"tile_height"`
	Visible    bool                `json:"visible"`
	Foreground bool                `json:"foreground,omitempty"`
	Tint       string              `json:"tint,omitempty"`
	Properties map[string]string   `json:"properties,omitempty"`
	Chunks     map[string][]uint64 `json:"chunks"`
}

// MarshalJSON writes the layer in chunked form, skipping empty chunks.
func (l *Layer) MarshalJSON() ([]byte, error) {
	out := layerJSON{
		Name:       l.Name,
		TileWidth:  l.TileWidth,
		TileHeight: l.TileHeight,
		Visible:    l.Visible,
		Foreground: l.Foreground,
		Tint:       l.Tint,
		Properties: l.Properties,
		Chunks:     make(map[string][]uint64, len(l.Chunks)),
	}
	for key, c := range l.Chunks {
		if c.IsEmpty() {
			continue
		}
		cx, cy := key.Coords()
		refs := make([]uint64, len(c))
		for i, ref := range c {
			refs[i] = uint64(ref)
		}
		out.Chunks[fmt.Sprintf("%d,%d", cx, cy)] = refs
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads the chunked form. Missing or short chunk arrays are
// tolerated: absent entries stay empty, short entries fill from the start.
func (l *Layer) UnmarshalJSON(b []byte) error {
	var in layerJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	l.Name = in.Name
	l.TileWidth = in.TileWidth
	l.TileHeight = in.TileHeight
	l.Visible = in.Visible
	l.Foreground = in.Foreground
	l.Tint = in.Tint
	l.Properties = in.Properties
	l.Chunks = make(ChunkMap, len(in.Chunks))
	for key, refs := range in.Chunks {
		var cx, cy int
		if _, err := fmt.Sscanf(key, "%d,%d", &cx, &cy); err != nil {
			return fmt.Errorf("tilemap: bad chunk key %q: %w", key, err)
		}
		c := NewChunk()
		for i, v := range refs {
			if i >= len(c) {
				break
			}
			c[i] = tile.Ref(v)
		}
		if c.IsEmpty() {
			continue
		}
		l.Chunks[KeyFor(cx, cy)] = c
	}
	return nil
}

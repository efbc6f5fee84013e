// Package script runs user-authored map generation scripts against a tile
// layer. Scripts are tengo programs defining a generate(engine) function;
// the engine exposes tile and terrain operations, so a script can stamp
// geometry and let the autotiler resolve sprites.
package script

import (
	"fmt"
	"os"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/milk9111/tileforge/autotile"
	"github.com/milk9111/tileforge/tile"
	"github.com/milk9111/tileforge/tilemap"
	"github.com/milk9111/tileforge/tileset"
)

const generateDispatchScript = `
generate(__engine)
`

// Runtime is one compiled map script, reusable across layers.
type Runtime struct {
	compiled *tengo.Compiled
}

// Compile builds a runtime from script source. The script must define
// generate(engine).
func Compile(src []byte) (*Runtime, error) {
	combined := append(append([]byte{}, src...), []byte(generateDispatchScript)...)
	s := tengo.NewScript(combined)
	_ = s.Add("__engine", map[string]any{})
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile: %w", err)
	}
	return &Runtime{compiled: compiled}, nil
}

// CompileFile reads and compiles a script from disk.
func CompileFile(path string) (*Runtime, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("script: load %s: %w", path, err)
	}
	rt, err := Compile(src)
	if err != nil {
		return nil, fmt.Errorf("script: %s: %w", path, err)
	}
	return rt, nil
}

// Run executes generate against the layer. The script mutates the layer
// through the engine only; the tileset collection is read-only throughout.
func (r *Runtime) Run(layer *tilemap.Layer, tilesets tileset.Collection) error {
	if r == nil || r.compiled == nil {
		return fmt.Errorf("script: nil runtime")
	}
	if err := r.compiled.Set("__engine", buildEngine(layer, tilesets)); err != nil {
		return err
	}
	return r.compiled.Run()
}

func buildEngine(layer *tilemap.Layer, tilesets tileset.Collection) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["set_tile"] = &tengo.UserFunction{Name: "set_tile", Value: func(args ...tengo.Object) (tengo.Object, error) {
		x, y, ok := argCoords(args)
		if !ok || len(args) < 5 {
			return tengo.FalseValue, nil
		}
		sx, ok1 := tengo.ToInt(args[2])
		sy, ok2 := tengo.ToInt(args[3])
		order, ok3 := tengo.ToInt(args[4])
		if !ok1 || !ok2 || !ok3 {
			return tengo.FalseValue, nil
		}
		ref, err := tile.Pack(sx, sy, order, false, false)
		if err != nil {
			return tengo.FalseValue, nil
		}
		layer.SetTile(x, y, ref)
		return tengo.TrueValue, nil
	}}

	values["get_tile"] = &tengo.UserFunction{Name: "get_tile", Value: func(args ...tengo.Object) (tengo.Object, error) {
		x, y, ok := argCoords(args)
		if !ok {
			return tengo.UndefinedValue, nil
		}
		ref := layer.Tile(x, y)
		if ref.IsEmpty() {
			return tengo.UndefinedValue, nil
		}
		return &tengo.ImmutableMap{Value: map[string]tengo.Object{
			"x":     &tengo.Int{Value: int64(ref.X())},
			"y":     &tengo.Int{Value: int64(ref.Y())},
			"order": &tengo.Int{Value: int64(ref.Order())},
		}}, nil
	}}

	values["clear_tile"] = &tengo.UserFunction{Name: "clear_tile", Value: func(args ...tengo.Object) (tengo.Object, error) {
		x, y, ok := argCoords(args)
		if !ok {
			return tengo.FalseValue, nil
		}
		layer.SetTile(x, y, tile.Empty)
		return tengo.TrueValue, nil
	}}

	values["place_terrain"] = &tengo.UserFunction{Name: "place_terrain", Value: func(args ...tengo.Object) (tengo.Object, error) {
		x, y, ok := argCoords(args)
		if !ok || len(args) < 3 {
			return tengo.FalseValue, nil
		}
		id, ok := tengo.ToString(args[2])
		if !ok || !autotile.PlaceTerrainTile(layer, x, y, id, tilesets) {
			return tengo.FalseValue, nil
		}
		return tengo.TrueValue, nil
	}}

	values["remove_terrain"] = &tengo.UserFunction{Name: "remove_terrain", Value: func(args ...tengo.Object) (tengo.Object, error) {
		x, y, ok := argCoords(args)
		if !ok {
			return tengo.FalseValue, nil
		}
		autotile.RemoveTerrainTile(layer, x, y, tilesets)
		return tengo.TrueValue, nil
	}}

	values["fill_terrain"] = &tengo.UserFunction{Name: "fill_terrain", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 5 {
			return tengo.FalseValue, nil
		}
		x, y, ok := argCoords(args)
		w, ok1 := tengo.ToInt(args[2])
		h, ok2 := tengo.ToInt(args[3])
		id, ok3 := tengo.ToString(args[4])
		if !ok || !ok1 || !ok2 || !ok3 || w <= 0 || h <= 0 {
			return tengo.FalseValue, nil
		}
		placed := true
		for yy := y; yy < y+h; yy++ {
			for xx := x; xx < x+w; xx++ {
				if !autotile.PlaceTerrainTile(layer, xx, yy, id, tilesets) {
					placed = false
				}
			}
		}
		if placed {
			return tengo.TrueValue, nil
		}
		return tengo.FalseValue, nil
	}}

	values["bounds"] = &tengo.UserFunction{Name: "bounds", Value: func(args ...tengo.Object) (tengo.Object, error) {
		b, ok := layer.Chunks.ChunkBounds()
		if !ok {
			return tengo.UndefinedValue, nil
		}
		return &tengo.Array{Value: []tengo.Object{
			&tengo.Int{Value: int64(b.MinX)},
			&tengo.Int{Value: int64(b.MinY)},
			&tengo.Int{Value: int64(b.MaxX)},
			&tengo.Int{Value: int64(b.MaxY)},
		}}, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func argCoords(args []tengo.Object) (x, y int, ok bool) {
	if len(args) < 2 {
		return 0, 0, false
	}
	x, ok1 := tengo.ToInt(args[0])
	y, ok2 := tengo.ToInt(args[1])
	return x, y, ok1 && ok2
}

package main

import (
	"bytes"
	"image"
	"image/color"
	_ "image/png"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/tileforge/common"
	"github.com/milk9111/tileforge/rendercache"
	"github.com/milk9111/tileforge/tile"
	"github.com/milk9111/tileforge/tilemap"
	"github.com/milk9111/tileforge/tileset"
)

// sheetStore caches tileset sheet images by tileset order. A sheet that
// fails to load is replaced with a generated placeholder so missing art
// never blocks editing.
type sheetStore struct {
	byOrder map[int]*ebiten.Image
}

func newSheetStore() *sheetStore {
	return &sheetStore{byOrder: make(map[int]*ebiten.Image)}
}

func (s *sheetStore) invalidate() {
	s.byOrder = make(map[int]*ebiten.Image)
}

func (s *sheetStore) sheetFor(ts *tileset.Tileset) *ebiten.Image {
	if ts == nil {
		return nil
	}
	if img, ok := s.byOrder[ts.Order]; ok {
		return img
	}
	img := loadSheet(ts)
	if img == nil {
		img = placeholderSheet(ts)
	}
	s.byOrder[ts.Order] = img
	return img
}

func loadSheet(ts *tileset.Tileset) *ebiten.Image {
	if ts.Path == "" {
		return nil
	}
	for _, p := range []string{ts.Path, filepath.Join("assets", ts.Path), filepath.Join("assets", filepath.Base(ts.Path))} {
		b, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		img, _, err := image.Decode(bytes.NewReader(b))
		if err != nil {
			log.Printf("decode sheet %s: %v", p, err)
			continue
		}
		return ebiten.NewImageFromImage(img)
	}
	return nil
}

// placeholderSheet builds a magenta checker sized to cover every tile the
// definition references.
func placeholderSheet(ts *tileset.Tileset) *ebiten.Image {
	w, h := ts.TileWidth, ts.TileHeight
	for _, def := range ts.Tiles {
		if def.X+ts.TileWidth > w {
			w = def.X + ts.TileWidth
		}
		if def.Y+ts.TileHeight > h {
			h = def.Y + ts.TileHeight
		}
	}
	img := ebiten.NewImage(w, h)
	img.Fill(color.RGBA{R: 0xff, B: 0xff, A: 0xff})
	return img
}

func (e *Editor) drawCanvas(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 24, G: 24, B: 28, A: 0xff})

	canvasW := e.screenW - leftPanelW - rightPanelW
	if canvasW <= 0 {
		return
	}

	for _, layer := range e.lvl.Layers {
		if !layer.Visible {
			continue
		}
		e.drawLayer(screen, layer, canvasW)
	}
	e.drawHover(screen)
}

func (e *Editor) drawLayer(screen *ebiten.Image, layer *tilemap.Layer, canvasW int) {
	cs := e.cache.ChunkSize()
	chunkPxW := cs * layer.TileWidth
	chunkPxH := cs * layer.TileHeight

	// visible world rect in tile units
	wx0 := -e.offsetX / e.zoom
	wy0 := -e.offsetY / e.zoom
	wx1 := wx0 + float64(canvasW)/e.zoom
	wy1 := wy0 + float64(e.screenH)/e.zoom
	minCX, minCY := e.cache.ChunkCoord(
		common.FloorDiv(int(math.Floor(wx0)), layer.TileWidth)-1,
		common.FloorDiv(int(math.Floor(wy0)), layer.TileHeight)-1,
	)
	maxCX, maxCY := e.cache.ChunkCoord(
		common.FloorDiv(int(math.Ceil(wx1)), layer.TileWidth)+1,
		common.FloorDiv(int(math.Ceil(wy1)), layer.TileHeight)+1,
	)

	tint := parseTint(layer.Tint)

	for cy := minCY; cy <= maxCY; cy++ {
		for cx := minCX; cx <= maxCX; cx++ {
			if !chunkHasTiles(layer, cx, cy, cs) {
				continue
			}
			surface := e.cache.ChunkSurface(layer.Name, cx, cy, chunkPxW, chunkPxH, func(s rendercache.Surface) {
				e.renderChunk(s, layer, cx, cy, cs)
			})
			if surface == nil {
				continue
			}
			img := surface.(rendercache.ImageSurface).Image

			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(e.zoom, e.zoom)
			op.GeoM.Translate(
				float64(leftPanelW)+e.offsetX+float64(cx*chunkPxW)*e.zoom,
				e.offsetY+float64(cy*chunkPxH)*e.zoom,
			)
			if tint != nil {
				op.ColorScale.ScaleWithColor(tint)
			}
			screen.DrawImage(img, op)
		}
	}
}

// renderChunk repaints one cache chunk from the layer's refs.
func (e *Editor) renderChunk(s rendercache.Surface, layer *tilemap.Layer, cx, cy, cs int) {
	img := s.(rendercache.ImageSurface).Image
	img.Clear()

	baseX, baseY := cx*cs, cy*cs
	for ly := 0; ly < cs; ly++ {
		for lx := 0; lx < cs; lx++ {
			ref := layer.Tile(baseX+lx, baseY+ly)
			if ref.IsEmpty() {
				continue
			}
			e.drawRef(img, ref, lx*layer.TileWidth, ly*layer.TileHeight, layer.TileWidth, layer.TileHeight)
		}
	}
}

func (e *Editor) drawRef(dst *ebiten.Image, ref tile.Ref, px, py, tw, th int) {
	ts := e.tilesets.ByOrder(ref.Order())
	sheet := e.sheets.sheetFor(ts)
	if sheet == nil {
		return
	}
	sx, sy := ref.X(), ref.Y()
	rect := image.Rect(sx, sy, sx+tw, sy+th)
	if !rect.In(sheet.Bounds()) {
		rect = image.Rect(0, 0, min(tw, sheet.Bounds().Dx()), min(th, sheet.Bounds().Dy()))
	}
	src := sheet.SubImage(rect).(*ebiten.Image)

	op := &ebiten.DrawImageOptions{}
	if ref.FlipX() {
		op.GeoM.Scale(-1, 1)
		op.GeoM.Translate(float64(tw), 0)
	}
	if ref.FlipY() {
		op.GeoM.Scale(1, -1)
		op.GeoM.Translate(0, float64(th))
	}
	op.GeoM.Translate(float64(px), float64(py))
	dst.DrawImage(src, op)
}

func (e *Editor) drawHover(screen *ebiten.Image) {
	mx, my := ebiten.CursorPosition()
	tx, ty, ok := e.screenToTile(mx, my)
	if !ok {
		return
	}
	layer := e.lvl.Layer(e.currentLayer)
	if layer == nil {
		return
	}
	hover := ebiten.NewImage(1, 1)
	hover.Fill(color.RGBA{R: 128, G: 128, B: 128, A: 0x66})
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(layer.TileWidth)*e.zoom, float64(layer.TileHeight)*e.zoom)
	op.GeoM.Translate(
		float64(leftPanelW)+e.offsetX+float64(tx*layer.TileWidth)*e.zoom,
		e.offsetY+float64(ty*layer.TileHeight)*e.zoom,
	)
	screen.DrawImage(hover, op)
}

// chunkHasTiles reports whether any storage chunk overlapping the cache
// chunk holds tiles, so empty space costs no surfaces.
func chunkHasTiles(layer *tilemap.Layer, cx, cy, cs int) bool {
	minTX, minTY := cx*cs, cy*cs
	for ty := minTY; ty < minTY+cs; ty += tilemap.ChunkSize {
		for tx := minTX; tx < minTX+cs; tx += tilemap.ChunkSize {
			ccx, ccy := tilemap.ChunkCoord(tx, ty)
			if c, ok := layer.Chunks[tilemap.KeyFor(ccx, ccy)]; ok && !c.IsEmpty() {
				return true
			}
		}
	}
	return false
}

func parseTint(hex string) color.Color {
	if len(hex) != 7 || hex[0] != '#' {
		return nil
	}
	r, err1 := strconv.ParseUint(hex[1:3], 16, 8)
	g, err2 := strconv.ParseUint(hex[3:5], 16, 8)
	b, err3 := strconv.ParseUint(hex[5:7], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return nil
	}
	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 0xff}
}

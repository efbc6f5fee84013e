package main

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// The sheet panel is the right-hand strip showing the active tileset's
// defined tiles as a clickable grid. Tab cycles between tilesets.

const sheetCellPad = 4

func (e *Editor) activeTilesetIndex() int {
	for i, ts := range e.tilesets {
		if ts.Order == e.brushTile.Order {
			return i
		}
	}
	return 0
}

func (e *Editor) updateSheetPanel(mx, my int) {
	if len(e.tilesets) == 0 {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		next := (e.activeTilesetIndex() + 1) % len(e.tilesets)
		e.brushTile = brushSelection{Order: e.tilesets[next].Order}
	}
	if e.brushTile.Order == 0 {
		e.brushTile.Order = e.tilesets[0].Order
	}

	panelX := e.screenW - rightPanelW
	if mx < panelX || !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}

	ts := e.tilesets.ByOrder(e.brushTile.Order)
	if ts == nil {
		return
	}
	cell := ts.TileWidth + sheetCellPad
	cols := maxInt(1, (rightPanelW-16)/cell)
	col := (mx - panelX - 8) / cell
	row := (my - 40) / cell
	if col < 0 || col >= cols || row < 0 {
		return
	}
	idx := row*cols + col
	if idx >= len(ts.Tiles) {
		return
	}
	def := ts.Tiles[idx]
	e.brushTile = brushSelection{Order: ts.Order, X: def.X, Y: def.Y, Active: true}
	if e.tool == ToolTerrain || e.tool == ToolErase {
		e.tool = ToolBrush
		e.ui.setTool(ToolBrush)
	}
}

func (e *Editor) drawSheetPanel(screen *ebiten.Image) {
	panelX := e.screenW - rightPanelW
	bg := ebiten.NewImage(1, 1)
	bg.Fill(color.RGBA{R: 40, G: 40, B: 40, A: 0xff})
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rightPanelW), float64(e.screenH))
	op.GeoM.Translate(float64(panelX), 0)
	screen.DrawImage(bg, op)

	ts := e.tilesets.ByOrder(e.brushTile.Order)
	if ts == nil {
		ebitenutil.DebugPrintAt(screen, "no tilesets", panelX+8, 8)
		return
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Tileset: %s (tab cycles)", ts.Name), panelX+8, 8)

	sheet := e.sheets.sheetFor(ts)
	cell := ts.TileWidth + sheetCellPad
	cols := maxInt(1, (rightPanelW-16)/cell)
	for i, def := range ts.Tiles {
		px := panelX + 8 + (i%cols)*cell
		py := 40 + (i/cols)*cell
		rect := image.Rect(def.X, def.Y, def.X+ts.TileWidth, def.Y+ts.TileHeight)
		if sheet != nil && rect.In(sheet.Bounds()) {
			sub := sheet.SubImage(rect).(*ebiten.Image)
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(float64(px), float64(py))
			screen.DrawImage(sub, op)
		}
		if e.brushTile.Active && def.X == e.brushTile.X && def.Y == e.brushTile.Y {
			drawBorder(screen, px-1, py-1, ts.TileWidth+2, ts.TileHeight+2, color.RGBA{R: 0xff, G: 0xd7, A: 0xff})
		}
	}
}

func drawBorder(screen *ebiten.Image, x, y, w, h int, c color.Color) {
	line := ebiten.NewImage(1, 1)
	line.Fill(c)
	for _, r := range [4]image.Rectangle{
		image.Rect(x, y, x+w, y+1),
		image.Rect(x, y+h-1, x+w, y+h),
		image.Rect(x, y, x+1, y+h),
		image.Rect(x+w-1, y, x+w, y+h),
	} {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(float64(r.Dx()), float64(r.Dy()))
		op.GeoM.Translate(float64(r.Min.X), float64(r.Min.Y))
		screen.DrawImage(line, op)
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

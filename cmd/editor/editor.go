package main

import (
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.design/x/clipboard"

	"github.com/milk9111/tileforge/level"
	"github.com/milk9111/tileforge/rendercache"
	"github.com/milk9111/tileforge/script"
	"github.com/milk9111/tileforge/tileset"
)

const (
	baseWidth  = 40*32 + 440
	baseHeight = 23 * 32

	leftPanelW  = 220
	rightPanelW = 220

	maxUndo = 256
)

// Editor is the top-level ebiten game state.
type Editor struct {
	lvl      *level.Level
	filename string

	tilesets   tileset.Collection
	defsDir    string
	watcher    *tileset.Watcher
	sheets     *sheetStore
	cache      *rendercache.Cache
	generation *script.Runtime

	currentLayer int
	tool         Tool
	terrainID    string
	brushTile    brushSelection

	// canvas transform
	zoom    float64
	offsetX float64
	offsetY float64

	// drag state
	panning    bool
	lastMX     int
	lastMY     int
	painting   bool
	paintErase bool

	undo    undoStack
	pending *pendingStroke

	ui         *editorUI
	screenW    int
	screenH    int
	status     string
	statusTime time.Time
}

// brushSelection is the sprite painted by the direct tile brush.
type brushSelection struct {
	Order  int
	X, Y   int
	Active bool
}

func NewEditor(defs tileset.Collection, defsDir string) (*Editor, error) {
	ed := &Editor{
		tilesets: defs,
		defsDir:  defsDir,
		sheets:   newSheetStore(),
		cache:    rendercache.New(rendercache.DefaultChunkSize, rendercache.NewImageSurface),
		zoom:     1,
		tool:     ToolTerrain,
		screenW:  baseWidth,
		screenH:  baseHeight,
	}
	ed.lvl = level.New(32, 32)
	ed.lvl.Layers[0].Name = "ground"
	level.SetPhysics(ed.lvl.Layers[0], true)

	if id, ok := firstTerrainID(defs); ok {
		ed.terrainID = id
	}

	if defsDir != "" {
		if w, err := tileset.NewWatcher(defsDir); err == nil {
			ed.watcher = w
		} else {
			log.Printf("tileset watcher disabled: %v", err)
		}
	}

	ed.ui = buildUI(ed)
	return ed, nil
}

func (e *Editor) Close() {
	if e.watcher != nil {
		_ = e.watcher.Close()
	}
}

// Open replaces the working level with one loaded from disk.
func (e *Editor) Open(path string) error {
	lvl, err := level.Load(path)
	if err != nil {
		return err
	}
	e.lvl = lvl
	e.filename = path
	e.currentLayer = 0
	e.undo = nil
	e.cache.InvalidateAll()
	e.ui.refreshLayers(e)
	e.setStatus("opened %s", path)
	return nil
}

func (e *Editor) Save() error {
	if e.filename == "" {
		if err := os.MkdirAll("levels", 0755); err != nil {
			return err
		}
		e.filename = filepath.Join("levels", fmt.Sprintf("level_%d.json", time.Now().Unix()))
	} else if err := os.MkdirAll(filepath.Dir(e.filename), 0755); err != nil {
		return err
	}
	if err := e.lvl.Save(e.filename); err != nil {
		return err
	}
	e.setStatus("saved %s", e.filename)
	return nil
}

// RunScript compiles and runs a generation script against the active layer.
func (e *Editor) RunScript(path string) error {
	rt, err := script.CompileFile(path)
	if err != nil {
		return err
	}
	e.generation = rt
	layer := e.lvl.Layer(e.currentLayer)
	if layer == nil {
		return fmt.Errorf("no active layer")
	}
	if err := rt.Run(layer, e.tilesets); err != nil {
		return err
	}
	e.cache.InvalidateLayer(layer.Name)
	e.undo = nil
	e.setStatus("ran %s", path)
	return nil
}

// rerunScript replays the last loaded generation script (F5).
func (e *Editor) rerunScript() {
	if e.generation == nil {
		return
	}
	layer := e.lvl.Layer(e.currentLayer)
	if layer == nil {
		return
	}
	if err := e.generation.Run(layer, e.tilesets); err != nil {
		e.setStatus("script failed: %v", err)
		return
	}
	e.cache.InvalidateLayer(layer.Name)
	e.undo = nil
	e.setStatus("script rerun on %s", layer.Name)
}

func (e *Editor) Update() error {
	e.ui.ui.Update()
	e.drainWatcher()
	e.handleKeys()

	mx, my := ebiten.CursorPosition()
	e.handleWheel(mx, my)
	e.handlePan(mx, my)
	e.updateSheetPanel(mx, my)
	e.handlePaint(mx, my)
	return nil
}

func (e *Editor) Draw(screen *ebiten.Image) {
	e.drawCanvas(screen)
	e.drawSheetPanel(screen)
	e.ui.ui.Draw(screen)
	e.drawStatus(screen)
}

func (e *Editor) Layout(outsideWidth, outsideHeight int) (int, int) {
	e.screenW, e.screenH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// screenToTile maps a screen point to tile coordinates. ok is false when
// the point is over a side panel.
func (e *Editor) screenToTile(sx, sy int) (tx, ty int, ok bool) {
	if sx < leftPanelW || sx >= e.screenW-rightPanelW {
		return 0, 0, false
	}
	layer := e.lvl.Layer(e.currentLayer)
	if layer == nil {
		return 0, 0, false
	}
	wx := (float64(sx-leftPanelW) - e.offsetX) / e.zoom
	wy := (float64(sy) - e.offsetY) / e.zoom
	tx = int(math.Floor(wx / float64(layer.TileWidth)))
	ty = int(math.Floor(wy / float64(layer.TileHeight)))
	return tx, ty, true
}

func (e *Editor) handleWheel(mx, my int) {
	if mx < leftPanelW || mx >= e.screenW-rightPanelW {
		return
	}
	_, wy := ebiten.Wheel()
	if wy == 0 {
		return
	}
	localX := (float64(mx-leftPanelW) - e.offsetX) / e.zoom
	localY := (float64(my) - e.offsetY) / e.zoom
	factor := 1.1
	if wy < 0 {
		factor = 1 / 1.1
	}
	e.zoom = clamp(e.zoom*factor, 0.25, 8)
	// keep the point under the cursor fixed
	e.offsetX = float64(mx-leftPanelW) - localX*e.zoom
	e.offsetY = float64(my) - localY*e.zoom
}

func (e *Editor) handlePan(mx, my int) {
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle) {
		if !e.panning {
			e.panning = true
		} else {
			e.offsetX += float64(mx - e.lastMX)
			e.offsetY += float64(my - e.lastMY)
		}
		e.lastMX, e.lastMY = mx, my
		return
	}
	e.panning = false
}

func (e *Editor) handleKeys() {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	switch {
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyS):
		if err := e.Save(); err != nil {
			log.Printf("save: %v", err)
			e.setStatus("save failed: %v", err)
		}
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyZ):
		e.Undo()
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyC):
		e.copyLevelToClipboard()
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyV):
		e.pasteLevelFromClipboard()
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft):
		e.selectLayer(e.currentLayer - 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketRight):
		e.selectLayer(e.currentLayer + 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyF5):
		e.rerunScript()
	}
}

func (e *Editor) selectLayer(i int) {
	if i < 0 || i >= len(e.lvl.Layers) {
		return
	}
	e.currentLayer = i
	e.ui.setSelectedLayer(i)
}

func (e *Editor) addLayer() {
	name := fmt.Sprintf("layer %d", len(e.lvl.Layers)+1)
	layer := e.lvl.Layers[0]
	e.lvl.Layers = append(e.lvl.Layers, newLayerLike(layer, name))
	e.currentLayer = len(e.lvl.Layers) - 1
	e.ui.refreshLayers(e)
}

func (e *Editor) togglePhysics() {
	layer := e.lvl.Layer(e.currentLayer)
	if layer == nil {
		return
	}
	level.SetPhysics(layer, !level.HasPhysics(layer))
	e.ui.refreshLayers(e)
}

func (e *Editor) copyLevelToClipboard() {
	data, err := e.lvl.Encode()
	if err != nil {
		e.setStatus("copy failed: %v", err)
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	e.setStatus("level copied to clipboard")
}

func (e *Editor) pasteLevelFromClipboard() {
	data := clipboard.Read(clipboard.FmtText)
	if len(data) == 0 {
		return
	}
	var lvl *level.Level
	var err error
	if level.IsLegacy(data) {
		lvl, err = level.DecodeLegacy(data, level.MigrateOptions{Columns: 8, Order: 1, TileWidth: 32, TileHeight: 32})
	} else {
		lvl, err = level.Decode(data)
	}
	if err != nil {
		e.setStatus("paste failed: %v", err)
		return
	}
	e.lvl = lvl
	e.currentLayer = 0
	e.undo = nil
	e.cache.InvalidateAll()
	e.ui.refreshLayers(e)
	e.setStatus("level pasted from clipboard")
}

// drainWatcher reloads tileset definitions when the watcher reports edits.
func (e *Editor) drainWatcher() {
	if e.watcher == nil {
		return
	}
	reload := false
	for {
		select {
		case _, ok := <-e.watcher.Events:
			if !ok {
				e.watcher = nil
				return
			}
			reload = true
		case err := <-e.watcher.Errors:
			log.Printf("tileset watcher: %v", err)
			return
		default:
			if reload {
				e.reloadTilesets()
			}
			return
		}
	}
}

func (e *Editor) reloadTilesets() {
	defs, err := loadTilesets(e.defsDir)
	if err != nil {
		log.Printf("reload tilesets: %v", err)
		e.setStatus("tileset reload failed: %v", err)
		return
	}
	e.tilesets = defs
	e.sheets.invalidate()
	e.cache.InvalidateAll()
	if _, tl := e.tilesets.TerrainByID(e.terrainID); tl == nil {
		if id, ok := firstTerrainID(defs); ok {
			e.terrainID = id
		} else {
			e.terrainID = ""
		}
	}
	e.ui.refreshTerrains(e)
	e.setStatus("tilesets reloaded")
}

func (e *Editor) setStatus(format string, args ...any) {
	e.status = fmt.Sprintf(format, args...)
	e.statusTime = time.Now()
}

func (e *Editor) drawStatus(screen *ebiten.Image) {
	layer := e.lvl.Layer(e.currentLayer)
	name := "-"
	if layer != nil {
		name = layer.Name
	}
	line := fmt.Sprintf("tool: %s  layer: %s  terrain: %s", e.tool, name, e.terrainID)
	ebitenutil.DebugPrintAt(screen, line, leftPanelW+8, e.screenH-32)
	if e.status != "" && time.Since(e.statusTime) < 4*time.Second {
		ebitenutil.DebugPrintAt(screen, e.status, leftPanelW+8, e.screenH-16)
	}
}

func firstTerrainID(defs tileset.Collection) (string, bool) {
	for _, ts := range defs {
		for _, tl := range ts.TerrainLayers {
			return tl.ID, true
		}
	}
	return "", false
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

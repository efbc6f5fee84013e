package main

import (
	"bytes"
	"fmt"
	"image/color"
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/milk9111/tileforge/level"
)

// layerEntry is a row in the layer list.
type layerEntry struct {
	Index int
	Name  string
}

// terrainEntry is a row in the terrain list.
type terrainEntry struct {
	ID   string
	Name string
}

type editorUI struct {
	ui          *ebitenui.UI
	layerList   *widget.List
	terrainList *widget.List
	toolButtons []*widget.Button
	toolGroup   *widget.RadioGroup

	layerEntries []any

	// suppress selection callbacks during programmatic updates
	suppress bool
}

func buildUI(e *Editor) *editorUI {
	u := &editorUI{ui: &ebitenui.UI{}}

	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic("load font: " + err.Error())
	}
	var fontFace text.Face = &text.GoTextFace{Source: s, Size: 14}
	u.ui.PrimaryTheme = newEditorTheme(&fontFace)
	theme := u.ui.PrimaryTheme

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))

	left := u.buildLeftPanel(e, theme, &fontFace)
	left.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionStart,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
		StretchVertical:    true,
	}
	root.AddChild(left)

	toolbar := u.buildToolBar(e, theme, &fontFace)
	toolbar.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionCenter,
		VerticalPosition:   widget.AnchorLayoutPositionStart,
	}
	root.AddChild(toolbar)

	u.ui.Container = root
	u.refreshLayers(e)
	u.refreshTerrains(e)
	return u
}

func (u *editorUI) buildToolBar(e *Editor, theme *widget.Theme, fontFace *text.Face) *widget.Container {
	toolNames := []string{"Terrain", "Brush", "Erase", "Fill"}
	textColor := &widget.ButtonTextColor{
		Idle:     color.Black,
		Hover:    color.Black,
		Pressed:  color.RGBA{0, 0, 200, 255},
		Disabled: color.Gray{Y: 128},
	}

	toolbar := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(widget.WidgetOpts.MinSize(220, 48)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(8),
		)),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.RGBA{220, 220, 240, 255})),
	)

	for _, name := range toolNames {
		btn := widget.NewButton(
			widget.ButtonOpts.Image(theme.ButtonTheme.Image),
			widget.ButtonOpts.Text(name, fontFace, textColor),
			widget.ButtonOpts.ToggleMode(),
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(56, 40)),
		)
		u.toolButtons = append(u.toolButtons, btn)
		toolbar.AddChild(btn)
	}

	elements := make([]widget.RadioGroupElement, 0, len(u.toolButtons))
	for _, b := range u.toolButtons {
		elements = append(elements, b)
	}
	u.toolGroup = widget.NewRadioGroup(
		widget.RadioGroupOpts.Elements(elements...),
		widget.RadioGroupOpts.ChangedHandler(func(args *widget.RadioGroupChangedEventArgs) {
			if u.suppress {
				return
			}
			for idx, b := range u.toolButtons {
				if args.Active == b {
					e.tool = Tool(idx)
					return
				}
			}
		}),
	)
	u.toolGroup.SetActive(u.toolButtons[int(e.tool)])

	return toolbar
}

func (u *editorUI) buildLeftPanel(e *Editor, theme *widget.Theme, fontFace *text.Face) *widget.Container {
	panel := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(widget.WidgetOpts.MinSize(leftPanelW, 0)),
		widget.ContainerOpts.BackgroundImage(theme.PanelTheme.BackgroundImage),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(8),
		)),
	)

	labelColor := &widget.LabelColor{Idle: color.White, Disabled: color.Gray{Y: 140}}

	panel.AddChild(widget.NewLabel(widget.LabelOpts.Text("Layers", fontFace, labelColor)))
	u.layerList = widget.NewList(
		widget.ListOpts.Entries([]any{}),
		widget.ListOpts.EntryLabelFunc(func(raw any) string {
			entry, ok := raw.(layerEntry)
			if !ok {
				return ""
			}
			return fmt.Sprintf("%d. %s", entry.Index+1, entry.Name)
		}),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			if u.suppress {
				return
			}
			if entry, ok := args.Entry.(layerEntry); ok {
				e.currentLayer = entry.Index
			}
		}),
	)
	panel.AddChild(u.layerList)

	layerButtons := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(6),
		)),
	)
	layerButtons.AddChild(widget.NewButton(
		widget.ButtonOpts.Image(theme.ButtonTheme.Image),
		widget.ButtonOpts.Text("New", fontFace, theme.ButtonTheme.TextColor),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			e.addLayer()
		}),
	))
	layerButtons.AddChild(widget.NewButton(
		widget.ButtonOpts.Image(theme.ButtonTheme.Image),
		widget.ButtonOpts.Text("Physics", fontFace, theme.ButtonTheme.TextColor),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			e.togglePhysics()
		}),
	))
	panel.AddChild(layerButtons)

	panel.AddChild(widget.NewLabel(widget.LabelOpts.Text("Terrains", fontFace, labelColor)))
	u.terrainList = widget.NewList(
		widget.ListOpts.Entries([]any{}),
		widget.ListOpts.EntryLabelFunc(func(raw any) string {
			entry, ok := raw.(terrainEntry)
			if !ok {
				return ""
			}
			return entry.Name
		}),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			if u.suppress {
				return
			}
			if entry, ok := args.Entry.(terrainEntry); ok {
				e.terrainID = entry.ID
				e.tool = ToolTerrain
				u.setTool(ToolTerrain)
			}
		}),
	)
	panel.AddChild(u.terrainList)

	fileButtons := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(6),
		)),
	)
	fileButtons.AddChild(widget.NewButton(
		widget.ButtonOpts.Image(theme.ButtonTheme.Image),
		widget.ButtonOpts.Text("Save", fontFace, theme.ButtonTheme.TextColor),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			if err := e.Save(); err != nil {
				log.Printf("save: %v", err)
				e.setStatus("save failed: %v", err)
			}
		}),
	))
	fileButtons.AddChild(widget.NewButton(
		widget.ButtonOpts.Image(theme.ButtonTheme.Image),
		widget.ButtonOpts.Text("Undo", fontFace, theme.ButtonTheme.TextColor),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			e.Undo()
		}),
	))
	panel.AddChild(fileButtons)

	return panel
}

func (u *editorUI) refreshLayers(e *Editor) {
	if u.layerList == nil {
		return
	}
	u.suppress = true
	entries := make([]any, len(e.lvl.Layers))
	for i, layer := range e.lvl.Layers {
		name := layer.Name
		if level.HasPhysics(layer) {
			name += " [p]"
		}
		entries[i] = layerEntry{Index: i, Name: name}
	}
	u.layerEntries = entries
	u.layerList.SetEntries(entries)
	if e.currentLayer >= 0 && e.currentLayer < len(entries) {
		u.layerList.SetSelectedEntry(entries[e.currentLayer])
	}
	u.suppress = false
}

func (u *editorUI) setSelectedLayer(i int) {
	if u.layerList == nil || i < 0 || i >= len(u.layerEntries) {
		return
	}
	u.suppress = true
	u.layerList.SetSelectedEntry(u.layerEntries[i])
	u.suppress = false
}

func (u *editorUI) refreshTerrains(e *Editor) {
	if u.terrainList == nil {
		return
	}
	u.suppress = true
	var entries []any
	for _, ts := range e.tilesets {
		for _, tl := range ts.TerrainLayers {
			entries = append(entries, terrainEntry{ID: tl.ID, Name: fmt.Sprintf("%s / %s", ts.Name, tl.Name)})
		}
	}
	u.terrainList.SetEntries(entries)
	for _, raw := range entries {
		if entry := raw.(terrainEntry); entry.ID == e.terrainID {
			u.terrainList.SetSelectedEntry(raw)
			break
		}
	}
	u.suppress = false
}

func (u *editorUI) setTool(t Tool) {
	if u.toolGroup == nil {
		return
	}
	idx := int(t)
	if idx < 0 || idx >= len(u.toolButtons) {
		return
	}
	u.suppress = true
	u.toolGroup.SetActive(u.toolButtons[idx])
	u.suppress = false
}

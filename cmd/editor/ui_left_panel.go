package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// LeftPanel groups the layer, tileset, and object sections on the left
// edge of the window.
type LeftPanel struct {
	Container    *widget.Container
	LayerPanel   *LayerPanel
	TilesetPanel *TilesetPanel
	ObjectPanel  *ObjectPanel
}

// TilesetPanel lists the map's tilesets. Selecting one makes it the brush
// source.
type TilesetPanel struct {
	list    *widget.List
	entries []any

	onSelect func(id string)

	suppressEvents bool
}

func NewTilesetPanel() *TilesetPanel {
	return &TilesetPanel{}
}

// SetTilesets replaces the list contents.
func (tp *TilesetPanel) SetTilesets(ids []string) {
	if tp == nil || tp.list == nil {
		return
	}
	tp.suppressEvents = true
	entries := make([]any, len(ids))
	for i, id := range ids {
		entries[i] = id
	}
	tp.entries = entries
	tp.list.SetEntries(entries)
	tp.suppressEvents = false
}

func buildLeftPanelUI(theme *widget.Theme, fontFace *text.Face) *LeftPanel {
	panel := &LeftPanel{
		LayerPanel:   NewLayerPanel(),
		TilesetPanel: NewTilesetPanel(),
		ObjectPanel:  NewObjectPanel(),
	}

	container := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(230, 0),
		),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(10),
				widget.RowLayoutOpts.Padding(&widget.Insets{Top: 56, Left: 8, Right: 8, Bottom: 8}),
			),
		),
		widget.ContainerOpts.BackgroundImage(theme.PanelTheme.BackgroundImage),
	)

	addLayersSection(container, theme, fontFace, panel.LayerPanel)

	tilesetsLabel := widget.NewLabel(
		widget.LabelOpts.Text("Tilesets", fontFace, &widget.LabelColor{Idle: color.White, Disabled: color.Gray{Y: 140}}),
	)
	container.AddChild(tilesetsLabel)

	tilesetList := widget.NewList(
		widget.ListOpts.Entries([]any{}),
		widget.ListOpts.EntryLabelFunc(func(e any) string {
			id, ok := e.(string)
			if !ok {
				return ""
			}
			return id
		}),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			id, ok := args.Entry.(string)
			if !ok || panel.TilesetPanel.suppressEvents {
				return
			}
			if panel.TilesetPanel.onSelect != nil {
				panel.TilesetPanel.onSelect(id)
			}
		}),
	)
	container.AddChild(tilesetList)
	panel.TilesetPanel.list = tilesetList

	objectsLabel := widget.NewLabel(
		widget.LabelOpts.Text("Objects", fontFace, &widget.LabelColor{Idle: color.White, Disabled: color.Gray{Y: 140}}),
	)
	container.AddChild(objectsLabel)

	objectList := widget.NewList(
		widget.ListOpts.Entries([]any{}),
		widget.ListOpts.EntryLabelFunc(func(e any) string {
			row, ok := e.(ObjectRow)
			if !ok {
				return ""
			}
			return fmt.Sprintf("%s [%s]", row.Name, row.Kind)
		}),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			row, ok := args.Entry.(ObjectRow)
			if !ok || panel.ObjectPanel.suppressEvents {
				return
			}
			if panel.ObjectPanel.onSelect != nil {
				panel.ObjectPanel.onSelect(row)
			}
		}),
	)
	container.AddChild(objectList)
	panel.ObjectPanel.list = objectList

	panel.Container = container
	return panel
}

package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

func addLayersSection(
	parent *widget.Container,
	theme *widget.Theme,
	fontFace *text.Face,
	layerPanel *LayerPanel,
) {
	layersLabel := widget.NewLabel(
		widget.LabelOpts.Text("Layers", fontFace, &widget.LabelColor{Idle: color.White, Disabled: color.Gray{Y: 140}}),
	)
	parent.AddChild(layersLabel)

	layerList := widget.NewList(
		widget.ListOpts.Entries([]any{}),
		widget.ListOpts.EntryLabelFunc(func(e any) string {
			row, ok := e.(LayerRow)
			if !ok {
				return ""
			}
			marker := " "
			if !row.Visible {
				marker = "*"
			}
			return fmt.Sprintf("%s %s (%s)", marker, row.ID, row.Kind)
		}),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			row, ok := args.Entry.(LayerRow)
			if !ok || layerPanel.suppressEvents {
				return
			}
			if layerPanel.onSelect != nil {
				layerPanel.onSelect(row.ID)
			}
		}),
	)
	parent.AddChild(layerList)
	layerPanel.list = layerList

	buttonsRow := widget.NewContainer(
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(6),
			),
		),
	)
	newLayerBtn := widget.NewButton(
		widget.ButtonOpts.Image(theme.ButtonTheme.Image),
		widget.ButtonOpts.Text("New", fontFace, theme.ButtonTheme.TextColor),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			if layerPanel.onNewLayer != nil {
				layerPanel.onNewLayer()
			}
		}),
	)
	deleteBtn := widget.NewButton(
		widget.ButtonOpts.Image(theme.ButtonTheme.Image),
		widget.ButtonOpts.Text("Delete", fontFace, theme.ButtonTheme.TextColor),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			if layerPanel.onDeleteLayer == nil {
				return
			}
			if id, ok := layerPanel.Selected(); ok {
				layerPanel.onDeleteLayer(id)
			}
		}),
	)
	upBtn := widget.NewButton(
		widget.ButtonOpts.Image(theme.ButtonTheme.Image),
		widget.ButtonOpts.Text("Up", fontFace, theme.ButtonTheme.TextColor),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			if layerPanel.onMoveUp == nil {
				return
			}
			if id, ok := layerPanel.Selected(); ok {
				layerPanel.onMoveUp(id)
			}
		}),
	)
	downBtn := widget.NewButton(
		widget.ButtonOpts.Image(theme.ButtonTheme.Image),
		widget.ButtonOpts.Text("Down", fontFace, theme.ButtonTheme.TextColor),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			if layerPanel.onMoveDown == nil {
				return
			}
			if id, ok := layerPanel.Selected(); ok {
				layerPanel.onMoveDown(id)
			}
		}),
	)
	visibleBtn := widget.NewButton(
		widget.ButtonOpts.Image(theme.ButtonTheme.Image),
		widget.ButtonOpts.Text("Show/Hide", fontFace, theme.ButtonTheme.TextColor),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			if layerPanel.onToggleVisible == nil {
				return
			}
			sel, ok := layerPanel.list.SelectedEntry().(LayerRow)
			if !ok {
				return
			}
			layerPanel.onToggleVisible(sel.ID, !sel.Visible)
		}),
	)
	buttonsRow.AddChild(newLayerBtn)
	buttonsRow.AddChild(deleteBtn)
	buttonsRow.AddChild(upBtn)
	buttonsRow.AddChild(downBtn)
	buttonsRow.AddChild(visibleBtn)
	parent.AddChild(buttonsRow)
}

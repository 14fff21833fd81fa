package main

import (
	"bytes"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/veldtgames/mapwright/editor"
)

type uiCallbacks struct {
	onToolSelected    func(tool editor.Tool)
	onLayerSelected   func(id string)
	onNewLayer        func()
	onDeleteLayer     func(id string)
	onMoveLayerUp     func(id string)
	onMoveLayerDown   func(id string)
	onToggleVisible   func(id string, visible bool)
	onTilesetSelected func(id string)
	onObjectSelected  func(row ObjectRow)
}

func BuildEditorUI(cb uiCallbacks, initialTool editor.Tool) (*ebitenui.UI, *ToolBar, *LeftPanel) {
	ui := &ebitenui.UI{}

	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic("Failed to load font: " + err.Error())
	}

	var fontFace text.Face = &text.GoTextFace{Source: s, Size: 14}
	ui.PrimaryTheme = newEditorTheme(&fontFace)

	toolbarContainer, toolBar := buildToolBar(ui.PrimaryTheme, &fontFace, cb.onToolSelected, initialTool)
	leftPanel := buildLeftPanelUI(ui.PrimaryTheme, &fontFace)
	leftPanel.LayerPanel.onSelect = cb.onLayerSelected
	leftPanel.LayerPanel.onNewLayer = cb.onNewLayer
	leftPanel.LayerPanel.onDeleteLayer = cb.onDeleteLayer
	leftPanel.LayerPanel.onMoveUp = cb.onMoveLayerUp
	leftPanel.LayerPanel.onMoveDown = cb.onMoveLayerDown
	leftPanel.LayerPanel.onToggleVisible = cb.onToggleVisible
	leftPanel.TilesetPanel.onSelect = cb.onTilesetSelected
	leftPanel.ObjectPanel.onSelect = cb.onObjectSelected

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	leftPanel.Container.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionStart,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
		StretchVertical:    true,
	}
	toolbarContainer.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionCenter,
		VerticalPosition:   widget.AnchorLayoutPositionStart,
	}
	root.AddChild(leftPanel.Container)
	root.AddChild(toolbarContainer)

	ui.Container = root
	return ui, toolBar, leftPanel
}

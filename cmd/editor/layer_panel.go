package main

import (
	"github.com/ebitenui/ebitenui/widget"
)

// LayerRow is a small value used by the UI list to represent a layer row.
type LayerRow struct {
	ID      string
	Kind    string
	Visible bool
}

// LayerPanel holds the layer list widget and small helpers used by the
// editor UI.
type LayerPanel struct {
	list    *widget.List
	entries []any

	onSelect        func(id string)
	onNewLayer      func()
	onDeleteLayer   func(id string)
	onMoveUp        func(id string)
	onMoveDown      func(id string)
	onToggleVisible func(id string, visible bool)

	// suppressEvents, when true, causes the selection handler to skip
	// interpreting programmatic selections as user clicks.
	suppressEvents bool
}

func NewLayerPanel() *LayerPanel {
	return &LayerPanel{}
}

// SetLayers replaces the list contents, topmost layer first.
func (lp *LayerPanel) SetLayers(rows []LayerRow) {
	if lp == nil || lp.list == nil {
		return
	}
	lp.suppressEvents = true
	entries := make([]any, len(rows))
	for i, row := range rows {
		entries[i] = row
	}
	lp.entries = entries
	lp.list.SetEntries(entries)
	lp.suppressEvents = false
}

// SetSelected marks the row for the given layer id.
func (lp *LayerPanel) SetSelected(id string) {
	if lp == nil || lp.list == nil {
		return
	}
	for _, e := range lp.entries {
		row, ok := e.(LayerRow)
		if !ok || row.ID != id {
			continue
		}
		lp.suppressEvents = true
		lp.list.SetSelectedEntry(e)
		lp.suppressEvents = false
		return
	}
}

// Selected returns the id of the selected row.
func (lp *LayerPanel) Selected() (string, bool) {
	if lp == nil || lp.list == nil {
		return "", false
	}
	row, ok := lp.list.SelectedEntry().(LayerRow)
	if !ok {
		return "", false
	}
	return row.ID, true
}

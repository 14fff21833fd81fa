package main

import (
	"github.com/ebitenui/ebitenui/widget"

	"github.com/veldtgames/mapwright/catalog"
	"github.com/veldtgames/mapwright/level"
)

// ObjectRow is one placeable object in the catalog list.
type ObjectRow struct {
	ID   string
	Name string
	Kind level.ObjectKind
}

// ObjectPanel lists the object catalog. Selecting a row feeds the
// placement wizard.
type ObjectPanel struct {
	list    *widget.List
	entries []any

	onSelect func(row ObjectRow)

	suppressEvents bool
}

func NewObjectPanel() *ObjectPanel {
	return &ObjectPanel{}
}

// SetCatalog rebuilds the list from a catalog snapshot, grouped by kind.
func (op *ObjectPanel) SetCatalog(c *catalog.Catalog) {
	if op == nil || op.list == nil || c == nil {
		return
	}
	var entries []any
	for _, kind := range []level.ObjectKind{level.Decoration, level.Environment, level.Item} {
		for _, id := range c.IDs(kind) {
			meta, ok := c.Lookup(id)
			if !ok {
				continue
			}
			entries = append(entries, ObjectRow{ID: meta.ID, Name: meta.Name, Kind: meta.Kind})
		}
	}
	op.suppressEvents = true
	op.entries = entries
	op.list.SetEntries(entries)
	op.suppressEvents = false
}

// Selected returns the selected catalog row.
func (op *ObjectPanel) Selected() (ObjectRow, bool) {
	if op == nil || op.list == nil {
		return ObjectRow{}, false
	}
	row, ok := op.list.SelectedEntry().(ObjectRow)
	return row, ok
}

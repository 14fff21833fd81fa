package action

import (
	"reflect"
	"testing"

	"github.com/veldtgames/mapwright/level"
)

func TestHistoryUndoRedo(t *testing.T) {
	m := newTestMap()
	start := m.Clone()
	h := NewHistory()

	mustApply := func(a Action) {
		t.Helper()
		if err := h.Apply(a, m); err != nil {
			t.Fatalf("apply %s: %v", a, err)
		}
	}

	mustApply(&PlaceTile{LayerID: "main", X: 0, Y: 0, Tile: level.Tile{TilesetID: "grass", Index: 1}})
	mustApply(NewCreateSpawnPoint(level.Vec2{X: 5, Y: 5}))
	afterBoth := m.Clone()

	if !h.CanUndo() || h.CanRedo() {
		t.Fatalf("expected undo available, redo empty")
	}

	if err := h.Undo(m); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if err := h.Undo(m); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if !reflect.DeepEqual(m, start) {
		t.Fatalf("two undos did not restore the starting map")
	}
	if h.CanUndo() {
		t.Fatalf("undo stack should be empty")
	}

	if err := h.Redo(m); err != nil {
		t.Fatalf("redo: %v", err)
	}
	if err := h.Redo(m); err != nil {
		t.Fatalf("redo: %v", err)
	}
	if !reflect.DeepEqual(m, afterBoth) {
		t.Fatalf("two redos did not reproduce the edited map")
	}
	if h.CanRedo() {
		t.Fatalf("redo stack should be empty")
	}
}

func TestHistoryFreshEditClearsRedo(t *testing.T) {
	m := newTestMap()
	h := NewHistory()

	if err := h.Apply(&UpdateLayer{ID: "bg", Visible: false}, m); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if err := h.Undo(m); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if !h.CanRedo() {
		t.Fatalf("expected redo available after undo")
	}

	if err := h.Apply(&UpdateLayer{ID: "main", Visible: false}, m); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if h.CanRedo() {
		t.Fatalf("fresh edit should clear the redo stack")
	}
}

func TestHistoryEmptyUndoRedoAreNoOps(t *testing.T) {
	m := newTestMap()
	want := m.Clone()
	h := NewHistory()

	if err := h.Undo(m); err != nil {
		t.Fatalf("undo on empty history: %v", err)
	}
	if err := h.Redo(m); err != nil {
		t.Fatalf("redo on empty history: %v", err)
	}
	if !reflect.DeepEqual(m, want) {
		t.Fatalf("empty undo/redo changed the map")
	}
}

func TestHistoryFailedApplyRecordsNothing(t *testing.T) {
	m := newTestMap()
	want := m.Clone()
	h := NewHistory()

	if err := h.Apply(&DeleteLayer{ID: "nope"}, m); err == nil {
		t.Fatalf("expected error")
	}
	if h.CanUndo() {
		t.Fatalf("failed apply must not join the history")
	}
	if !reflect.DeepEqual(m, want) {
		t.Fatalf("failed apply changed the map")
	}
}

func TestHistoryDepthLimitDropsOldest(t *testing.T) {
	m := newTestMap()
	h := &History{limit: 3}

	for i := 0; i < 5; i++ {
		a := &PlaceTile{LayerID: "main", X: i, Y: 0, Tile: level.Tile{TilesetID: "grass", Index: i}}
		if err := h.Apply(a, m); err != nil {
			t.Fatalf("apply %d: %v", i, err)
		}
	}

	undos := 0
	for h.CanUndo() {
		if err := h.Undo(m); err != nil {
			t.Fatalf("undo: %v", err)
		}
		undos++
	}
	if undos != 3 {
		t.Fatalf("undid %d edits, want 3", undos)
	}

	// Cells 0 and 1 fell off the history and stay placed.
	for x := 0; x < 5; x++ {
		tile, _ := m.TileAt("main", x, 0)
		wantEmpty := x >= 2
		if tile.IsEmpty() != wantEmpty {
			t.Fatalf("cell %d empty=%v, want %v", x, tile.IsEmpty(), wantEmpty)
		}
	}
}

func TestHistoryPeekLabels(t *testing.T) {
	m := newTestMap()
	h := NewHistory()

	if _, ok := h.PeekUndo(); ok {
		t.Fatalf("peek on empty history")
	}

	a := &DeleteSpawnPoint{Index: 0}
	if err := h.Apply(a, m); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got, ok := h.PeekUndo(); !ok || got != Action(a) {
		t.Fatalf("PeekUndo = %v, %v", got, ok)
	}
	if err := h.Undo(m); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if got, ok := h.PeekRedo(); !ok || got != Action(a) {
		t.Fatalf("PeekRedo = %v, %v", got, ok)
	}
}

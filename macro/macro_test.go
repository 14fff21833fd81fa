package macro

import (
	"reflect"
	"testing"

	"github.com/veldtgames/mapwright/editor"
	"github.com/veldtgames/mapwright/level"
)

func newTestMap() *level.Map {
	m := level.NewMap(level.Vec2{X: 32, Y: 32}, level.GridSize{Cols: 4, Rows: 3})
	m.Layers["main"] = level.NewLayer("main", level.TileLayer, true, m.Grid)
	m.Layers["objects"] = level.NewLayer("objects", level.ObjectLayer, false, m.Grid)
	m.DrawOrder = []string{"main", "objects"}
	return m
}

func TestRunRecordsIntentsInOrder(t *testing.T) {
	src := `
place_tile("main", 0, 0, "grass", 7)
remove_tile("main", 1, 0)
set_visible("main", false)
create_spawn_point(64.0, 32.0)
create_object("objects", "item", "sword", 10.0, 20.0)
`

	intents, err := Run([]byte(src), newTestMap())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	want := []editor.Intent{
		editor.PlaceTile{LayerID: "main", X: 0, Y: 0, Tile: level.Tile{TilesetID: "grass", Index: 7}},
		editor.RemoveTile{LayerID: "main", X: 1, Y: 0},
		editor.UpdateLayerVisibility{ID: "main", Visible: false},
		editor.CreateSpawnPoint{Position: level.Vec2{X: 64, Y: 32}},
		editor.CreateObject{
			LayerID: "objects",
			Object:  level.Object{Position: level.Vec2{X: 10, Y: 20}, Kind: level.Item, ContentID: "sword"},
		},
	}
	if !reflect.DeepEqual(intents, want) {
		t.Fatalf("intents = %+v\nwant %+v", intents, want)
	}
}

func TestRunReadsMapState(t *testing.T) {
	src := `
for x := 0; x < cols(); x++ {
	place_tile("main", x, rows() - 1, "grass", 0)
}
`

	intents, err := Run([]byte(src), newTestMap())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(intents) != 4 {
		t.Fatalf("recorded %d intents, want 4", len(intents))
	}
	last, ok := intents[3].(editor.PlaceTile)
	if !ok || last.X != 3 || last.Y != 2 {
		t.Fatalf("last intent = %+v", intents[3])
	}
}

func TestRunLayersBuiltin(t *testing.T) {
	src := `
ids := layers()
for i := 0; i < len(ids); i++ {
	set_visible(ids[i], true)
}
`

	intents, err := Run([]byte(src), newTestMap())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(intents) != 2 {
		t.Fatalf("recorded %d intents, want 2", len(intents))
	}
	first, ok := intents[0].(editor.UpdateLayerVisibility)
	if !ok || first.ID != "main" {
		t.Fatalf("first intent = %+v", intents[0])
	}
}

func TestRunBadArgsFail(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"wrong_arity", `place_tile("main", 0)`},
		{"wrong_type", `place_tile("main", "zero", 0, "grass", 0)`},
		{"syntax_error", `place_tile(`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := Run([]byte(c.src), newTestMap()); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestRecordedBatchAppliesThroughSession(t *testing.T) {
	m := newTestMap()
	intents, err := Run([]byte(`
place_tile("main", 2, 1, "grass", 3)
create_spawn_point(16.0, 16.0)
`), m)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	s := editor.NewSession(m, nil)
	if err := s.Dispatch(editor.Batch{Intents: intents}); err != nil {
		t.Fatalf("dispatch batch: %v", err)
	}
	if tile, _ := m.TileAt("main", 2, 1); tile.IsEmpty() {
		t.Fatalf("macro tile was not placed")
	}
	if len(m.SpawnPoints) != 1 {
		t.Fatalf("spawn points = %+v", m.SpawnPoints)
	}
}

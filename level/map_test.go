package level

import (
	"bytes"
	"reflect"
	"testing"
)

func testMap() *Map {
	m := NewMap(Vec2{X: 32, Y: 32}, GridSize{Cols: 4, Rows: 3})
	m.Layers["bg"] = NewLayer("bg", TileLayer, false, m.Grid)
	m.Layers["main"] = NewLayer("main", TileLayer, true, m.Grid)
	m.Layers["objects"] = NewLayer("objects", ObjectLayer, false, m.Grid)
	m.DrawOrder = []string{"bg", "main", "objects"}
	m.Tilesets["grass"] = &Tileset{ID: "grass", TexturePath: "grass.png", TileW: 32, TileH: 32, Columns: 8}
	m.SpawnPoints = []Vec2{{X: 64, Y: 64}}
	m.Layers["main"].Tiles[5] = Tile{TilesetID: "grass", Index: 7}
	m.Layers["objects"].Objects = []Object{
		{Position: Vec2{X: 40, Y: 40}, Kind: Item, ContentID: "sword"},
	}
	return m
}

func TestCloneIndependence(t *testing.T) {
	m := testMap()
	c := m.Clone()

	if !reflect.DeepEqual(m, c) {
		t.Fatalf("clone differs from original")
	}

	c.Layers["main"].Tiles[0] = Tile{TilesetID: "grass", Index: 1}
	c.Layers["objects"].Objects[0].Position.X = 999
	c.DrawOrder[0] = "main"
	c.SpawnPoints[0].X = 999
	c.Tilesets["grass"].Columns = 99

	if m.Layers["main"].Tiles[0] != (Tile{}) {
		t.Fatalf("clone shares tile storage with original")
	}
	if m.Layers["objects"].Objects[0].Position.X == 999 {
		t.Fatalf("clone shares object storage with original")
	}
	if m.DrawOrder[0] != "bg" {
		t.Fatalf("clone shares draw order with original")
	}
	if m.SpawnPoints[0].X == 999 {
		t.Fatalf("clone shares spawn points with original")
	}
	if m.Tilesets["grass"].Columns == 99 {
		t.Fatalf("clone shares tilesets with original")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(m *Map)
		wantErr bool
	}{
		{"valid", func(m *Map) {}, false},
		{"draw_order_missing_layer", func(m *Map) {
			m.DrawOrder = m.DrawOrder[:2]
		}, true},
		{"draw_order_duplicate", func(m *Map) {
			m.DrawOrder = []string{"bg", "bg", "objects"}
		}, true},
		{"draw_order_unknown_id", func(m *Map) {
			m.DrawOrder = []string{"bg", "main", "nope"}
		}, true},
		{"layer_key_mismatch", func(m *Map) {
			m.Layers["bg"].ID = "background"
		}, true},
		{"objects_on_tile_layer", func(m *Map) {
			m.Layers["main"].Objects = []Object{{Kind: Item}}
		}, true},
		{"tiles_on_object_layer", func(m *Map) {
			m.Layers["objects"].Tiles = make([]Tile, 12)
		}, true},
		{"wrong_grid_size", func(m *Map) {
			m.Layers["main"].Tiles = m.Layers["main"].Tiles[:5]
		}, true},
		{"unknown_kind", func(m *Map) {
			m.Layers["bg"].Kind = "weird"
		}, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m := testMap()
			c.mutate(m)
			err := m.Validate()
			if c.wantErr && err == nil {
				t.Fatalf("expected validation error")
			}
			if !c.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	m := testMap()

	var buf bytes.Buffer
	if err := Save(&buf, m); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(&buf)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if !reflect.DeepEqual(m, got) {
		t.Fatalf("round trip changed the map\nwant %+v\ngot  %+v", m, got)
	}
}

func TestLoadNormalizesOmittedTileGrids(t *testing.T) {
	src := `{
		"grid": {"cols": 3, "rows": 2},
		"tile_size": {"x": 16, "y": 16},
		"layers": {
			"bg": {"id": "bg", "kind": "tile_layer", "visible": true}
		},
		"draw_order": ["bg"]
	}`

	m, err := Load(bytes.NewReader([]byte(src)))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := len(m.Layers["bg"].Tiles); got != 6 {
		t.Fatalf("expected 6 allocated cells, got %d", got)
	}
}

func TestLoadRejectsInvalidMap(t *testing.T) {
	src := `{
		"grid": {"cols": 3, "rows": 2},
		"tile_size": {"x": 16, "y": 16},
		"layers": {
			"bg": {"id": "bg", "kind": "tile_layer", "visible": true}
		},
		"draw_order": ["bg", "fg"]
	}`

	if _, err := Load(bytes.NewReader([]byte(src))); err == nil {
		t.Fatalf("expected load to fail validation")
	}
}

func TestCellIndex(t *testing.T) {
	m := testMap()
	cases := []struct {
		name   string
		x, y   int
		want   int
		wantOK bool
	}{
		{"origin", 0, 0, 0, true},
		{"middle", 1, 1, 5, true},
		{"last", 3, 2, 11, true},
		{"x_negative", -1, 0, 0, false},
		{"y_negative", 0, -1, 0, false},
		{"x_past_end", 4, 0, 0, false},
		{"y_past_end", 0, 3, 0, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := m.CellIndex(c.x, c.y)
			if ok != c.wantOK || (ok && got != c.want) {
				t.Fatalf("CellIndex(%d,%d) = %d,%v want %d,%v", c.x, c.y, got, ok, c.want, c.wantOK)
			}
		})
	}
}

func TestTileAt(t *testing.T) {
	m := testMap()
	if got, ok := m.TileAt("main", 1, 1); !ok || got != (Tile{TilesetID: "grass", Index: 7}) {
		t.Fatalf("TileAt(main,1,1) = %+v,%v", got, ok)
	}
	if _, ok := m.TileAt("objects", 0, 0); ok {
		t.Fatalf("TileAt should refuse object layers")
	}
	if _, ok := m.TileAt("nope", 0, 0); ok {
		t.Fatalf("TileAt should refuse unknown layers")
	}
}

func TestLoadEmbeddedDefault(t *testing.T) {
	m, err := LoadFromFS("default.json")
	if err != nil {
		t.Fatalf("load embedded default: %v", err)
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("embedded default invalid: %v", err)
	}
	if len(m.SpawnPoints) == 0 {
		t.Fatalf("embedded default has no spawn point")
	}
}

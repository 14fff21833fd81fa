package collision

import (
	"reflect"
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/veldtgames/mapwright/level"
)

func buildMap(cols, rows int) *level.Map {
	m := level.NewMap(level.Vec2{X: 32, Y: 32}, level.GridSize{Cols: cols, Rows: rows})
	m.Layers["main"] = level.NewLayer("main", level.TileLayer, true, m.Grid)
	m.Layers["deco"] = level.NewLayer("deco", level.TileLayer, false, m.Grid)
	m.DrawOrder = []string{"main", "deco"}
	return m
}

func set(m *level.Map, layer string, x, y int) {
	idx, ok := m.CellIndex(x, y)
	if !ok {
		panic("cell out of range")
	}
	m.Layers[layer].Tiles[idx] = level.Tile{TilesetID: "t", Index: 1}
}

func TestSpans(t *testing.T) {
	cases := []struct {
		name  string
		setup func(m *level.Map)
		want  []Span
	}{
		{"empty", func(m *level.Map) {}, nil},
		{"single_cell", func(m *level.Map) {
			set(m, "main", 2, 1)
		}, []Span{{Y: 1, X0: 2, X1: 2}}},
		{"row_merges", func(m *level.Map) {
			set(m, "main", 1, 0)
			set(m, "main", 2, 0)
			set(m, "main", 3, 0)
		}, []Span{{Y: 0, X0: 1, X1: 3}}},
		{"gap_splits", func(m *level.Map) {
			set(m, "main", 0, 2)
			set(m, "main", 1, 2)
			set(m, "main", 3, 2)
		}, []Span{{Y: 2, X0: 0, X1: 1}, {Y: 2, X0: 3, X1: 3}}},
		{"rows_do_not_merge", func(m *level.Map) {
			set(m, "main", 0, 0)
			set(m, "main", 0, 1)
		}, []Span{{Y: 0, X0: 0, X1: 0}, {Y: 1, X0: 0, X1: 0}}},
		{"non_collision_layer_ignored", func(m *level.Map) {
			set(m, "deco", 2, 2)
		}, nil},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m := buildMap(5, 4)
			c.setup(m)
			got := Spans(m)
			if !reflect.DeepEqual(got, c.want) {
				t.Fatalf("spans = %+v, want %+v", got, c.want)
			}
		})
	}
}

func TestSpansMergeAcrossLayers(t *testing.T) {
	m := buildMap(5, 2)
	m.Layers["deco"].HasCollision = true
	set(m, "main", 0, 0)
	set(m, "deco", 1, 0)

	want := []Span{{Y: 0, X0: 0, X1: 1}}
	if got := Spans(m); !reflect.DeepEqual(got, want) {
		t.Fatalf("spans = %+v, want %+v", got, want)
	}
}

func TestBuildSpace(t *testing.T) {
	m := buildMap(5, 3)
	set(m, "main", 1, 1)
	set(m, "main", 2, 1)

	space := BuildSpace(m)

	// One merged span means one static shape spanning both cells.
	var bbs []cp.BB
	space.StaticBody.EachShape(func(sh *cp.Shape) {
		bbs = append(bbs, sh.BB())
	})
	if len(bbs) != 1 {
		t.Fatalf("static shapes = %d, want 1", len(bbs))
	}
	want := cp.BB{L: 32, B: 32, R: 96, T: 64}
	if bbs[0] != want {
		t.Fatalf("bb = %+v, want %+v", bbs[0], want)
	}
}

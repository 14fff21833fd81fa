// Package collision derives static collision geometry from a level map.
// Solid cells on collision-enabled tile layers merge into horizontal spans,
// one box shape per span, so a row of forty tiles costs one shape instead
// of forty.
package collision

import (
	"sort"

	"github.com/jakecoffman/cp"

	"github.com/veldtgames/mapwright/level"
)

// Span is a solid run of cells on one grid row, [X0, X1] inclusive.
type Span struct {
	Y      int
	X0, X1 int
}

// Spans collects the merged solid runs of every layer with collision
// enabled, ordered by row then column. A cell is solid when any collision
// layer has a tile there.
func Spans(m *level.Map) []Span {
	solid := make([]bool, m.Grid.Cols*m.Grid.Rows)
	for _, l := range m.Layers {
		if l.Kind != level.TileLayer || !l.HasCollision {
			continue
		}
		for i, t := range l.Tiles {
			if !t.IsEmpty() {
				solid[i] = true
			}
		}
	}

	var spans []Span
	for y := 0; y < m.Grid.Rows; y++ {
		row := solid[y*m.Grid.Cols : (y+1)*m.Grid.Cols]
		x := 0
		for x < len(row) {
			if !row[x] {
				x++
				continue
			}
			start := x
			for x < len(row) && row[x] {
				x++
			}
			spans = append(spans, Span{Y: y, X0: start, X1: x - 1})
		}
	}
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].Y != spans[j].Y {
			return spans[i].Y < spans[j].Y
		}
		return spans[i].X0 < spans[j].X0
	})
	return spans
}

// BuildSpace constructs a physics space whose static body carries one box
// shape per span, in map pixel coordinates. The editor uses it to sanity
// check geometry; game code can drop bodies straight into it.
func BuildSpace(m *level.Map) *cp.Space {
	space := cp.NewSpace()
	for _, s := range Spans(m) {
		bb := cp.BB{
			L: float64(s.X0) * m.TileSize.X,
			B: float64(s.Y) * m.TileSize.Y,
			R: float64(s.X1+1) * m.TileSize.X,
			T: float64(s.Y+1) * m.TileSize.Y,
		}
		shape := cp.NewBox2(space.StaticBody, bb, 0)
		shape.SetFriction(1)
		space.AddShape(shape)
	}
	return space
}

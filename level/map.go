package level

import "fmt"

// Vec2 is a 2-D position in world units.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// GridSize is the tile grid dimensions of a map, in cells.
type GridSize struct {
	Cols int `json:"cols"`
	Rows int `json:"rows"`
}

// LayerKind discriminates tile layers from object layers. It is fixed at
// layer creation and never changes afterwards.
type LayerKind string

const (
	TileLayer   LayerKind = "tile_layer"
	ObjectLayer LayerKind = "object_layer"
)

// ObjectKind classifies a placed object.
type ObjectKind string

const (
	Decoration  ObjectKind = "decoration"
	Environment ObjectKind = "environment"
	Item        ObjectKind = "item"
)

// Tile is one cell of a tile layer. The zero value is an empty cell.
type Tile struct {
	TilesetID string `json:"tileset,omitempty"`
	Index     int    `json:"index,omitempty"`
}

func (t Tile) IsEmpty() bool {
	return t.TilesetID == ""
}

// Object is an entity placed on an object layer. ContentID refers into an
// external asset catalog and is stored as given; the map never validates it.
type Object struct {
	Position  Vec2       `json:"position"`
	Kind      ObjectKind `json:"kind"`
	ContentID string     `json:"content_id"`
}

// Tileset describes a tile source image. The map only stores the metadata;
// loading the texture is the renderer's problem.
type Tileset struct {
	ID          string `json:"id"`
	TexturePath string `json:"texture"`
	TileW       int    `json:"tile_w"`
	TileH       int    `json:"tile_h"`
	Columns     int    `json:"columns"`
}

// Layer is a single map layer. Tiles is row-major Cols*Rows for tile layers;
// Objects is an ordered list for object layers, where an object's index is
// its identity until the list is next mutated.
type Layer struct {
	ID           string    `json:"id"`
	Kind         LayerKind `json:"kind"`
	Visible      bool      `json:"visible"`
	HasCollision bool      `json:"has_collision,omitempty"`
	Tiles        []Tile    `json:"tiles,omitempty"`
	Objects      []Object  `json:"objects,omitempty"`
}

// NewLayer returns an empty layer of the given kind sized for grid.
func NewLayer(id string, kind LayerKind, hasCollision bool, grid GridSize) *Layer {
	l := &Layer{
		ID:           id,
		Kind:         kind,
		Visible:      true,
		HasCollision: hasCollision,
	}
	if kind == TileLayer {
		l.Tiles = make([]Tile, grid.Cols*grid.Rows)
	}
	return l
}

// Map is the in-memory level document. Layers maps layer id to layer;
// DrawOrder is always a permutation of the Layers key set, index 0 rendering
// first (bottom). All structural mutation goes through editor actions.
type Map struct {
	Grid        GridSize            `json:"grid"`
	TileSize    Vec2                `json:"tile_size"`
	Layers      map[string]*Layer   `json:"layers"`
	DrawOrder   []string            `json:"draw_order"`
	Tilesets    map[string]*Tileset `json:"tilesets,omitempty"`
	SpawnPoints []Vec2              `json:"spawn_points,omitempty"`
}

// NewMap returns an empty map with the given tile size and grid dimensions.
func NewMap(tileSize Vec2, grid GridSize) *Map {
	return &Map{
		Grid:     grid,
		TileSize: tileSize,
		Layers:   make(map[string]*Layer),
		Tilesets: make(map[string]*Tileset),
	}
}

// Layer looks up a layer by id.
func (m *Map) Layer(id string) (*Layer, bool) {
	l, ok := m.Layers[id]
	return l, ok
}

// Tileset looks up a tileset by id.
func (m *Map) Tileset(id string) (*Tileset, bool) {
	t, ok := m.Tilesets[id]
	return t, ok
}

// DrawOrderIndex returns the position of a layer id in the draw order.
func (m *Map) DrawOrderIndex(id string) (int, bool) {
	for i, v := range m.DrawOrder {
		if v == id {
			return i, true
		}
	}
	return 0, false
}

// LayersInDrawOrder returns the layers bottom-to-top for rendering.
func (m *Map) LayersInDrawOrder() []*Layer {
	out := make([]*Layer, 0, len(m.DrawOrder))
	for _, id := range m.DrawOrder {
		if l, ok := m.Layers[id]; ok {
			out = append(out, l)
		}
	}
	return out
}

// CellIndex converts grid coordinates to a row-major tile index.
func (m *Map) CellIndex(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= m.Grid.Cols || y >= m.Grid.Rows {
		return 0, false
	}
	return y*m.Grid.Cols + x, true
}

// TileAt returns the tile at grid cell (x, y) of a tile layer.
func (m *Map) TileAt(layerID string, x, y int) (Tile, bool) {
	l, ok := m.Layers[layerID]
	if !ok || l.Kind != TileLayer {
		return Tile{}, false
	}
	idx, ok := m.CellIndex(x, y)
	if !ok {
		return Tile{}, false
	}
	return l.Tiles[idx], true
}

// Clone returns a deep copy of the map.
func (m *Map) Clone() *Map {
	out := &Map{
		Grid:     m.Grid,
		TileSize: m.TileSize,
		Layers:   make(map[string]*Layer, len(m.Layers)),
		Tilesets: make(map[string]*Tileset, len(m.Tilesets)),
	}
	for id, l := range m.Layers {
		out.Layers[id] = l.Clone()
	}
	for id, t := range m.Tilesets {
		ct := *t
		out.Tilesets[id] = &ct
	}
	if m.DrawOrder != nil {
		out.DrawOrder = append([]string(nil), m.DrawOrder...)
	}
	if m.SpawnPoints != nil {
		out.SpawnPoints = append([]Vec2(nil), m.SpawnPoints...)
	}
	return out
}

// Clone returns a deep copy of the layer.
func (l *Layer) Clone() *Layer {
	out := &Layer{
		ID:           l.ID,
		Kind:         l.Kind,
		Visible:      l.Visible,
		HasCollision: l.HasCollision,
	}
	if l.Tiles != nil {
		out.Tiles = append([]Tile(nil), l.Tiles...)
	}
	if l.Objects != nil {
		out.Objects = append([]Object(nil), l.Objects...)
	}
	return out
}

// normalize allocates empty tile grids for tile layers stored without cell
// data, so hand-written map files can omit all-empty grids.
func (m *Map) normalize() {
	for _, l := range m.Layers {
		if l.Kind == TileLayer && len(l.Tiles) == 0 {
			l.Tiles = make([]Tile, m.Grid.Cols*m.Grid.Rows)
		}
	}
}

// Validate checks the document invariants: draw order is a permutation of
// the layer id set, layer contents match their kind, and tile grids match
// the map grid.
func (m *Map) Validate() error {
	if len(m.DrawOrder) != len(m.Layers) {
		return fmt.Errorf("level: draw order has %d entries for %d layers", len(m.DrawOrder), len(m.Layers))
	}
	seen := make(map[string]bool, len(m.DrawOrder))
	for _, id := range m.DrawOrder {
		if seen[id] {
			return fmt.Errorf("level: duplicate layer %q in draw order", id)
		}
		seen[id] = true
		if _, ok := m.Layers[id]; !ok {
			return fmt.Errorf("level: draw order references unknown layer %q", id)
		}
	}
	for id, l := range m.Layers {
		if l.ID != id {
			return fmt.Errorf("level: layer keyed %q has id %q", id, l.ID)
		}
		switch l.Kind {
		case TileLayer:
			if len(l.Objects) > 0 {
				return fmt.Errorf("level: tile layer %q holds objects", id)
			}
			if len(l.Tiles) != m.Grid.Cols*m.Grid.Rows {
				return fmt.Errorf("level: tile layer %q has %d cells, want %d", id, len(l.Tiles), m.Grid.Cols*m.Grid.Rows)
			}
		case ObjectLayer:
			if len(l.Tiles) > 0 {
				return fmt.Errorf("level: object layer %q holds tiles", id)
			}
		default:
			return fmt.Errorf("level: layer %q has unknown kind %q", id, l.Kind)
		}
	}
	return nil
}

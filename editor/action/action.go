// Package action implements the reversible edit operations of the map
// editor and the undo/redo history that sequences them.
//
// Each action performs exactly one structural edit. Applying an action
// returns its inverse — an action built from the pre-image captured at the
// moment of mutation — so undoing is just applying the inverse. There is no
// separate undo method and therefore no forward/backward logic to drift
// apart.
package action

import (
	"fmt"

	"github.com/veldtgames/mapwright/level"
)

// Action is one reversible edit of a level map. The set of implementations
// is closed; apply is unexported so new kinds cannot be added outside this
// package.
type Action interface {
	// apply mutates m and returns the action that exactly reverses the
	// mutation. On error m is unchanged.
	apply(m *level.Map) (Action, error)

	fmt.Stringer
}

func clamp(i, min, max int) int {
	if i < min {
		return min
	}
	if i > max {
		return max
	}
	return i
}

// CreateLayer inserts a layer at a position in the draw order. It carries
// the full layer contents so it can serve as the inverse of DeleteLayer;
// use NewCreateLayer for the plain "new empty layer" edit.
type CreateLayer struct {
	Index int
	Layer *level.Layer
}

// NewCreateLayer builds the action for an empty layer of the given kind.
func NewCreateLayer(m *level.Map, id string, kind level.LayerKind, hasCollision bool, index int) *CreateLayer {
	return &CreateLayer{
		Index: index,
		Layer: level.NewLayer(id, kind, hasCollision, m.Grid),
	}
}

func (a *CreateLayer) apply(m *level.Map) (Action, error) {
	id := a.Layer.ID
	if _, ok := m.Layers[id]; ok {
		return nil, fmt.Errorf("create layer %q: %w", id, ErrDuplicateID)
	}
	idx := clamp(a.Index, 0, len(m.DrawOrder))
	m.Layers[id] = a.Layer.Clone()
	m.DrawOrder = append(m.DrawOrder, "")
	copy(m.DrawOrder[idx+1:], m.DrawOrder[idx:])
	m.DrawOrder[idx] = id
	return &DeleteLayer{ID: id}, nil
}

func (a *CreateLayer) String() string { return fmt.Sprintf("create layer %q", a.Layer.ID) }

// DeleteLayer removes a layer and its draw-order slot, capturing both for
// the inverse.
type DeleteLayer struct {
	ID string
}

func (a *DeleteLayer) apply(m *level.Map) (Action, error) {
	l, ok := m.Layers[a.ID]
	if !ok {
		return nil, fmt.Errorf("delete layer %q: %w", a.ID, ErrNotFound)
	}
	idx, ok := m.DrawOrderIndex(a.ID)
	if !ok {
		return nil, fmt.Errorf("delete layer %q: draw order entry: %w", a.ID, ErrNotFound)
	}
	delete(m.Layers, a.ID)
	m.DrawOrder = append(m.DrawOrder[:idx], m.DrawOrder[idx+1:]...)
	return &CreateLayer{Index: idx, Layer: l}, nil
}

func (a *DeleteLayer) String() string { return fmt.Sprintf("delete layer %q", a.ID) }

// CreateTileset registers a tileset.
type CreateTileset struct {
	Tileset *level.Tileset
}

func (a *CreateTileset) apply(m *level.Map) (Action, error) {
	id := a.Tileset.ID
	if _, ok := m.Tilesets[id]; ok {
		return nil, fmt.Errorf("create tileset %q: %w", id, ErrDuplicateID)
	}
	ts := *a.Tileset
	m.Tilesets[id] = &ts
	return &DeleteTileset{ID: id}, nil
}

func (a *CreateTileset) String() string { return fmt.Sprintf("create tileset %q", a.Tileset.ID) }

// DeleteTileset removes a tileset. Tile cells referencing it are left
// dangling on purpose; renderers treat a missing tileset as the
// missing-tile marker, and undoing the delete makes them whole again.
type DeleteTileset struct {
	ID string
}

func (a *DeleteTileset) apply(m *level.Map) (Action, error) {
	ts, ok := m.Tilesets[a.ID]
	if !ok {
		return nil, fmt.Errorf("delete tileset %q: %w", a.ID, ErrNotFound)
	}
	delete(m.Tilesets, a.ID)
	return &CreateTileset{Tileset: ts}, nil
}

func (a *DeleteTileset) String() string { return fmt.Sprintf("delete tileset %q", a.ID) }

// UpdateLayer sets a layer's visibility flag.
type UpdateLayer struct {
	ID      string
	Visible bool
}

func (a *UpdateLayer) apply(m *level.Map) (Action, error) {
	l, ok := m.Layers[a.ID]
	if !ok {
		return nil, fmt.Errorf("update layer %q: %w", a.ID, ErrNotFound)
	}
	prev := l.Visible
	l.Visible = a.Visible
	return &UpdateLayer{ID: a.ID, Visible: prev}, nil
}

func (a *UpdateLayer) String() string {
	return fmt.Sprintf("set layer %q visible=%v", a.ID, a.Visible)
}

// SetLayerDrawOrderIndex moves a layer to a new position in the draw order.
// The target index clamps to the valid range.
type SetLayerDrawOrderIndex struct {
	ID    string
	Index int
}

func (a *SetLayerDrawOrderIndex) apply(m *level.Map) (Action, error) {
	from, ok := m.DrawOrderIndex(a.ID)
	if !ok {
		return nil, fmt.Errorf("reorder layer %q: %w", a.ID, ErrNotFound)
	}
	to := clamp(a.Index, 0, len(m.DrawOrder)-1)
	if to != from {
		m.DrawOrder = append(m.DrawOrder[:from], m.DrawOrder[from+1:]...)
		m.DrawOrder = append(m.DrawOrder, "")
		copy(m.DrawOrder[to+1:], m.DrawOrder[to:])
		m.DrawOrder[to] = a.ID
	}
	return &SetLayerDrawOrderIndex{ID: a.ID, Index: from}, nil
}

func (a *SetLayerDrawOrderIndex) String() string {
	return fmt.Sprintf("move layer %q to index %d", a.ID, a.Index)
}

// PlaceTile sets one grid cell of a tile layer, overwriting whatever was
// there.
type PlaceTile struct {
	LayerID string
	X, Y    int
	Tile    level.Tile
}

func (a *PlaceTile) apply(m *level.Map) (Action, error) {
	l, idx, err := tileCell(m, a.LayerID, a.X, a.Y, "place tile")
	if err != nil {
		return nil, err
	}
	prev := l.Tiles[idx]
	l.Tiles[idx] = a.Tile
	if prev.IsEmpty() {
		return &RemoveTile{LayerID: a.LayerID, X: a.X, Y: a.Y}, nil
	}
	return &PlaceTile{LayerID: a.LayerID, X: a.X, Y: a.Y, Tile: prev}, nil
}

func (a *PlaceTile) String() string {
	return fmt.Sprintf("place tile %s:%d at (%d,%d) on %q", a.Tile.TilesetID, a.Tile.Index, a.X, a.Y, a.LayerID)
}

// RemoveTile clears one grid cell. Clearing an already-empty cell succeeds
// and records the empty pre-image, so the inverse is another RemoveTile.
type RemoveTile struct {
	LayerID string
	X, Y    int
}

func (a *RemoveTile) apply(m *level.Map) (Action, error) {
	l, idx, err := tileCell(m, a.LayerID, a.X, a.Y, "remove tile")
	if err != nil {
		return nil, err
	}
	prev := l.Tiles[idx]
	l.Tiles[idx] = level.Tile{}
	if prev.IsEmpty() {
		return &RemoveTile{LayerID: a.LayerID, X: a.X, Y: a.Y}, nil
	}
	return &PlaceTile{LayerID: a.LayerID, X: a.X, Y: a.Y, Tile: prev}, nil
}

func (a *RemoveTile) String() string {
	return fmt.Sprintf("remove tile at (%d,%d) on %q", a.X, a.Y, a.LayerID)
}

func tileCell(m *level.Map, layerID string, x, y int, verb string) (*level.Layer, int, error) {
	l, ok := m.Layers[layerID]
	if !ok {
		return nil, 0, fmt.Errorf("%s: layer %q: %w", verb, layerID, ErrNotFound)
	}
	if l.Kind != level.TileLayer {
		return nil, 0, fmt.Errorf("%s: layer %q: %w", verb, layerID, ErrInvalidLayerKind)
	}
	idx, ok := m.CellIndex(x, y)
	if !ok {
		return nil, 0, fmt.Errorf("%s: cell (%d,%d): %w", verb, x, y, ErrOutOfBounds)
	}
	return l, idx, nil
}

// CreateObject inserts an object into an object layer. Index < 0 appends;
// a concrete index makes it the inverse of DeleteObject.
type CreateObject struct {
	LayerID string
	Index   int
	Object  level.Object
}

// NewCreateObject builds the appending form of the action.
func NewCreateObject(layerID string, obj level.Object) *CreateObject {
	return &CreateObject{LayerID: layerID, Index: -1, Object: obj}
}

func (a *CreateObject) apply(m *level.Map) (Action, error) {
	l, err := objectLayer(m, a.LayerID, "create object")
	if err != nil {
		return nil, err
	}
	idx := a.Index
	if idx < 0 {
		idx = len(l.Objects)
	}
	if idx > len(l.Objects) {
		return nil, fmt.Errorf("create object: index %d: %w", idx, ErrOutOfBounds)
	}
	l.Objects = append(l.Objects, level.Object{})
	copy(l.Objects[idx+1:], l.Objects[idx:])
	l.Objects[idx] = a.Object
	return &DeleteObject{LayerID: a.LayerID, Index: idx}, nil
}

func (a *CreateObject) String() string {
	return fmt.Sprintf("create %s object %q on %q", a.Object.Kind, a.Object.ContentID, a.LayerID)
}

// DeleteObject removes the object at an index, shifting later indices down.
// Any selection holding a later index is stale after this applies.
type DeleteObject struct {
	LayerID string
	Index   int
}

func (a *DeleteObject) apply(m *level.Map) (Action, error) {
	l, err := objectLayer(m, a.LayerID, "delete object")
	if err != nil {
		return nil, err
	}
	if a.Index < 0 || a.Index >= len(l.Objects) {
		return nil, fmt.Errorf("delete object: index %d: %w", a.Index, ErrOutOfBounds)
	}
	obj := l.Objects[a.Index]
	l.Objects = append(l.Objects[:a.Index], l.Objects[a.Index+1:]...)
	return &CreateObject{LayerID: a.LayerID, Index: a.Index, Object: obj}, nil
}

func (a *DeleteObject) String() string {
	return fmt.Sprintf("delete object %d on %q", a.Index, a.LayerID)
}

// MoveObject sets an object's position.
type MoveObject struct {
	LayerID  string
	Index    int
	Position level.Vec2
}

func (a *MoveObject) apply(m *level.Map) (Action, error) {
	l, err := objectLayer(m, a.LayerID, "move object")
	if err != nil {
		return nil, err
	}
	if a.Index < 0 || a.Index >= len(l.Objects) {
		return nil, fmt.Errorf("move object: index %d: %w", a.Index, ErrOutOfBounds)
	}
	prev := l.Objects[a.Index].Position
	l.Objects[a.Index].Position = a.Position
	return &MoveObject{LayerID: a.LayerID, Index: a.Index, Position: prev}, nil
}

func (a *MoveObject) String() string {
	return fmt.Sprintf("move object %d on %q to (%g,%g)", a.Index, a.LayerID, a.Position.X, a.Position.Y)
}

func objectLayer(m *level.Map, layerID, verb string) (*level.Layer, error) {
	l, ok := m.Layers[layerID]
	if !ok {
		return nil, fmt.Errorf("%s: layer %q: %w", verb, layerID, ErrNotFound)
	}
	if l.Kind != level.ObjectLayer {
		return nil, fmt.Errorf("%s: layer %q: %w", verb, layerID, ErrInvalidLayerKind)
	}
	return l, nil
}

// CreateSpawnPoint inserts a spawn point. Index < 0 appends; a concrete
// index makes it the inverse of DeleteSpawnPoint.
type CreateSpawnPoint struct {
	Index    int
	Position level.Vec2
}

// NewCreateSpawnPoint builds the appending form of the action.
func NewCreateSpawnPoint(pos level.Vec2) *CreateSpawnPoint {
	return &CreateSpawnPoint{Index: -1, Position: pos}
}

func (a *CreateSpawnPoint) apply(m *level.Map) (Action, error) {
	idx := a.Index
	if idx < 0 {
		idx = len(m.SpawnPoints)
	}
	if idx > len(m.SpawnPoints) {
		return nil, fmt.Errorf("create spawn point: index %d: %w", idx, ErrOutOfBounds)
	}
	m.SpawnPoints = append(m.SpawnPoints, level.Vec2{})
	copy(m.SpawnPoints[idx+1:], m.SpawnPoints[idx:])
	m.SpawnPoints[idx] = a.Position
	return &DeleteSpawnPoint{Index: idx}, nil
}

func (a *CreateSpawnPoint) String() string {
	return fmt.Sprintf("create spawn point (%g,%g)", a.Position.X, a.Position.Y)
}

// DeleteSpawnPoint removes the spawn point at an index, shifting later
// indices down.
type DeleteSpawnPoint struct {
	Index int
}

func (a *DeleteSpawnPoint) apply(m *level.Map) (Action, error) {
	if a.Index < 0 || a.Index >= len(m.SpawnPoints) {
		return nil, fmt.Errorf("delete spawn point: index %d: %w", a.Index, ErrOutOfBounds)
	}
	pos := m.SpawnPoints[a.Index]
	m.SpawnPoints = append(m.SpawnPoints[:a.Index], m.SpawnPoints[a.Index+1:]...)
	return &CreateSpawnPoint{Index: a.Index, Position: pos}, nil
}

func (a *DeleteSpawnPoint) String() string {
	return fmt.Sprintf("delete spawn point %d", a.Index)
}

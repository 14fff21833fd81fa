// Package editor translates user-facing intents into reversible actions on
// the level map, and owns the ephemeral session state (tool, selections,
// in-progress object placement) that must never enter the undo history.
package editor

import "github.com/veldtgames/mapwright/level"

// Tool is the active canvas tool. Selecting a tool is ephemeral state, not
// an undoable edit.
type Tool int

const (
	ToolCursor Tool = iota
	ToolTilePlacer
	ToolObjectPlacer
	ToolSpawnPointPlacer
	ToolEraser
)

func (t Tool) String() string {
	switch t {
	case ToolCursor:
		return "Cursor"
	case ToolTilePlacer:
		return "Tiles"
	case ToolObjectPlacer:
		return "Objects"
	case ToolSpawnPointPlacer:
		return "Spawn"
	case ToolEraser:
		return "Eraser"
	default:
		return "Unknown"
	}
}

// Intent is a single user-facing request. The set is closed: the session
// classifies each kind as either a document edit (routed through the
// history) or an ephemeral state change (applied directly).
type Intent interface {
	isIntent()
}

// Ephemeral intents.

type SelectTool struct{ Tool Tool }

type SelectLayer struct{ ID string }

type SelectTileset struct{ ID string }

// SelectTile picks the tile the brush paints with.
type SelectTile struct {
	TilesetID string
	Index     int
}

// SelectEntity marks an object or spawn point as selected. The held index
// is only valid until the next structural mutation of its list.
type SelectEntity struct{ Ref EntityRef }

type Deselect struct{}

// BeginObjectPlacement opens the placement wizard at a position.
type BeginObjectPlacement struct {
	Position level.Vec2
	Kind     level.ObjectKind
}

// UpdateObjectPlacement changes the wizard's pending kind/content choice.
type UpdateObjectPlacement struct {
	Kind      level.ObjectKind
	ContentID string
}

// CancelObjectPlacement closes the wizard without creating anything.
type CancelObjectPlacement struct{}

// Document edits.

type CreateLayer struct {
	ID           string
	Kind         level.LayerKind
	HasCollision bool
	Index        int
}

type DeleteLayer struct{ ID string }

type UpdateLayerVisibility struct {
	ID      string
	Visible bool
}

type SetLayerDrawOrderIndex struct {
	ID    string
	Index int
}

type CreateTileset struct{ Tileset level.Tileset }

type DeleteTileset struct{ ID string }

type PlaceTile struct {
	LayerID string
	X, Y    int
	Tile    level.Tile
}

type RemoveTile struct {
	LayerID string
	X, Y    int
}

// CreateObject commits the placement wizard (or a direct request) as an
// appended object.
type CreateObject struct {
	LayerID string
	Object  level.Object
}

type MoveObject struct {
	LayerID  string
	Index    int
	Position level.Vec2
}

type DeleteObject struct {
	LayerID string
	Index   int
}

type CreateSpawnPoint struct{ Position level.Vec2 }

type DeleteSpawnPoint struct{ Index int }

// History and persistence.

type Undo struct{}

type Redo struct{}

type Save struct{}

// Batch fans out into its sub-intents in order. Each sub-intent is
// independently atomic but the batch as a whole is not: a mid-batch failure
// leaves the earlier edits applied.
type Batch struct{ Intents []Intent }

func (SelectTool) isIntent() {}
func (SelectLayer) isIntent() {}
func (SelectTileset) isIntent() {}
func (SelectTile) isIntent() {}
func (SelectEntity) isIntent() {}
func (Deselect) isIntent() {}
func (BeginObjectPlacement) isIntent() {}
func (UpdateObjectPlacement) isIntent() {}
func (CancelObjectPlacement) isIntent() {}
func (CreateLayer) isIntent() {}
func (DeleteLayer) isIntent() {}
func (UpdateLayerVisibility) isIntent() {}
func (SetLayerDrawOrderIndex) isIntent() {}
func (CreateTileset) isIntent() {}
func (DeleteTileset) isIntent() {}
func (PlaceTile) isIntent() {}
func (RemoveTile) isIntent() {}
func (CreateObject) isIntent() {}
func (MoveObject) isIntent() {}
func (DeleteObject) isIntent() {}
func (CreateSpawnPoint) isIntent() {}
func (DeleteSpawnPoint) isIntent() {}
func (Undo) isIntent() {}
func (Redo) isIntent() {}
func (Save) isIntent() {}
func (Batch) isIntent() {}

// EntityKind discriminates selectable entities.
type EntityKind int

const (
	EntityObject EntityKind = iota
	EntitySpawnPoint
)

// EntityRef identifies an object (layer id + index) or a spawn point
// (index). Indices are positional, not stable keys.
type EntityRef struct {
	Kind    EntityKind
	LayerID string
	Index   int
}

// IsObject reports whether the ref points at the given object.
func (r EntityRef) IsObject(layerID string, index int) bool {
	return r.Kind == EntityObject && r.LayerID == layerID && r.Index == index
}

// ObjectPlacement is the in-progress state of the placement wizard. It
// lives entirely outside the history; only the committing CreateObject
// enters it.
type ObjectPlacement struct {
	Position  level.Vec2
	Kind      level.ObjectKind
	ContentID string
}

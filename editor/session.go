package editor

import (
	"fmt"
	"log"

	"github.com/veldtgames/mapwright/editor/action"
	"github.com/veldtgames/mapwright/level"
)

// TileSelection is the brush: which tile of which tileset painting places.
type TileSelection struct {
	TilesetID string
	Index     int
}

// Saver persists the current map. The front end decides where it goes.
type Saver interface {
	Save(m *level.Map) error
}

// Session owns one open map, the history of edits against it, and the
// ephemeral editing state around it. Dispatch is the only entry point for
// changing any of that; front ends read through the accessors and draw.
type Session struct {
	doc     *level.Map
	history *action.History
	saver   Saver

	tool          Tool
	activeLayer   string
	activeTileset string
	brush         TileSelection
	hasBrush      bool
	selected      EntityRef
	hasSelection  bool
	placement     *ObjectPlacement
}

// NewSession opens m for editing. The first layer in draw order starts
// active.
func NewSession(m *level.Map, saver Saver) *Session {
	s := &Session{
		doc:     m,
		history: action.NewHistory(),
		saver:   saver,
	}
	if len(m.DrawOrder) > 0 {
		s.activeLayer = m.DrawOrder[0]
	}
	return s
}

// Doc returns the map being edited. Callers must treat it as read-only and
// route every mutation through Dispatch.
func (s *Session) Doc() *level.Map { return s.doc }

func (s *Session) Tool() Tool            { return s.tool }
func (s *Session) ActiveLayer() string   { return s.activeLayer }
func (s *Session) ActiveTileset() string { return s.activeTileset }

// Brush returns the selected tile, if any.
func (s *Session) Brush() (TileSelection, bool) { return s.brush, s.hasBrush }

// Selection returns the selected entity, if any.
func (s *Session) Selection() (EntityRef, bool) { return s.selected, s.hasSelection }

// Placement returns the in-progress object placement, or nil.
func (s *Session) Placement() *ObjectPlacement { return s.placement }

func (s *Session) CanUndo() bool { return s.history.CanUndo() }
func (s *Session) CanRedo() bool { return s.history.CanRedo() }

// UndoLabel describes the edit an undo would reverse, for status display.
func (s *Session) UndoLabel() (string, bool) {
	a, ok := s.history.PeekUndo()
	if !ok {
		return "", false
	}
	return a.String(), true
}

// RedoLabel describes the edit a redo would re-apply.
func (s *Session) RedoLabel() (string, bool) {
	a, ok := s.history.PeekRedo()
	if !ok {
		return "", false
	}
	return a.String(), true
}

// Dispatch carries out one intent. Ephemeral intents update session state
// directly and are never undoable; document edits go through the history.
// On error the map is unchanged, except for Batch, which stops at the first
// failing sub-intent and leaves the earlier ones applied.
func (s *Session) Dispatch(in Intent) error {
	switch in := in.(type) {
	case SelectTool:
		s.tool = in.Tool
		s.placement = nil
		return nil
	case SelectLayer:
		if _, ok := s.doc.Layers[in.ID]; !ok {
			return fmt.Errorf("editor: select layer %q: %w", in.ID, action.ErrNotFound)
		}
		s.activeLayer = in.ID
		return nil
	case SelectTileset:
		if _, ok := s.doc.Tilesets[in.ID]; !ok {
			return fmt.Errorf("editor: select tileset %q: %w", in.ID, action.ErrNotFound)
		}
		s.activeTileset = in.ID
		return nil
	case SelectTile:
		s.brush = TileSelection{TilesetID: in.TilesetID, Index: in.Index}
		s.hasBrush = true
		return nil
	case SelectEntity:
		s.selected = in.Ref
		s.hasSelection = true
		return nil
	case Deselect:
		s.hasSelection = false
		return nil
	case BeginObjectPlacement:
		s.placement = &ObjectPlacement{Position: in.Position, Kind: in.Kind}
		return nil
	case UpdateObjectPlacement:
		if s.placement == nil {
			return fmt.Errorf("editor: update object placement: no placement in progress")
		}
		s.placement.Kind = in.Kind
		s.placement.ContentID = in.ContentID
		return nil
	case CancelObjectPlacement:
		s.placement = nil
		return nil

	case CreateLayer:
		return s.edit(action.NewCreateLayer(s.doc, in.ID, in.Kind, in.HasCollision, in.Index))
	case DeleteLayer:
		return s.edit(&action.DeleteLayer{ID: in.ID})
	case UpdateLayerVisibility:
		return s.edit(&action.UpdateLayer{ID: in.ID, Visible: in.Visible})
	case SetLayerDrawOrderIndex:
		return s.edit(&action.SetLayerDrawOrderIndex{ID: in.ID, Index: in.Index})
	case CreateTileset:
		ts := in.Tileset
		return s.edit(&action.CreateTileset{Tileset: &ts})
	case DeleteTileset:
		return s.edit(&action.DeleteTileset{ID: in.ID})
	case PlaceTile:
		return s.edit(&action.PlaceTile{LayerID: in.LayerID, X: in.X, Y: in.Y, Tile: in.Tile})
	case RemoveTile:
		return s.edit(&action.RemoveTile{LayerID: in.LayerID, X: in.X, Y: in.Y})
	case CreateObject:
		if err := s.edit(action.NewCreateObject(in.LayerID, in.Object)); err != nil {
			return err
		}
		s.placement = nil
		return nil
	case MoveObject:
		return s.edit(&action.MoveObject{LayerID: in.LayerID, Index: in.Index, Position: in.Position})
	case DeleteObject:
		return s.edit(&action.DeleteObject{LayerID: in.LayerID, Index: in.Index})
	case CreateSpawnPoint:
		return s.edit(action.NewCreateSpawnPoint(in.Position))
	case DeleteSpawnPoint:
		return s.edit(&action.DeleteSpawnPoint{Index: in.Index})

	case Undo:
		if err := s.history.Undo(s.doc); err != nil {
			return err
		}
		s.hasSelection = false
		s.invalidate()
		return nil
	case Redo:
		if err := s.history.Redo(s.doc); err != nil {
			return err
		}
		s.hasSelection = false
		s.invalidate()
		return nil
	case Save:
		if s.saver == nil {
			return fmt.Errorf("editor: save: no saver configured")
		}
		if err := s.saver.Save(s.doc); err != nil {
			return fmt.Errorf("editor: save: %w", err)
		}
		log.Printf("editor: saved map (%d layers, %d spawn points)", len(s.doc.Layers), len(s.doc.SpawnPoints))
		return nil
	case Batch:
		for i, sub := range in.Intents {
			if err := s.Dispatch(sub); err != nil {
				return fmt.Errorf("batch: intent %d/%d: %w", i+1, len(in.Intents), err)
			}
		}
		return nil
	default:
		return fmt.Errorf("editor: unknown intent %T", in)
	}
}

// edit routes a document action through the history, then drops whatever
// session state the mutation made stale.
func (s *Session) edit(a action.Action) error {
	if err := s.history.Apply(a, s.doc); err != nil {
		return err
	}
	if s.hasSelection && mutatesList(a, s.selected) {
		s.hasSelection = false
	}
	s.invalidate()
	return nil
}

// mutatesList reports whether a structurally changed the list ref indexes
// into. Indices after an insert or removal shift, so even a ref that still
// resolves would name the wrong entity and has to be dropped.
func mutatesList(a action.Action, ref EntityRef) bool {
	switch a := a.(type) {
	case *action.CreateObject:
		return ref.Kind == EntityObject && ref.LayerID == a.LayerID
	case *action.DeleteObject:
		return ref.Kind == EntityObject && ref.LayerID == a.LayerID
	case *action.CreateSpawnPoint, *action.DeleteSpawnPoint:
		return ref.Kind == EntitySpawnPoint
	case *action.DeleteLayer:
		return ref.Kind == EntityObject && ref.LayerID == a.ID
	default:
		return false
	}
}

// invalidate reconciles ephemeral state with the document after any edit,
// undo, or redo. Positional selections cannot be tracked across structural
// changes to their list, so any selection that no longer resolves is
// dropped rather than left pointing at the wrong entity.
func (s *Session) invalidate() {
	if s.activeLayer != "" {
		if _, ok := s.doc.Layers[s.activeLayer]; !ok {
			s.activeLayer = ""
			if len(s.doc.DrawOrder) > 0 {
				s.activeLayer = s.doc.DrawOrder[0]
			}
		}
	}
	if s.activeTileset != "" {
		if _, ok := s.doc.Tilesets[s.activeTileset]; !ok {
			s.activeTileset = ""
		}
	}
	if s.hasBrush {
		if _, ok := s.doc.Tilesets[s.brush.TilesetID]; !ok {
			s.hasBrush = false
		}
	}
	if s.hasSelection && !s.selectionResolves() {
		s.hasSelection = false
	}
}

func (s *Session) selectionResolves() bool {
	switch s.selected.Kind {
	case EntityObject:
		l, ok := s.doc.Layers[s.selected.LayerID]
		if !ok || l.Kind != level.ObjectLayer {
			return false
		}
		return s.selected.Index >= 0 && s.selected.Index < len(l.Objects)
	case EntitySpawnPoint:
		return s.selected.Index >= 0 && s.selected.Index < len(s.doc.SpawnPoints)
	default:
		return false
	}
}

package action

import (
	"fmt"

	"github.com/veldtgames/mapwright/level"
)

// DefaultLimit is the default undo depth; applying past it drops the
// oldest entry.
const DefaultLimit = 100

type entry struct {
	forward Action
	inverse Action
}

// History sequences actions against a map with two-stack undo/redo.
// Undo and redo step strictly in LIFO order; there is no random access.
type History struct {
	undo  []entry
	redo  []entry
	limit int
}

// NewHistory returns a history with the default depth limit.
func NewHistory() *History {
	return &History{limit: DefaultLimit}
}

// Apply performs a on m. On success the action joins the undo stack and the
// redo stack is cleared: a fresh edit invalidates any undone future. On
// failure the error propagates, m and both stacks untouched.
func (h *History) Apply(a Action, m *level.Map) error {
	inv, err := a.apply(m)
	if err != nil {
		return err
	}
	if h.limit > 0 && len(h.undo) >= h.limit {
		copy(h.undo, h.undo[1:])
		h.undo = h.undo[:len(h.undo)-1]
	}
	h.undo = append(h.undo, entry{forward: a, inverse: inv})
	h.redo = h.redo[:0]
	return nil
}

// Undo reverses the most recent applied action by applying its inverse.
// With nothing to undo it is a no-op. If the inverse itself fails the
// history lineage is broken: the entry is discarded, the redo stack is
// cleared, and the error is returned.
func (h *History) Undo(m *level.Map) error {
	if len(h.undo) == 0 {
		return nil
	}
	e := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	if _, err := e.inverse.apply(m); err != nil {
		h.redo = h.redo[:0]
		return fmt.Errorf("undo %s: %w", e.forward, err)
	}
	h.redo = append(h.redo, e)
	return nil
}

// Redo re-applies the most recently undone action. Re-running the forward
// action reproduces the state and captures a fresh inverse. With nothing to
// redo it is a no-op.
func (h *History) Redo(m *level.Map) error {
	if len(h.redo) == 0 {
		return nil
	}
	e := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	inv, err := e.forward.apply(m)
	if err != nil {
		return fmt.Errorf("redo %s: %w", e.forward, err)
	}
	h.undo = append(h.undo, entry{forward: e.forward, inverse: inv})
	return nil
}

// CanUndo reports whether an undo step is available.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether a redo step is available.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// PeekUndo returns the action an Undo would reverse, for status display.
func (h *History) PeekUndo() (Action, bool) {
	if len(h.undo) == 0 {
		return nil, false
	}
	return h.undo[len(h.undo)-1].forward, true
}

// PeekRedo returns the action a Redo would re-apply, for status display.
func (h *History) PeekRedo() (Action, bool) {
	if len(h.redo) == 0 {
		return nil, false
	}
	return h.redo[len(h.redo)-1].forward, true
}

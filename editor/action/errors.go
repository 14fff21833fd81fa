package action

import "errors"

// Failure conditions an action can report. Every apply validates before
// mutating, so a returned error always means the map was left untouched.
var (
	ErrNotFound         = errors.New("not found")
	ErrOutOfBounds      = errors.New("index out of bounds")
	ErrDuplicateID      = errors.New("duplicate id")
	ErrInvalidLayerKind = errors.New("invalid layer kind")
)

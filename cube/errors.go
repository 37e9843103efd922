package cube

import "errors"

// Sentinel errors for the cube package.
var (
	ErrInvalidMove   = errors.New("cube: invalid move notation")
	ErrInvalidState  = errors.New("cube: invalid state")
	ErrNothingToUndo = errors.New("cube: nothing to undo")
)

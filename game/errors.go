package game

import "errors"

// Rejected-action errors. A rejection is a normal outcome, not a fault: the
// transition returns the unchanged state alongside one of these.
var (
	ErrGameComplete     = errors.New("game is complete")
	ErrIllegalMove      = errors.New("illegal move")
	ErrNothingToUndo    = errors.New("nothing to undo")
	ErrNothingToRedo    = errors.New("nothing to redo")
	ErrPauseUnsupported = errors.New("pause is not supported")
)

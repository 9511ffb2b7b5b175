package core

import "errors"

var (
	// ErrOutOfBounds reports coordinates outside the grid extents.
	ErrOutOfBounds = errors.New("out of bounds")
	// ErrInvalidDimension reports a non-positive or mismatched grid size.
	ErrInvalidDimension = errors.New("invalid dimension")
)

package difficulty

import "errors"

var (
	// ErrInvalidArgument is returned for out-of-range levels, negative
	// response times and unknown games.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidState is returned when an operation is not allowed in the
	// current state of its owner.
	ErrInvalidState = errors.New("invalid state")
)

package typechart

import "errors"

// Sentinel kinds for type chart errors.
var (
	ErrUnknownType = errors.New("unknown type")
	ErrIncomplete  = errors.New("incomplete type chart")
)

package repository

import "errors"

// Sentinel kinds for dex lookup errors.
var (
	ErrSpeciesNotFound = errors.New("species not found")
	ErrMoveNotFound    = errors.New("move not found")
)

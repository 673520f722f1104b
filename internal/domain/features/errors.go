package features

import "errors"

// Sentinel kinds for feature pipeline errors.
var (
	// ErrInvalidType marks a type value outside the frozen vocabulary.
	// It is a per-request error; indicator columns are never silently
	// zero-filled for unrecognized values.
	ErrInvalidType = errors.New("type outside vocabulary")

	// ErrInvalidCategory marks a move category outside physical/special/status.
	ErrInvalidCategory = errors.New("unknown move category")

	// ErrSchemaMismatch marks disagreement between the schema artifact and
	// the scaler or model artifacts. It is fatal at startup.
	ErrSchemaMismatch = errors.New("feature schema mismatch")
)

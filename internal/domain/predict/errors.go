package predict

import "errors"

// Sentinel kinds for estimator errors.
var (
	ErrBadArtifact   = errors.New("invalid model artifact")
	ErrWidthMismatch = errors.New("feature width mismatch")
)

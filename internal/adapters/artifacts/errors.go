package artifacts

import "errors"

// Sentinel kinds for artifact loading errors. All of these are fatal at
// startup; none may surface per request.
var (
	ErrMissingArtifact  = errors.New("artifact missing or unreadable")
	ErrMalformed        = errors.New("artifact malformed")
	ErrVersionMismatch  = errors.New("artifact version mismatch")
	ErrContractViolated = errors.New("artifact contract violated")
)

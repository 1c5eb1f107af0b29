package upload

import "errors"

// ErrInvalidRequest is returned for malformed chunk uploads. It is always
// caller-correctable and never leaves a session created or mutated.
var ErrInvalidRequest = errors.New("invalid chunk upload request")

package block

import "errors"

// Sentinel errors.
var (
	ErrMalformed = errors.New("malformed block")
	ErrAbsent    = errors.New("document absent")
)

package ktxstats

import "errors"

// ErrInvalid indicates a ktxstats document that does not decode.
var ErrInvalid = errors.New("invalid ktxstats document")

package frame

import "errors"

// ErrMalformed reports a frame header that is truncated or overruns the buffer.
var ErrMalformed = errors.New("malformed frame")

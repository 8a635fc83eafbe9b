package message

import (
	"errors"
	"fmt"
)

// Sentinel errors. Both length errors wrap ErrMalformed.
var (
	ErrMalformed          = errors.New("malformed message")
	ErrInsufficientLength = fmt.Errorf("%w: insufficient length", ErrMalformed)
	ErrMissingTerminator  = fmt.Errorf("%w: missing null terminator", ErrMalformed)
)

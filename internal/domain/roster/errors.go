package roster

import "errors"

// ErrNotFound indicates a demo without client userinfo strings.
var ErrNotFound = errors.New("clientinfo strings not found")

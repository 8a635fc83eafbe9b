package types

import "errors"

// Sentinel kinds shared by the service and its transports.
var (
	ErrUnavailable     = errors.New("service unavailable")
	ErrArchiveDisabled = errors.New("match archive disabled")
)

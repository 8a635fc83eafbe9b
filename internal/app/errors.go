package service

import (
	"fmt"

	"github.com/okian/mvdstats/internal/domain/types"
)

// Sentinel kinds for service errors.
var (
	ErrNotStarted      = fmt.Errorf("%w: not started", types.ErrUnavailable)
	ErrArchiveDisabled = types.ErrArchiveDisabled
)

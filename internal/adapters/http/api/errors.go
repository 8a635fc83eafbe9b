package api

import (
	"errors"
	"net/http"

	demoqueue "github.com/okian/mvdstats/internal/adapters/mq/queue"
	repository "github.com/okian/mvdstats/internal/adapters/repository"
	"github.com/okian/mvdstats/internal/domain/match"
	"github.com/okian/mvdstats/internal/domain/types"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrBackpressure = errors.New("backpressure")
)

// opError tags an error with the handler operation that produced it.
type opError struct {
	op   string
	kind error
	err  error
}

func (e *opError) Error() string {
	switch {
	case e.kind != nil && e.err != nil:
		return e.op + ": " + e.kind.Error() + ": " + e.err.Error()
	case e.err != nil:
		return e.op + ": " + e.err.Error()
	default:
		return e.op + ": " + e.kind.Error()
	}
}

func (e *opError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.kind != nil {
		errs = append(errs, e.kind)
	}
	if e.err != nil {
		errs = append(errs, e.err)
	}
	return errs
}

// Wrap tags err with op. A nil err stays nil.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &opError{op: op, err: err}
}

// WrapKind tags err with op and classifies it as kind.
func WrapKind(op string, kind, err error) error {
	return &opError{op: op, kind: kind, err: err}
}

// NewKind returns an error of the given kind raised by op.
func NewKind(op string, kind error) error {
	return &opError{op: op, kind: kind}
}

// statusFor maps an error to the HTTP status and error code sent to clients.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, ErrBadRequest), errors.Is(err, match.ErrEmpty), errors.Is(err, repository.ErrInvalidLimit):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, match.ErrTooLarge):
		return http.StatusRequestEntityTooLarge, "too_large"
	case errors.Is(err, ErrBackpressure), errors.Is(err, demoqueue.ErrFull):
		return http.StatusTooManyRequests, "backpressure"
	case errors.Is(err, repository.ErrMatchNotFound), errors.Is(err, repository.ErrPlayerNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, types.ErrArchiveDisabled):
		return http.StatusNotImplemented, "archive_disabled"
	case errors.Is(err, types.ErrUnavailable), errors.Is(err, demoqueue.ErrClosed):
		return http.StatusServiceUnavailable, "unavailable"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

package match

import "errors"

var (
	// ErrEmpty is returned when the demo buffer is empty.
	ErrEmpty = errors.New("empty demo")
	// ErrTooLarge is returned when the demo exceeds the configured size limit.
	ErrTooLarge = errors.New("demo too large")
	// ErrServerinfoNotFound is returned when no serverinfo string precedes the match.
	ErrServerinfoNotFound = errors.New("serverinfo not found")
	// ErrFilenameNotFound is returned when the serverinfo names no demo file.
	ErrFilenameNotFound = errors.New("demo filename not found")
	// ErrCountdownNotFound is returned when the demo has no matchdate print.
	ErrCountdownNotFound = errors.New("countdown not found")
	// ErrMatchdateNotFound is returned when the demo has no matchdate print.
	ErrMatchdateNotFound = errors.New("matchdate not found")
	// ErrInvalidMatchdate is returned when the matchdate print is unterminated
	// or has an unexpected length.
	ErrInvalidMatchdate = errors.New("invalid matchdate")
)

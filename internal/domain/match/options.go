package match

import (
	"github.com/okian/mvdstats/internal/domain/tally"
	"github.com/okian/mvdstats/internal/domain/teamkill"
	"github.com/okian/mvdstats/pkg/logger"
)

// Option applies a configuration option to the Analyzer.
type Option func(*Analyzer)

// WithPingFrames sets how many frames with ping updates are sampled.
func WithPingFrames(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.pingFrames = n
		}
	}
}

// WithLookahead sets how many frames the teamkill resolver inspects.
func WithLookahead(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.lookahead = n
		}
	}
}

// WithMaxBytes rejects demos larger than n bytes. Zero disables the limit.
func WithMaxBytes(n int) Option {
	return func(a *Analyzer) {
		if n >= 0 {
			a.maxBytes = n
		}
	}
}

// WithLogger sets the logger used for analysis diagnostics.
func WithLogger(l logger.Logger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.log = l
		}
	}
}

func defaults() *Analyzer {
	return &Analyzer{
		pingFrames: tally.DefaultPingFrames,
		lookahead:  teamkill.DefaultLookahead,
	}
}

package tally

import "github.com/okian/mvdstats/internal/domain/teamkill"

// DefaultPingFrames is the number of frames carrying ping updates that are
// sampled before the ping scan stops.
const DefaultPingFrames = 8

type options struct {
	pingFrames int
	lookahead  int
}

// Option configures a scan.
type Option func(*options)

// WithPingFrames sets how many contributing frames the ping scan samples.
// Values below 1 are ignored.
func WithPingFrames(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.pingFrames = n
		}
	}
}

// WithLookahead sets the teamkill resolver window in frames.
func WithLookahead(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.lookahead = n
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		pingFrames: DefaultPingFrames,
		lookahead:  teamkill.DefaultLookahead,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

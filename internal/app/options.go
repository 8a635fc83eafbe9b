package service

import (
	"github.com/okian/mvdstats/internal/domain/scoring"
	"github.com/okian/mvdstats/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum number of demos waiting for analysis.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets how many demo checksums are remembered.
// Zero remembers every checksum.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size >= 0 {
			s.dedupeSize = size
		}
	}
}

// WithResultsSize sets how many recent match results are kept in memory.
// Older results are served from the archive when one is configured.
func WithResultsSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.resultsSize = size
		}
	}
}

// WithMaxDemoBytes sets the upload size limit.
func WithMaxDemoBytes(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxDemoBytes = n
		}
	}
}

// WithPingFrames sets how many ping updates are averaged per player.
func WithPingFrames(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.pingFrames = n
		}
	}
}

// WithTeamkillLookahead sets how many frames are searched to resolve an
// anonymous teamkill.
func WithTeamkillLookahead(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.lookahead = n
		}
	}
}

// WithArchivePath enables the SQLite match archive at path.
func WithArchivePath(path string) Option {
	return func(s *Service) {
		s.archivePath = path
	}
}

// WithScorer replaces the leaderboard scoring policy.
func WithScorer(scorer scoring.Scorer) Option {
	return func(s *Service) {
		if scorer != nil {
			s.scorer = scorer
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

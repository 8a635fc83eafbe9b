// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) initializer to build a Config with defaults.
// - Load layers a YAML file and environment variables over the defaults.
// - External errors are wrapped with this package's sentinels.
package config

import (
	"context"
	"runtime"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// QueueSize bounds the in-memory analysis queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of analysis workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets how many demo checksums are remembered.
	DedupeSize int `koanf:"dedupe_size"`

	// ResultsSize sets how many recent match results are kept in memory.
	ResultsSize int `koanf:"results_size"`

	// MaxLeaderboardLimit caps GET /leaderboard?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`

	// MaxDemoBytes rejects larger uploads.
	MaxDemoBytes int `koanf:"max_demo_bytes"`

	// PingSampleFrames is the number of frames with ping updates sampled per demo.
	PingSampleFrames int `koanf:"ping_sample_frames"`

	// TeamkillLookahead is the number of frames searched for a teamkiller.
	TeamkillLookahead int `koanf:"teamkill_lookahead"`

	// ArchivePath is the SQLite match archive. Empty disables the archive.
	ArchivePath string `koanf:"archive_path"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:            "info",
		LogFormat:           "text",
		Addr:                ":9080",
		QueueSize:           1_000,
		WorkerCount:         runtime.NumCPU(),
		DedupeSize:          10_000,
		ResultsSize:         10_000,
		MaxLeaderboardLimit: 100,
		MaxDemoBytes:        64 << 20,
		PingSampleFrames:    8,
		TeamkillLookahead:   4,
		ArchivePath:         "",
	}
}

// Package scoring decides which figures of an analysed match reach the
// leaderboard.
package scoring

import (
	"context"
	"errors"
	"fmt"

	"github.com/okian/mvdstats/internal/domain/model"
)

// ErrUnranked is returned for matches that do not count towards the leaderboard.
var ErrUnranked = errors.New("match is not ranked")

const defaultMinPlayers = 2

// Option applies a configuration option to the FragScorer.
type Option func(*FragScorer)

// WithMinPlayers sets how many human players a match needs to be ranked.
func WithMinPlayers(n int) Option {
	return func(s *FragScorer) {
		if n > 0 {
			s.minPlayers = n
		}
	}
}

// WithBots makes bot players eligible for the leaderboard.
func WithBots(include bool) Option {
	return func(s *FragScorer) {
		s.includeBots = include
	}
}

// WithCaptureBonus adds bonus points per flag capture in CTF matches.
func WithCaptureBonus(points int) Option {
	return func(s *FragScorer) {
		if points >= 0 {
			s.captureBonus = points
		}
	}
}

// Scorer turns a match into leaderboard scores.
type Scorer interface {
	// Score returns one score per ranked player, honoring ctx for cancellation.
	Score(ctx context.Context, m model.Match) ([]model.PlayerScore, error)
}

// FragScorer scores players by their final frags.
type FragScorer struct {
	minPlayers   int
	includeBots  bool
	captureBonus int
}

// NewFragScorer creates a new scorer with configuration options.
func NewFragScorer(opts ...Option) *FragScorer {
	s := &FragScorer{minPlayers: defaultMinPlayers}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score computes the leaderboard scores for m. Aborted, invalid and
// underpopulated matches return ErrUnranked.
func (s *FragScorer) Score(ctx context.Context, m model.Match) ([]model.PlayerScore, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}
	switch {
	case m.IsAborted:
		return nil, fmt.Errorf("%w: aborted", ErrUnranked)
	case !m.IsValid:
		return nil, fmt.Errorf("%w: invalid", ErrUnranked)
	}

	out := make([]model.PlayerScore, 0, len(m.Players))
	humans := 0
	for _, p := range m.Players {
		if !p.IsBot {
			humans++
		}
		if p.IsBot && !s.includeBots {
			continue
		}
		score := p.Frags
		if m.IsCTF && s.captureBonus > 0 {
			score += m.Flags[p.Name].Captures * s.captureBonus
		}
		out = append(out, model.PlayerScore{
			Player:  p.Name,
			Score:   score,
			MatchID: m.ID,
			Map:     m.Map,
		})
	}
	if humans < s.minPlayers {
		return nil, fmt.Errorf("%w: %d players", ErrUnranked, humans)
	}
	return out, nil
}

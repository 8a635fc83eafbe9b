// Package repository holds the player leaderboard and the match archive.
package repository

import (
	"context"

	"github.com/okian/mvdstats/internal/domain/model"
)

// Entry represents a leaderboard row.
type Entry struct {
	Rank    int    `json:"rank"`
	Player  string `json:"player"`
	Score   int    `json:"score"`
	MatchID string `json:"match_id"`
	Map     string `json:"map,omitempty"`
}

// Store provides read/write access to the ranking state.
type Store interface {
	// UpdateBest records s if it beats the player's best score.
	// Returns true if the store updated the score, false otherwise.
	UpdateBest(ctx context.Context, s model.PlayerScore) (bool, error)

	// Rank returns the current rank and best score of a player.
	// Returns ErrPlayerNotFound if the player is unknown.
	Rank(ctx context.Context, player string) (Entry, error)

	// TopN returns the top-N entries ordered by score desc.
	TopN(ctx context.Context, n int) ([]Entry, error)

	// Count returns the number of players tracked in the leaderboard.
	Count(ctx context.Context) int
}

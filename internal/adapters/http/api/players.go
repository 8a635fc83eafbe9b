package api

import (
	"context"
	"net/http"
	"strings"

	repository "github.com/okian/mvdstats/internal/adapters/repository"
)

// PlayerDependencies defines the interface for player history lookups.
type PlayerDependencies interface {
	PlayerMatches(ctx context.Context, player string, limit int) ([]repository.PlayerResult, error)
}

// PlayerHandler handles player history requests.
type PlayerHandler struct {
	deps     PlayerDependencies
	maxLimit int
}

// NewPlayerHandler creates a new player handler.
func NewPlayerHandler(deps PlayerDependencies, maxLimit int) *PlayerHandler {
	return &PlayerHandler{deps: deps, maxLimit: maxLimit}
}

// HandleGetPlayerMatches handles GET /players/{player}/matches?limit=N requests.
func (h *PlayerHandler) HandleGetPlayerMatches(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_player_matches"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/players/")
	player, ok := strings.CutSuffix(rest, "/matches")
	if !ok {
		http.NotFound(w, r)
		return
	}
	if player == "" || strings.Contains(player, "/") {
		writeErr(w, NewKind(op, ErrBadRequest))
		return
	}
	n, ok := parseLimit(r, h.maxLimit)
	if !ok {
		writeErr(w, NewKind(op, ErrBadRequest))
		return
	}
	results, err := h.deps.PlayerMatches(r.Context(), player, n)
	if err != nil {
		writeErr(w, Wrap(op, err))
		return
	}
	if results == nil {
		results = []repository.PlayerResult{}
	}
	writeJSON(w, http.StatusOK, results)
}

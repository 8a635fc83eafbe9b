package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/okian/mvdstats/internal/domain/types"
)

// MatchDependencies defines the interface for match lookups.
type MatchDependencies interface {
	Match(ctx context.Context, id string) (types.MatchResult, error)
}

// MatchHandler handles match requests.
type MatchHandler struct {
	deps MatchDependencies
}

// NewMatchHandler creates a new match handler.
func NewMatchHandler(deps MatchDependencies) *MatchHandler {
	return &MatchHandler{deps: deps}
}

// HandleGetMatch handles GET /matches/{id} requests.
func (h *MatchHandler) HandleGetMatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_match"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/matches/")
	if id == "" || strings.Contains(id, "/") {
		writeErr(w, NewKind(op, ErrBadRequest))
		return
	}
	res, err := h.deps.Match(r.Context(), id)
	if err != nil {
		writeErr(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, res)
}

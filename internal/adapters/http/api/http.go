// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	repository "github.com/okian/mvdstats/internal/adapters/repository"
	"github.com/okian/mvdstats/pkg/logger"
)

const defaultLimit = 10

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	DemoDependencies
	MatchDependencies
	LeaderboardDependencies
	RankDependencies
	PlayerDependencies
}

// Entry mirrors the read shape returned by leaderboard queries.
type Entry = repository.Entry

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	demosHandler       *DemosHandler
	matchHandler       *MatchHandler
	leaderboardHandler *LeaderboardHandler
	rankHandler        *RankHandler
	playerHandler      *PlayerHandler
	logger             logger.Logger
}

// NewServer creates a new API server with all handlers. maxLimit caps list
// sizes and maxDemoBytes caps upload bodies.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLimit, maxDemoBytes int) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		demosHandler:       NewDemosHandler(deps, maxDemoBytes),
		matchHandler:       NewMatchHandler(deps),
		leaderboardHandler: NewLeaderboardHandler(deps, maxLimit),
		rankHandler:        NewRankHandler(deps),
		playerHandler:      NewPlayerHandler(deps, maxLimit),
		logger:             logger.Get().Named("http"),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.Handle("/metrics", s.healthHandler.MetricsHandler())
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/demos", s.wrap(s.demosHandler.HandlePostDemo, "demos"))
	mux.HandleFunc("/matches/", s.wrap(s.matchHandler.HandleGetMatch, "matches"))
	mux.HandleFunc("/leaderboard", s.wrap(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
	mux.HandleFunc("/rank/", s.wrap(s.rankHandler.HandleGetRank, "rank"))
	mux.HandleFunc("/players/", s.wrap(s.playerHandler.HandleGetPlayerMatches, "players"))
}

func (s *Server) wrap(next http.HandlerFunc, endpoint string) http.HandlerFunc {
	return MetricsMiddleware(LoggingMiddleware(next, s.logger), endpoint)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeErr writes err with the status its kind maps to.
func writeErr(w http.ResponseWriter, err error) {
	status, code := statusFor(err)
	writeError(w, status, code, err)
}

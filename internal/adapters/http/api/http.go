// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/benjsant/lets-go-predictiondex-sub004/internal/adapters/repository"
	"github.com/benjsant/lets-go-predictiondex-sub004/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Recommend evaluates candidate moves and returns the ranked answer.
	Recommend(ctx context.Context, req types.MatchupRequest) (types.Recommendation, error)

	// Read operations expose dex data.
	Species(ctx context.Context, name string) (types.SpeciesInfo, error)
	MoveInfo(ctx context.Context, name string) (types.MoveInfo, error)
	Matchup(ctx context.Context, attacker, defender string) (types.Matchup, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	recommendHandler *RecommendHandler
	dexHandler       *DexHandler
	matchupHandler   *MatchupHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		recommendHandler: NewRecommendHandler(deps),
		dexHandler:       NewDexHandler(deps),
		matchupHandler:   NewMatchupHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/recommend", MetricsMiddleware(s.recommendHandler.HandleRecommend, "recommend"))
	mux.HandleFunc("/matchup", MetricsMiddleware(s.matchupHandler.HandleMatchup, "matchup"))
	mux.HandleFunc("/dex/", MetricsMiddleware(s.dexHandler.HandleGetEntry, "dex"))
}

// recommendRequest mirrors the OpenAPI schema for POST /recommend.
type recommendRequest = types.MatchupRequest

func validateRecommendRequest(req recommendRequest) error {
	switch {
	case strings.TrimSpace(req.Attacker) == "":
		return errors.New("missing attacker")
	case strings.TrimSpace(req.Defender) == "":
		return errors.New("missing defender")
	}
	// An empty candidate list is valid and yields an empty ranking.
	for _, m := range req.Moves {
		if strings.TrimSpace(m) == "" {
			return errors.New("empty move name")
		}
	}
	return nil
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

// isNotFound translates upstream dex misses to 404.
func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrSpeciesNotFound) ||
		errors.Is(err, repository.ErrMoveNotFound)
}

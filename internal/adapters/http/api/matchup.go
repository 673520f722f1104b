// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/benjsant/lets-go-predictiondex-sub004/internal/domain/types"
)

// MatchupDependencies defines the interface for matchup summaries.
type MatchupDependencies interface {
	Matchup(ctx context.Context, attacker, defender string) (types.Matchup, error)
}

// MatchupHandler handles matchup summary requests.
type MatchupHandler struct {
	deps MatchupDependencies
}

// NewMatchupHandler creates a new matchup handler.
func NewMatchupHandler(deps MatchupDependencies) *MatchupHandler {
	return &MatchupHandler{deps: deps}
}

// HandleMatchup handles GET /matchup?attacking=X&defending=Y requests.
func (h *MatchupHandler) HandleMatchup(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_matchup"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	attacking := strings.TrimSpace(r.URL.Query().Get("attacking"))
	defending := strings.TrimSpace(r.URL.Query().Get("defending"))
	if attacking == "" || defending == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	matchup, err := h.deps.Matchup(r.Context(), attacking, defending)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, matchup)
}

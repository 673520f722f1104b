// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/benjsant/lets-go-predictiondex-sub004/internal/domain/types"
)

// DexDependencies defines the interface for dex lookups.
type DexDependencies interface {
	Species(ctx context.Context, name string) (types.SpeciesInfo, error)
	MoveInfo(ctx context.Context, name string) (types.MoveInfo, error)
}

// DexHandler handles dex lookup requests.
type DexHandler struct {
	deps DexDependencies
}

// NewDexHandler creates a new dex handler.
func NewDexHandler(deps DexDependencies) *DexHandler {
	return &DexHandler{deps: deps}
}

// dexEntry is the union response for GET /dex/{name}: exactly one of
// Species or Move is set, discriminated by Kind.
type dexEntry struct {
	Kind    string             `json:"kind"`
	Species *types.SpeciesInfo `json:"species,omitempty"`
	Move    *types.MoveInfo    `json:"move,omitempty"`
}

// HandleGetEntry handles GET /dex/{name} requests. The name is resolved as
// a species first, then as a move.
func (h *DexHandler) HandleGetEntry(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_dex_entry"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	name := strings.TrimPrefix(r.URL.Path, "/dex/")
	if name == "" || strings.Contains(name, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	if species, err := h.deps.Species(r.Context(), name); err == nil {
		writeJSON(w, http.StatusOK, dexEntry{Kind: "species", Species: &species})
		return
	} else if !isNotFound(err) {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}

	move, err := h.deps.MoveInfo(r.Context(), name)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, dexEntry{Kind: "move", Move: &move})
}

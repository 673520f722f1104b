package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/benjsant/lets-go-predictiondex-sub004/internal/domain/model"
)

// DexStore implements Store with in-memory maps keyed by normalized name.
// Construction copies the records once; lookups never mutate state, so the
// store is safe to share across concurrent requests without locking.
type DexStore struct {
	species map[string]model.Combatant
	moves   map[string]model.Move
}

// NewDexStore builds a store from the record sets supplied via options.
func NewDexStore(ctx context.Context, opts ...Option) *DexStore {
	s := &DexStore{
		species: make(map[string]model.Combatant),
		moves:   make(map[string]model.Move),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// normalizeName makes lookups case- and spacing-insensitive: "Quick Attack",
// "quick-attack" and "QUICK-ATTACK" resolve to the same record.
func normalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.ReplaceAll(name, " ", "-")
}

// Species resolves a combatant name to its snapshot.
func (s *DexStore) Species(ctx context.Context, name string) (model.Combatant, error) {
	c, ok := s.species[normalizeName(name)]
	if !ok {
		return model.Combatant{}, fmt.Errorf("%w: %q", ErrSpeciesNotFound, name)
	}
	return c, nil
}

// Move resolves a move name to its record.
func (s *DexStore) Move(ctx context.Context, name string) (model.Move, error) {
	m, ok := s.moves[normalizeName(name)]
	if !ok {
		return model.Move{}, fmt.Errorf("%w: %q", ErrMoveNotFound, name)
	}
	return m, nil
}

// SpeciesCount returns the number of species records loaded.
func (s *DexStore) SpeciesCount(ctx context.Context) int {
	return len(s.species)
}

// MoveCount returns the number of move records loaded.
func (s *DexStore) MoveCount(ctx context.Context) int {
	return len(s.moves)
}

package repository

import "github.com/benjsant/lets-go-predictiondex-sub004/internal/domain/model"

// Option applies a configuration option to the DexStore.
type Option func(*DexStore)

// WithSpecies loads species records into the store.
func WithSpecies(records []model.Combatant) Option {
	return func(s *DexStore) {
		for _, r := range records {
			s.species[normalizeName(r.Name)] = r
		}
	}
}

// WithMoves loads move records into the store.
func WithMoves(records []model.Move) Option {
	return func(s *DexStore) {
		for _, r := range records {
			s.moves[normalizeName(r.Name)] = r
		}
	}
}

// Package repository defines the read-only entity store that resolves
// combatant and move names to their records.
package repository

import (
	"context"

	"github.com/benjsant/lets-go-predictiondex-sub004/internal/domain/model"
)

// Store provides read access to the dex. Implementations are immutable
// after construction; the core assumes records returned here are valid.
type Store interface {
	// Species resolves a combatant name to its snapshot.
	// Returns ErrSpeciesNotFound if the name is unknown.
	Species(ctx context.Context, name string) (model.Combatant, error)

	// Move resolves a move name to its record.
	// Returns ErrMoveNotFound if the name is unknown.
	Move(ctx context.Context, name string) (model.Move, error)

	// SpeciesCount returns the number of species records loaded.
	SpeciesCount(ctx context.Context) int

	// MoveCount returns the number of move records loaded.
	MoveCount(ctx context.Context) int
}

// Package scoring defines the contract for computing battle heuristic scores.
package scoring

import (
	"context"
	"fmt"

	"github.com/benjsant/lets-go-predictiondex-sub004/internal/domain/model"
)

// Scoring constants. The priority weight is a design constant, not a
// learned parameter.
const (
	stabBonus      = 1.5
	stabNeutral    = 1.0
	priorityWeight = 50.0
	accuracyScale  = 100.0
)

// Input abstracts the matchup fields needed to score one move.
// AttackerStats travels with the input so implementations that model
// stat-dependent damage can use it; the default scorer does not.
type Input struct {
	Move          model.Move
	AttackerTypes []model.Type
	DefenderTypes []model.Type
	AttackerStats model.StatBlock
}

// Result contains the computed score with its sub-factors.
type Result struct {
	Stab           float64
	TypeMultiplier float64
	EffectivePower float64
	Score          float64
}

// EffectivenessTable resolves a move type against defender types.
type EffectivenessTable interface {
	Multiplier(attacking model.Type, defending ...model.Type) (float64, error)
}

// Scorer computes a heuristic score for a move against a defender.
type Scorer interface {
	Score(ctx context.Context, in Input) (Result, error)
}

// BattleScorer implements Scorer with the fixed heuristic:
//
//	score = power * stab * type_mult * (accuracy / 100) + priority * 50
//
// Status moves carry power 0, so their score collapses to the priority term.
type BattleScorer struct {
	table EffectivenessTable
}

// NewBattleScorer creates a scorer backed by the given effectiveness table.
func NewBattleScorer(table EffectivenessTable) *BattleScorer {
	return &BattleScorer{table: table}
}

// Score computes the heuristic score for the given input. The only error
// source is an unknown type reaching the effectiveness lookup.
func (s *BattleScorer) Score(ctx context.Context, in Input) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("scoring cancelled: %w", err)
	}

	stab := stabNeutral
	for _, t := range in.AttackerTypes {
		if t == in.Move.Type {
			stab = stabBonus
			break
		}
	}

	mult, err := s.table.Multiplier(in.Move.Type, in.DefenderTypes...)
	if err != nil {
		return Result{}, fmt.Errorf("type multiplier for %q: %w", in.Move.Name, err)
	}

	effective := in.Move.Power * stab * mult
	score := effective*(in.Move.Accuracy/accuracyScale) + in.Move.Priority*priorityWeight

	return Result{
		Stab:           stab,
		TypeMultiplier: mult,
		EffectivePower: effective,
		Score:          score,
	}, nil
}

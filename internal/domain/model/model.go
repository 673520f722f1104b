// Package model contains domain models passed between layers.
package model

// Type identifies one of the closed set of battle types, e.g. "water".
type Type string

// Category selects which attacker stat feeds a move's damage.
type Category string

// Move categories.
const (
	Physical Category = "physical"
	Special  Category = "special"
	Status   Category = "status"
)

// StatBlock holds the six base stats of a combatant.
type StatBlock struct {
	HP        float64
	Attack    float64
	Defense   float64
	SpAttack  float64
	SpDefense float64
	Speed     float64
}

// Total returns the sum of all six stats.
func (s StatBlock) Total() float64 {
	return s.HP + s.Attack + s.Defense + s.SpAttack + s.SpDefense + s.Speed
}

// Combatant is an immutable snapshot of one side of a matchup.
// SecondaryType is empty for mono-typed combatants.
type Combatant struct {
	Name          string
	PrimaryType   Type
	SecondaryType Type
	Stats         StatBlock
}

// Types returns the combatant's types, omitting an absent secondary.
func (c Combatant) Types() []Type {
	if c.SecondaryType == "" {
		return []Type{c.PrimaryType}
	}
	return []Type{c.PrimaryType, c.SecondaryType}
}

// HasType reports whether t is among the combatant's types.
func (c Combatant) HasType(t Type) bool {
	return t == c.PrimaryType || (c.SecondaryType != "" && t == c.SecondaryType)
}

// Move is a resolved candidate move record.
// Power is 0 for status moves. Priority is a small signed tier (-5..+4).
type Move struct {
	Name     string
	Type     Type
	Power    float64
	Accuracy float64
	Priority float64
	Category Category
}

// MoveEvaluation is the per-move output of one pipeline run.
// PredictedWinnerA is true when WinProbability >= 0.5.
type MoveEvaluation struct {
	Move             string
	Type             Type
	Stab             float64
	TypeMultiplier   float64
	EffectivePower   float64
	Priority         float64
	Score            float64
	WinProbability   float64
	PredictedWinnerA bool
}

// Recommendation bundles the full ranked list with the top pick.
// Best is nil when no candidate moves were supplied.
type Recommendation struct {
	Evaluations []MoveEvaluation
	Best        *MoveEvaluation
}

// Package types contains common types used across the application
package types

// MoveEntry represents one ranked row returned by a recommendation.
type MoveEntry struct {
	Rank           int     `json:"rank"`
	Move           string  `json:"move"`
	Type           string  `json:"type"`
	Stab           float64 `json:"stab"`
	TypeMultiplier float64 `json:"type_multiplier"`
	EffectivePower float64 `json:"effective_power"`
	Priority       float64 `json:"priority"`
	Score          float64 `json:"score"`
	WinProbability float64 `json:"win_probability"`
	Winner         string  `json:"predicted_winner"` // "A" or "B"
}

// MatchupRequest names the inputs of one recommendation. Moves lists the
// attacker's candidate moves; OpponentMove is the optional known baseline.
type MatchupRequest struct {
	Attacker     string   `json:"attacker"`
	Defender     string   `json:"defender"`
	Moves        []string `json:"moves"`
	OpponentMove string   `json:"opponent_move,omitempty"`
}

// Recommendation is the full ranked answer for one matchup request.
type Recommendation struct {
	EvaluationID string      `json:"evaluation_id"`
	Attacker     string      `json:"attacker"`
	Defender     string      `json:"defender"`
	Best         *MoveEntry  `json:"best,omitempty"`
	Moves        []MoveEntry `json:"moves"`
	Cached       bool        `json:"cached"`
}

// Stats mirrors the six base stats of a species.
type Stats struct {
	HP        float64 `json:"hp"`
	Attack    float64 `json:"attack"`
	Defense   float64 `json:"defense"`
	SpAttack  float64 `json:"sp_attack"`
	SpDefense float64 `json:"sp_defense"`
	Speed     float64 `json:"speed"`
}

// SpeciesInfo is the dex view of one species.
type SpeciesInfo struct {
	Name       string   `json:"name"`
	Types      []string `json:"types"`
	Stats      Stats    `json:"stats"`
	TotalStats float64  `json:"total_stats"`
}

// MoveInfo is the dex view of one move.
type MoveInfo struct {
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Power    float64 `json:"power"`
	Accuracy float64 `json:"accuracy"`
	Priority float64 `json:"priority"`
	Category string  `json:"category"`
}

// TypeAdvantage pairs one attacking type with its multiplier against a
// defender's type combination.
type TypeAdvantage struct {
	Type       string  `json:"type"`
	Multiplier float64 `json:"multiplier"`
}

// Matchup summarizes the static type and speed relationship between two
// species, before any moves are considered.
type Matchup struct {
	Attacker           string          `json:"attacker"`
	Defender           string          `json:"defender"`
	AttackerTypes      []string        `json:"attacker_types"`
	DefenderTypes      []string        `json:"defender_types"`
	AttackerAdvantages []TypeAdvantage `json:"attacker_advantages"`
	DefenderAdvantages []TypeAdvantage `json:"defender_advantages"`
	AttackerMovesFirst bool            `json:"attacker_moves_first"`
}

// Package ranking orders move evaluations into a deterministic
// recommendation.
package ranking

import (
	"sort"

	"github.com/benjsant/lets-go-predictiondex-sub004/internal/domain/model"
)

// Rank sorts evaluations by win probability descending, breaking ties by
// heuristic score descending and then by move name ascending. The order is
// a pure function of the inputs, so concurrent evaluation order never leaks
// into the result. An empty input yields an empty list and no best move.
func Rank(evaluations []model.MoveEvaluation) model.Recommendation {
	ranked := make([]model.MoveEvaluation, len(evaluations))
	copy(ranked, evaluations)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].WinProbability != ranked[j].WinProbability {
			return ranked[i].WinProbability > ranked[j].WinProbability
		}
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Move < ranked[j].Move
	})

	rec := model.Recommendation{Evaluations: ranked}
	if len(ranked) > 0 {
		best := ranked[0]
		rec.Best = &best
	}
	return rec
}

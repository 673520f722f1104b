package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	jobqueue "github.com/benjsant/lets-go-predictiondex-sub004/internal/adapters/mq/queue"
	"github.com/benjsant/lets-go-predictiondex-sub004/internal/domain/features"
	"github.com/benjsant/lets-go-predictiondex-sub004/internal/domain/model"
	"github.com/benjsant/lets-go-predictiondex-sub004/internal/domain/ranking"
	"github.com/benjsant/lets-go-predictiondex-sub004/internal/domain/scoring"
	"github.com/benjsant/lets-go-predictiondex-sub004/internal/domain/types"
	"github.com/benjsant/lets-go-predictiondex-sub004/pkg/logger"
	"github.com/benjsant/lets-go-predictiondex-sub004/pkg/metrics"
)

// MatchupRequest aliases the shared request shape so callers of the service
// layer do not need a second import.
type MatchupRequest = types.MatchupRequest

// Evaluate runs the full pipeline for one candidate move: heuristic scoring,
// feature encoding, then classification. It implements worker.Evaluator, so
// workers and the inline fallback share the same path.
func (s *Service) Evaluate(
	ctx context.Context,
	attacker, defender model.Combatant,
	move model.Move,
	opponentMove *model.Move,
) (model.MoveEvaluation, error) {
	start := time.Now()

	res, err := s.scorer.Score(ctx, scoring.Input{
		Move:          move,
		AttackerTypes: attacker.Types(),
		DefenderTypes: defender.Types(),
		AttackerStats: attacker.Stats,
	})
	if err != nil {
		metrics.RecordEvaluationError()
		return model.MoveEvaluation{}, err
	}

	// The opponent's baseline move is scored with the roles reversed.
	oppCtx := features.NeutralOpponentMove()
	if opponentMove != nil {
		oppRes, err := s.scorer.Score(ctx, scoring.Input{
			Move:          *opponentMove,
			AttackerTypes: defender.Types(),
			DefenderTypes: attacker.Types(),
			AttackerStats: defender.Stats,
		})
		if err != nil {
			metrics.RecordEvaluationError()
			return model.MoveEvaluation{}, err
		}
		oppCtx = features.MoveContext{
			Move:           *opponentMove,
			Stab:           oppRes.Stab,
			TypeMultiplier: oppRes.TypeMultiplier,
		}
	}

	vector, err := s.builder.Build(ctx, features.Matchup{
		Attacker: attacker,
		Defender: defender,
		Move: features.MoveContext{
			Move:           move,
			Stab:           res.Stab,
			TypeMultiplier: res.TypeMultiplier,
		},
		OpponentMove: oppCtx,
	})
	if err != nil {
		metrics.RecordEvaluationError()
		return model.MoveEvaluation{}, err
	}

	probability, err := s.estimator.Predict(ctx, vector)
	if err != nil {
		metrics.RecordEvaluationError()
		return model.MoveEvaluation{}, err
	}

	metrics.RecordEvaluation()
	metrics.RecordPredictionLatency(float64(time.Since(start).Milliseconds()))

	return model.MoveEvaluation{
		Move:             move.Name,
		Type:             move.Type,
		Stab:             res.Stab,
		TypeMultiplier:   res.TypeMultiplier,
		EffectivePower:   res.EffectivePower,
		Priority:         move.Priority,
		Score:            res.Score,
		WinProbability:   probability,
		PredictedWinnerA: probability >= 0.5,
	}, nil
}

// Recommend resolves the request against the dex, evaluates every candidate
// move, and returns the deterministic ranking. Identical requests are served
// from the memo cache.
func (s *Service) Recommend(ctx context.Context, req MatchupRequest) (types.Recommendation, error) {
	if err := s.ensureStarted(); err != nil {
		return types.Recommendation{}, err
	}

	attacker, err := s.dex.Species(ctx, req.Attacker)
	if err != nil {
		return types.Recommendation{}, err
	}
	defender, err := s.dex.Species(ctx, req.Defender)
	if err != nil {
		return types.Recommendation{}, err
	}

	moves := make([]model.Move, 0, len(req.Moves))
	for _, name := range req.Moves {
		m, err := s.dex.Move(ctx, name)
		if err != nil {
			return types.Recommendation{}, err
		}
		moves = append(moves, m)
	}

	var opponentMove *model.Move
	if req.OpponentMove != "" {
		m, err := s.dex.Move(ctx, req.OpponentMove)
		if err != nil {
			return types.Recommendation{}, err
		}
		opponentMove = &m
	}

	evaluationID := uuid.NewString()
	key := fingerprint(attacker, defender, moves, opponentMove)

	if cached, ok := s.cache.Get(ctx, key); ok {
		metrics.RecordCacheHit()
		metrics.RecordRecommendation()
		return s.response(evaluationID, attacker, defender, cached, true), nil
	}
	metrics.RecordCacheMiss()

	evaluations, err := s.evaluateAll(ctx, attacker, defender, moves, opponentMove)
	if err != nil {
		return types.Recommendation{}, err
	}

	ranked := ranking.Rank(evaluations)
	s.cache.Put(ctx, key, ranked)
	metrics.UpdateCacheSize(int(s.cache.Size()))
	metrics.RecordRecommendation()
	metrics.RecordCandidateCount(len(moves))

	return s.response(evaluationID, attacker, defender, ranked, false), nil
}

// evaluateAll fans candidate moves out to the worker pool and collects the
// outcomes. When the queue rejects a job the evaluation runs inline in the
// request goroutine, so backpressure degrades latency rather than failing
// requests.
func (s *Service) evaluateAll(
	ctx context.Context,
	attacker, defender model.Combatant,
	moves []model.Move,
	opponentMove *model.Move,
) ([]model.MoveEvaluation, error) {
	reply := make(chan jobqueue.Outcome, len(moves))
	pending := 0

	evaluations := make([]model.MoveEvaluation, 0, len(moves))
	for _, move := range moves {
		job := jobqueue.Job{
			Attacker:     attacker,
			Defender:     defender,
			Move:         move,
			OpponentMove: opponentMove,
			Reply:        reply,
		}
		if s.jobQueue.Enqueue(ctx, job) {
			pending++
			continue
		}

		metrics.RecordInlineEvaluation()
		eval, err := s.Evaluate(ctx, attacker, defender, move, opponentMove)
		if err != nil {
			return nil, fmt.Errorf("%w: move %q: %v", ErrEvaluationFailed, move.Name, err)
		}
		evaluations = append(evaluations, eval)
	}

	for ; pending > 0; pending-- {
		select {
		case out := <-reply:
			if out.Err != nil {
				return nil, fmt.Errorf("%w: %v", ErrEvaluationFailed, out.Err)
			}
			evaluations = append(evaluations, out.Evaluation)
		case <-ctx.Done():
			return nil, fmt.Errorf("recommendation cancelled: %w", ctx.Err())
		}
	}

	return evaluations, nil
}

// fingerprint builds the canonical cache key for a request. Candidate order
// must not matter, so move names are sorted before joining.
func fingerprint(attacker, defender model.Combatant, moves []model.Move, opponentMove *model.Move) string {
	names := make([]string, len(moves))
	for i, m := range moves {
		names[i] = m.Name
	}
	sort.Strings(names)

	oppName := ""
	if opponentMove != nil {
		oppName = opponentMove.Name
	}

	return strings.Join([]string{
		attacker.Name,
		defender.Name,
		strings.Join(names, ","),
		oppName,
	}, "|")
}

func (s *Service) response(
	evaluationID string,
	attacker, defender model.Combatant,
	rec model.Recommendation,
	cached bool,
) types.Recommendation {
	entries := make([]types.MoveEntry, len(rec.Evaluations))
	for i, eval := range rec.Evaluations {
		entries[i] = moveEntry(i+1, eval)
	}

	out := types.Recommendation{
		EvaluationID: evaluationID,
		Attacker:     attacker.Name,
		Defender:     defender.Name,
		Moves:        entries,
		Cached:       cached,
	}
	if rec.Best != nil {
		best := moveEntry(1, *rec.Best)
		out.Best = &best
	}

	s.logger.Debug(context.Background(), "recommendation built",
		logger.String("evaluationID", evaluationID),
		logger.String("attacker", attacker.Name),
		logger.String("defender", defender.Name),
		logger.Int("candidates", len(entries)),
		logger.Bool("cached", cached),
	)

	return out
}

func moveEntry(rank int, eval model.MoveEvaluation) types.MoveEntry {
	winner := "B"
	if eval.PredictedWinnerA {
		winner = "A"
	}
	return types.MoveEntry{
		Rank:           rank,
		Move:           eval.Move,
		Type:           string(eval.Type),
		Stab:           eval.Stab,
		TypeMultiplier: eval.TypeMultiplier,
		EffectivePower: eval.EffectivePower,
		Priority:       eval.Priority,
		Score:          eval.Score,
		WinProbability: eval.WinProbability,
		Winner:         winner,
	}
}

package matchgen

import (
	"context"
	"fmt"
	"log"
)

// verifyDeterminism re-submits a sample of requests and checks that the
// ranking is reproducible: same move order, same probabilities.
func verifyDeterminism(ctx context.Context, config *Config, requests []MatchupRequest, stats *Stats) error {
	sampleSize := minInt(config.SampleSize, len(requests))
	if sampleSize == 0 {
		return fmt.Errorf("no requests to verify")
	}

	log.Printf("Verifying ranking determinism on %d sampled requests...", sampleSize)

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/recommend"

	for i := 0; i < sampleSize; i++ {
		request := requests[i]

		first, err := submitSingleMatchup(ctx, client, url, request)
		if err != nil {
			return fmt.Errorf("determinism probe %d failed: %w", i, err)
		}

		second, err := submitSingleMatchup(ctx, client, url, request)
		if err != nil {
			return fmt.Errorf("determinism probe %d failed on replay: %w", i, err)
		}

		stats.DeterminismChecks++
		if err := compareRecommendations(first, second); err != nil {
			stats.DeterminismFailures++
			log.Printf("Determinism mismatch for %s vs %s: %v", request.Attacker, request.Defender, err)
		}
	}

	if stats.DeterminismFailures > 0 {
		return fmt.Errorf("%d of %d determinism checks failed", stats.DeterminismFailures, stats.DeterminismChecks)
	}

	log.Printf("All %d determinism checks passed", stats.DeterminismChecks)
	return nil
}

// compareRecommendations checks that two recommendations for the same
// request agree on everything but the evaluation id and cache flag.
func compareRecommendations(first, second *Recommendation) error {
	if len(first.Moves) != len(second.Moves) {
		return fmt.Errorf("move count differs: %d vs %d", len(first.Moves), len(second.Moves))
	}

	for i := range first.Moves {
		a, b := first.Moves[i], second.Moves[i]
		if a.Move != b.Move {
			return fmt.Errorf("rank %d differs: %q vs %q", i+1, a.Move, b.Move)
		}
		if a.WinProbability != b.WinProbability {
			return fmt.Errorf("probability for %q differs: %v vs %v", a.Move, a.WinProbability, b.WinProbability)
		}
		if a.Winner != b.Winner {
			return fmt.Errorf("predicted winner for %q differs: %q vs %q", a.Move, a.Winner, b.Winner)
		}
	}

	return verifyRankingShape(second)
}

// verifyRankingShape checks the structural invariants of a recommendation:
// ranks are sequential from 1, probabilities are non-increasing, and the
// best entry is the top of the list.
func verifyRankingShape(rec *Recommendation) error {
	if len(rec.Moves) == 0 {
		return fmt.Errorf("empty move list")
	}

	for i, entry := range rec.Moves {
		if entry.Rank != i+1 {
			return fmt.Errorf("entry %d has rank %d", i, entry.Rank)
		}
		if i > 0 && entry.WinProbability > rec.Moves[i-1].WinProbability {
			return fmt.Errorf("entry %d has higher probability than entry %d", i, i-1)
		}
	}

	if rec.Best == nil {
		return fmt.Errorf("missing best entry")
	}
	if rec.Best.Move != rec.Moves[0].Move {
		return fmt.Errorf("best entry %q does not match top ranked move %q", rec.Best.Move, rec.Moves[0].Move)
	}

	return nil
}

// fetchServiceStats retrieves /stats and logs the interesting fields.
func fetchServiceStats(ctx context.Context, config *Config) error {
	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/stats"

	resp, err := client.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != StatusOK {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	log.Printf("Service stats: %s", string(body))
	return nil
}

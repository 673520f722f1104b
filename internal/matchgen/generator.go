package matchgen

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/benjsant/lets-go-predictiondex-sub004/pkg/logger"
	"github.com/google/uuid"
)

// Candidate pool size constants.
const (
	minCandidateMoves = 1
	maxCandidateMoves = 4
	opponentMoveOdds  = 3 // one in three requests carries an opponent move
)

// speciesPool mirrors the species shipped with the service's dex.
var speciesPool = []string{
	"venusaur", "charizard", "blastoise", "pikachu", "arcanine",
	"alakazam", "machamp", "golem", "gengar", "gyarados",
	"lapras", "jolteon", "snorlax", "dragonite", "starmie",
}

// movePool mirrors the moves shipped with the service's dex.
var movePool = []string{
	"hydro-pump", "surf", "aqua-jet", "flamethrower", "fire-blast",
	"thunderbolt", "thunder", "thunder-wave", "quick-attack", "extreme-speed",
	"body-slam", "protect", "swords-dance", "earthquake", "ice-beam",
	"blizzard", "psychic", "shadow-ball", "sludge-bomb", "energy-ball",
	"solar-beam", "close-combat", "stone-edge", "rock-slide", "dragon-claw",
	"outrage", "crunch", "iron-head", "moonblast", "hurricane",
}

// randomIndex returns a random index in [0, n) using crypto/rand.
func randomIndex(n int) int {
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

// generateMatchups creates the specified number of randomized matchup requests.
func generateMatchups(ctx context.Context, config *Config, stats *Stats) ([]MatchupRequest, error) {
	logger.Get().Info(ctx, "generating matchup requests", logger.Int("numRequests", config.NumRequests))

	requests := make([]MatchupRequest, config.NumRequests)

	type requestResult struct {
		index   int
		request MatchupRequest
		err     error
	}

	resultChan := make(chan requestResult, config.NumRequests)

	workerCount := minInt(config.Workers, config.NumRequests)
	requestsPerWorker := config.NumRequests / workerCount

	for worker := 0; worker < workerCount; worker++ {
		start := worker * requestsPerWorker
		end := start + requestsPerWorker
		if worker == workerCount-1 {
			end = config.NumRequests
		}

		go func(start, end int) {
			for i := start; i < end; i++ {
				select {
				case <-ctx.Done():
					resultChan <- requestResult{index: i, err: ctx.Err()}
					return
				default:
					resultChan <- requestResult{index: i, request: generateSingleMatchup()}
				}
			}
		}(start, end)
	}

	for i := 0; i < config.NumRequests; i++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled during request generation: %w", ctx.Err())
		case result := <-resultChan:
			if result.err != nil {
				return nil, fmt.Errorf("failed to generate request %d: %w", result.index, result.err)
			}
			requests[result.index] = result.request
		}
	}

	stats.RequestsGenerated = len(requests)
	logger.Get().Info(ctx, "generated requests successfully", logger.Int("count", len(requests)))

	return requests, nil
}

// generateSingleMatchup builds a single randomized request. Attacker and
// defender are always distinct and candidate moves never repeat.
func generateSingleMatchup() MatchupRequest {
	attacker := speciesPool[randomIndex(len(speciesPool))]
	defender := speciesPool[randomIndex(len(speciesPool))]
	for defender == attacker {
		defender = speciesPool[randomIndex(len(speciesPool))]
	}

	moveCount := minCandidateMoves + randomIndex(maxCandidateMoves-minCandidateMoves+1)
	seen := make(map[string]struct{}, moveCount)
	moves := make([]string, 0, moveCount)
	for len(moves) < moveCount {
		move := movePool[randomIndex(len(movePool))]
		if _, dup := seen[move]; dup {
			continue
		}
		seen[move] = struct{}{}
		moves = append(moves, move)
	}

	req := MatchupRequest{
		Attacker: attacker,
		Defender: defender,
		Moves:    moves,
	}

	if randomIndex(opponentMoveOdds) == 0 {
		req.OpponentMove = movePool[randomIndex(len(movePool))]
	}

	return req
}

// requestID derives a stable identifier for logging a request.
func requestID() string {
	return uuid.New().String()
}

// minInt returns the minimum of two integers.
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

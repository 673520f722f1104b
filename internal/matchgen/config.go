package matchgen

import "time"

// Config holds configuration for the matchup load test.
type Config struct {
	BaseURL     string        // Base URL of the service
	NumRequests int           // Number of matchup requests to generate
	SampleSize  int           // Number of requests re-submitted for determinism checks
	Workers     int           // Number of concurrent workers
	Timeout     time.Duration // HTTP request timeout
	OutputFile  string        // Output file for generated requests
	LogFile     string        // Log file for test output
	Verbose     bool          // Enable verbose logging
}

// MatchupRequest is the request submitted to /recommend.
type MatchupRequest struct {
	Attacker     string   `json:"attacker"`
	Defender     string   `json:"defender"`
	Moves        []string `json:"moves"`
	OpponentMove string   `json:"opponent_move,omitempty"`
}

// MoveEntry is a single ranked move in a recommendation.
type MoveEntry struct {
	Rank           int     `json:"rank"`
	Move           string  `json:"move"`
	Type           string  `json:"type"`
	Score          float64 `json:"score"`
	WinProbability float64 `json:"win_probability"`
	Winner         string  `json:"predicted_winner"`
}

// Recommendation is the response returned by /recommend.
type Recommendation struct {
	EvaluationID string      `json:"evaluation_id"`
	Attacker     string      `json:"attacker"`
	Defender     string      `json:"defender"`
	Best         *MoveEntry  `json:"best"`
	Moves        []MoveEntry `json:"moves"`
	Cached       bool        `json:"cached"`
}

// Stats holds test statistics.
type Stats struct {
	RequestsGenerated   int
	RequestsSubmitted   int
	RequestsSuccessful  int
	RequestsFailed      int
	CacheHits           int
	DeterminismChecks   int
	DeterminismFailures int
	StartTime           time.Time
	EndTime             time.Time
	Duration            time.Duration
}

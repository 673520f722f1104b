package matchgen

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/benjsant/lets-go-predictiondex-sub004/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
)

// Run executes the complete matchup load test.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting matchup load test",
		logger.String("baseURL", config.BaseURL),
		logger.Int("requests", config.NumRequests),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.Int("sample", config.SampleSize),
		logger.String("logFile", config.LogFile),
		logger.Any("verbose", config.Verbose))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate requests
	requests, err := generateMatchups(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("request generation failed: %w", err)
	}

	// Step 3: Submit requests concurrently
	if err := submitMatchups(ctx, config, requests, stats); err != nil {
		return fmt.Errorf("request submission failed: %w", err)
	}

	// Step 4: Re-submit a sample to verify deterministic rankings
	if err := verifyDeterminism(ctx, config, requests, stats); err != nil {
		return fmt.Errorf("determinism verification failed: %w", err)
	}

	// Step 5: Fetch service statistics
	if err := fetchServiceStats(ctx, config); err != nil {
		logger.Get().Warn(ctx, "failed to fetch service stats", logger.Error(err))
	}

	// Step 6: Save requests to file
	if err := saveRequestsToFile(ctx, config, requests); err != nil {
		logger.Get().Warn(ctx, "failed to save requests to file", logger.Error(err))
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "test completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/healthz"

	resp, err := client.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	// Any 200 counts as healthy (the endpoint serves Prometheus metrics).
	if resp.StatusCode != StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// saveRequestsToFile saves the generated requests to a JSON file.
func saveRequestsToFile(ctx context.Context, config *Config, requests []MatchupRequest) error {
	if len(requests) == 0 {
		return fmt.Errorf("no requests to save")
	}

	filename := config.OutputFile
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = "generated_matchups_" + timestamp + ".json"
	}

	dir := filepath.Dir(filename)
	if dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close file", logger.Error(err))
		}
	}()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(requests); err != nil {
		return fmt.Errorf("failed to encode requests: %w", err)
	}

	logger.Get().Info(ctx, "requests saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats prints the final test statistics.
func displayFinalStats(stats *Stats) {
	var successRate, requestsPerSecond float64
	if stats.RequestsSubmitted > 0 {
		successRate = float64(stats.RequestsSuccessful) / float64(stats.RequestsSubmitted) * PercentageMultiplier
	}
	if stats.Duration > 0 {
		requestsPerSecond = float64(stats.RequestsSubmitted) / stats.Duration.Seconds()
	}

	log.Printf(`Final statistics:
   Requests generated:  %d
   Requests submitted:  %d
   Successful:          %d (%.1f%%)
   Cache hits:          %d
   Failed:              %d
   Determinism checks:  %d (failures: %d)
   Duration:            %s
   Throughput:          %.1f req/s
`,
		stats.RequestsGenerated,
		stats.RequestsSubmitted,
		stats.RequestsSuccessful,
		successRate,
		stats.CacheHits,
		stats.RequestsFailed,
		stats.DeterminismChecks,
		stats.DeterminismFailures,
		stats.Duration.Round(time.Millisecond),
		requestsPerSecond,
	)
}

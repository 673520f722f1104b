package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/benjsant/lets-go-predictiondex-sub004/internal/matchgen"
)

// Default configuration constants.
const (
	defaultNumRequests = 5000
	defaultSampleSize  = 50
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTimeout     = 30 * time.Second
	defaultTestTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL     = flag.String("url", "http://localhost:9080", "Base URL of the service")
		numRequests = flag.Int("requests", defaultNumRequests, "Number of matchup requests to generate and submit")
		sampleSize  = flag.Int("sample", defaultSampleSize, "Number of requests re-submitted to verify deterministic rankings")
		workers     = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout     = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		outputFile  = flag.String("output", "", "Output file for generated requests (default: generated_matchups_TIMESTAMP.json)")
		logFile     = flag.String("log", "", "Log file for test output (default: matchgen_log_TIMESTAMP.log)")
		verbose     = flag.Bool("verbose", false, "Enable verbose logging")
		help        = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		matchgen.ShowHelp()
		return
	}

	if err := matchgen.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTestTimeout)
	defer cancel()

	config := &matchgen.Config{
		BaseURL:     *baseURL,
		NumRequests: *numRequests,
		SampleSize:  *sampleSize,
		Workers:     *workers,
		Timeout:     *timeout,
		OutputFile:  *outputFile,
		LogFile:     *logFile,
		Verbose:     *verbose,
	}

	if err := matchgen.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Test failed: " + err.Error() + "\n")
		return
	}
}

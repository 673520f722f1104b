// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - All loading functions accept context.Context as the first parameter.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
	"runtime"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// WorkerCount sets the number of evaluation workers.
	WorkerCount int `koanf:"worker_count"`

	// QueueSize bounds the in-memory evaluation job queue.
	QueueSize int `koanf:"queue_size"`

	// CacheSize bounds the recommendation memo cache.
	CacheSize int `koanf:"cache_size"`

	// ArtifactDir overrides the embedded artifact bundle with a directory
	// on disk. Empty means use the embedded bundle.
	ArtifactDir string `koanf:"artifact_dir"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention; it is reserved for future use and currently
// unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:    "info",
		Addr:        ":9080",
		WorkerCount: runtime.NumCPU() * 2,
		QueueSize:   4096,
		CacheSize:   10_000,
		ArtifactDir: "",
	}
}

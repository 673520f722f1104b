// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/benjsant/lets-go-predictiondex-sub004/internal/adapters/artifacts"
	jobqueue "github.com/benjsant/lets-go-predictiondex-sub004/internal/adapters/mq/queue"
	workerpool "github.com/benjsant/lets-go-predictiondex-sub004/internal/adapters/mq/worker"
	"github.com/benjsant/lets-go-predictiondex-sub004/internal/adapters/repository"
	"github.com/benjsant/lets-go-predictiondex-sub004/internal/domain/evalcache"
	"github.com/benjsant/lets-go-predictiondex-sub004/internal/domain/features"
	"github.com/benjsant/lets-go-predictiondex-sub004/internal/domain/model"
	"github.com/benjsant/lets-go-predictiondex-sub004/internal/domain/predict"
	"github.com/benjsant/lets-go-predictiondex-sub004/internal/domain/scoring"
	"github.com/benjsant/lets-go-predictiondex-sub004/internal/domain/typechart"
	"github.com/benjsant/lets-go-predictiondex-sub004/internal/domain/types"
	"github.com/benjsant/lets-go-predictiondex-sub004/pkg/logger"
	"github.com/benjsant/lets-go-predictiondex-sub004/pkg/metrics"
)

// Service wires the pipeline components behind the API surface.
type Service struct {
	mu sync.RWMutex

	// Core components
	dex       repository.Store
	cache     evalcache.Cache
	jobQueue  jobqueue.Queue
	pool      *workerpool.Pool
	scorer    scoring.Scorer
	builder   *features.Builder
	estimator predict.Estimator
	chart     *typechart.Chart

	// Configuration
	workerCount int
	queueSize   int
	cacheSize   int
	artifactDir string

	// State
	started bool
	stopCh  chan struct{}

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of evaluation workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the evaluation job queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithCacheSize sets the size of the recommendation memo cache.
func WithCacheSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.cacheSize = size
		}
	}
}

// WithArtifactDir overrides the embedded artifact bundle with a directory
// on disk.
func WithArtifactDir(dir string) Option {
	return func(s *Service) {
		s.artifactDir = dir
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount: runtime.NumCPU() * 2,
		queueSize:   4096,
		cacheSize:   10_000,
		stopCh:      make(chan struct{}),
		logger:      nil, // resolved at Start
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads the artifact bundle, cross-validates it, and brings up the
// pipeline. Any artifact contract violation aborts startup.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting recommender service...")

	bundle, err := s.loadBundle(ctx)
	if err != nil {
		return fmt.Errorf("artifact bundle: %w", err)
	}

	s.chart = bundle.Chart
	s.scorer = scoring.NewBattleScorer(bundle.Chart)
	s.estimator = bundle.Model

	s.builder, err = features.NewBuilder(bundle.Schema, bundle.RawScaler, bundle.DerivedScaler)
	if err != nil {
		return fmt.Errorf("feature builder: %w", err)
	}

	s.dex = repository.NewDexStore(ctx,
		repository.WithSpecies(bundle.Species),
		repository.WithMoves(bundle.Moves),
	)
	s.cache = evalcache.New(
		evalcache.WithMaxSize(s.cacheSize),
	)
	s.jobQueue = jobqueue.NewInMemoryQueue(
		jobqueue.WithCapacity(s.queueSize),
	)

	s.pool = workerpool.NewPool(s.workerCount, s.jobQueue, s)
	s.pool.Start(ctx)

	metrics.UpdateDexSpecies(s.dex.SpeciesCount(ctx))
	metrics.UpdateDexMoves(s.dex.MoveCount(ctx))

	s.started = true
	s.logger.Info(ctx, "recommender service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("cacheSize", s.cacheSize),
		logger.Int("featureWidth", s.builder.Schema().Width()),
		logger.Int("species", s.dex.SpeciesCount(ctx)),
		logger.Int("moves", s.dex.MoveCount(ctx)),
	)

	return nil
}

func (s *Service) loadBundle(ctx context.Context) (*artifacts.Bundle, error) {
	if s.artifactDir != "" {
		s.logger.Info(ctx, "loading artifact bundle from disk",
			logger.String("dir", s.artifactDir))
		return artifacts.LoadDir(ctx, s.artifactDir)
	}
	return artifacts.Load(ctx)
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping recommender service...")

	if s.pool != nil {
		_ = s.pool.Shutdown(ctx)
	}

	if q, ok := s.jobQueue.(*jobqueue.InMemoryQueue); ok {
		_ = q.Close()
	}

	select {
	case <-s.stopCh:
		// Channel already closed
	default:
		close(s.stopCh)
	}

	s.started = false
	s.logger.Info(ctx, "recommender service stopped")
}

// Species resolves a species name to its dex view.
func (s *Service) Species(ctx context.Context, name string) (types.SpeciesInfo, error) {
	if err := s.ensureStarted(); err != nil {
		return types.SpeciesInfo{}, err
	}

	c, err := s.dex.Species(ctx, name)
	if err != nil {
		return types.SpeciesInfo{}, err
	}
	return speciesInfo(c), nil
}

// MoveInfo resolves a move name to its dex view.
func (s *Service) MoveInfo(ctx context.Context, name string) (types.MoveInfo, error) {
	if err := s.ensureStarted(); err != nil {
		return types.MoveInfo{}, err
	}

	m, err := s.dex.Move(ctx, name)
	if err != nil {
		return types.MoveInfo{}, err
	}
	return types.MoveInfo{
		Name:     m.Name,
		Type:     string(m.Type),
		Power:    m.Power,
		Accuracy: m.Accuracy,
		Priority: m.Priority,
		Category: string(m.Category),
	}, nil
}

// Matchup summarizes the static type and speed relationship between two
// species.
func (s *Service) Matchup(ctx context.Context, attackerName, defenderName string) (types.Matchup, error) {
	if err := s.ensureStarted(); err != nil {
		return types.Matchup{}, err
	}

	attacker, err := s.dex.Species(ctx, attackerName)
	if err != nil {
		return types.Matchup{}, err
	}
	defender, err := s.dex.Species(ctx, defenderName)
	if err != nil {
		return types.Matchup{}, err
	}

	attackerAdv, err := s.typeAdvantages(attacker, defender)
	if err != nil {
		return types.Matchup{}, err
	}
	defenderAdv, err := s.typeAdvantages(defender, attacker)
	if err != nil {
		return types.Matchup{}, err
	}

	return types.Matchup{
		Attacker:           attacker.Name,
		Defender:           defender.Name,
		AttackerTypes:      typeNames(attacker.Types()),
		DefenderTypes:      typeNames(defender.Types()),
		AttackerAdvantages: attackerAdv,
		DefenderAdvantages: defenderAdv,
		// Speed ties resolve against the attacker, matching the
		// a_moves_first feature.
		AttackerMovesFirst: attacker.Stats.Speed > defender.Stats.Speed,
	}, nil
}

// typeAdvantages resolves each of the attacker's own types against the
// defender's type combination.
func (s *Service) typeAdvantages(attacker, defender model.Combatant) ([]types.TypeAdvantage, error) {
	advantages := make([]types.TypeAdvantage, 0, 2)
	for _, t := range attacker.Types() {
		mult, err := s.chart.Multiplier(t, defender.Types()...)
		if err != nil {
			return nil, err
		}
		advantages = append(advantages, types.TypeAdvantage{
			Type:       string(t),
			Multiplier: mult,
		})
	}
	return advantages, nil
}

func typeNames(ts []model.Type) []string {
	names := make([]string, len(ts))
	for i, t := range ts {
		names[i] = string(t)
	}
	return names
}

func speciesInfo(c model.Combatant) types.SpeciesInfo {
	return types.SpeciesInfo{
		Name:  c.Name,
		Types: typeNames(c.Types()),
		Stats: types.Stats{
			HP:        c.Stats.HP,
			Attack:    c.Stats.Attack,
			Defense:   c.Stats.Defense,
			SpAttack:  c.Stats.SpAttack,
			SpDefense: c.Stats.SpDefense,
			Speed:     c.Stats.Speed,
		},
		TotalStats: c.Stats.Total(),
	}
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"cacheSize":   s.cacheSize,
	}

	if s.started {
		queueLen := s.jobQueue.Len(ctx)
		cacheEntries := s.cache.Size()

		stats["queueLength"] = queueLen
		stats["cacheEntries"] = cacheEntries
		stats["species"] = s.dex.SpeciesCount(ctx)
		stats["moves"] = s.dex.MoveCount(ctx)
		stats["featureWidth"] = s.builder.Schema().Width()

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateCacheSize(int(cacheEntries))
	}

	return stats
}

func (s *Service) ensureStarted() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return ErrNotStarted
	}
	return nil
}

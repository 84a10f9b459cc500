// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/catalog/internal/domain/catalog"
	"github.com/okian/catalog/internal/domain/sampling"
	"github.com/okian/catalog/internal/domain/scoring"
	"github.com/okian/catalog/pkg/logger"
	"github.com/okian/catalog/pkg/metrics"
)

// Service owns the read-only catalog and answers queries against it.
type Service struct {
	mu sync.RWMutex

	// Core components
	catalog    *catalog.Catalog
	sampler    *sampling.Sampler
	aggregator scoring.Aggregator

	// Configuration
	source     catalog.Source
	sampleSize int
	seed       uint64

	// State
	started      bool
	loadDuration time.Duration

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSource sets where Start loads the dataset from.
func WithSource(src catalog.Source) Option {
	return func(s *Service) {
		s.source = src
	}
}

// WithCatalog installs an already built catalog; Start will not load one.
func WithCatalog(c *catalog.Catalog) Option {
	return func(s *Service) {
		s.catalog = c
	}
}

// WithSampleSize sets the maximum number of entries per random sample.
func WithSampleSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.sampleSize = n
		}
	}
}

// WithSeed fixes the sampler seed. Zero keeps a random seed.
func WithSeed(seed uint64) Option {
	return func(s *Service) {
		s.seed = seed
	}
}

// WithAggregator replaces the score aggregator.
func WithAggregator(a scoring.Aggregator) Option {
	return func(s *Service) {
		if a != nil {
			s.aggregator = a
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		sampleSize: sampling.DefaultSize,
		aggregator: scoring.NewFilterAggregator(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.sampler = sampling.New(sampling.WithSize(s.sampleSize), sampling.WithSeed(s.seed))
	return s
}

// Start loads the catalog once. Calling it again after success is a no-op.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	if s.catalog == nil {
		s.logger.Info(ctx, "loading catalog", logger.String("source", s.source.String()))
		start := time.Now()
		c, err := catalog.Load(ctx, s.source)
		if err != nil {
			metrics.RecordCatalogLoadError()
			return fmt.Errorf("load catalog: %w", err)
		}
		s.loadDuration = time.Since(start)
		s.catalog = c
		metrics.RecordCatalogLoad(float64(s.loadDuration.Microseconds())/1000, c.LoadedAt().Unix())
	}

	st := s.catalog.Stats()
	metrics.UpdateCatalogSize(st.Entries, st.Distinct, st.Scores)

	s.started = true
	s.logger.Info(ctx, "catalog service started",
		logger.Int("entries", st.Entries),
		logger.Int("distinctEntries", st.Distinct),
		logger.Int("scores", st.Scores),
		logger.Int("sampleSize", s.sampler.Size()),
		logger.Duration("loadDuration", s.loadDuration),
	)
	return nil
}

// Stop marks the service as stopped. The catalog is kept in memory.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "catalog service stopped")
}

// Ready reports whether queries can be served.
func (s *Service) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}

func (s *Service) current() (*catalog.Catalog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.catalog, nil
}

// RandomEntries returns up to the configured sample size of distinct entries,
// drawn without replacement.
func (s *Service) RandomEntries(ctx context.Context) ([]catalog.Entry, error) {
	c, err := s.current()
	if err != nil {
		metrics.RecordQueryError("random_entries")
		return nil, err
	}
	sample := sampling.Sample(s.sampler, c.Distinct())
	metrics.RecordSample(len(sample))
	s.logger.Debug(ctx, "sampled entries", logger.Int("count", len(sample)))
	return sample, nil
}

// Scores returns the score aggregate.
func (s *Service) Scores(ctx context.Context) ([]catalog.Score, error) {
	c, err := s.current()
	if err != nil {
		metrics.RecordQueryError("scores")
		return nil, err
	}
	out, err := s.aggregator.Aggregate(ctx, c.Scores())
	if err != nil {
		metrics.RecordQueryError("scores")
		return nil, err
	}
	metrics.RecordScores(len(out))
	return out, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":    s.started,
		"sampleSize": s.sampler.Size(),
		"source":     s.source.String(),
	}

	if s.started {
		st := s.catalog.Stats()
		stats["entries"] = st.Entries
		stats["distinctEntries"] = st.Distinct
		stats["scores"] = st.Scores
		stats["loadedAt"] = s.catalog.LoadedAt().UTC().Format(time.RFC3339)
		stats["loadDurationMs"] = s.loadDuration.Milliseconds()
	}

	return stats
}

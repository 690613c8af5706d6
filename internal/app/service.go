// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/okian/thaidash/internal/adapters/cache"
	"github.com/okian/thaidash/internal/adapters/repository"
	"github.com/okian/thaidash/internal/domain/model"
	"github.com/okian/thaidash/internal/domain/pipeline"
	"github.com/okian/thaidash/internal/sampledata"
	"github.com/okian/thaidash/pkg/logger"
	"github.com/okian/thaidash/pkg/metrics"
)

// Service loads registrations, runs the cleaning pipeline through the result
// cache and hands out analyses to the HTTP API.
type Service struct {
	mu sync.RWMutex

	// Core components
	source repository.Source
	sink   repository.Sink
	cache  *cache.ResultCache

	// Configuration
	inputPath    string
	sampleRows   int
	sampleSeed   uint64
	topN         int
	cacheSize    int
	inactiveDays int
	now          func() time.Time

	// State
	table   *model.Table
	outcome LoadOutcome
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithInputPath sets the raw registration CSV loaded on start.
func WithInputPath(path string) Option {
	return func(s *Service) {
		s.inputPath = path
	}
}

// WithSampleData shapes the synthetic dataset served when the input file is
// unavailable.
func WithSampleData(rows int, seed uint64) Option {
	return func(s *Service) {
		if rows > 0 {
			s.sampleRows = rows
		}
		s.sampleSeed = seed
	}
}

// WithTopN sets how many events the snapshot ranks.
func WithTopN(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.topN = n
		}
	}
}

// WithCacheSize sets how many pipeline results are memoized.
func WithCacheSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.cacheSize = size
		}
	}
}

// WithInactiveDays sets the dormancy threshold for participant activity.
func WithInactiveDays(days int) Option {
	return func(s *Service) {
		if days >= 0 {
			s.inactiveDays = days
		}
	}
}

// WithClock sets the clock that provides the reference date.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithRepository replaces the CSV source and sink.
func WithRepository(source repository.Source, sink repository.Sink) Option {
	return func(s *Service) {
		if source != nil {
			s.source = source
		}
		if sink != nil {
			s.sink = sink
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	store := repository.NewCSVStore()
	s := &Service{
		source:       store,
		sink:         store,
		sampleRows:   sampledata.DefaultRows,
		sampleSeed:   sampledata.DefaultSeed,
		topN:         10,
		cacheSize:    16,
		inactiveDays: 90,
		now:          time.Now,
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads the input file, or synthetic data when it is unavailable or
// malformed.
func (s *Service) Start(ctx context.Context) error {
	const op = "service.start"
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting registration analytics service...")

	c, err := cache.New(s.cacheSize)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.cache = c

	if err := s.loadLocked(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.started = true
	s.logger.Info(ctx, "registration analytics service started",
		logger.String("source", string(s.outcome.Source)),
		logger.Bool("synthetic", s.outcome.Synthetic),
		logger.Int("rows", s.outcome.Rows),
		logger.Int("cacheSize", s.cacheSize),
		logger.Int("inactiveDays", s.inactiveDays),
	)

	return nil
}

// Stop releases cached results.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping registration analytics service...")

	s.cache.Purge()
	s.table = nil
	s.started = false

	s.logger.Info(context.Background(), "registration analytics service stopped")
}

// Reload reads the input file again.
func (s *Service) Reload(ctx context.Context) (LoadOutcome, error) {
	const op = "service.reload"
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return LoadOutcome{}, fmt.Errorf("%s: %w", op, ErrNotStarted)
	}
	if err := s.loadLocked(ctx); err != nil {
		return LoadOutcome{}, fmt.Errorf("%s: %w", op, err)
	}
	return s.outcome, nil
}

// Upload replaces the served dataset with a CSV read from r. On error the
// previous dataset stays in place.
func (s *Service) Upload(ctx context.Context, r io.Reader) (LoadOutcome, error) {
	const op = "service.upload"
	if r == nil {
		return LoadOutcome{}, fmt.Errorf("%s: %w", op, ErrNilReader)
	}

	t, err := s.source.Read(ctx, r)
	if err != nil {
		return LoadOutcome{}, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return LoadOutcome{}, fmt.Errorf("%s: %w", op, ErrNotStarted)
	}
	s.setLocked(t, LoadOutcome{Source: OriginUpload})
	s.logger.Info(ctx, "dataset uploaded", logger.Int("rows", t.Len()))
	return s.outcome, nil
}

// Outcome describes the dataset currently being served.
func (s *Service) Outcome() LoadOutcome {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.outcome
}

// Analyze runs the pipeline over the served dataset. Results are memoized
// per dataset and reference date; concurrent callers share one run.
func (s *Service) Analyze(ctx context.Context) (*Analysis, error) {
	const op = "service.analyze"
	s.mu.RLock()
	started, table, outcome, log := s.started, s.table, s.outcome, s.logger
	s.mu.RUnlock()
	if !started {
		return nil, fmt.Errorf("%s: %w", op, ErrNotStarted)
	}

	ref := referenceDate(s.now())
	key := cache.Fingerprint(table, ref.Format(time.DateOnly), strconv.Itoa(s.topN))
	res, hit, err := s.cache.GetOrRun(ctx, key, func(ctx context.Context) (*pipeline.Result, error) {
		p := pipeline.New(
			pipeline.WithLogger(log),
			pipeline.WithClock(func() time.Time { return ref }),
			pipeline.WithTopEvents(s.topN),
		)
		return p.Run(ctx, table)
	})
	if err != nil {
		metrics.RecordErrorByComponent("service", "analyze")
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !hit {
		metrics.UpdateDatasetParticipants(res.Snapshot.UniqueParticipants())
	}
	return NewAnalysis(outcome, res, s.inactiveDays), nil
}

// Export writes the cleaned dataset of a as CSV.
func (s *Service) Export(ctx context.Context, w io.Writer, a *Analysis) error {
	const op = "service.export"
	if a == nil || a.Result == nil {
		return fmt.Errorf("%s: %w", op, repository.ErrNilDataset)
	}
	if err := s.sink.Write(ctx, w, a.Result.Dataset); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":      s.started,
		"inputPath":    s.inputPath,
		"cacheSize":    s.cacheSize,
		"topN":         s.topN,
		"inactiveDays": s.inactiveDays,
	}

	if s.started {
		stats["source"] = string(s.outcome.Source)
		stats["synthetic"] = s.outcome.Synthetic
		stats["rows"] = s.outcome.Rows
		stats["loadedAt"] = s.outcome.LoadedAt
		stats["cachedResults"] = s.cache.Len()

		// Update metrics
		metrics.UpdateDatasetRows(s.outcome.Rows)
		metrics.UpdateCacheEntries(s.cache.Len())
	}

	return stats
}

func (s *Service) loadLocked(ctx context.Context) error {
	t, err := s.source.Load(ctx, s.inputPath)
	if err == nil {
		s.setLocked(t, LoadOutcome{Source: OriginFile, Path: s.inputPath})
		return nil
	}
	// An unreadable file and one that does not parse as CSV both leave the
	// dashboard on sample data rather than failing.
	if !errors.Is(err, repository.ErrSourceUnavailable) && !errors.Is(err, repository.ErrMalformed) {
		return err
	}

	s.logger.Warn(ctx, "input unusable, serving synthetic sample data",
		logger.String("path", s.inputPath),
		logger.Error(err),
	)
	gen := sampledata.New(
		sampledata.WithRows(s.sampleRows),
		sampledata.WithSeed(s.sampleSeed),
	)
	t, genErr := gen.Table(ctx)
	if genErr != nil {
		return genErr
	}
	s.setLocked(t, LoadOutcome{
		Source:    OriginSynthetic,
		Path:      s.inputPath,
		Synthetic: true,
		Reason:    err.Error(),
		cause:     err,
	})
	return nil
}

func (s *Service) setLocked(t *model.Table, outcome LoadOutcome) {
	outcome.Rows = t.Len()
	outcome.LoadedAt = s.now()
	s.table = t
	s.outcome = outcome
	metrics.RecordSourceLoad(string(outcome.Source))
	metrics.UpdateDatasetRows(outcome.Rows)
}

// referenceDate truncates t to midnight in its own location, so every
// request on one day shares a cached result.
func referenceDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

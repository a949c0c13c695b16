// Package app provides the core service that implements the dependencies
// required by the HTTP API: batch processing against a policy snapshot,
// policy reads and updates, and service statistics.
package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/notafinal/notafinal/internal/adapters/store"
	"github.com/notafinal/notafinal/internal/domain/batch"
	"github.com/notafinal/notafinal/internal/domain/model"
	"github.com/notafinal/notafinal/internal/domain/policy"
	"github.com/notafinal/notafinal/pkg/logger"
	"github.com/notafinal/notafinal/pkg/metrics"
)

// Service owns the process-wide grading policy and drives the batch
// pipeline. Every batch runs against a value copy of the policy taken at
// batch start, so in-flight batches never observe an update.
type Service struct {
	mu  sync.RWMutex
	pol policy.Policy

	// Persistence (optional)
	snapshots   *store.FileStore
	watchPolicy bool
	watchCancel context.CancelFunc

	// Cumulative counters for /stats
	statsMu          sync.Mutex
	batchesProcessed int
	rowsValid        int
	rowsInvalid      int

	started bool

	log logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithPolicy seeds the starting policy, used when no snapshot exists.
func WithPolicy(pol policy.Policy) Option {
	return func(s *Service) {
		if pol.WindowMinutes > 0 {
			s.pol = pol
		}
	}
}

// WithSnapshotStore enables policy persistence through the given store.
func WithSnapshotStore(st *store.FileStore) Option {
	return func(s *Service) {
		s.snapshots = st
	}
}

// WithPolicyWatch enables reloading the policy when the snapshot file is
// edited outside the service. No-op without a snapshot store.
func WithPolicyWatch(watch bool) Option {
	return func(s *Service) {
		s.watchPolicy = watch
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// New constructs a Service with the built-in default policy.
func New(opts ...Option) *Service {
	s := &Service{
		pol: policy.Default(),
		log: nil, // resolved in Start
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads the persisted policy snapshot when one exists and starts the
// optional snapshot watcher.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.log == nil {
		s.log = logger.Get()
	}

	if s.snapshots != nil {
		pol, err := s.snapshots.Load()
		switch {
		case err == nil:
			s.pol = pol
			s.log.Info(ctx, "loaded policy snapshot",
				logger.String("path", s.snapshots.Path()),
				logger.String("start", pol.Start.String()),
				logger.String("cutoff", pol.Cutoff.String()),
			)
		case errors.Is(err, store.ErrNotFound):
			s.log.Info(ctx, "no policy snapshot; using seed policy",
				logger.String("path", s.snapshots.Path()))
		default:
			s.log.Warn(ctx, "policy snapshot unreadable; using seed policy",
				logger.String("path", s.snapshots.Path()), logger.Error(err))
		}

		if s.watchPolicy {
			watchCtx, cancel := context.WithCancel(context.Background())
			s.watchCancel = cancel
			go func() {
				if err := s.snapshots.Watch(watchCtx, s.log, s.replacePolicy); err != nil {
					s.log.Warn(watchCtx, "policy snapshot watch stopped", logger.Error(err))
				}
			}()
		}
	}

	metrics.UpdatePolicyWindow(s.pol.WindowMinutes)
	s.started = true
	s.log.Info(ctx, "grading service started",
		logger.String("start", s.pol.Start.String()),
		logger.String("cutoff", s.pol.Cutoff.String()),
		logger.Float64("max_percent", s.pol.MaxPercent),
		logger.Int("window_minutes", s.pol.WindowMinutes),
	)
	return nil
}

// Stop shuts down the snapshot watcher, if any.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	if s.watchCancel != nil {
		s.watchCancel()
		s.watchCancel = nil
	}
	s.started = false
}

// replacePolicy swaps in an externally reloaded policy.
func (s *Service) replacePolicy(pol policy.Policy) {
	s.mu.Lock()
	s.pol = pol
	s.mu.Unlock()
	metrics.UpdatePolicyWindow(pol.WindowMinutes)
}

// Policy returns a copy of the current policy snapshot.
func (s *Service) Policy(_ context.Context) policy.Policy {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pol
}

// UpdatePolicy validates and applies a new policy. On success the window is
// recomputed and the three editable fields are persisted when a snapshot
// store is configured; a persistence failure is logged but does not undo
// the in-memory update.
func (s *Service) UpdatePolicy(ctx context.Context, startTime, cutoffTime string, maxPercent float64) (policy.Policy, error) {
	pol, err := policy.New(startTime, cutoffTime, maxPercent)
	if err != nil {
		return policy.Policy{}, err
	}

	s.mu.Lock()
	s.pol = pol
	s.mu.Unlock()

	metrics.RecordPolicyUpdate(pol.WindowMinutes)

	if s.snapshots != nil {
		if err := s.snapshots.Save(pol); err != nil {
			s.log.Warn(ctx, "policy snapshot save failed", logger.Error(err))
		}
	}

	s.log.Info(ctx, "policy updated",
		logger.String("start", pol.Start.String()),
		logger.String("cutoff", pol.Cutoff.String()),
		logger.Float64("max_percent", pol.MaxPercent),
		logger.Int("window_minutes", pol.WindowMinutes),
	)
	return pol, nil
}

// ProcessBatch scores a decoded table against the current policy snapshot
// and returns the batch result plus a score summary for the valid records.
func (s *Service) ProcessBatch(ctx context.Context, header []string, rows []model.RawRow) (model.BatchResult, model.ScoreSummary) {
	pol := s.Policy(ctx)

	start := time.Now()
	result := batch.Process(header, rows, pol)
	durationMs := float64(time.Since(start).Milliseconds())

	metrics.RecordBatch(durationMs, result.ValidRows, result.InvalidRows)
	if !batch.HeaderValid(header) {
		metrics.RecordHeaderMismatch()
	}
	for _, rec := range result.Records {
		metrics.RecordRecordStatus(rec.Status)
	}

	s.statsMu.Lock()
	s.batchesProcessed++
	s.rowsValid += result.ValidRows
	s.rowsInvalid += result.InvalidRows
	s.statsMu.Unlock()

	s.log.Info(ctx, "batch processed",
		logger.Int("total_rows", result.TotalRows),
		logger.Int("valid_rows", result.ValidRows),
		logger.Int("invalid_rows", result.InvalidRows),
		logger.Float64("duration_ms", durationMs),
	)

	return result, summarize(result.Records)
}

// summarize condenses the final scores of the valid records. An empty batch
// yields a zero summary.
func summarize(records []model.ScoredRecord) model.ScoreSummary {
	if len(records) == 0 {
		return model.ScoreSummary{}
	}

	finals := make(stats.Float64Data, len(records))
	for i, rec := range records {
		finals[i] = float64(rec.FinalScore)
	}

	// These cannot fail on non-empty input.
	mean, _ := stats.Mean(finals)
	median, _ := stats.Median(finals)
	minScore, _ := stats.Min(finals)
	maxScore, _ := stats.Max(finals)

	return model.ScoreSummary{
		Mean:   mean,
		Median: median,
		Min:    minScore,
		Max:    maxScore,
	}
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	pol := s.Policy(context.Background())

	s.statsMu.Lock()
	defer s.statsMu.Unlock()

	s.mu.RLock()
	started := s.started
	s.mu.RUnlock()

	return map[string]interface{}{
		"started":           started,
		"batches_processed": s.batchesProcessed,
		"rows_valid":        s.rowsValid,
		"rows_invalid":      s.rowsInvalid,
		"policy": map[string]interface{}{
			"start_time":     pol.Start.String(),
			"cutoff_time":    pol.Cutoff.String(),
			"max_percent":    pol.MaxPercent,
			"window_minutes": pol.WindowMinutes,
		},
	}
}

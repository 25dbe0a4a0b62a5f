package services

import (
	"context"
	"sync"
	"time"

	"github.com/checkitsa/app-checkit/internal/logging"
	"github.com/checkitsa/app-checkit/internal/models"
	"github.com/checkitsa/app-checkit/internal/observability"
	"go.uber.org/zap"
)

// HistoryOptions tunes the check history worker pool
type HistoryOptions struct {
	Workers       int
	BufferSize    int
	BatchSize     int
	FlushInterval time.Duration
}

// CheckHistoryService records checks asynchronously. Record never blocks
// the caller: when the buffer is full the record is dropped.
type CheckHistoryService struct {
	store         CheckStore
	records       chan models.CheckRecord
	workers       int
	batchSize     int
	flushInterval time.Duration
	logger        *logging.SafeLogger

	mu      sync.RWMutex
	started bool
	closed  bool
	wg      sync.WaitGroup
}

// NewCheckHistoryService creates the service; call Start to run workers.
func NewCheckHistoryService(store CheckStore, opts HistoryOptions, logger *logging.SafeLogger) *CheckHistoryService {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.BufferSize <= 0 {
		opts.BufferSize = 100
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 50
	}
	if opts.FlushInterval <= 0 {
		opts.FlushInterval = 2 * time.Second
	}

	return &CheckHistoryService{
		store:         store,
		records:       make(chan models.CheckRecord, opts.BufferSize),
		workers:       opts.Workers,
		batchSize:     opts.BatchSize,
		flushInterval: opts.FlushInterval,
		logger:        logger,
	}
}

// Start launches the worker pool
func (s *CheckHistoryService) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started || s.closed {
		return
	}
	s.started = true

	s.wg.Add(s.workers)
	for i := 0; i < s.workers; i++ {
		go func() {
			defer s.wg.Done()
			s.processRecords()
		}()
	}

	s.logger.Info("check history workers started",
		zap.Int("workers", s.workers),
		zap.Int("buffer_size", cap(s.records)),
		zap.Int("batch_size", s.batchSize))
}

// Record queues a record for persistence
func (s *CheckHistoryService) Record(record models.CheckRecord) error {
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now().UTC()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return models.ErrHistoryUnavailable
	}

	select {
	case s.records <- record:
		observability.HistoryRecords.WithLabelValues("queued").Inc()
		return nil
	default:
		observability.HistoryRecords.WithLabelValues("dropped").Inc()
		s.logger.Warn("check history buffer full, dropping record",
			zap.String("kind", string(record.Kind)),
			zap.Int("buffer_size", cap(s.records)))
		return models.ErrHistoryBufferFull
	}
}

// Stop closes the queue and waits for workers to flush, or for ctx.
func (s *CheckHistoryService) Stop(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.records)
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("check history workers stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// CountSubject returns how many times a subject was checked before
func (s *CheckHistoryService) CountSubject(ctx context.Context, kind models.CheckKind, subjectHash string) (int64, error) {
	count, err := s.store.CountSubject(ctx, kind, subjectHash)
	if err != nil {
		observability.DatabaseOperations.WithLabelValues("count", "error").Inc()
		return 0, err
	}
	observability.DatabaseOperations.WithLabelValues("count", "success").Inc()
	return count, nil
}

// Summary aggregates checks since the given time
func (s *CheckHistoryService) Summary(ctx context.Context, since time.Time) (*models.CheckSummary, error) {
	entries, err := s.store.Summary(ctx, since)
	if err != nil {
		observability.DatabaseOperations.WithLabelValues("aggregate", "error").Inc()
		return nil, err
	}
	observability.DatabaseOperations.WithLabelValues("aggregate", "success").Inc()
	return &models.CheckSummary{Since: since, Entries: entries}, nil
}

func (s *CheckHistoryService) processRecords() {
	ticker := time.NewTicker(s.flushInterval)
	defer ticker.Stop()

	batch := make([]models.CheckRecord, 0, s.batchSize)

	for {
		select {
		case record, ok := <-s.records:
			if !ok {
				s.flushBatch(batch)
				return
			}
			batch = append(batch, record)
			if len(batch) >= s.batchSize {
				s.flushBatch(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				s.flushBatch(batch)
				batch = batch[:0]
			}
		}
	}
}

func (s *CheckHistoryService) flushBatch(batch []models.CheckRecord) {
	if len(batch) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	inserted, err := s.store.InsertBatch(ctx, batch)
	if err != nil {
		observability.HistoryRecords.WithLabelValues("failed").Add(float64(len(batch) - inserted))
		observability.DatabaseOperations.WithLabelValues("insert", "error").Inc()
		s.logger.Error("failed to insert check history batch",
			zap.Error(err),
			zap.Int("batch_size", len(batch)),
			zap.Int("inserted", inserted))
		return
	}

	observability.HistoryRecords.WithLabelValues("stored").Add(float64(inserted))
	observability.DatabaseOperations.WithLabelValues("insert", "success").Inc()
	s.logger.Debug("check history batch inserted",
		zap.Int("inserted", inserted))
}

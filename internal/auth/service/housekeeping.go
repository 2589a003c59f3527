package service

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/project-nt/auth/internal/auth/observability"
	"github.com/project-nt/auth/internal/auth/store"
)

// HousekeepingService periodically deletes expired refresh and reset
// token rows so neither table grows without bound.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration
	Metrics  *observability.Metrics

	// ResetRetention keeps expired reset rows around for this long after
	// expiry. Zero removes them at the first sweep past expiry.
	ResetRetention time.Duration

	// Now defaults to time.Now.
	Now func() time.Time

	stopCh   chan struct{}
	doneCh   chan struct{}
	started  atomic.Bool
	stopOnce sync.Once
}

// NewHousekeepingService creates a new housekeeping service with the given interval.
// If interval is 0 or negative, defaults to 1 hour.
func NewHousekeepingService(store store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}

	return &HousekeepingService{
		Store:    store,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background worker. Call Stop to shut it down.
func (s *HousekeepingService) Start() {
	if !s.started.CompareAndSwap(false, true) {
		return
	}
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop shuts the worker down and waits for an in-progress sweep to finish.
// It is safe to call more than once, or without Start.
func (s *HousekeepingService) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
		if !s.started.Load() {
			return
		}
		<-s.doneCh
		s.Logger.Info("housekeeping service stopped")
	})
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Sweep once on startup.
	s.Sweep(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Sweep(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Sweep deletes every expired row once. A failure on one table does not
// stop the other. It returns the number of rows removed.
func (s *HousekeepingService) Sweep(ctx context.Context) int64 {
	cutoff := time.Now()
	if s.Now != nil {
		cutoff = s.Now()
	}
	s.Logger.Debug("starting housekeeping sweep", "cutoff", cutoff)

	var total int64

	n, err := s.Store.RefreshTokens().DeleteExpiredRefreshTokens(ctx, cutoff)
	if err != nil {
		s.Logger.Error("failed to delete expired refresh tokens", "error", err)
	} else {
		s.Metrics.Sweep("refresh_tokens", n)
		total += n
	}

	n, err = s.Store.ResetTokens().DeleteExpiredResetTokens(ctx, cutoff.Add(-s.ResetRetention))
	if err != nil {
		s.Logger.Error("failed to delete expired reset tokens", "error", err)
	} else {
		s.Metrics.Sweep("reset_tokens", n)
		total += n
	}

	s.Logger.Info("housekeeping sweep completed", "deleted", total)
	return total
}

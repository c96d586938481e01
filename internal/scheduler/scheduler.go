// Package scheduler runs the periodic maintenance sweep that purges room
// records untouched for longer than the configured age.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mwillard/gameroom/internal/storage"
)

// Scheduler owns the cron instance driving the purge sweep
type Scheduler struct {
	cron    *cron.Cron
	storage storage.Storage
	maxAge  time.Duration
	logger  *slog.Logger
}

// New creates a scheduler that purges rooms older than maxAge
func New(store storage.Storage, maxAge time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		storage: store,
		maxAge:  maxAge,
		logger:  logger,
	}
}

// Start registers the purge job under the given cron schedule and starts
// the scheduler
func (s *Scheduler) Start(schedule string) error {
	_, err := s.cron.AddFunc(schedule, func() {
		count, err := s.RunPurgeNow(context.Background())
		if err != nil {
			s.logger.Error("room purge failed", slog.String("error", err.Error()))
			return
		}
		if count > 0 {
			s.logger.Info("purged stale rooms", slog.Int("count", count))
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("purge scheduler started",
		slog.String("schedule", schedule),
		slog.Duration("max_age", s.maxAge),
	)
	return nil
}

// Stop halts the scheduler, waiting for a running job to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("purge scheduler stopped")
}

// RunPurgeNow executes the purge immediately
func (s *Scheduler) RunPurgeNow(ctx context.Context) (int, error) {
	return s.storage.PurgeRoomsOlderThan(ctx, s.maxAge)
}

package reaper

import (
	"context"
	"log/slog"
	"time"
)

// Scheduler triggers a reaper run once per day at a fixed UTC hour
// (03:00 by default, matching the nightly cleanup window). An external
// cron invoking the reap CLI verb drives the same code path; deployments
// pick one.
type Scheduler struct {
	reaper *Reaper
	logger *slog.Logger
	hour   int
}

// NewScheduler creates a scheduler that fires daily at the given UTC hour.
func NewScheduler(reaper *Reaper, hour int, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{reaper: reaper, logger: logger, hour: hour}
}

// Start blocks, running sweeps until ctx is canceled.
func (s *Scheduler) Start(ctx context.Context) {
	for {
		next := nextRun(time.Now().UTC(), s.hour)
		s.logger.Info("reaper scheduled", "next_run", next)

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("reaper scheduler stopped")
			return
		case <-timer.C:
		}

		if _, err := s.reaper.Run(ctx); err != nil {
			s.logger.Error("scheduled reaper run failed", "error", err)
		}
	}
}

// nextRun returns the next occurrence of hour:00 UTC strictly after now.
func nextRun(now time.Time, hour int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

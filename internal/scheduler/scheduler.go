// Package scheduler wires up the cron job that periodically scouts
// every active hunt.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"

	"github.com/Vill-8/nursery-scout/internal/scraper"
)

// Scheduler wraps robfig/cron and manages the scout loop.
type Scheduler struct {
	cron   *cron.Cron
	pool   *pgxpool.Pool
	worker *scraper.Worker
	spec   string // cron spec, e.g. "@every 6h"
}

// New creates a Scheduler that fires every intervalHours hours.
func New(pool *pgxpool.Pool, worker *scraper.Worker, intervalHours int) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithLogger(cron.DefaultLogger)),
		pool:   pool,
		worker: worker,
		spec:   fmt.Sprintf("@every %dh", intervalHours),
	}
}

// Start registers the job and starts the scheduler. One cycle runs
// immediately so new deployments populate the feed without waiting for
// the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runCycle(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	slog.Info("scout scheduler started", "spec", s.spec)

	go s.runCycle(ctx)

	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	slog.Info("scout scheduler stopped")
}

// runCycle scouts every active hunt once.
func (s *Scheduler) runCycle(ctx context.Context) {
	hunts, err := scraper.LoadActiveHunts(ctx, s.pool)
	if err != nil {
		slog.Error("load active hunts failed", "err", err)
		return
	}
	if len(hunts) == 0 {
		slog.Info("no active hunts, nothing to scout")
		return
	}

	slog.Info("scheduled scout cycle", "hunts", len(hunts))
	for _, h := range hunts {
		if _, err := s.worker.Run(ctx, h); err != nil {
			slog.Warn("scheduled scout failed", "huntId", h.ID, "err", err)
		}
	}
}

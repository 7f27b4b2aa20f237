// Package scheduler triggers pipeline runs on a fixed interval.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"econfetcher/internal/orchestrator"
)

// Scheduler invokes the orchestrator every interval until its context is
// canceled. It is the scheduled counterpart of the manual update endpoint;
// both call the same Orchestrator.Run.
type Scheduler struct {
	orch     *orchestrator.Orchestrator
	interval time.Duration
}

// New creates a Scheduler with the given run interval
func New(orch *orchestrator.Orchestrator, interval time.Duration) *Scheduler {
	return &Scheduler{
		orch:     orch,
		interval: interval,
	}
}

// Start blocks, running the pipeline on every tick until ctx is canceled.
func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("scheduler stopped")
			return
		case <-ticker.C:
			changed, err := s.orch.Run(ctx)
			if err != nil {
				slog.Error("scheduled update failed", "error", err)
				continue
			}
			slog.Info("scheduled update complete", "updated", len(changed))
		}
	}
}

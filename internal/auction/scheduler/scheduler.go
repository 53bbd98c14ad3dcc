// Package scheduler drives the lifecycle resolver on a fixed cadence.
// Correctness does not depend on the tick interval, only the latency of
// transitions does.
package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/catfo435/auctionarena/internal/auction/application"
	"github.com/catfo435/auctionarena/internal/auction/domain"
	"github.com/catfo435/auctionarena/internal/shared/logger"
)

var log = logger.GetLogger()

// DefaultInterval is the reference resolution cadence.
const DefaultInterval = time.Minute

// Scheduler periodically re-evaluates every not-yet-ended auction against
// the clock. A failed tick is logged and retried on the next one.
type Scheduler struct {
	resolver *application.LifecycleResolver
	clock    domain.Clock
	interval time.Duration
}

// New creates a Scheduler. A non-positive interval falls back to
// DefaultInterval.
func New(resolver *application.LifecycleResolver, clock domain.Clock, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{
		resolver: resolver,
		clock:    clock,
		interval: interval,
	}
}

// Run blocks, ticking until ctx is cancelled. Meant to be started in its own
// goroutine next to the HTTP server.
func (s *Scheduler) Run(ctx context.Context) {
	log.Info("Lifecycle scheduler started", zap.Duration("interval", s.interval))
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("Lifecycle scheduler stopped")
			return
		case <-ticker.C:
			if err := s.resolver.ResolveAll(ctx, s.clock.Now()); err != nil {
				log.Error("Lifecycle tick finished with errors", zap.Error(err))
			}
		}
	}
}

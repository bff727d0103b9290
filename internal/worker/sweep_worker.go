package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/sla-engine/internal/config"
	"github.com/spec-kit/sla-engine/internal/service"
)

// SweepWorker re-evaluates open tickets on a fixed cadence. It owns the
// fan-out: the engine itself stays synchronous and pure, and the
// instant of each cycle is captured once so every ticket in a sweep is
// judged against the same clock.
type SweepWorker struct {
	evaluations *service.EvaluationService
	logger      *zap.Logger
	cfg         config.SweepConfig
}

// NewSweepWorker creates the worker.
func NewSweepWorker(evaluations *service.EvaluationService, logger *zap.Logger, cfg config.SweepConfig) *SweepWorker {
	return &SweepWorker{evaluations: evaluations, logger: logger, cfg: cfg}
}

// Run blocks until ctx is cancelled, sweeping once per interval.
func (w *SweepWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.Interval())
	defer ticker.Stop()

	w.logger.Info("sweep worker started",
		zap.Duration("interval", w.cfg.Interval()),
		zap.Int("concurrency", w.cfg.Concurrency))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("sweep worker stopped")
			return
		case <-ticker.C:
			w.SweepOnce(ctx)
		}
	}
}

// SweepOnce runs a single evaluation cycle.
func (w *SweepWorker) SweepOnce(ctx context.Context) {
	now := time.Now()
	stats, err := w.evaluations.EvaluateBatch(ctx, now, w.cfg.Concurrency)
	if err != nil {
		w.logger.Error("sweep failed", zap.Error(err))
		return
	}
	w.logger.Info("sweep complete",
		zap.Int("evaluated", stats.Evaluated),
		zap.Int("breached", stats.Breached),
		zap.Int("escalated", stats.Escalated),
		zap.Int("failed", stats.Failed),
		zap.Duration("took", time.Since(now)))
}

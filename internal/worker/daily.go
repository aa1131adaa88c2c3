package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/stockbridge/reval/internal/reval"
)

// Runner executes one reconciliation run.
type Runner interface {
	Run(ctx context.Context) (reval.Result, error)
}

// DailyWorker re-runs the reconciliation on a fixed interval for hosts
// without an external scheduler. A failed run is logged and retried on the
// next tick; runs never overlap since the loop is sequential.
type DailyWorker struct {
	runner   Runner
	interval time.Duration
}

// NewDailyWorker creates a new DailyWorker.
func NewDailyWorker(runner Runner, interval time.Duration) *DailyWorker {
	return &DailyWorker{runner: runner, interval: interval}
}

// Run executes immediately, then on every tick. It blocks until the context
// is cancelled.
func (w *DailyWorker) Run(ctx context.Context) {
	slog.Info("DailyWorker: starting", "interval", w.interval)

	w.runOnce(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("DailyWorker: shutting down")
			return
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

func (w *DailyWorker) runOnce(ctx context.Context) {
	if _, err := w.runner.Run(ctx); err != nil {
		slog.Error("DailyWorker: run failed", "error", err)
		return
	}
	slog.Info("DailyWorker: run completed")
}

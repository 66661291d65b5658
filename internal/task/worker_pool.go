package task

import (
	"context"
	"log/slog"

	"github.com/shimonatia-ops/Fuji36-sub001/internal/config"
	"golang.org/x/sync/errgroup"
)

// WorkerPool runs identical pollers concurrently in one process.
type WorkerPool struct {
	pollers []*Poller
	logger  *slog.Logger
}

// NewWorkerPool creates cfg.Count pollers sharing jobs and processor.
// A count below 1 starts a single poller.
func NewWorkerPool(jobs JobClaimer, processor JobProcessor, cfg config.WorkerConfig, logger *slog.Logger) *WorkerPool {
	if logger == nil {
		logger = slog.Default()
	}

	count := cfg.Count
	if count <= 0 {
		logger.Warn("invalid worker count specified, using default",
			slog.Int("specified_count", cfg.Count),
			slog.Int("default_count", 1))
		count = 1
	}

	pollers := make([]*Poller, count)
	for i := range pollers {
		pollers[i] = NewPoller(jobs, processor, cfg, logger.With(slog.Int("worker_id", i)))
	}

	return &WorkerPool{
		pollers: pollers,
		logger:  logger.With(slog.String("component", "worker_pool")),
	}
}

// Size returns the number of pollers.
func (w *WorkerPool) Size() int {
	return len(w.pollers)
}

// Run starts every poller and blocks until all of them have stopped.
func (w *WorkerPool) Run(ctx context.Context) error {
	w.logger.Info("starting worker pool", slog.Int("worker_count", len(w.pollers)))

	g, gctx := errgroup.WithContext(ctx)
	for _, p := range w.pollers {
		p := p
		g.Go(func() error {
			return p.Run(gctx)
		})
	}

	err := g.Wait()
	w.logger.Info("worker pool stopped")
	return err
}

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shimonatia-ops/Fuji36-sub001/internal/analysis"
	"github.com/shimonatia-ops/Fuji36-sub001/internal/config"
	"github.com/shimonatia-ops/Fuji36-sub001/internal/platform/postgres"
	"github.com/shimonatia-ops/Fuji36-sub001/internal/scoring"
	"github.com/shimonatia-ops/Fuji36-sub001/internal/store"
	"github.com/shimonatia-ops/Fuji36-sub001/internal/task"
)

// application holds the worker's dependencies.
type application struct {
	config *config.Config
	logger *slog.Logger

	gateway   store.Gateway
	scorer    *scoring.Client
	processor *analysis.Processor
	pool      *task.WorkerPool
}

// newApplication builds the storage gateway, scoring client, processor and
// worker pool on top of an open database handle.
func newApplication(cfg *config.Config, logger *slog.Logger, db store.DBTX) (*application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if db == nil {
		return nil, fmt.Errorf("database cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	app := &application{
		config: cfg,
		logger: logger,
		gateway: store.Gateway{
			Jobs:     postgres.NewPostgresJobStore(db, logger),
			Sessions: postgres.NewPostgresSessionStore(db, logger),
			Batches:  postgres.NewPostgresBatchStore(db, logger),
			Results:  postgres.NewPostgresResultStore(db, logger),
		},
	}

	var err error
	app.scorer, err = scoring.NewClient(cfg.Scoring, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize scoring client: %w", err)
	}

	app.processor, err = analysis.NewProcessor(app.gateway, app.scorer, cfg.Worker, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize job processor: %w", err)
	}

	app.pool = task.NewWorkerPool(app.gateway.Jobs, app.processor, cfg.Worker, logger)
	return app, nil
}

// run blocks until ctx is cancelled and every in-flight job has finished.
func (a *application) run(ctx context.Context) error {
	a.logger.Info("analysis worker started",
		slog.Int("worker_count", a.pool.Size()),
		slog.Duration("poll_interval", a.config.Worker.PollInterval),
		slog.String("scoring_base_url", a.config.Scoring.BaseURL))

	if err := a.pool.Run(ctx); err != nil {
		return fmt.Errorf("worker pool failed: %w", err)
	}

	a.logger.Info("analysis worker stopped")
	return nil
}

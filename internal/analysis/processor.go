package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/shimonatia-ops/Fuji36-sub001/internal/config"
	"github.com/shimonatia-ops/Fuji36-sub001/internal/domain"
	"github.com/shimonatia-ops/Fuji36-sub001/internal/platform/logger"
	"github.com/shimonatia-ops/Fuji36-sub001/internal/store"
)

// ErrProcessingPanic wraps a panic recovered while processing a job.
var ErrProcessingPanic = errors.New("panic while processing job")

// Scorer scores the assembled frames of a session. Implementations never
// fail; an unavailable scoring service yields a fallback result.
type Scorer interface {
	Score(
		ctx context.Context,
		sessionID uuid.UUID,
		exerciseType string,
		sampleFPS int,
		frames []domain.Frame,
	) domain.ScoreResult
}

// Processor drives a claimed job to a terminal state.
type Processor struct {
	jobs      store.JobStore
	sessions  store.SessionStore
	batches   store.BatchStore
	results   store.ResultStore
	scorer    Scorer
	maxFrames int
	sampleFPS int
	logger    *slog.Logger
}

// NewProcessor creates a Processor. MaxFrames and DefaultSampleFPS of cfg
// fall back to package defaults when unset.
func NewProcessor(
	gateway store.Gateway,
	scorer Scorer,
	cfg config.WorkerConfig,
	logger *slog.Logger,
) (*Processor, error) {
	if gateway.Jobs == nil || gateway.Sessions == nil || gateway.Batches == nil || gateway.Results == nil {
		return nil, fmt.Errorf("processor requires all four stores")
	}
	if scorer == nil {
		return nil, fmt.Errorf("processor requires a scorer")
	}
	if logger == nil {
		logger = slog.Default()
	}

	maxFrames := cfg.MaxFrames
	if maxFrames < 1 {
		maxFrames = DefaultMaxFrames
	}
	sampleFPS := cfg.DefaultSampleFPS
	if sampleFPS < 1 {
		sampleFPS = DefaultSampleFPS
	}

	return &Processor{
		jobs:      gateway.Jobs,
		sessions:  gateway.Sessions,
		batches:   gateway.Batches,
		results:   gateway.Results,
		scorer:    scorer,
		maxFrames: maxFrames,
		sampleFPS: sampleFPS,
		logger:    logger.With(slog.String("component", "job_processor")),
	}, nil
}

// Process runs the job to completion. Cancellation of ctx is ignored so a
// claimed job is never left in processing by a shutdown.
func (p *Processor) Process(ctx context.Context, job *domain.Job) {
	if job == nil {
		return
	}

	ctx = context.WithoutCancel(ctx)
	log := logger.FromContextOrDefault(ctx, p.logger).With(
		slog.String("job_id", job.ID.String()),
		slog.String("session_id", job.SessionID.String()),
	)
	ctx = logger.WithLogger(ctx, log)

	start := time.Now()
	log.Info("processing job")

	if err := p.run(ctx, job); err != nil {
		log.Error("job failed",
			slog.String("error", err.Error()),
			slog.Duration("duration", time.Since(start)))
		p.fail(ctx, job, err)
		return
	}

	log.Info("job completed", slog.Duration("duration", time.Since(start)))
}

// run performs the processing steps; any returned error sends the job down
// the failure path.
func (p *Processor) run(ctx context.Context, job *domain.Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.FromContextOrDefault(ctx, p.logger).Error("recovered panic while processing job",
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())))
			err = fmt.Errorf("%w: %v", ErrProcessingPanic, r)
		}
	}()

	log := logger.FromContextOrDefault(ctx, p.logger)

	session, err := p.sessions.GetByID(ctx, job.SessionID)
	if err != nil {
		return fmt.Errorf("failed to load session %s: %w", job.SessionID, err)
	}

	batches, err := p.batches.ListBySession(ctx, session.ID)
	if err != nil {
		return fmt.Errorf("failed to list landmark batches: %w", err)
	}

	frames := AssembleFrames(batches, p.maxFrames)
	sampleFPS := EffectiveSampleFPS(batches, p.sampleFPS)
	log.Debug("frames assembled",
		slog.Int("batch_count", len(batches)),
		slog.Int("frame_count", len(frames)),
		slog.Int("sample_fps", sampleFPS))

	score := p.scorer.Score(ctx, session.ID, session.ExerciseType, sampleFPS, frames)

	result, err := domain.NewResult(session, score)
	if err != nil {
		return fmt.Errorf("invalid score result: %w", err)
	}

	if err := p.results.Upsert(ctx, result); err != nil {
		return fmt.Errorf("failed to store result: %w", err)
	}

	if err := p.jobs.MarkCompleted(ctx, job.ID); err != nil {
		return fmt.Errorf("failed to mark job completed: %w", err)
	}

	// The job is terminal at this point; a session update failure is not
	// allowed to flip it to failed.
	if err := p.sessions.MarkTerminal(ctx, session.ID, domain.SessionStatusCompleted); err != nil {
		log.Error("failed to mark session completed",
			slog.String("error", err.Error()))
	}

	return nil
}

// fail records cause on the job and the session. Write errors are logged.
func (p *Processor) fail(ctx context.Context, job *domain.Job, cause error) {
	log := logger.FromContextOrDefault(ctx, p.logger)

	if err := p.jobs.MarkFailed(ctx, job.ID, cause.Error()); err != nil {
		log.Error("failed to mark job failed",
			slog.String("error", err.Error()))
	}

	if errors.Is(cause, store.ErrSessionNotFound) {
		return
	}

	if err := p.sessions.MarkTerminal(ctx, job.SessionID, domain.SessionStatusFailed); err != nil {
		log.Error("failed to mark session failed",
			slog.String("error", err.Error()))
	}
}

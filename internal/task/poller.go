package task

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/shimonatia-ops/Fuji36-sub001/internal/config"
	"github.com/shimonatia-ops/Fuji36-sub001/internal/domain"
	"github.com/shimonatia-ops/Fuji36-sub001/internal/platform/logger"
)

// Loop timing defaults.
const (
	DefaultPollInterval  = 2 * time.Second
	DefaultErrorCooldown = 5 * time.Second
)

// JobClaimer hands out pending jobs, one caller per job.
type JobClaimer interface {
	ClaimNextPending(ctx context.Context) (*domain.Job, error)
}

// JobProcessor drives a claimed job to a terminal state.
type JobProcessor interface {
	Process(ctx context.Context, job *domain.Job)
}

// Poller is a single poll loop.
type Poller struct {
	jobs          JobClaimer
	processor     JobProcessor
	pollInterval  time.Duration
	errorCooldown time.Duration
	logger        *slog.Logger

	// sleep waits for d and reports false if ctx ended first.
	sleep func(ctx context.Context, d time.Duration) bool
}

// NewPoller creates a poll loop. Unset intervals fall back to defaults.
// If logger is nil, a default logger will be used.
func NewPoller(jobs JobClaimer, processor JobProcessor, cfg config.WorkerConfig, logger *slog.Logger) *Poller {
	if logger == nil {
		logger = slog.Default()
	}

	pollInterval := cfg.PollInterval
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	errorCooldown := cfg.ErrorCooldown
	if errorCooldown <= 0 {
		errorCooldown = DefaultErrorCooldown
	}

	return &Poller{
		jobs:          jobs,
		processor:     processor,
		pollInterval:  pollInterval,
		errorCooldown: errorCooldown,
		logger:        logger.With(slog.String("component", "poller")),
		sleep:         sleepContext,
	}
}

// Run polls until ctx is cancelled and then returns nil. Errors in the loop
// body are logged and followed by the error cooldown; they never end the loop.
func (p *Poller) Run(ctx context.Context) error {
	log := logger.FromContextOrDefault(ctx, p.logger)
	ctx = logger.WithLogger(ctx, log)

	log.Info("poller started",
		slog.Duration("poll_interval", p.pollInterval),
		slog.Duration("error_cooldown", p.errorCooldown))

	for {
		if ctx.Err() != nil {
			log.Info("poller stopped")
			return nil
		}

		wait, err := p.poll(ctx)
		if err != nil {
			log.Error("poll iteration failed, cooling down",
				slog.String("error", err.Error()),
				slog.Duration("cooldown", p.errorCooldown))
			wait = p.errorCooldown
		}

		if wait > 0 && !p.sleep(ctx, wait) {
			log.Info("poller stopped")
			return nil
		}
	}
}

// poll runs one iteration and returns how long to wait before the next one.
func (p *Poller) poll(ctx context.Context) (wait time.Duration, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.FromContextOrDefault(ctx, p.logger).Error("recovered panic in poll loop",
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())))
			wait = 0
			err = fmt.Errorf("panic in poll loop: %v", r)
		}
	}()

	// Shutdown is checked before every claim. Once the claim query is sent it
	// must not be cancelled: a claim that commits but is never read leaves the
	// job in processing with no worker.
	job, err := p.jobs.ClaimNextPending(context.WithoutCancel(ctx))
	if err != nil {
		return 0, fmt.Errorf("failed to claim job: %w", err)
	}

	if job == nil {
		return p.pollInterval, nil
	}

	p.processor.Process(ctx, job)
	return 0, nil
}

func sleepContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

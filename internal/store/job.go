package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/shimonatia-ops/Fuji36-sub001/internal/domain"
)

// JobStore defines the interface for analysis job persistence.
type JobStore interface {
	// Create saves a new pending job. Jobs are normally created by the
	// ingestion pipeline; the worker never creates them.
	Create(ctx context.Context, job *domain.Job) error

	// GetByID retrieves a job by its unique ID.
	// Returns ErrJobNotFound if the job does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error)

	// ClaimNextPending atomically moves the oldest pending job to processing
	// and returns its post-update state. Returns nil, nil when no pending job
	// exists. Concurrent callers never receive the same job.
	ClaimNextPending(ctx context.Context) (*domain.Job, error)

	// MarkCompleted moves a processing job to completed and clears any error
	// message. Returns ErrJobNotFound if the job does not exist and
	// ErrUpdateFailed if it is not in processing.
	MarkCompleted(ctx context.Context, id uuid.UUID) error

	// MarkFailed moves a processing job to failed and records the error
	// message. Returns ErrJobNotFound if the job does not exist and
	// ErrUpdateFailed if it is not in processing.
	MarkFailed(ctx context.Context, id uuid.UUID, errorMessage string) error
}

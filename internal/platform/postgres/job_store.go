package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shimonatia-ops/Fuji36-sub001/internal/domain"
	"github.com/shimonatia-ops/Fuji36-sub001/internal/platform/logger"
	"github.com/shimonatia-ops/Fuji36-sub001/internal/store"
)

const jobColumns = `id, session_id, status, error_message, created_at, updated_at`

// claimNextPendingQuery moves the oldest pending job to processing and returns
// the post-update row. SKIP LOCKED makes concurrent claimers pass over a row
// another transaction is already claiming, so a job is handed out once.
const claimNextPendingQuery = `
	UPDATE jobs
	SET status = 'processing', updated_at = $1
	WHERE id = (
		SELECT id
		FROM jobs
		WHERE status = 'pending'
		ORDER BY created_at ASC, id ASC
		LIMIT 1
		FOR UPDATE SKIP LOCKED
	)
	AND status = 'pending'
	RETURNING ` + jobColumns

// PostgresJobStore implements the store.JobStore interface
// using a PostgreSQL database as the storage backend.
type PostgresJobStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresJobStore creates a new PostgreSQL implementation of the JobStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresJobStore(db store.DBTX, logger *slog.Logger) *PostgresJobStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresJobStore{
		db:     db,
		logger: logger.With(slog.String("component", "job_store")),
	}
}

// Ensure PostgresJobStore implements store.JobStore interface
var _ store.JobStore = (*PostgresJobStore)(nil)

// Create implements store.JobStore.Create
func (s *PostgresJobStore) Create(ctx context.Context, job *domain.Job) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := job.Validate(); err != nil {
		log.Warn("job validation failed during create",
			slog.String("error", err.Error()),
			slog.String("job_id", job.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO jobs (id, session_id, status, error_message, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)
	`
	_, err := s.db.ExecContext(ctx, query,
		job.ID,
		job.SessionID,
		job.Status,
		job.ErrorMessage,
		job.CreatedAt,
		job.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create job",
			slog.String("error", err.Error()),
			slog.String("job_id", job.ID.String()))
		return MapError(err)
	}

	log.Debug("job created",
		slog.String("job_id", job.ID.String()),
		slog.String("session_id", job.SessionID.String()))
	return nil
}

// GetByID implements store.JobStore.GetByID
func (s *PostgresJobStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`

	job, err := scanJob(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("job not found", slog.String("job_id", id.String()))
			return nil, store.ErrJobNotFound
		}
		log.Error("failed to get job by ID",
			slog.String("error", err.Error()),
			slog.String("job_id", id.String()))
		return nil, MapError(err)
	}

	return job, nil
}

// ClaimNextPending implements store.JobStore.ClaimNextPending
func (s *PostgresJobStore) ClaimNextPending(ctx context.Context) (*domain.Job, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	job, err := scanJob(s.db.QueryRowContext(ctx, claimNextPendingQuery, time.Now().UTC()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		log.Error("failed to claim pending job", slog.String("error", err.Error()))
		return nil, store.NewStoreError("job", "claim", "claim query failed", MapError(err))
	}

	log.Debug("job claimed",
		slog.String("job_id", job.ID.String()),
		slog.String("session_id", job.SessionID.String()))
	return job, nil
}

// MarkCompleted implements store.JobStore.MarkCompleted
func (s *PostgresJobStore) MarkCompleted(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE jobs
		SET status = $1, error_message = NULL, updated_at = $2
		WHERE id = $3 AND status = 'processing'
	`
	return s.finish(ctx, id, domain.JobStatusCompleted, query,
		domain.JobStatusCompleted, time.Now().UTC(), id)
}

// MarkFailed implements store.JobStore.MarkFailed
func (s *PostgresJobStore) MarkFailed(ctx context.Context, id uuid.UUID, errorMessage string) error {
	query := `
		UPDATE jobs
		SET status = $1, error_message = $2, updated_at = $3
		WHERE id = $4 AND status = 'processing'
	`
	return s.finish(ctx, id, domain.JobStatusFailed, query,
		domain.JobStatusFailed, errorMessage, time.Now().UTC(), id)
}

// finish runs a single terminal-transition UPDATE. Only processing jobs
// transition; when no row matched, the job is looked up to tell a missing
// job from one in the wrong state.
func (s *PostgresJobStore) finish(
	ctx context.Context,
	id uuid.UUID,
	status domain.JobStatus,
	query string,
	args ...any,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to update job status",
			slog.String("error", err.Error()),
			slog.String("job_id", id.String()),
			slog.String("status", string(status)))
		return MapError(err)
	}

	if err := checkRowsAffected(result, store.ErrUpdateFailed); err != nil {
		if !errors.Is(err, store.ErrUpdateFailed) {
			return err
		}

		current, getErr := s.GetByID(ctx, id)
		if getErr != nil {
			log.Warn("no job updated",
				slog.String("job_id", id.String()),
				slog.String("status", string(status)),
				slog.String("error", getErr.Error()))
			return getErr
		}

		log.Warn("job not in processing, status unchanged",
			slog.String("job_id", id.String()),
			slog.String("status", string(status)),
			slog.String("current_status", string(current.Status)))
		return store.NewStoreError("job", "mark "+string(status),
			fmt.Sprintf("job is %s, not processing", current.Status), store.ErrUpdateFailed)
	}

	log.Debug("job status updated",
		slog.String("job_id", id.String()),
		slog.String("status", string(status)))
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*domain.Job, error) {
	var job domain.Job
	var status string
	var errorMessage sql.NullString

	if err := row.Scan(
		&job.ID,
		&job.SessionID,
		&status,
		&errorMessage,
		&job.CreatedAt,
		&job.UpdatedAt,
	); err != nil {
		return nil, err
	}

	job.Status = domain.JobStatus(status)
	job.ErrorMessage = errorMessage.String
	return &job, nil
}

package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shimonatia-ops/Fuji36-sub001/internal/domain"
	"github.com/shimonatia-ops/Fuji36-sub001/internal/platform/logger"
	"github.com/shimonatia-ops/Fuji36-sub001/internal/store"
)

// upsertResultQuery replaces the whole row of an existing result for the
// same session, relying on the results_session_id_key unique constraint.
const upsertResultQuery = `
	INSERT INTO results (
		id, session_id, user_id, exercise_type,
		reps, compensation_score, issues, confidence,
		engine, engine_version, created_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	ON CONFLICT ON CONSTRAINT results_session_id_key DO UPDATE SET
		id = EXCLUDED.id,
		user_id = EXCLUDED.user_id,
		exercise_type = EXCLUDED.exercise_type,
		reps = EXCLUDED.reps,
		compensation_score = EXCLUDED.compensation_score,
		issues = EXCLUDED.issues,
		confidence = EXCLUDED.confidence,
		engine = EXCLUDED.engine,
		engine_version = EXCLUDED.engine_version,
		created_at = EXCLUDED.created_at
`

// PostgresResultStore implements the store.ResultStore interface.
type PostgresResultStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresResultStore creates a new PostgreSQL implementation of the ResultStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresResultStore(db store.DBTX, logger *slog.Logger) *PostgresResultStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresResultStore{
		db:     db,
		logger: logger.With(slog.String("component", "result_store")),
	}
}

// Ensure PostgresResultStore implements store.ResultStore interface
var _ store.ResultStore = (*PostgresResultStore)(nil)

// Upsert implements store.ResultStore.Upsert
func (s *PostgresResultStore) Upsert(ctx context.Context, result *domain.Result) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := result.Validate(); err != nil {
		log.Warn("result validation failed during upsert",
			slog.String("error", err.Error()),
			slog.String("session_id", result.SessionID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	issues := result.Score.Issues
	if issues == nil {
		issues = []domain.Issue{}
	}
	issuesJSON, err := json.Marshal(issues)
	if err != nil {
		return fmt.Errorf("%w: failed to encode issues: %v", store.ErrInvalidEntity, err)
	}

	_, err = s.db.ExecContext(ctx, upsertResultQuery,
		result.ID,
		result.SessionID,
		result.UserID,
		result.ExerciseType,
		result.Score.Reps,
		result.Score.CompensationScore,
		string(issuesJSON),
		result.Score.Confidence,
		result.Score.Engine,
		result.Score.EngineVersion,
		result.CreatedAt,
	)
	if err != nil {
		log.Error("failed to upsert result",
			slog.String("error", err.Error()),
			slog.String("session_id", result.SessionID.String()))
		return MapError(err)
	}

	log.Info("result stored",
		slog.String("result_id", result.ID.String()),
		slog.String("session_id", result.SessionID.String()),
		slog.String("engine", result.Score.Engine))
	return nil
}

// GetBySession implements store.ResultStore.GetBySession
func (s *PostgresResultStore) GetBySession(ctx context.Context, sessionID uuid.UUID) (*domain.Result, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, session_id, user_id, exercise_type,
			reps, compensation_score, issues, confidence,
			engine, engine_version, created_at
		FROM results
		WHERE session_id = $1
	`

	var result domain.Result
	var issues []byte

	err := s.db.QueryRowContext(ctx, query, sessionID).Scan(
		&result.ID,
		&result.SessionID,
		&result.UserID,
		&result.ExerciseType,
		&result.Score.Reps,
		&result.Score.CompensationScore,
		&issues,
		&result.Score.Confidence,
		&result.Score.Engine,
		&result.Score.EngineVersion,
		&result.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrResultNotFound
		}
		log.Error("failed to get result by session",
			slog.String("error", err.Error()),
			slog.String("session_id", sessionID.String()))
		return nil, MapError(err)
	}

	if err := json.Unmarshal(issues, &result.Score.Issues); err != nil {
		return nil, fmt.Errorf("failed to decode issues of result %s: %w", result.ID, err)
	}

	return &result, nil
}

// CountBySession implements store.ResultStore.CountBySession
func (s *PostgresResultStore) CountBySession(ctx context.Context, sessionID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM results WHERE session_id = $1`, sessionID,
	).Scan(&count)
	if err != nil {
		return 0, MapError(err)
	}
	return count, nil
}

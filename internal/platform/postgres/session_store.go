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

// PostgresSessionStore implements the store.SessionStore interface
// using a PostgreSQL database as the storage backend.
type PostgresSessionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSessionStore creates a new PostgreSQL implementation of the SessionStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresSessionStore(db store.DBTX, logger *slog.Logger) *PostgresSessionStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresSessionStore{
		db:     db,
		logger: logger.With(slog.String("component", "session_store")),
	}
}

// Ensure PostgresSessionStore implements store.SessionStore interface
var _ store.SessionStore = (*PostgresSessionStore)(nil)

// Create implements store.SessionStore.Create
func (s *PostgresSessionStore) Create(ctx context.Context, session *domain.Session) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := session.Validate(); err != nil {
		log.Warn("session validation failed during create",
			slog.String("error", err.Error()),
			slog.String("session_id", session.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO sessions (id, user_id, exercise_type, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(ctx, query,
		session.ID,
		session.UserID,
		session.ExerciseType,
		session.Status,
		session.CreatedAt,
		session.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create session",
			slog.String("error", err.Error()),
			slog.String("session_id", session.ID.String()))
		return MapError(err)
	}

	return nil
}

// GetByID implements store.SessionStore.GetByID
func (s *PostgresSessionStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, exercise_type, status, created_at, updated_at
		FROM sessions
		WHERE id = $1
	`

	var session domain.Session
	var status string

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&session.ID,
		&session.UserID,
		&session.ExerciseType,
		&status,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("session not found", slog.String("session_id", id.String()))
			return nil, store.ErrSessionNotFound
		}
		log.Error("failed to get session by ID",
			slog.String("error", err.Error()),
			slog.String("session_id", id.String()))
		return nil, MapError(err)
	}

	session.Status = domain.SessionStatus(status)
	return &session, nil
}

// MarkTerminal implements store.SessionStore.MarkTerminal
func (s *PostgresSessionStore) MarkTerminal(
	ctx context.Context,
	id uuid.UUID,
	status domain.SessionStatus,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !status.IsTerminal() {
		return fmt.Errorf("%w: %w: %q", store.ErrInvalidEntity, domain.ErrNonTerminalStatus, status)
	}

	query := `
		UPDATE sessions
		SET status = $1, updated_at = $2
		WHERE id = $3
	`
	result, err := s.db.ExecContext(ctx, query, status, time.Now().UTC(), id)
	if err != nil {
		log.Error("failed to update session status",
			slog.String("error", err.Error()),
			slog.String("session_id", id.String()),
			slog.String("status", string(status)))
		return MapError(err)
	}

	if err := checkRowsAffected(result, store.ErrSessionNotFound); err != nil {
		log.Debug("session not found for status update",
			slog.String("session_id", id.String()))
		return err
	}

	log.Info("session status updated",
		slog.String("session_id", id.String()),
		slog.String("status", string(status)))
	return nil
}

package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shimonatia-ops/Fuji36-sub001/internal/domain"
	"github.com/shimonatia-ops/Fuji36-sub001/internal/platform/logger"
	"github.com/shimonatia-ops/Fuji36-sub001/internal/store"
)

// PostgresBatchStore implements the store.BatchStore interface.
// Frames are stored as a JSONB array on the batch row.
type PostgresBatchStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresBatchStore creates a new PostgreSQL implementation of the BatchStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresBatchStore(db store.DBTX, logger *slog.Logger) *PostgresBatchStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresBatchStore{
		db:     db,
		logger: logger.With(slog.String("component", "batch_store")),
	}
}

// Ensure PostgresBatchStore implements store.BatchStore interface
var _ store.BatchStore = (*PostgresBatchStore)(nil)

// Create implements store.BatchStore.Create
func (s *PostgresBatchStore) Create(ctx context.Context, batch *domain.LandmarkBatch) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := batch.Validate(); err != nil {
		log.Warn("batch validation failed during create",
			slog.String("error", err.Error()),
			slog.String("batch_id", batch.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	frames := batch.Frames
	if frames == nil {
		frames = []domain.Frame{}
	}
	payload, err := json.Marshal(frames)
	if err != nil {
		return fmt.Errorf("%w: failed to encode frames: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO landmark_batches (id, session_id, sample_fps, frames, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = s.db.ExecContext(ctx, query,
		batch.ID,
		batch.SessionID,
		batch.SampleFPS,
		string(payload),
		batch.CreatedAt,
	)
	if err != nil {
		log.Error("failed to create landmark batch",
			slog.String("error", err.Error()),
			slog.String("batch_id", batch.ID.String()),
			slog.String("session_id", batch.SessionID.String()))
		return MapError(err)
	}

	log.Debug("landmark batch created",
		slog.String("batch_id", batch.ID.String()),
		slog.Int("frame_count", len(frames)))
	return nil
}

// ListBySession implements store.BatchStore.ListBySession
func (s *PostgresBatchStore) ListBySession(
	ctx context.Context,
	sessionID uuid.UUID,
) ([]*domain.LandmarkBatch, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, session_id, sample_fps, frames, created_at
		FROM landmark_batches
		WHERE session_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		log.Error("failed to query landmark batches",
			slog.String("error", err.Error()),
			slog.String("session_id", sessionID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	batches := make([]*domain.LandmarkBatch, 0)
	for rows.Next() {
		var batch domain.LandmarkBatch
		var frames []byte

		if err := rows.Scan(
			&batch.ID,
			&batch.SessionID,
			&batch.SampleFPS,
			&frames,
			&batch.CreatedAt,
		); err != nil {
			log.Error("failed to scan landmark batch row",
				slog.String("error", err.Error()),
				slog.String("session_id", sessionID.String()))
			return nil, fmt.Errorf("failed to scan landmark batch row: %w", err)
		}

		if err := json.Unmarshal(frames, &batch.Frames); err != nil {
			return nil, fmt.Errorf("failed to decode frames of batch %s: %w", batch.ID, err)
		}

		batches = append(batches, &batch)
	}

	if err := rows.Err(); err != nil {
		log.Error("error iterating landmark batch rows",
			slog.String("error", err.Error()),
			slog.String("session_id", sessionID.String()))
		return nil, fmt.Errorf("error iterating landmark batch rows: %w", err)
	}

	return batches, nil
}

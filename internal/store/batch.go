package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/shimonatia-ops/Fuji36-sub001/internal/domain"
)

// BatchStore defines the interface for landmark batch persistence.
// Batches are immutable once written.
type BatchStore interface {
	// Create saves a new batch.
	Create(ctx context.Context, batch *domain.LandmarkBatch) error

	// ListBySession returns all batches of a session ordered by creation time,
	// oldest first. Returns an empty slice when the session has none.
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*domain.LandmarkBatch, error)
}

package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/shimonatia-ops/Fuji36-sub001/internal/domain"
)

// ResultStore defines the interface for scoring result persistence.
// There is at most one result per session.
type ResultStore interface {
	// Upsert inserts the result or replaces the existing result of the same
	// session in a single atomic statement.
	Upsert(ctx context.Context, result *domain.Result) error

	// GetBySession retrieves the current result of a session.
	// Returns ErrResultNotFound if none has been written.
	GetBySession(ctx context.Context, sessionID uuid.UUID) (*domain.Result, error)

	// CountBySession returns how many results exist for a session.
	CountBySession(ctx context.Context, sessionID uuid.UUID) (int, error)
}

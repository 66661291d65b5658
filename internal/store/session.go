package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/shimonatia-ops/Fuji36-sub001/internal/domain"
)

// SessionStore defines the interface for recording session persistence.
type SessionStore interface {
	// Create saves a new session.
	Create(ctx context.Context, session *domain.Session) error

	// GetByID retrieves a session by its unique ID.
	// Returns ErrSessionNotFound if the session does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error)

	// MarkTerminal moves a session to completed or failed and bumps updated_at.
	// Returns ErrInvalidEntity for a non-terminal status and
	// ErrSessionNotFound if the session does not exist.
	MarkTerminal(ctx context.Context, id uuid.UUID, status domain.SessionStatus) error
}

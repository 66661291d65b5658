package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SessionStatus represents the lifecycle state of a recording session
type SessionStatus string

// Possible session status values. Everything before completed/failed is owned
// by the capture pipeline.
const (
	SessionStatusCreated    SessionStatus = "created"
	SessionStatusRecording  SessionStatus = "recording"
	SessionStatusIngesting  SessionStatus = "ingesting"
	SessionStatusProcessing SessionStatus = "processing"
	SessionStatusCompleted  SessionStatus = "completed"
	SessionStatusFailed     SessionStatus = "failed"
)

// IsTerminal reports whether s is completed or failed.
func (s SessionStatus) IsTerminal() bool {
	return s == SessionStatusCompleted || s == SessionStatusFailed
}

// Valid reports whether s is one of the known session statuses.
func (s SessionStatus) Valid() bool {
	switch s {
	case SessionStatusCreated, SessionStatusRecording, SessionStatusIngesting,
		SessionStatusProcessing, SessionStatusCompleted, SessionStatusFailed:
		return true
	default:
		return false
	}
}

// Session is one recorded therapy exercise performed by a user.
type Session struct {
	ID           uuid.UUID     `json:"id"`
	UserID       uuid.UUID     `json:"user_id"`
	ExerciseType string        `json:"exercise_type"`
	Status       SessionStatus `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// NewSession creates a session in the created state.
func NewSession(userID uuid.UUID, exerciseType string) (*Session, error) {
	now := time.Now().UTC()
	session := &Session{
		ID:           uuid.New(),
		UserID:       userID,
		ExerciseType: exerciseType,
		Status:       SessionStatusCreated,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := session.Validate(); err != nil {
		return nil, err
	}

	return session, nil
}

// Validate checks if the Session has valid data.
func (s *Session) Validate() error {
	if s.ID == uuid.Nil {
		return fmt.Errorf("%w: session ID cannot be empty", ErrInvalidID)
	}

	if s.UserID == uuid.Nil {
		return fmt.Errorf("%w: session user ID cannot be empty", ErrInvalidID)
	}

	if s.ExerciseType == "" {
		return fmt.Errorf("%w: exercise type cannot be empty", ErrValidation)
	}

	if !s.Status.Valid() {
		return ErrInvalidSessionStatus
	}

	return nil
}

package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// IssueSeverity grades a detected movement issue
type IssueSeverity string

// Possible issue severities
const (
	IssueSeverityLow    IssueSeverity = "low"
	IssueSeverityMedium IssueSeverity = "medium"
	IssueSeverityHigh   IssueSeverity = "high"
)

// Issue is a typed movement problem found by the scoring engine.
type Issue struct {
	Type     string        `json:"type" validate:"required"`
	Severity IssueSeverity `json:"severity" validate:"oneof=low medium high"`
	Count    int           `json:"count" validate:"gte=0"`
}

// ScoreResult is the scoring payload produced for one session.
type ScoreResult struct {
	Reps              int     `json:"reps" validate:"gte=0"`
	CompensationScore float64 `json:"compensationScore"`
	Issues            []Issue `json:"issues" validate:"dive"`
	Confidence        float64 `json:"confidence" validate:"gte=0,lte=1"`
	Engine            string  `json:"engine" validate:"required"`
	EngineVersion     string  `json:"engineVersion"`
}

// Result is the single current scoring outcome stored for a session.
type Result struct {
	ID           uuid.UUID   `json:"id"`
	SessionID    uuid.UUID   `json:"session_id"`
	UserID       uuid.UUID   `json:"user_id"`
	ExerciseType string      `json:"exercise_type"`
	Score        ScoreResult `json:"score"`
	CreatedAt    time.Time   `json:"created_at"`
}

// NewResult builds the result record for a scored session.
func NewResult(session *Session, score ScoreResult) (*Result, error) {
	if session == nil {
		return nil, fmt.Errorf("%w: session cannot be nil", ErrValidation)
	}

	if score.Issues == nil {
		score.Issues = []Issue{}
	}

	result := &Result{
		ID:           uuid.New(),
		SessionID:    session.ID,
		UserID:       session.UserID,
		ExerciseType: session.ExerciseType,
		Score:        score,
		CreatedAt:    time.Now().UTC(),
	}

	if err := result.Validate(); err != nil {
		return nil, err
	}

	return result, nil
}

// Validate checks if the Result has valid data.
func (r *Result) Validate() error {
	if r.ID == uuid.Nil {
		return fmt.Errorf("%w: result ID cannot be empty", ErrInvalidID)
	}

	if r.SessionID == uuid.Nil {
		return fmt.Errorf("%w: result session ID cannot be empty", ErrInvalidID)
	}

	if r.UserID == uuid.Nil {
		return fmt.Errorf("%w: result user ID cannot be empty", ErrInvalidID)
	}

	if r.Score.Engine == "" {
		return fmt.Errorf("%w: result engine cannot be empty", ErrValidation)
	}

	return nil
}

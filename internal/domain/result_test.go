package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestNewResult(t *testing.T) {
	t.Parallel()
	session := &Session{
		ID:           uuid.New(),
		UserID:       uuid.New(),
		ExerciseType: "squat",
		Status:       SessionStatusProcessing,
	}

	result, err := NewResult(session, ScoreResult{Reps: 4, Engine: "pose-engine", Confidence: 0.9})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if result.SessionID != session.ID || result.UserID != session.UserID {
		t.Error("Expected result to carry session and user IDs")
	}

	if result.ExerciseType != "squat" {
		t.Errorf("Expected exercise type squat, got %s", result.ExerciseType)
	}

	if result.Score.Issues == nil {
		t.Error("Expected nil issues to be normalized to an empty set")
	}

	if _, err := NewResult(session, ScoreResult{Reps: 1}); !errors.Is(err, ErrValidation) {
		t.Errorf("Expected error %v, got %v", ErrValidation, err)
	}

	if _, err := NewResult(nil, ScoreResult{Engine: "x"}); !errors.Is(err, ErrValidation) {
		t.Errorf("Expected error %v, got %v", ErrValidation, err)
	}
}

func TestNewLandmarkBatch(t *testing.T) {
	t.Parallel()
	sessionID := uuid.New()

	batch, err := NewLandmarkBatch(sessionID, 30, []Frame{{FrameID: 1}, {FrameID: 2}})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(batch.Frames) != 2 || batch.SampleFPS != 30 {
		t.Errorf("Unexpected batch contents: %+v", batch)
	}

	if _, err := NewLandmarkBatch(sessionID, 0, nil); !errors.Is(err, ErrInvalidSampleRate) {
		t.Errorf("Expected error %v, got %v", ErrInvalidSampleRate, err)
	}
}

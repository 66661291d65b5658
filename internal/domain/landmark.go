package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Landmark is a single keypoint in normalized image coordinates.
type Landmark struct {
	X          float64  `json:"x"`
	Y          float64  `json:"y"`
	Z          float64  `json:"z"`
	Visibility *float64 `json:"visibility,omitempty"`
}

// Frame is one timestamped sample of landmark positions.
// Meta is opaque capture metadata and is forwarded to the scorer untouched.
type Frame struct {
	FrameID   int64           `json:"frameId"`
	Timestamp float64         `json:"timestamp"`
	Pose      []Landmark      `json:"pose,omitempty"`
	LeftHand  []Landmark      `json:"leftHand,omitempty"`
	RightHand []Landmark      `json:"rightHand,omitempty"`
	Meta      json.RawMessage `json:"meta,omitempty"`
}

// LandmarkBatch is an immutable chunk of recorded frames for one session,
// typically one recording segment.
type LandmarkBatch struct {
	ID        uuid.UUID `json:"id"`
	SessionID uuid.UUID `json:"session_id"`
	SampleFPS int       `json:"sample_fps"`
	Frames    []Frame   `json:"frames"`
	CreatedAt time.Time `json:"created_at"`
}

// NewLandmarkBatch creates a batch for the given session.
func NewLandmarkBatch(sessionID uuid.UUID, sampleFPS int, frames []Frame) (*LandmarkBatch, error) {
	batch := &LandmarkBatch{
		ID:        uuid.New(),
		SessionID: sessionID,
		SampleFPS: sampleFPS,
		Frames:    frames,
		CreatedAt: time.Now().UTC(),
	}

	if err := batch.Validate(); err != nil {
		return nil, err
	}

	return batch, nil
}

// Validate checks if the LandmarkBatch has valid data.
func (b *LandmarkBatch) Validate() error {
	if b.ID == uuid.Nil {
		return fmt.Errorf("%w: batch ID cannot be empty", ErrInvalidID)
	}

	if b.SessionID == uuid.Nil {
		return fmt.Errorf("%w: batch session ID cannot be empty", ErrInvalidID)
	}

	if b.SampleFPS < 1 {
		return ErrInvalidSampleRate
	}

	return nil
}

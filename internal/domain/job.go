package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// JobStatus represents the processing state of an analysis job
type JobStatus string

// Possible job status values
const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// IsTerminal reports whether no further transition is allowed from s.
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// Valid reports whether s is one of the known job statuses.
func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusPending, JobStatusProcessing, JobStatusCompleted, JobStatusFailed:
		return true
	default:
		return false
	}
}

// Job is the unit of work "score this session's recorded data".
// A job is created pending by the ingestion pipeline, claimed into processing
// by exactly one worker and finished as completed or failed.
type Job struct {
	ID           uuid.UUID `json:"id"`
	SessionID    uuid.UUID `json:"session_id"`
	Status       JobStatus `json:"status"`
	ErrorMessage string    `json:"error_message,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewJob creates a pending job for the given session.
func NewJob(sessionID uuid.UUID) (*Job, error) {
	now := time.Now().UTC()
	job := &Job{
		ID:        uuid.New(),
		SessionID: sessionID,
		Status:    JobStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := job.Validate(); err != nil {
		return nil, err
	}

	return job, nil
}

// Validate checks if the Job has valid data.
func (j *Job) Validate() error {
	if j.ID == uuid.Nil {
		return fmt.Errorf("%w: job ID cannot be empty", ErrInvalidID)
	}

	if j.SessionID == uuid.Nil {
		return fmt.Errorf("%w: job session ID cannot be empty", ErrInvalidID)
	}

	if !j.Status.Valid() {
		return ErrInvalidJobStatus
	}

	return nil
}

// IsTerminal reports whether the job has finished.
func (j *Job) IsTerminal() bool {
	return j.Status.IsTerminal()
}

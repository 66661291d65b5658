package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is missing or malformed.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidJobStatus is returned when a job status is not valid.
	ErrInvalidJobStatus = errors.New("invalid job status")

	// ErrInvalidSessionStatus is returned when a session status is not valid.
	ErrInvalidSessionStatus = errors.New("invalid session status")

	// ErrNonTerminalStatus is returned when a terminal transition is requested
	// with a status that is not terminal.
	ErrNonTerminalStatus = errors.New("status is not terminal")

	// ErrInvalidSampleRate is returned when a batch declares a sample rate below 1.
	ErrInvalidSampleRate = errors.New("sample rate must be positive")
)

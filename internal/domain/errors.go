// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidFormat is returned when data is not in the expected format.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrInvalidPassword is returned when a password doesn't meet requirements.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrInvalidCycleStage is returned when a cycle stage label is not one of R1..R5.
	ErrInvalidCycleStage = errors.New("invalid cycle stage")

	// ErrInvalidReviewStatus is returned when a review status is not valid.
	ErrInvalidReviewStatus = errors.New("invalid review status")

	// ErrInvalidSessionKind is returned when a study session kind is not valid.
	ErrInvalidSessionKind = errors.New("invalid session kind")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)

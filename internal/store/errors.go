package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store, or exists but belongs to a different owner. The two cases are
	// indistinguishable by design so that one user cannot probe for the
	// existence of another user's rows.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity (e.g., a user with the same email).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for specific validation details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTransactionFailed is returned when a database transaction fails
	// to commit or when an operation within a transaction fails.
	ErrTransactionFailed = errors.New("transaction failed")

	// Entity-specific "not found" errors

	// ErrUserNotFound indicates that the requested user does not exist in the store.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrSubjectNotFound indicates that the requested subject does not exist
	// for the calling owner.
	ErrSubjectNotFound = fmt.Errorf("%w: subject", ErrNotFound)

	// ErrStudySessionNotFound indicates that the requested study session does
	// not exist for the calling owner.
	ErrStudySessionNotFound = fmt.Errorf("%w: study session", ErrNotFound)

	// ErrScheduledReviewNotFound indicates that the requested scheduled review
	// does not exist for the calling owner.
	ErrScheduledReviewNotFound = fmt.Errorf("%w: scheduled review", ErrNotFound)

	// Entity-specific "duplicate" errors

	// ErrEmailExists indicates that a user with the given email already exists.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)

	// ErrSubjectExists indicates that the owner already has a subject with
	// the given name.
	ErrSubjectExists = fmt.Errorf("%w: subject name", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
// This includes the generic ErrNotFound and all entity-specific not found errors.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
// This includes the generic ErrDuplicate and all entity-specific duplicate errors.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

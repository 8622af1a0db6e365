// Package subject provides the subject CRUD surface the review engine reads
// from.
package subject

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/kauestudy/revise-api/internal/domain"
)

// Service manages a user's subjects.
type Service interface {
	// List returns the owner's subjects ordered by name.
	List(ctx context.Context, ownerID uuid.UUID) ([]*domain.Subject, error)

	// Create adds a subject for the owner. Names are unique per owner,
	// case-insensitively; returns ErrSubjectExists on a duplicate.
	Create(ctx context.Context, ownerID uuid.UUID, name string) (*domain.Subject, error)
}

// Common subject service errors
var (
	// ErrSubjectExists indicates the owner already has a subject with the
	// same name.
	ErrSubjectExists = errors.New("subject already exists")
)

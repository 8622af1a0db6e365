package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/kauestudy/revise-api/internal/domain"
)

// SubjectStore defines the interface for subject persistence.
// The review engine only reads subjects; creation is part of the external
// CRUD surface, exposed here so the whole application shares one boundary.
type SubjectStore interface {
	// Create saves a new subject to the store.
	// It handles domain validation internally.
	// Returns ErrSubjectExists if the owner already has a subject with the
	// same name (case-insensitive).
	Create(ctx context.Context, subject *domain.Subject) error

	// GetByIDAndOwner retrieves a subject by id+owner.
	// Returns ErrSubjectNotFound if no row matches.
	GetByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*domain.Subject, error)

	// ListByOwner retrieves all subjects for the owner, ordered by name.
	// Returns an empty slice when the owner has no subjects.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Subject, error)
}

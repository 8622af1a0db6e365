package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/kauestudy/revise-api/internal/domain"
)

// StudySessionStore defines the interface for study session persistence.
// Sessions are immutable once logged: there are no update or delete methods.
type StudySessionStore interface {
	// Create saves a new study session to the store.
	// It handles domain validation internally.
	// Returns ErrInvalidEntity if the subject does not exist (foreign key
	// violation).
	Create(ctx context.Context, session *domain.StudySession) error

	// ListByOwner retrieves all study sessions for the owner, ordered by
	// study date ascending. Returns an empty slice when the owner has
	// logged nothing.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.StudySession, error)

	// ListByOwnerAndSubject retrieves the owner's sessions for one subject,
	// newest first. Returns an empty slice when nothing matches.
	ListByOwnerAndSubject(
		ctx context.Context,
		ownerID, subjectID uuid.UUID,
	) ([]*domain.StudySession, error)

	// GetByIDs retrieves the owner's sessions whose IDs appear in ids,
	// keyed by session ID. IDs that match nothing (or another owner's rows)
	// are simply absent from the map.
	GetByIDs(
		ctx context.Context,
		ownerID uuid.UUID,
		ids []uuid.UUID,
	) (map[uuid.UUID]*domain.StudySession, error)

	// WithTx returns a new StudySessionStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) StudySessionStore
}

package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/kauestudy/revise-api/internal/domain"
)

// ReviewCounts summarizes the scheduled reviews matching one grouping key,
// regardless of status. Done counts only status=done rows (skipped rows widen
// the denominator but never the numerator).
type ReviewCounts struct {
	Total int
	Done  int
}

// PercentDone returns the rounded completion percentage for the group, or
// nil when the group has no rows at all.
func (c ReviewCounts) PercentDone() *int {
	if c.Total <= 0 {
		return nil
	}
	pct := int(float64(c.Done)/float64(c.Total)*100 + 0.5)
	return &pct
}

// ScheduledReviewStore defines the interface for scheduled review persistence.
//
// Every method is scoped by owner: a mutation whose id+owner pair matches no
// row returns ErrScheduledReviewNotFound whether the row is absent or owned
// by someone else.
type ScheduledReviewStore interface {
	// Create saves a new scheduled review to the store.
	// It handles domain validation internally.
	// Review rows are normally produced by the external scheduling
	// collaborator; the engine itself never generates them.
	Create(ctx context.Context, review *domain.ScheduledReview) error

	// GetByIDAndOwner retrieves a single scheduled review by id+owner.
	// Returns ErrScheduledReviewNotFound if no row matches.
	GetByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*domain.ScheduledReview, error)

	// ListPendingByOwner retrieves all pending reviews for the owner,
	// ordered by scheduled date ascending, then cycle stage.
	// Returns an empty slice when the owner has no pending reviews.
	ListPendingByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.ScheduledReview, error)

	// ListTerminalByOwner retrieves all done and skipped reviews for the
	// owner, ordered by scheduled date descending, then cycle stage.
	// Returns an empty slice when the owner has no review history.
	ListTerminalByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.ScheduledReview, error)

	// SetStatus updates the status of the review matching id+owner.
	// Returns ErrScheduledReviewNotFound if no row matches. The write is
	// unconditional: setting a terminal status on an already-terminal row is
	// a no-op overwrite, and no status ever transitions back to pending
	// through this method.
	SetStatus(ctx context.Context, id, ownerID uuid.UUID, status domain.ReviewStatus) error

	// Postpone moves the scheduled date of the review matching id+owner
	// forward by the given number of days (negative days move it backward;
	// the value is applied as given). The status is left untouched.
	// Returns ErrScheduledReviewNotFound if no row matches.
	Postpone(ctx context.Context, id, ownerID uuid.UUID, days int) error

	// Delete permanently removes the review matching id+owner.
	// Returns ErrScheduledReviewNotFound if no row matches. Pending rows are
	// deletable; the store does not require the row to be terminal.
	Delete(ctx context.Context, id, ownerID uuid.UUID) error

	// CountsBySubject returns, for each of the given subjects, the total and
	// done counts over ALL of the owner's reviews for that subject, any
	// status. Subjects with no reviews are absent from the result map.
	CountsBySubject(
		ctx context.Context,
		ownerID uuid.UUID,
		subjectIDs []uuid.UUID,
	) (map[uuid.UUID]ReviewCounts, error)

	// CountsByOrigin returns, for each of the given origin study sessions,
	// the total and done counts over ALL of the owner's reviews originating
	// from that session, any status. Origins with no reviews are absent from
	// the result map.
	CountsByOrigin(
		ctx context.Context,
		ownerID uuid.UUID,
		originIDs []uuid.UUID,
	) (map[uuid.UUID]ReviewCounts, error)

	// WithTx returns a new ScheduledReviewStore instance that uses the
	// provided transaction. The transaction should be created and managed by
	// the caller (typically a service using RunInTransaction).
	WithTx(tx *sql.Tx) ScheduledReviewStore
}

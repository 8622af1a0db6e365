package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kauestudy/revise-api/internal/domain"
	"github.com/kauestudy/revise-api/internal/platform/logger"
	"github.com/kauestudy/revise-api/internal/store"
)

// scheduledReviewColumns is the shared select list for scheduled review queries.
const scheduledReviewColumns = `id, owner_id, subject_id, scheduled_date, stage,
	origin_session_id, status, created_at, updated_at`

// PostgresScheduledReviewStore implements the store.ScheduledReviewStore
// interface using a PostgreSQL database as the storage backend.
type PostgresScheduledReviewStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresScheduledReviewStore creates a new PostgreSQL implementation of
// the ScheduledReviewStore interface. It accepts a database connection or
// transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresScheduledReviewStore(
	db store.DBTX,
	logger *slog.Logger,
) *PostgresScheduledReviewStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresScheduledReviewStore{
		db:     db,
		logger: logger.With(slog.String("component", "scheduled_review_store")),
	}
}

// Ensure PostgresScheduledReviewStore implements store.ScheduledReviewStore interface
var _ store.ScheduledReviewStore = (*PostgresScheduledReviewStore)(nil)

// Create implements store.ScheduledReviewStore.Create
// It saves a new scheduled review to the database, handling domain validation.
// Returns store.ErrInvalidEntity if the subject or origin session doesn't
// exist (foreign key violation).
func (s *PostgresScheduledReviewStore) Create(
	ctx context.Context,
	review *domain.ScheduledReview,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := review.Validate(); err != nil {
		log.Warn("scheduled review validation failed during create",
			slog.String("error", err.Error()),
			slog.String("review_id", review.ID.String()))
		return err
	}

	query := `
		INSERT INTO scheduled_reviews (id, owner_id, subject_id, scheduled_date,
			stage, origin_session_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		review.ID,
		review.OwnerID,
		review.SubjectID,
		review.ScheduledDate,
		review.Stage,
		review.OriginSessionID,
		review.Status,
		review.CreatedAt,
		review.UpdatedAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during scheduled review creation",
				slog.String("error", err.Error()),
				slog.String("review_id", review.ID.String()),
				slog.String("subject_id", review.SubjectID.String()))
			return fmt.Errorf("%w: referenced subject or session not found",
				store.ErrInvalidEntity)
		}

		log.Error("failed to create scheduled review",
			slog.String("error", err.Error()),
			slog.String("review_id", review.ID.String()),
			slog.String("subject_id", review.SubjectID.String()))
		return MapError(err)
	}

	log.Info("scheduled review created successfully",
		slog.String("review_id", review.ID.String()),
		slog.String("subject_id", review.SubjectID.String()),
		slog.String("stage", string(review.Stage)))
	return nil
}

// GetByIDAndOwner implements store.ScheduledReviewStore.GetByIDAndOwner
// It retrieves a scheduled review by id+owner.
// Returns store.ErrScheduledReviewNotFound if no row matches, whether the
// review is absent or owned by someone else.
func (s *PostgresScheduledReviewStore) GetByIDAndOwner(
	ctx context.Context,
	id, ownerID uuid.UUID,
) (*domain.ScheduledReview, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf(`
		SELECT %s
		FROM scheduled_reviews
		WHERE id = $1 AND owner_id = $2
	`, scheduledReviewColumns)

	var review domain.ScheduledReview
	var stage, status string

	err := s.db.QueryRowContext(ctx, query, id, ownerID).Scan(
		&review.ID,
		&review.OwnerID,
		&review.SubjectID,
		&review.ScheduledDate,
		&stage,
		&review.OriginSessionID,
		&status,
		&review.CreatedAt,
		&review.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("scheduled review not found",
				slog.String("review_id", id.String()),
				slog.String("owner_id", ownerID.String()))
			return nil, store.ErrScheduledReviewNotFound
		}
		log.Error("failed to get scheduled review",
			slog.String("error", err.Error()),
			slog.String("review_id", id.String()))
		return nil, MapError(err)
	}

	review.Stage = domain.CycleStage(stage)
	review.Status = domain.ReviewStatus(status)
	return &review, nil
}

// ListPendingByOwner implements store.ScheduledReviewStore.ListPendingByOwner
// It retrieves all pending reviews for the owner, ordered by scheduled date
// ascending, then cycle stage. Returns an empty slice when nothing matches.
func (s *PostgresScheduledReviewStore) ListPendingByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
) ([]*domain.ScheduledReview, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM scheduled_reviews
		WHERE owner_id = $1 AND status = 'pending'
		ORDER BY scheduled_date, stage
	`, scheduledReviewColumns)

	return s.queryReviews(ctx, query, ownerID)
}

// ListTerminalByOwner implements store.ScheduledReviewStore.ListTerminalByOwner
// It retrieves all done and skipped reviews for the owner, ordered by
// scheduled date descending, then cycle stage. Returns an empty slice when
// the owner has no review history.
func (s *PostgresScheduledReviewStore) ListTerminalByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
) ([]*domain.ScheduledReview, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM scheduled_reviews
		WHERE owner_id = $1 AND status IN ('done', 'skipped')
		ORDER BY scheduled_date DESC, stage
	`, scheduledReviewColumns)

	return s.queryReviews(ctx, query, ownerID)
}

// SetStatus implements store.ScheduledReviewStore.SetStatus
// It overwrites the status of the review matching id+owner unconditionally.
// Returns store.ErrScheduledReviewNotFound if no row matches.
func (s *PostgresScheduledReviewStore) SetStatus(
	ctx context.Context,
	id, ownerID uuid.UUID,
	status domain.ReviewStatus,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := status.Validate(); err != nil {
		log.Warn("invalid status for review update",
			slog.String("error", err.Error()),
			slog.String("review_id", id.String()))
		return err
	}

	query := `
		UPDATE scheduled_reviews
		SET status = $1, updated_at = $2
		WHERE id = $3 AND owner_id = $4
	`

	result, err := s.db.ExecContext(ctx, query, status, time.Now().UTC(), id, ownerID)
	if err != nil {
		log.Error("failed to update review status",
			slog.String("error", err.Error()),
			slog.String("review_id", id.String()),
			slog.String("status", string(status)))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("review_id", id.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("scheduled review not found for status update",
			slog.String("review_id", id.String()),
			slog.String("owner_id", ownerID.String()))
		return store.ErrScheduledReviewNotFound
	}

	log.Info("review status updated successfully",
		slog.String("review_id", id.String()),
		slog.String("status", string(status)))
	return nil
}

// Postpone implements store.ScheduledReviewStore.Postpone
// It shifts the scheduled date of the review matching id+owner by the given
// number of days in a single statement, leaving the status untouched.
// Returns store.ErrScheduledReviewNotFound if no row matches.
func (s *PostgresScheduledReviewStore) Postpone(
	ctx context.Context,
	id, ownerID uuid.UUID,
	days int,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE scheduled_reviews
		SET scheduled_date = scheduled_date + $1 * INTERVAL '1 day', updated_at = $2
		WHERE id = $3 AND owner_id = $4
	`

	result, err := s.db.ExecContext(ctx, query, days, time.Now().UTC(), id, ownerID)
	if err != nil {
		log.Error("failed to postpone review",
			slog.String("error", err.Error()),
			slog.String("review_id", id.String()),
			slog.Int("days", days))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("review_id", id.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("scheduled review not found for postpone",
			slog.String("review_id", id.String()),
			slog.String("owner_id", ownerID.String()))
		return store.ErrScheduledReviewNotFound
	}

	log.Info("review postponed successfully",
		slog.String("review_id", id.String()),
		slog.Int("days", days))
	return nil
}

// Delete implements store.ScheduledReviewStore.Delete
// It permanently removes the review matching id+owner.
// Returns store.ErrScheduledReviewNotFound if no row matches.
func (s *PostgresScheduledReviewStore) Delete(
	ctx context.Context,
	id, ownerID uuid.UUID,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM scheduled_reviews
		WHERE id = $1 AND owner_id = $2
	`

	result, err := s.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		log.Error("failed to delete review",
			slog.String("error", err.Error()),
			slog.String("review_id", id.String()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("review_id", id.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("scheduled review not found for delete",
			slog.String("review_id", id.String()),
			slog.String("owner_id", ownerID.String()))
		return store.ErrScheduledReviewNotFound
	}

	log.Info("review deleted successfully",
		slog.String("review_id", id.String()))
	return nil
}

// CountsBySubject implements store.ScheduledReviewStore.CountsBySubject
// It aggregates total/done counts per subject over ALL of the owner's reviews,
// regardless of status. Subjects with no reviews are absent from the map.
func (s *PostgresScheduledReviewStore) CountsBySubject(
	ctx context.Context,
	ownerID uuid.UUID,
	subjectIDs []uuid.UUID,
) (map[uuid.UUID]store.ReviewCounts, error) {
	return s.queryCounts(ctx, "subject_id", ownerID, subjectIDs)
}

// CountsByOrigin implements store.ScheduledReviewStore.CountsByOrigin
// It aggregates total/done counts per origin session over ALL of the owner's
// reviews, regardless of status. Origins with no reviews are absent from
// the map.
func (s *PostgresScheduledReviewStore) CountsByOrigin(
	ctx context.Context,
	ownerID uuid.UUID,
	originIDs []uuid.UUID,
) (map[uuid.UUID]store.ReviewCounts, error) {
	return s.queryCounts(ctx, "origin_session_id", ownerID, originIDs)
}

// WithTx implements store.ScheduledReviewStore.WithTx
// It returns a new store instance backed by the given transaction.
func (s *PostgresScheduledReviewStore) WithTx(tx *sql.Tx) store.ScheduledReviewStore {
	return &PostgresScheduledReviewStore{
		db:     tx,
		logger: s.logger,
	}
}

// queryCounts aggregates total/done counts grouped by the given key column.
// The column name is one of the two fixed values used above, never user input.
func (s *PostgresScheduledReviewStore) queryCounts(
	ctx context.Context,
	keyColumn string,
	ownerID uuid.UUID,
	ids []uuid.UUID,
) (map[uuid.UUID]store.ReviewCounts, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result := make(map[uuid.UUID]store.ReviewCounts, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]interface{}, 0, len(ids)+1)
	args = append(args, ownerID)
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+2)
		args = append(args, id)
	}

	query := fmt.Sprintf(`
		SELECT %[1]s,
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'done')
		FROM scheduled_reviews
		WHERE owner_id = $1 AND %[1]s IN (%[2]s)
		GROUP BY %[1]s
	`, keyColumn, strings.Join(placeholders, ", "))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query review counts",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	for rows.Next() {
		var key uuid.UUID
		var counts store.ReviewCounts

		if err := rows.Scan(&key, &counts.Total, &counts.Done); err != nil {
			log.Error("failed to scan review counts row",
				slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		result[key] = counts
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return result, nil
}

// queryReviews runs a scheduled review select and scans the rows.
func (s *PostgresScheduledReviewStore) queryReviews(
	ctx context.Context,
	query string,
	args ...interface{},
) ([]*domain.ScheduledReview, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query scheduled reviews",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	reviews := []*domain.ScheduledReview{}
	for rows.Next() {
		var review domain.ScheduledReview
		var stage, status string

		err := rows.Scan(
			&review.ID,
			&review.OwnerID,
			&review.SubjectID,
			&review.ScheduledDate,
			&stage,
			&review.OriginSessionID,
			&status,
			&review.CreatedAt,
			&review.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to scan scheduled review row",
				slog.String("error", err.Error()))
			return nil, MapError(err)
		}

		review.Stage = domain.CycleStage(stage)
		review.Status = domain.ReviewStatus(status)
		reviews = append(reviews, &review)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return reviews, nil
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/kauestudy/revise-api/internal/domain"
	"github.com/kauestudy/revise-api/internal/platform/logger"
	"github.com/kauestudy/revise-api/internal/store"
)

// uniqueSubjectNameConstraint is the unique index guarding per-owner
// subject names.
const uniqueSubjectNameConstraint = "subjects_owner_name_key"

// PostgresSubjectStore implements the store.SubjectStore interface
// using a PostgreSQL database as the storage backend.
type PostgresSubjectStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSubjectStore creates a new PostgreSQL implementation of the SubjectStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresSubjectStore(db store.DBTX, logger *slog.Logger) *PostgresSubjectStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresSubjectStore{
		db:     db,
		logger: logger.With(slog.String("component", "subject_store")),
	}
}

// Ensure PostgresSubjectStore implements store.SubjectStore interface
var _ store.SubjectStore = (*PostgresSubjectStore)(nil)

// Create implements store.SubjectStore.Create
// It saves a new subject to the database, handling domain validation.
// Returns store.ErrSubjectExists if the owner already has a subject with the
// same name (case-insensitive).
// Returns store.ErrInvalidEntity if the owner does not exist.
func (s *PostgresSubjectStore) Create(ctx context.Context, subject *domain.Subject) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := subject.Validate(); err != nil {
		log.Warn("subject validation failed during create",
			slog.String("error", err.Error()),
			slog.String("subject_id", subject.ID.String()))
		return err
	}

	query := `
		INSERT INTO subjects (id, owner_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		subject.ID,
		subject.OwnerID,
		subject.Name,
		subject.CreatedAt,
		subject.UpdatedAt,
	)

	if err != nil {
		if IsUniqueViolation(err, uniqueSubjectNameConstraint) {
			log.Warn("subject name already exists for owner",
				slog.String("subject_id", subject.ID.String()),
				slog.String("owner_id", subject.OwnerID.String()))
			return store.ErrSubjectExists
		}

		log.Error("failed to create subject",
			slog.String("error", err.Error()),
			slog.String("subject_id", subject.ID.String()),
			slog.String("owner_id", subject.OwnerID.String()))
		return MapError(err)
	}

	log.Info("subject created successfully",
		slog.String("subject_id", subject.ID.String()),
		slog.String("owner_id", subject.OwnerID.String()))
	return nil
}

// GetByIDAndOwner implements store.SubjectStore.GetByIDAndOwner
// It retrieves a subject by id+owner.
// Returns store.ErrSubjectNotFound if no row matches, whether the subject is
// absent or owned by someone else.
func (s *PostgresSubjectStore) GetByIDAndOwner(
	ctx context.Context,
	id, ownerID uuid.UUID,
) (*domain.Subject, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, owner_id, name, created_at, updated_at
		FROM subjects
		WHERE id = $1 AND owner_id = $2
	`

	var subject domain.Subject
	err := s.db.QueryRowContext(ctx, query, id, ownerID).Scan(
		&subject.ID,
		&subject.OwnerID,
		&subject.Name,
		&subject.CreatedAt,
		&subject.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("subject not found",
				slog.String("subject_id", id.String()),
				slog.String("owner_id", ownerID.String()))
			return nil, store.ErrSubjectNotFound
		}
		log.Error("failed to get subject",
			slog.String("error", err.Error()),
			slog.String("subject_id", id.String()))
		return nil, MapError(err)
	}

	return &subject, nil
}

// ListByOwner implements store.SubjectStore.ListByOwner
// It retrieves all subjects for the owner, ordered by name.
// Returns an empty slice when the owner has no subjects.
func (s *PostgresSubjectStore) ListByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
) ([]*domain.Subject, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, owner_id, name, created_at, updated_at
		FROM subjects
		WHERE owner_id = $1
		ORDER BY lower(name)
	`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		log.Error("failed to query subjects",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	subjects := []*domain.Subject{}
	for rows.Next() {
		var subject domain.Subject
		err := rows.Scan(
			&subject.ID,
			&subject.OwnerID,
			&subject.Name,
			&subject.CreatedAt,
			&subject.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to scan subject row",
				slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		subjects = append(subjects, &subject)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return subjects, nil
}

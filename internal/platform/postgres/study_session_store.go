package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/kauestudy/revise-api/internal/domain"
	"github.com/kauestudy/revise-api/internal/platform/logger"
	"github.com/kauestudy/revise-api/internal/store"
)

// studySessionColumns is the shared select list for study session queries.
const studySessionColumns = `id, owner_id, subject_id, study_date, kind,
	minutes, topics, questions_attempted, questions_correct,
	marked_for_review, created_at`

// PostgresStudySessionStore implements the store.StudySessionStore interface
// using a PostgreSQL database as the storage backend.
type PostgresStudySessionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresStudySessionStore creates a new PostgreSQL implementation of the
// StudySessionStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresStudySessionStore(db store.DBTX, logger *slog.Logger) *PostgresStudySessionStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresStudySessionStore{
		db:     db,
		logger: logger.With(slog.String("component", "study_session_store")),
	}
}

// Ensure PostgresStudySessionStore implements store.StudySessionStore interface
var _ store.StudySessionStore = (*PostgresStudySessionStore)(nil)

// Create implements store.StudySessionStore.Create
// It saves a new study session to the database, handling domain validation.
// Returns store.ErrInvalidEntity if the subject or owner doesn't exist
// (foreign key violation).
func (s *PostgresStudySessionStore) Create(ctx context.Context, session *domain.StudySession) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := session.Validate(); err != nil {
		log.Warn("study session validation failed during create",
			slog.String("error", err.Error()),
			slog.String("session_id", session.ID.String()))
		return err
	}

	query := `
		INSERT INTO study_sessions (id, owner_id, subject_id, study_date, kind,
			minutes, topics, questions_attempted, questions_correct,
			marked_for_review, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		session.ID,
		session.OwnerID,
		session.SubjectID,
		session.StudyDate,
		session.Kind,
		session.Minutes,
		nullableText(session.Topics),
		session.QuestionsAttempted,
		session.QuestionsCorrect,
		session.MarkedForReview,
		session.CreatedAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during study session creation",
				slog.String("error", err.Error()),
				slog.String("session_id", session.ID.String()),
				slog.String("subject_id", session.SubjectID.String()))
			return fmt.Errorf("%w: subject with ID %s not found",
				store.ErrInvalidEntity, session.SubjectID)
		}

		log.Error("failed to create study session",
			slog.String("error", err.Error()),
			slog.String("session_id", session.ID.String()),
			slog.String("subject_id", session.SubjectID.String()))
		return MapError(err)
	}

	log.Info("study session created successfully",
		slog.String("session_id", session.ID.String()),
		slog.String("subject_id", session.SubjectID.String()),
		slog.String("kind", string(session.Kind)))
	return nil
}

// ListByOwner implements store.StudySessionStore.ListByOwner
// It retrieves all of the owner's study sessions, ordered by study date
// ascending. Returns an empty slice when nothing matches.
func (s *PostgresStudySessionStore) ListByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
) ([]*domain.StudySession, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM study_sessions
		WHERE owner_id = $1
		ORDER BY study_date, created_at
	`, studySessionColumns)

	return s.querySessions(ctx, query, ownerID)
}

// ListByOwnerAndSubject implements store.StudySessionStore.ListByOwnerAndSubject
// It retrieves the owner's sessions for one subject, newest first.
// Returns an empty slice when nothing matches.
func (s *PostgresStudySessionStore) ListByOwnerAndSubject(
	ctx context.Context,
	ownerID, subjectID uuid.UUID,
) ([]*domain.StudySession, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM study_sessions
		WHERE owner_id = $1 AND subject_id = $2
		ORDER BY study_date DESC, created_at DESC
	`, studySessionColumns)

	return s.querySessions(ctx, query, ownerID, subjectID)
}

// GetByIDs implements store.StudySessionStore.GetByIDs
// It retrieves the owner's sessions whose IDs appear in ids, keyed by session
// ID. IDs matching nothing (or another owner's rows) are absent from the map.
func (s *PostgresStudySessionStore) GetByIDs(
	ctx context.Context,
	ownerID uuid.UUID,
	ids []uuid.UUID,
) (map[uuid.UUID]*domain.StudySession, error) {
	result := make(map[uuid.UUID]*domain.StudySession, len(ids))
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
		SELECT %s
		FROM study_sessions
		WHERE owner_id = $1 AND id IN (%s)
	`, studySessionColumns, strings.Join(placeholders, ", "))

	sessions, err := s.querySessions(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	for _, session := range sessions {
		result[session.ID] = session
	}
	return result, nil
}

// WithTx implements store.StudySessionStore.WithTx
// It returns a new store instance backed by the given transaction.
func (s *PostgresStudySessionStore) WithTx(tx *sql.Tx) store.StudySessionStore {
	return &PostgresStudySessionStore{
		db:     tx,
		logger: s.logger,
	}
}

// querySessions runs a study session select and scans the rows.
func (s *PostgresStudySessionStore) querySessions(
	ctx context.Context,
	query string,
	args ...interface{},
) ([]*domain.StudySession, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query study sessions",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	sessions := []*domain.StudySession{}
	for rows.Next() {
		var session domain.StudySession
		var kind string
		var topics sql.NullString

		err := rows.Scan(
			&session.ID,
			&session.OwnerID,
			&session.SubjectID,
			&session.StudyDate,
			&kind,
			&session.Minutes,
			&topics,
			&session.QuestionsAttempted,
			&session.QuestionsCorrect,
			&session.MarkedForReview,
			&session.CreatedAt,
		)
		if err != nil {
			log.Error("failed to scan study session row",
				slog.String("error", err.Error()))
			return nil, MapError(err)
		}

		session.Kind = domain.SessionKind(kind)
		session.Topics = topics.String
		sessions = append(sessions, &session)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return sessions, nil
}

// nullableText maps an empty string to SQL NULL.
func nullableText(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

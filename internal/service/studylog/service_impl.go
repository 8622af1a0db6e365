package studylog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kauestudy/revise-api/internal/dateutil"
	"github.com/kauestudy/revise-api/internal/domain"
	"github.com/kauestudy/revise-api/internal/platform/logger"
	"github.com/kauestudy/revise-api/internal/store"
)

// Verify interface compliance at compile time
var _ Service = (*serviceImpl)(nil)

// serviceImpl implements the Service interface.
type serviceImpl struct {
	db           *sql.DB
	sessionStore store.StudySessionStore
	reviewStore  store.ScheduledReviewStore
	subjectStore store.SubjectStore
	logger       *slog.Logger
	runInTx      func(ctx context.Context, db *sql.DB, fn store.TxFn) error // Injectable for testing
}

// NewService creates a new studylog Service implementation. db may be nil
// only when no caller ever sets CompletedReviewID (e.g. in tests); the
// transactional path requires it.
func NewService(
	db *sql.DB,
	sessionStore store.StudySessionStore,
	reviewStore store.ScheduledReviewStore,
	subjectStore store.SubjectStore,
	logger *slog.Logger,
) Service {
	if sessionStore == nil {
		panic("sessionStore cannot be nil")
	}
	if reviewStore == nil {
		panic("reviewStore cannot be nil")
	}
	if subjectStore == nil {
		panic("subjectStore cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &serviceImpl{
		db:           db,
		sessionStore: sessionStore,
		reviewStore:  reviewStore,
		subjectStore: subjectStore,
		logger:       logger.With(slog.String("component", "studylog_service")),
		runInTx:      store.RunInTransaction,
	}
}

// LogReviewSession implements Service.LogReviewSession.
func (s *serviceImpl) LogReviewSession(
	ctx context.Context,
	input LogInput,
) (*domain.StudySession, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// The subject must exist for the caller before anything is written.
	if _, err := s.subjectStore.GetByIDAndOwner(ctx, input.SubjectID, input.OwnerID); err != nil {
		if errors.Is(err, store.ErrSubjectNotFound) {
			log.Debug("subject not found for session log",
				slog.String("subject_id", input.SubjectID.String()),
				slog.String("owner_id", input.OwnerID.String()))
			return nil, ErrSubjectNotFound
		}
		log.Error("failed to get subject for session log",
			slog.String("error", err.Error()),
			slog.String("subject_id", input.SubjectID.String()))
		return nil, fmt.Errorf("failed to get subject: %w", err)
	}

	session, err := domain.NewStudySession(
		input.OwnerID,
		input.SubjectID,
		dateutil.Normalize(input.StudyDate),
		domain.SessionKindReview,
	)
	if err != nil {
		return nil, err
	}
	session.Minutes = input.Minutes
	session.Topics = input.Topics
	session.QuestionsAttempted = input.QuestionsAttempted
	session.QuestionsCorrect = input.QuestionsCorrect
	session.MarkedForReview = input.MarkedForReview
	if err := session.Validate(); err != nil {
		return nil, err
	}

	if input.CompletedReviewID == nil {
		if err := s.sessionStore.Create(ctx, session); err != nil {
			log.Error("failed to create study session",
				slog.String("error", err.Error()),
				slog.String("session_id", session.ID.String()))
			return nil, fmt.Errorf("failed to create study session: %w", err)
		}
		return session, nil
	}

	// The session insert and the review completion stand or fall together.
	reviewID := *input.CompletedReviewID
	err = s.runInTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.sessionStore.WithTx(tx).Create(ctx, session); err != nil {
			return fmt.Errorf("failed to create study session: %w", err)
		}

		err := s.reviewStore.WithTx(tx).SetStatus(
			ctx, reviewID, input.OwnerID, domain.ReviewStatusDone)
		if err != nil {
			if errors.Is(err, store.ErrScheduledReviewNotFound) {
				return ErrReviewNotFound
			}
			return fmt.Errorf("failed to complete review: %w", err)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrReviewNotFound) {
			log.Error("failed to log review session with completion",
				slog.String("error", err.Error()),
				slog.String("session_id", session.ID.String()),
				slog.String("review_id", reviewID.String()))
		}
		return nil, err
	}

	log.Info("review session logged",
		slog.String("session_id", session.ID.String()),
		slog.String("subject_id", input.SubjectID.String()),
		slog.String("review_id", reviewID.String()))
	return session, nil
}

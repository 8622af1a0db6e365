package review

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/kauestudy/revise-api/internal/domain"
	"github.com/kauestudy/revise-api/internal/store"
)

// mockScheduledReviewStore implements store.ScheduledReviewStore with
// function fields.
type mockScheduledReviewStore struct {
	CreateFunc              func(ctx context.Context, review *domain.ScheduledReview) error
	GetByIDAndOwnerFunc     func(ctx context.Context, id, ownerID uuid.UUID) (*domain.ScheduledReview, error)
	ListPendingByOwnerFunc  func(ctx context.Context, ownerID uuid.UUID) ([]*domain.ScheduledReview, error)
	ListTerminalByOwnerFunc func(ctx context.Context, ownerID uuid.UUID) ([]*domain.ScheduledReview, error)
	SetStatusFunc           func(ctx context.Context, id, ownerID uuid.UUID, status domain.ReviewStatus) error
	PostponeFunc            func(ctx context.Context, id, ownerID uuid.UUID, days int) error
	DeleteFunc              func(ctx context.Context, id, ownerID uuid.UUID) error
	CountsBySubjectFunc     func(ctx context.Context, ownerID uuid.UUID, subjectIDs []uuid.UUID) (map[uuid.UUID]store.ReviewCounts, error)
	CountsByOriginFunc      func(ctx context.Context, ownerID uuid.UUID, originIDs []uuid.UUID) (map[uuid.UUID]store.ReviewCounts, error)
}

var _ store.ScheduledReviewStore = (*mockScheduledReviewStore)(nil)

func (m *mockScheduledReviewStore) Create(ctx context.Context, review *domain.ScheduledReview) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, review)
	}
	return nil
}

func (m *mockScheduledReviewStore) GetByIDAndOwner(
	ctx context.Context,
	id, ownerID uuid.UUID,
) (*domain.ScheduledReview, error) {
	if m.GetByIDAndOwnerFunc != nil {
		return m.GetByIDAndOwnerFunc(ctx, id, ownerID)
	}
	return nil, store.ErrScheduledReviewNotFound
}

func (m *mockScheduledReviewStore) ListPendingByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
) ([]*domain.ScheduledReview, error) {
	if m.ListPendingByOwnerFunc != nil {
		return m.ListPendingByOwnerFunc(ctx, ownerID)
	}
	return []*domain.ScheduledReview{}, nil
}

func (m *mockScheduledReviewStore) ListTerminalByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
) ([]*domain.ScheduledReview, error) {
	if m.ListTerminalByOwnerFunc != nil {
		return m.ListTerminalByOwnerFunc(ctx, ownerID)
	}
	return []*domain.ScheduledReview{}, nil
}

func (m *mockScheduledReviewStore) SetStatus(
	ctx context.Context,
	id, ownerID uuid.UUID,
	status domain.ReviewStatus,
) error {
	if m.SetStatusFunc != nil {
		return m.SetStatusFunc(ctx, id, ownerID, status)
	}
	return nil
}

func (m *mockScheduledReviewStore) Postpone(
	ctx context.Context,
	id, ownerID uuid.UUID,
	days int,
) error {
	if m.PostponeFunc != nil {
		return m.PostponeFunc(ctx, id, ownerID, days)
	}
	return nil
}

func (m *mockScheduledReviewStore) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id, ownerID)
	}
	return nil
}

func (m *mockScheduledReviewStore) CountsBySubject(
	ctx context.Context,
	ownerID uuid.UUID,
	subjectIDs []uuid.UUID,
) (map[uuid.UUID]store.ReviewCounts, error) {
	if m.CountsBySubjectFunc != nil {
		return m.CountsBySubjectFunc(ctx, ownerID, subjectIDs)
	}
	return map[uuid.UUID]store.ReviewCounts{}, nil
}

func (m *mockScheduledReviewStore) CountsByOrigin(
	ctx context.Context,
	ownerID uuid.UUID,
	originIDs []uuid.UUID,
) (map[uuid.UUID]store.ReviewCounts, error) {
	if m.CountsByOriginFunc != nil {
		return m.CountsByOriginFunc(ctx, ownerID, originIDs)
	}
	return map[uuid.UUID]store.ReviewCounts{}, nil
}

func (m *mockScheduledReviewStore) WithTx(tx *sql.Tx) store.ScheduledReviewStore {
	return m
}

// mockStudySessionStore implements store.StudySessionStore with function
// fields.
type mockStudySessionStore struct {
	GetByIDsFunc func(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]*domain.StudySession, error)
}

var _ store.StudySessionStore = (*mockStudySessionStore)(nil)

func (m *mockStudySessionStore) Create(ctx context.Context, session *domain.StudySession) error {
	return nil
}

func (m *mockStudySessionStore) ListByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
) ([]*domain.StudySession, error) {
	return []*domain.StudySession{}, nil
}

func (m *mockStudySessionStore) ListByOwnerAndSubject(
	ctx context.Context,
	ownerID, subjectID uuid.UUID,
) ([]*domain.StudySession, error) {
	return []*domain.StudySession{}, nil
}

func (m *mockStudySessionStore) GetByIDs(
	ctx context.Context,
	ownerID uuid.UUID,
	ids []uuid.UUID,
) (map[uuid.UUID]*domain.StudySession, error) {
	if m.GetByIDsFunc != nil {
		return m.GetByIDsFunc(ctx, ownerID, ids)
	}
	return map[uuid.UUID]*domain.StudySession{}, nil
}

func (m *mockStudySessionStore) WithTx(tx *sql.Tx) store.StudySessionStore {
	return m
}

// mockSubjectStore implements store.SubjectStore with function fields.
type mockSubjectStore struct {
	ListByOwnerFunc func(ctx context.Context, ownerID uuid.UUID) ([]*domain.Subject, error)
}

var _ store.SubjectStore = (*mockSubjectStore)(nil)

func (m *mockSubjectStore) Create(ctx context.Context, subject *domain.Subject) error {
	return nil
}

func (m *mockSubjectStore) GetByIDAndOwner(
	ctx context.Context,
	id, ownerID uuid.UUID,
) (*domain.Subject, error) {
	return nil, store.ErrSubjectNotFound
}

func (m *mockSubjectStore) ListByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
) ([]*domain.Subject, error) {
	if m.ListByOwnerFunc != nil {
		return m.ListByOwnerFunc(ctx, ownerID)
	}
	return []*domain.Subject{}, nil
}

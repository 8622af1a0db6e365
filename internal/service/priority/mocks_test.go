package priority

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/kauestudy/revise-api/internal/domain"
	"github.com/kauestudy/revise-api/internal/store"
)

// mockStudySessionStore implements store.StudySessionStore with function
// fields, the hand-written mock style used across the service tests.
type mockStudySessionStore struct {
	CreateFunc                func(ctx context.Context, session *domain.StudySession) error
	ListByOwnerFunc           func(ctx context.Context, ownerID uuid.UUID) ([]*domain.StudySession, error)
	ListByOwnerAndSubjectFunc func(ctx context.Context, ownerID, subjectID uuid.UUID) ([]*domain.StudySession, error)
	GetByIDsFunc              func(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]*domain.StudySession, error)
}

var _ store.StudySessionStore = (*mockStudySessionStore)(nil)

func (m *mockStudySessionStore) Create(ctx context.Context, session *domain.StudySession) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, session)
	}
	return nil
}

func (m *mockStudySessionStore) ListByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
) ([]*domain.StudySession, error) {
	if m.ListByOwnerFunc != nil {
		return m.ListByOwnerFunc(ctx, ownerID)
	}
	return []*domain.StudySession{}, nil
}

func (m *mockStudySessionStore) ListByOwnerAndSubject(
	ctx context.Context,
	ownerID, subjectID uuid.UUID,
) ([]*domain.StudySession, error) {
	if m.ListByOwnerAndSubjectFunc != nil {
		return m.ListByOwnerAndSubjectFunc(ctx, ownerID, subjectID)
	}
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
	CreateFunc          func(ctx context.Context, subject *domain.Subject) error
	GetByIDAndOwnerFunc func(ctx context.Context, id, ownerID uuid.UUID) (*domain.Subject, error)
	ListByOwnerFunc     func(ctx context.Context, ownerID uuid.UUID) ([]*domain.Subject, error)
}

var _ store.SubjectStore = (*mockSubjectStore)(nil)

func (m *mockSubjectStore) Create(ctx context.Context, subject *domain.Subject) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, subject)
	}
	return nil
}

func (m *mockSubjectStore) GetByIDAndOwner(
	ctx context.Context,
	id, ownerID uuid.UUID,
) (*domain.Subject, error) {
	if m.GetByIDAndOwnerFunc != nil {
		return m.GetByIDAndOwnerFunc(ctx, id, ownerID)
	}
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

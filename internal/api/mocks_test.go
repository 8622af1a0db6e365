package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kauestudy/revise-api/internal/api/shared"
	"github.com/kauestudy/revise-api/internal/domain"
	"github.com/kauestudy/revise-api/internal/service/priority"
	"github.com/kauestudy/revise-api/internal/service/review"
	"github.com/kauestudy/revise-api/internal/service/studylog"
	"github.com/kauestudy/revise-api/internal/service/subject"
)

// mockUserStore implements store.UserStore with function fields.
type mockUserStore struct {
	CreateFunc     func(ctx context.Context, user *domain.User) error
	GetByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
}

func (m *mockUserStore) Create(ctx context.Context, user *domain.User) error {
	return m.CreateFunc(ctx, user)
}

func (m *mockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.GetByEmailFunc(ctx, email)
}

// mockReviewService implements review.Service with function fields.
type mockReviewService struct {
	CompleteFunc  func(ctx context.Context, id, ownerID uuid.UUID) error
	SkipFunc      func(ctx context.Context, id, ownerID uuid.UUID) error
	SnoozeFunc    func(ctx context.Context, id, ownerID uuid.UUID, days int) error
	DeleteFunc    func(ctx context.Context, id, ownerID uuid.UUID) error
	DashboardFunc func(ctx context.Context, ownerID uuid.UUID, today time.Time) (*review.Dashboard, error)
	HistoryFunc   func(ctx context.Context, ownerID uuid.UUID) ([]review.HistoryItem, error)
}

func (m *mockReviewService) Complete(ctx context.Context, id, ownerID uuid.UUID) error {
	return m.CompleteFunc(ctx, id, ownerID)
}

func (m *mockReviewService) Skip(ctx context.Context, id, ownerID uuid.UUID) error {
	return m.SkipFunc(ctx, id, ownerID)
}

func (m *mockReviewService) Snooze(ctx context.Context, id, ownerID uuid.UUID, days int) error {
	return m.SnoozeFunc(ctx, id, ownerID, days)
}

func (m *mockReviewService) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	return m.DeleteFunc(ctx, id, ownerID)
}

func (m *mockReviewService) Dashboard(
	ctx context.Context,
	ownerID uuid.UUID,
	today time.Time,
) (*review.Dashboard, error) {
	return m.DashboardFunc(ctx, ownerID, today)
}

func (m *mockReviewService) History(
	ctx context.Context,
	ownerID uuid.UUID,
) ([]review.HistoryItem, error) {
	return m.HistoryFunc(ctx, ownerID)
}

// mockPriorityService implements priority.Service with function fields.
type mockPriorityService struct {
	GetRankingFunc    func(ctx context.Context, ownerID uuid.UUID) (*priority.Ranking, error)
	SubjectDetailFunc func(ctx context.Context, ownerID, subjectID uuid.UUID) (*priority.SubjectDetail, error)
}

func (m *mockPriorityService) GetRanking(
	ctx context.Context,
	ownerID uuid.UUID,
) (*priority.Ranking, error) {
	return m.GetRankingFunc(ctx, ownerID)
}

func (m *mockPriorityService) SubjectDetail(
	ctx context.Context,
	ownerID, subjectID uuid.UUID,
) (*priority.SubjectDetail, error) {
	return m.SubjectDetailFunc(ctx, ownerID, subjectID)
}

var _ subject.Service = (*mockSubjectService)(nil)

// mockSubjectService implements subject.Service with function fields.
type mockSubjectService struct {
	ListFunc   func(ctx context.Context, ownerID uuid.UUID) ([]*domain.Subject, error)
	CreateFunc func(ctx context.Context, ownerID uuid.UUID, name string) (*domain.Subject, error)
}

func (m *mockSubjectService) List(
	ctx context.Context,
	ownerID uuid.UUID,
) ([]*domain.Subject, error) {
	return m.ListFunc(ctx, ownerID)
}

func (m *mockSubjectService) Create(
	ctx context.Context,
	ownerID uuid.UUID,
	name string,
) (*domain.Subject, error) {
	return m.CreateFunc(ctx, ownerID, name)
}

// mockStudylogService implements studylog.Service with function fields.
type mockStudylogService struct {
	LogReviewSessionFunc func(ctx context.Context, input studylog.LogInput) (*domain.StudySession, error)
}

func (m *mockStudylogService) LogReviewSession(
	ctx context.Context,
	input studylog.LogInput,
) (*domain.StudySession, error) {
	return m.LogReviewSessionFunc(ctx, input)
}

// authenticate returns the request with userID injected into the context the
// way the auth middleware does.
func authenticate(r *http.Request, userID uuid.UUID) *http.Request {
	ctx := context.WithValue(r.Context(), shared.UserIDContextKey, userID)
	return r.WithContext(ctx)
}

// withPathID attaches a chi route context carrying {id} so handlers can read
// the path parameter without a full router.
func withPathID(r *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// newRecorder shortens the httptest boilerplate.
func newRecorder() *httptest.ResponseRecorder {
	return httptest.NewRecorder()
}

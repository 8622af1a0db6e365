package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kauestudy/revise-api/internal/domain"
	"github.com/kauestudy/revise-api/internal/service/priority"
	"github.com/kauestudy/revise-api/internal/service/subject"
)

func newSubjectHandler(
	subjectSvc *mockSubjectService,
	prioritySvc *mockPriorityService,
) *SubjectHandler {
	return NewSubjectHandler(subjectSvc, prioritySvc, slog.Default())
}

func TestSubjectHandlerList(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	svc := &mockSubjectService{
		ListFunc: func(ctx context.Context, ownerID uuid.UUID) ([]*domain.Subject, error) {
			return []*domain.Subject{
				{ID: uuid.New(), OwnerID: ownerID, Name: "Biologia"},
				{ID: uuid.New(), OwnerID: ownerID, Name: "Química"},
			}, nil
		},
	}
	h := newSubjectHandler(svc, &mockPriorityService{})

	req := authenticate(httptest.NewRequest(http.MethodGet, "/api/subjects", nil), userID)
	w := newRecorder()

	h.List(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var got []domain.Subject
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Biologia", got[0].Name)
}

func TestSubjectHandlerCreate(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("success", func(t *testing.T) {
		svc := &mockSubjectService{
			CreateFunc: func(ctx context.Context, ownerID uuid.UUID, name string) (*domain.Subject, error) {
				return &domain.Subject{ID: uuid.New(), OwnerID: ownerID, Name: name}, nil
			},
		}
		h := newSubjectHandler(svc, &mockPriorityService{})

		req := authenticate(postJSON("/api/subjects", `{"name":"Física"}`), userID)
		w := newRecorder()

		h.Create(w, req)

		require.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "Física")
	})

	t.Run("duplicate name", func(t *testing.T) {
		svc := &mockSubjectService{
			CreateFunc: func(ctx context.Context, ownerID uuid.UUID, name string) (*domain.Subject, error) {
				return nil, subject.ErrSubjectExists
			},
		}
		h := newSubjectHandler(svc, &mockPriorityService{})

		req := authenticate(postJSON("/api/subjects", `{"name":"Física"}`), userID)
		w := newRecorder()

		h.Create(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("blank name rejected", func(t *testing.T) {
		h := newSubjectHandler(&mockSubjectService{}, &mockPriorityService{})

		req := authenticate(postJSON("/api/subjects", `{"name":""}`), userID)
		w := newRecorder()

		h.Create(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSubjectHandlerReviewDetail(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	subjectID := uuid.New()

	t.Run("success", func(t *testing.T) {
		svc := &mockPriorityService{
			SubjectDetailFunc: func(ctx context.Context, ownerID, sid uuid.UUID) (*priority.SubjectDetail, error) {
				assert.Equal(t, userID, ownerID)
				assert.Equal(t, subjectID, sid)
				return &priority.SubjectDetail{
					SubjectID:   sid,
					SubjectName: "Biologia",
					Summary:     priority.DetailSummary{TotalMinutes: 120, TotalHours: 2.0},
				}, nil
			},
		}
		h := newSubjectHandler(&mockSubjectService{}, svc)

		req := httptest.NewRequest(http.MethodGet, "/api/subjects/"+subjectID.String()+"/review-detail", nil)
		req = withPathID(authenticate(req, userID), subjectID.String())
		w := newRecorder()

		h.ReviewDetail(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var got priority.SubjectDetail
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "Biologia", got.SubjectName)
		assert.Equal(t, 2.0, got.Summary.TotalHours)
	})

	t.Run("not found", func(t *testing.T) {
		svc := &mockPriorityService{
			SubjectDetailFunc: func(ctx context.Context, ownerID, sid uuid.UUID) (*priority.SubjectDetail, error) {
				return nil, priority.ErrSubjectNotFound
			},
		}
		h := newSubjectHandler(&mockSubjectService{}, svc)

		req := httptest.NewRequest(http.MethodGet, "/api/subjects/"+subjectID.String()+"/review-detail", nil)
		req = withPathID(authenticate(req, userID), subjectID.String())
		w := newRecorder()

		h.ReviewDetail(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Subject not found")
	})
}

package review

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kauestudy/revise-api/internal/dateutil"
	"github.com/kauestudy/revise-api/internal/domain"
	"github.com/kauestudy/revise-api/internal/store"
)

func date(s string) time.Time {
	t, err := dateutil.ParseISO(s)
	if err != nil {
		panic(err)
	}
	return t
}

func intPtr(v int) *int { return &v }

func pendingReview(
	ownerID, subjectID uuid.UUID,
	day string,
	stage domain.CycleStage,
	origin *uuid.UUID,
) *domain.ScheduledReview {
	return &domain.ScheduledReview{
		ID:              uuid.New(),
		OwnerID:         ownerID,
		SubjectID:       subjectID,
		ScheduledDate:   date(day),
		Stage:           stage,
		OriginSessionID: origin,
		Status:          domain.ReviewStatusPending,
	}
}

func TestDashboardPartition(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	subjectID := uuid.New()
	today := "2026-06-15"

	todayRow := pendingReview(ownerID, subjectID, today, domain.CycleStageR1, nil)
	overdueRow := pendingReview(ownerID, subjectID, "2026-06-12", domain.CycleStageR2, nil)
	futureRow := pendingReview(ownerID, subjectID, "2026-06-20", domain.CycleStageR3, nil)

	reviews := &mockScheduledReviewStore{
		ListPendingByOwnerFunc: func(
			ctx context.Context,
			id uuid.UUID,
		) ([]*domain.ScheduledReview, error) {
			return []*domain.ScheduledReview{overdueRow, todayRow, futureRow}, nil
		},
	}
	subjects := &mockSubjectStore{
		ListByOwnerFunc: func(ctx context.Context, id uuid.UUID) ([]*domain.Subject, error) {
			return []*domain.Subject{{ID: subjectID, OwnerID: ownerID, Name: "Chemistry"}}, nil
		},
	}

	svc := NewService(reviews, &mockStudySessionStore{}, subjects, nil)
	dashboard, err := svc.Dashboard(context.Background(), ownerID, date(today))
	require.NoError(t, err)

	// Exactly one bucket per pending row: a review dated today is in the
	// today bucket, not overdue nor future.
	require.Len(t, dashboard.Today, 1)
	require.Len(t, dashboard.Overdue, 1)
	require.Len(t, dashboard.Future, 1)

	assert.Equal(t, todayRow.ID, dashboard.Today[0].ID)
	assert.Zero(t, dashboard.Today[0].DaysLate)
	assert.Equal(t, "2026-06-15", dashboard.Today[0].ScheduledDate)

	assert.Equal(t, overdueRow.ID, dashboard.Overdue[0].ID)
	assert.Equal(t, 3, dashboard.Overdue[0].DaysLate)
	assert.Equal(t, "12/06/2026", dashboard.Overdue[0].DateLabel)
	assert.Equal(t, "2026-06-12", dashboard.Overdue[0].ScheduledDate)

	require.Len(t, dashboard.Future[0].Contents, 1)
	futureReviews := dashboard.Future[0].Contents[0].Reviews
	require.Len(t, futureReviews, 1)
	assert.Equal(t, futureRow.ID, futureReviews[0].ID)
	assert.Equal(t, 5, futureReviews[0].DaysRemaining)
	assert.Equal(t, "2026-06-20", futureReviews[0].ScheduledDate)
	assert.Equal(t, "Chemistry", dashboard.Future[0].SubjectName)
}

func TestDashboardContentGrouping(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	subjectID := uuid.New()
	originA := uuid.New()
	originB := uuid.New()

	// Two linked origins plus two unlinked rows: the unlinked rows collapse
	// into one synthetic group, not into either origin group.
	rows := []*domain.ScheduledReview{
		pendingReview(ownerID, subjectID, "2026-06-16", domain.CycleStageR1, &originA),
		pendingReview(ownerID, subjectID, "2026-06-17", domain.CycleStageR1, &originB),
		pendingReview(ownerID, subjectID, "2026-06-18", domain.CycleStageR2, nil),
		pendingReview(ownerID, subjectID, "2026-06-19", domain.CycleStageR3, nil),
		pendingReview(ownerID, subjectID, "2026-06-21", domain.CycleStageR2, &originA),
	}

	minutes := 45
	reviews := &mockScheduledReviewStore{
		ListPendingByOwnerFunc: func(
			ctx context.Context,
			id uuid.UUID,
		) ([]*domain.ScheduledReview, error) {
			return rows, nil
		},
	}
	sessions := &mockStudySessionStore{
		GetByIDsFunc: func(
			ctx context.Context,
			owner uuid.UUID,
			ids []uuid.UUID,
		) (map[uuid.UUID]*domain.StudySession, error) {
			assert.ElementsMatch(t, []uuid.UUID{originA, originB}, ids)
			return map[uuid.UUID]*domain.StudySession{
				originA: {
					ID:                 originA,
					OwnerID:            owner,
					SubjectID:          subjectID,
					Topics:             "organic chemistry",
					Minutes:            &minutes,
					QuestionsAttempted: intPtr(30),
					QuestionsCorrect:   intPtr(21),
				},
			}, nil
		},
	}
	subjects := &mockSubjectStore{
		ListByOwnerFunc: func(ctx context.Context, id uuid.UUID) ([]*domain.Subject, error) {
			return []*domain.Subject{{ID: subjectID, OwnerID: ownerID, Name: "Chemistry"}}, nil
		},
	}

	svc := NewService(reviews, sessions, subjects, nil)
	dashboard, err := svc.Dashboard(context.Background(), ownerID, date("2026-06-15"))
	require.NoError(t, err)

	require.Len(t, dashboard.Future, 1)
	group := dashboard.Future[0]
	assert.Equal(t, 5, group.PendingCount)

	// Three content groups in first-seen order: originA, originB, synthetic.
	require.Len(t, group.Contents, 3)

	require.NotNil(t, group.Contents[0].OriginSessionID)
	assert.Equal(t, originA, *group.Contents[0].OriginSessionID)
	assert.Equal(t, "organic chemistry", group.Contents[0].Topics)
	assert.Len(t, group.Contents[0].Reviews, 2)

	require.NotNil(t, group.Contents[1].OriginSessionID)
	assert.Equal(t, originB, *group.Contents[1].OriginSessionID)
	// originB's session was not returned by the batch fetch: display fields
	// stay empty but the group still exists.
	assert.Empty(t, group.Contents[1].Topics)

	assert.Nil(t, group.Contents[2].OriginSessionID)
	assert.Len(t, group.Contents[2].Reviews, 2, "both unlinked rows share the synthetic group")
}

func TestDashboardProgressPercentages(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	subjectID := uuid.New()
	origin := uuid.New()

	reviews := &mockScheduledReviewStore{
		ListPendingByOwnerFunc: func(
			ctx context.Context,
			id uuid.UUID,
		) ([]*domain.ScheduledReview, error) {
			return []*domain.ScheduledReview{
				pendingReview(ownerID, subjectID, "2026-06-20", domain.CycleStageR4, &origin),
			}, nil
		},
		CountsBySubjectFunc: func(
			ctx context.Context,
			owner uuid.UUID,
			subjectIDs []uuid.UUID,
		) (map[uuid.UUID]store.ReviewCounts, error) {
			assert.Equal(t, []uuid.UUID{subjectID}, subjectIDs)
			// Denominator spans the subject's whole history, any status.
			return map[uuid.UUID]store.ReviewCounts{
				subjectID: {Total: 10, Done: 7},
			}, nil
		},
		CountsByOriginFunc: func(
			ctx context.Context,
			owner uuid.UUID,
			originIDs []uuid.UUID,
		) (map[uuid.UUID]store.ReviewCounts, error) {
			assert.Equal(t, []uuid.UUID{origin}, originIDs)
			return map[uuid.UUID]store.ReviewCounts{
				origin: {Total: 5, Done: 3},
			}, nil
		},
	}

	svc := NewService(reviews, &mockStudySessionStore{}, &mockSubjectStore{}, nil)
	dashboard, err := svc.Dashboard(context.Background(), ownerID, date("2026-06-15"))
	require.NoError(t, err)

	require.Len(t, dashboard.Future, 1)
	require.NotNil(t, dashboard.Future[0].PercentDone)
	assert.Equal(t, 70, *dashboard.Future[0].PercentDone)

	require.Len(t, dashboard.Future[0].Contents, 1)
	require.NotNil(t, dashboard.Future[0].Contents[0].PercentDone)
	assert.Equal(t, 60, *dashboard.Future[0].Contents[0].PercentDone)
}

func TestDashboardProgressNilWhenNoCounts(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	subjectID := uuid.New()

	reviews := &mockScheduledReviewStore{
		ListPendingByOwnerFunc: func(
			ctx context.Context,
			id uuid.UUID,
		) ([]*domain.ScheduledReview, error) {
			return []*domain.ScheduledReview{
				pendingReview(ownerID, subjectID, "2026-06-20", domain.CycleStageR1, nil),
			}, nil
		},
		// No counts at all: percent must be nil, not zero.
	}

	svc := NewService(reviews, &mockStudySessionStore{}, &mockSubjectStore{}, nil)
	dashboard, err := svc.Dashboard(context.Background(), ownerID, date("2026-06-15"))
	require.NoError(t, err)

	require.Len(t, dashboard.Future, 1)
	assert.Nil(t, dashboard.Future[0].PercentDone)
	assert.Nil(t, dashboard.Future[0].Contents[0].PercentDone)
}

func TestDashboardSubjectOrderingIsLocaleAware(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	idA, idB, idC := uuid.New(), uuid.New(), uuid.New()

	reviews := &mockScheduledReviewStore{
		ListPendingByOwnerFunc: func(
			ctx context.Context,
			id uuid.UUID,
		) ([]*domain.ScheduledReview, error) {
			return []*domain.ScheduledReview{
				pendingReview(ownerID, idA, "2026-06-20", domain.CycleStageR1, nil),
				pendingReview(ownerID, idB, "2026-06-21", domain.CycleStageR1, nil),
				pendingReview(ownerID, idC, "2026-06-22", domain.CycleStageR1, nil),
			}, nil
		},
	}
	subjects := &mockSubjectStore{
		ListByOwnerFunc: func(ctx context.Context, id uuid.UUID) ([]*domain.Subject, error) {
			return []*domain.Subject{
				{ID: idA, OwnerID: ownerID, Name: "química"},
				{ID: idB, OwnerID: ownerID, Name: "Álgebra"},
				{ID: idC, OwnerID: ownerID, Name: "biologia"},
			}, nil
		},
	}

	svc := NewService(reviews, &mockStudySessionStore{}, subjects, nil)
	dashboard, err := svc.Dashboard(context.Background(), ownerID, date("2026-06-15"))
	require.NoError(t, err)

	// Accent-insensitive: Álgebra sorts before biologia, not after química
	// the way raw byte order would put it.
	require.Len(t, dashboard.Future, 3)
	assert.Equal(t, "Álgebra", dashboard.Future[0].SubjectName)
	assert.Equal(t, "biologia", dashboard.Future[1].SubjectName)
	assert.Equal(t, "química", dashboard.Future[2].SubjectName)
}

func TestDashboardEmpty(t *testing.T) {
	t.Parallel()

	svc := NewService(
		&mockScheduledReviewStore{},
		&mockStudySessionStore{},
		&mockSubjectStore{},
		nil,
	)
	dashboard, err := svc.Dashboard(context.Background(), uuid.New(), time.Time{})
	require.NoError(t, err)
	assert.Empty(t, dashboard.Today)
	assert.Empty(t, dashboard.Overdue)
	assert.Empty(t, dashboard.Future)
}

func TestHistory(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	subjectID := uuid.New()
	origin := uuid.New()

	done := pendingReview(ownerID, subjectID, "2026-06-10", domain.CycleStageR2, &origin)
	done.Status = domain.ReviewStatusDone
	skipped := pendingReview(ownerID, subjectID, "2026-06-05", domain.CycleStageR1, nil)
	skipped.Status = domain.ReviewStatusSkipped

	reviews := &mockScheduledReviewStore{
		ListTerminalByOwnerFunc: func(
			ctx context.Context,
			id uuid.UUID,
		) ([]*domain.ScheduledReview, error) {
			return []*domain.ScheduledReview{done, skipped}, nil
		},
	}
	sessions := &mockStudySessionStore{
		GetByIDsFunc: func(
			ctx context.Context,
			owner uuid.UUID,
			ids []uuid.UUID,
		) (map[uuid.UUID]*domain.StudySession, error) {
			return map[uuid.UUID]*domain.StudySession{
				origin: {ID: origin, OwnerID: owner, SubjectID: subjectID, Topics: "stoichiometry"},
			}, nil
		},
	}
	subjects := &mockSubjectStore{
		ListByOwnerFunc: func(ctx context.Context, id uuid.UUID) ([]*domain.Subject, error) {
			return []*domain.Subject{{ID: subjectID, OwnerID: ownerID, Name: "Chemistry"}}, nil
		},
	}

	svc := NewService(reviews, sessions, subjects, nil)
	history, err := svc.History(context.Background(), ownerID)
	require.NoError(t, err)

	require.Len(t, history, 2)
	assert.Equal(t, domain.ReviewStatusDone, history[0].Status)
	assert.Equal(t, "stoichiometry", history[0].Topics)
	assert.Equal(t, domain.ReviewStatusSkipped, history[1].Status)
	assert.Empty(t, history[1].Topics)
	assert.Equal(t, "Chemistry", history[1].SubjectName)
}

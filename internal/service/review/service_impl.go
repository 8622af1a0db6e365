package review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/kauestudy/revise-api/internal/dateutil"
	"github.com/kauestudy/revise-api/internal/domain"
	"github.com/kauestudy/revise-api/internal/platform/logger"
	"github.com/kauestudy/revise-api/internal/store"
)

// Verify interface compliance at compile time
var _ Service = (*serviceImpl)(nil)

// serviceImpl implements the Service interface.
type serviceImpl struct {
	reviewStore  store.ScheduledReviewStore
	sessionStore store.StudySessionStore
	subjectStore store.SubjectStore
	collator     *collate.Collator
	logger       *slog.Logger
	today        func() time.Time // Injectable for testing
}

// NewService creates a new review Service implementation.
func NewService(
	reviewStore store.ScheduledReviewStore,
	sessionStore store.StudySessionStore,
	subjectStore store.SubjectStore,
	logger *slog.Logger,
) Service {
	if reviewStore == nil {
		panic("reviewStore cannot be nil")
	}
	if sessionStore == nil {
		panic("sessionStore cannot be nil")
	}
	if subjectStore == nil {
		panic("subjectStore cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &serviceImpl{
		reviewStore:  reviewStore,
		sessionStore: sessionStore,
		subjectStore: subjectStore,
		// Subject groups display in Brazilian Portuguese alphabetical order,
		// ignoring case and accents.
		collator: collate.New(language.BrazilianPortuguese, collate.Loose),
		logger:   logger.With(slog.String("component", "review_service")),
		today:    dateutil.Today,
	}
}

// Complete implements Service.Complete.
func (s *serviceImpl) Complete(ctx context.Context, id, ownerID uuid.UUID) error {
	return s.setStatus(ctx, id, ownerID, domain.ReviewStatusDone)
}

// Skip implements Service.Skip.
func (s *serviceImpl) Skip(ctx context.Context, id, ownerID uuid.UUID) error {
	return s.setStatus(ctx, id, ownerID, domain.ReviewStatusSkipped)
}

// setStatus applies one terminal status to one review, owner-scoped. The
// write is a last-write-wins overwrite: already-terminal rows are not
// special-cased.
func (s *serviceImpl) setStatus(
	ctx context.Context,
	id, ownerID uuid.UUID,
	status domain.ReviewStatus,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := s.reviewStore.SetStatus(ctx, id, ownerID, status)
	if err != nil {
		if errors.Is(err, store.ErrScheduledReviewNotFound) {
			log.Debug("review not found for status change",
				slog.String("review_id", id.String()),
				slog.String("owner_id", ownerID.String()),
				slog.String("status", string(status)))
			return ErrReviewNotFound
		}
		log.Error("failed to change review status",
			slog.String("error", err.Error()),
			slog.String("review_id", id.String()),
			slog.String("status", string(status)))
		return fmt.Errorf("failed to update review status: %w", err)
	}

	return nil
}

// Snooze implements Service.Snooze.
func (s *serviceImpl) Snooze(ctx context.Context, id, ownerID uuid.UUID, days int) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := s.reviewStore.Postpone(ctx, id, ownerID, days)
	if err != nil {
		if errors.Is(err, store.ErrScheduledReviewNotFound) {
			log.Debug("review not found for snooze",
				slog.String("review_id", id.String()),
				slog.String("owner_id", ownerID.String()))
			return ErrReviewNotFound
		}
		log.Error("failed to snooze review",
			slog.String("error", err.Error()),
			slog.String("review_id", id.String()),
			slog.Int("days", days))
		return fmt.Errorf("failed to snooze review: %w", err)
	}

	return nil
}

// Delete implements Service.Delete.
func (s *serviceImpl) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := s.reviewStore.Delete(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, store.ErrScheduledReviewNotFound) {
			log.Debug("review not found for delete",
				slog.String("review_id", id.String()),
				slog.String("owner_id", ownerID.String()))
			return ErrReviewNotFound
		}
		log.Error("failed to delete review",
			slog.String("error", err.Error()),
			slog.String("review_id", id.String()))
		return fmt.Errorf("failed to delete review: %w", err)
	}

	return nil
}

// Dashboard implements Service.Dashboard.
//
// The view is assembled from independent repository reads (pending rows,
// subjects, origin sessions, progress counts) that are not one transaction;
// a concurrent mutation between reads can leave one item's displayed origin
// data slightly stale. Acceptable for a single-user tool.
func (s *serviceImpl) Dashboard(
	ctx context.Context,
	ownerID uuid.UUID,
	today time.Time,
) (*Dashboard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if today.IsZero() {
		today = s.today()
	}
	today = dateutil.Normalize(today)

	pending, err := s.reviewStore.ListPendingByOwner(ctx, ownerID)
	if err != nil {
		log.Error("failed to list pending reviews",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, fmt.Errorf("failed to list pending reviews: %w", err)
	}

	names, err := s.subjectNames(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	origins, err := s.originSessions(ctx, ownerID, pending)
	if err != nil {
		return nil, err
	}

	dashboard := &Dashboard{
		Today:   []Item{},
		Overdue: []Item{},
		Future:  []SubjectGroup{},
	}

	// Order-preserving builders: groups appear in the date-ascending order
	// the fetch produced, with only the subject level re-sorted afterwards.
	type contentBuilder struct {
		group *ContentGroup
	}
	type subjectBuilder struct {
		subjectID uuid.UUID
		name      string
		contents  []*contentBuilder
		byKey     map[string]*contentBuilder
	}
	var subjectOrder []*subjectBuilder
	subjectsByID := make(map[uuid.UUID]*subjectBuilder)

	for _, r := range pending {
		date := dateutil.Normalize(r.ScheduledDate)
		item := s.buildItem(r, names, origins)

		switch {
		case date.Equal(today):
			dashboard.Today = append(dashboard.Today, item)
		case date.Before(today):
			item.DaysLate = dateutil.DaysBetween(date, today)
			dashboard.Overdue = append(dashboard.Overdue, item)
		default:
			sb, ok := subjectsByID[r.SubjectID]
			if !ok {
				sb = &subjectBuilder{
					subjectID: r.SubjectID,
					name:      item.SubjectName,
					byKey:     make(map[string]*contentBuilder),
				}
				subjectsByID[r.SubjectID] = sb
				subjectOrder = append(subjectOrder, sb)
			}

			// Unlinked reviews for a subject collapse into one synthetic
			// group rather than one group per review.
			key := "unlinked:" + r.SubjectID.String()
			if r.OriginSessionID != nil {
				key = r.OriginSessionID.String()
			}

			cb, ok := sb.byKey[key]
			if !ok {
				cb = &contentBuilder{
					group: &ContentGroup{
						OriginSessionID:    r.OriginSessionID,
						Topics:             item.Topics,
						Minutes:            item.Minutes,
						QuestionsAttempted: item.QuestionsAttempted,
						QuestionsCorrect:   item.QuestionsCorrect,
						Reviews:            []FutureReview{},
					},
				}
				sb.byKey[key] = cb
				sb.contents = append(sb.contents, cb)
			}

			cb.group.Reviews = append(cb.group.Reviews, FutureReview{
				ID:              r.ID,
				Stage:           r.Stage,
				ScheduledDate:   dateutil.FormatISO(date),
				DateLabel:       dateutil.FormatLabel(date),
				DaysRemaining:   dateutil.DaysBetween(today, date),
				OriginSessionID: r.OriginSessionID,
			})
		}
	}

	// Progress counts run over ALL of the subject's (and origin's) reviews,
	// any status: completed history moves the percentage even when nothing
	// new is scheduled.
	subjectIDs := make([]uuid.UUID, 0, len(subjectOrder))
	originIDSet := make(map[uuid.UUID]struct{})
	for _, sb := range subjectOrder {
		subjectIDs = append(subjectIDs, sb.subjectID)
		for _, cb := range sb.contents {
			if cb.group.OriginSessionID != nil {
				originIDSet[*cb.group.OriginSessionID] = struct{}{}
			}
		}
	}
	originIDs := make([]uuid.UUID, 0, len(originIDSet))
	for id := range originIDSet {
		originIDs = append(originIDs, id)
	}

	subjectCounts, err := s.reviewStore.CountsBySubject(ctx, ownerID, subjectIDs)
	if err != nil {
		log.Error("failed to aggregate subject progress",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, fmt.Errorf("failed to aggregate subject progress: %w", err)
	}
	originCounts, err := s.reviewStore.CountsByOrigin(ctx, ownerID, originIDs)
	if err != nil {
		log.Error("failed to aggregate content progress",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, fmt.Errorf("failed to aggregate content progress: %w", err)
	}

	for _, sb := range subjectOrder {
		group := SubjectGroup{
			SubjectID:   sb.subjectID,
			SubjectName: sb.name,
			AccentColor: AccentColor(sb.name, sb.subjectID),
			PercentDone: subjectCounts[sb.subjectID].PercentDone(),
			Contents:    make([]ContentGroup, 0, len(sb.contents)),
		}
		for _, cb := range sb.contents {
			if cb.group.OriginSessionID != nil {
				cb.group.PercentDone = originCounts[*cb.group.OriginSessionID].PercentDone()
			}
			group.PendingCount += len(cb.group.Reviews)
			group.Contents = append(group.Contents, *cb.group)
		}
		dashboard.Future = append(dashboard.Future, group)
	}

	sort.SliceStable(dashboard.Future, func(i, j int) bool {
		return s.collator.CompareString(
			dashboard.Future[i].SubjectName,
			dashboard.Future[j].SubjectName,
		) < 0
	})

	log.Debug("assembled review dashboard",
		slog.String("owner_id", ownerID.String()),
		slog.Int("today", len(dashboard.Today)),
		slog.Int("overdue", len(dashboard.Overdue)),
		slog.Int("future_subjects", len(dashboard.Future)))

	return dashboard, nil
}

// History implements Service.History.
func (s *serviceImpl) History(ctx context.Context, ownerID uuid.UUID) ([]HistoryItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	terminal, err := s.reviewStore.ListTerminalByOwner(ctx, ownerID)
	if err != nil {
		log.Error("failed to list review history",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, fmt.Errorf("failed to list review history: %w", err)
	}

	names, err := s.subjectNames(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	origins, err := s.originSessions(ctx, ownerID, terminal)
	if err != nil {
		return nil, err
	}

	history := make([]HistoryItem, 0, len(terminal))
	for _, r := range terminal {
		history = append(history, HistoryItem{
			Item:   s.buildItem(r, names, origins),
			Status: r.Status,
		})
	}

	return history, nil
}

// subjectNames maps the owner's subject IDs to display names.
func (s *serviceImpl) subjectNames(
	ctx context.Context,
	ownerID uuid.UUID,
) (map[uuid.UUID]string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	subjects, err := s.subjectStore.ListByOwner(ctx, ownerID)
	if err != nil {
		log.Error("failed to list subjects",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}

	names := make(map[uuid.UUID]string, len(subjects))
	for _, subject := range subjects {
		names[subject.ID] = subject.Name
	}
	return names, nil
}

// originSessions batch-fetches the origin study sessions referenced by the
// given reviews, owner-scoped.
func (s *serviceImpl) originSessions(
	ctx context.Context,
	ownerID uuid.UUID,
	reviews []*domain.ScheduledReview,
) (map[uuid.UUID]*domain.StudySession, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	seen := make(map[uuid.UUID]struct{})
	ids := make([]uuid.UUID, 0)
	for _, r := range reviews {
		if r.OriginSessionID == nil {
			continue
		}
		if _, ok := seen[*r.OriginSessionID]; ok {
			continue
		}
		seen[*r.OriginSessionID] = struct{}{}
		ids = append(ids, *r.OriginSessionID)
	}

	origins, err := s.sessionStore.GetByIDs(ctx, ownerID, ids)
	if err != nil {
		log.Error("failed to fetch origin sessions",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, fmt.Errorf("failed to fetch origin sessions: %w", err)
	}
	return origins, nil
}

// buildItem flattens one review with its subject name and origin display
// fields.
func (s *serviceImpl) buildItem(
	r *domain.ScheduledReview,
	names map[uuid.UUID]string,
	origins map[uuid.UUID]*domain.StudySession,
) Item {
	date := dateutil.Normalize(r.ScheduledDate)
	item := Item{
		ID:              r.ID,
		SubjectID:       r.SubjectID,
		SubjectName:     names[r.SubjectID],
		ScheduledDate:   dateutil.FormatISO(date),
		DateLabel:       dateutil.FormatLabel(date),
		Stage:           r.Stage,
		OriginSessionID: r.OriginSessionID,
	}

	if r.OriginSessionID != nil {
		if origin, ok := origins[*r.OriginSessionID]; ok {
			item.Topics = origin.Topics
			item.Minutes = origin.Minutes
			item.QuestionsAttempted = origin.QuestionsAttempted
			item.QuestionsCorrect = origin.QuestionsCorrect
		}
	}

	return item
}

package priority

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/kauestudy/revise-api/internal/dateutil"
	domainpriority "github.com/kauestudy/revise-api/internal/domain/priority"
	"github.com/kauestudy/revise-api/internal/platform/logger"
	"github.com/kauestudy/revise-api/internal/store"
)

// Verify interface compliance at compile time
var _ Service = (*serviceImpl)(nil)

// serviceImpl implements the Service interface.
type serviceImpl struct {
	sessionStore store.StudySessionStore
	subjectStore store.SubjectStore
	params       *domainpriority.Params
	logger       *slog.Logger
	today        func() time.Time // Injectable for testing
}

// NewService creates a new priority Service implementation.
func NewService(
	sessionStore store.StudySessionStore,
	subjectStore store.SubjectStore,
	params *domainpriority.Params,
	logger *slog.Logger,
) Service {
	if sessionStore == nil {
		panic("sessionStore cannot be nil")
	}
	if subjectStore == nil {
		panic("subjectStore cannot be nil")
	}
	if params == nil {
		params = domainpriority.NewDefaultParams()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &serviceImpl{
		sessionStore: sessionStore,
		subjectStore: subjectStore,
		params:       params,
		logger:       logger.With(slog.String("component", "priority_service")),
		today:        dateutil.Today,
	}
}

// subjectAccumulator gathers per-subject facts across one owner's sessions.
type subjectAccumulator struct {
	subjectID      uuid.UUID
	lastStudiedAt  *time.Time
	totalAttempted int
	totalCorrect   int
	totalMarked    int
}

// GetRanking implements Service.GetRanking.
func (s *serviceImpl) GetRanking(ctx context.Context, ownerID uuid.UUID) (*Ranking, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	sessions, err := s.sessionStore.ListByOwner(ctx, ownerID)
	if err != nil {
		log.Error("failed to list study sessions for ranking",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, fmt.Errorf("failed to list study sessions: %w", err)
	}

	subjects, err := s.subjectStore.ListByOwner(ctx, ownerID)
	if err != nil {
		log.Error("failed to list subjects for ranking",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}

	names := make(map[uuid.UUID]string, len(subjects))
	for _, subject := range subjects {
		names[subject.ID] = subject.Name
	}

	// One pass over the sessions accumulates the facts per subject.
	accs := make(map[uuid.UUID]*subjectAccumulator)
	for _, session := range sessions {
		acc, ok := accs[session.SubjectID]
		if !ok {
			acc = &subjectAccumulator{subjectID: session.SubjectID}
			accs[session.SubjectID] = acc
		}

		date := dateutil.Normalize(session.StudyDate)
		if !date.IsZero() && (acc.lastStudiedAt == nil || date.After(*acc.lastStudiedAt)) {
			d := date
			acc.lastStudiedAt = &d
		}
		if session.QuestionsAttempted != nil {
			acc.totalAttempted += *session.QuestionsAttempted
		}
		if session.QuestionsCorrect != nil {
			acc.totalCorrect += *session.QuestionsCorrect
		}
		if session.MarkedForReview != nil {
			acc.totalMarked += *session.MarkedForReview
		}
	}

	today := dateutil.Normalize(s.today())
	entries := make([]Entry, 0, len(accs))
	for _, acc := range accs {
		daysSince := 0
		lastLabel := "—"
		if acc.lastStudiedAt != nil {
			daysSince = dateutil.DaysBetween(*acc.lastStudiedAt, today)
			if daysSince < 0 {
				daysSince = 0
			}
			lastLabel = dateutil.FormatLabel(*acc.lastStudiedAt)
		}

		eval := domainpriority.Evaluate(domainpriority.SubjectFacts{
			DaysSinceLastStudy: daysSince,
			TotalAttempted:     acc.totalAttempted,
			TotalCorrect:       acc.totalCorrect,
			TotalMarked:        acc.totalMarked,
		}, s.params)

		entries = append(entries, Entry{
			SubjectID:          acc.subjectID,
			SubjectName:        names[acc.subjectID],
			LastStudiedAt:      acc.lastStudiedAt,
			LastStudiedLabel:   lastLabel,
			DaysSinceLastStudy: daysSince,
			AccuracyPercent:    eval.AccuracyPercent,
			TotalAttempted:     acc.totalAttempted,
			TotalCorrect:       acc.totalCorrect,
			MarkedForReview:    acc.totalMarked,
			Score:              eval.Score,
			Level:              eval.Level,
		})
	}

	// Score descending; ties broken by staleness, then name, so the order
	// is deterministic regardless of map iteration.
	sort.SliceStable(entries, func(i, j int) bool {
		si, sj := effectiveScore(entries[i]), effectiveScore(entries[j])
		if si != sj {
			return si > sj
		}
		if entries[i].DaysSinceLastStudy != entries[j].DaysSinceLastStudy {
			return entries[i].DaysSinceLastStudy > entries[j].DaysSinceLastStudy
		}
		return entries[i].SubjectName < entries[j].SubjectName
	})

	suggestions := entries
	if len(suggestions) > SuggestionLimit {
		suggestions = suggestions[:SuggestionLimit]
	}

	log.Debug("built priority ranking",
		slog.String("owner_id", ownerID.String()),
		slog.Int("subjects", len(entries)))

	return &Ranking{
		Entries:     entries,
		Suggestions: suggestions,
	}, nil
}

// SubjectDetail implements Service.SubjectDetail.
func (s *serviceImpl) SubjectDetail(
	ctx context.Context,
	ownerID, subjectID uuid.UUID,
) (*SubjectDetail, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	subject, err := s.subjectStore.GetByIDAndOwner(ctx, subjectID, ownerID)
	if err != nil {
		if errors.Is(err, store.ErrSubjectNotFound) {
			log.Debug("subject not found for detail view",
				slog.String("subject_id", subjectID.String()),
				slog.String("owner_id", ownerID.String()))
			return nil, ErrSubjectNotFound
		}
		log.Error("failed to get subject for detail view",
			slog.String("error", err.Error()),
			slog.String("subject_id", subjectID.String()))
		return nil, fmt.Errorf("failed to get subject: %w", err)
	}

	sessions, err := s.sessionStore.ListByOwnerAndSubject(ctx, ownerID, subjectID)
	if err != nil {
		log.Error("failed to list sessions for detail view",
			slog.String("error", err.Error()),
			slog.String("subject_id", subjectID.String()))
		return nil, fmt.Errorf("failed to list study sessions: %w", err)
	}

	detail := &SubjectDetail{
		SubjectID:   subject.ID,
		SubjectName: subject.Name,
		Sessions:    make([]SessionDetail, 0, len(sessions)),
	}

	for _, session := range sessions {
		detail.Sessions = append(detail.Sessions, SessionDetail{
			ID:                 session.ID,
			StudyDate:          session.StudyDate,
			DateLabel:          dateutil.FormatLabel(session.StudyDate),
			Kind:               session.Kind,
			Minutes:            session.Minutes,
			Topics:             session.Topics,
			QuestionsAttempted: session.QuestionsAttempted,
			QuestionsCorrect:   session.QuestionsCorrect,
			MarkedForReview:    session.MarkedForReview,
			AccuracyPercent:    session.AccuracyPercent(),
		})

		if session.Minutes != nil {
			detail.Summary.TotalMinutes += *session.Minutes
		}
		if session.QuestionsAttempted != nil {
			detail.Summary.TotalAttempted += *session.QuestionsAttempted
		}
		if session.QuestionsCorrect != nil {
			detail.Summary.TotalCorrect += *session.QuestionsCorrect
		}
		if session.MarkedForReview != nil {
			detail.Summary.TotalMarked += *session.MarkedForReview
		}
	}

	detail.Summary.TotalHours = float64(detail.Summary.TotalMinutes) / 60
	if detail.Summary.TotalAttempted > 0 {
		pct := int(math.Round(
			float64(detail.Summary.TotalCorrect) / float64(detail.Summary.TotalAttempted) * 100))
		detail.Summary.AccuracyPercent = &pct
	}

	return detail, nil
}

func effectiveScore(e Entry) float64 {
	if e.Score == nil {
		return 0
	}
	return *e.Score
}

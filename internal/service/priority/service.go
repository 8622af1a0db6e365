// Package priority exposes the urgency ranking built from a user's study
// history: which subjects deserve review today, ordered by how stale and how
// difficult they are, plus a drill-down view of one subject's sessions.
package priority

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/kauestudy/revise-api/internal/domain"
	domainpriority "github.com/kauestudy/revise-api/internal/domain/priority"
)

// SuggestionLimit is how many ranking entries surface as "review today"
// suggestions.
const SuggestionLimit = 5

// Service provides the subject urgency ranking and per-subject detail views.
type Service interface {
	// GetRanking builds the full urgency ranking over every subject the
	// owner has logged sessions for. Subjects with zero sessions are absent.
	// Read paths never raise domain errors: an owner with no history yields
	// an empty ranking.
	GetRanking(ctx context.Context, ownerID uuid.UUID) (*Ranking, error)

	// SubjectDetail returns one subject's full session history, newest
	// first, with per-session accuracy and an aggregate summary.
	// Returns ErrSubjectNotFound when the subject does not exist for the
	// owner (cross-owner access is indistinguishable from absence).
	SubjectDetail(ctx context.Context, ownerID, subjectID uuid.UUID) (*SubjectDetail, error)
}

// Common priority service errors
var (
	// ErrSubjectNotFound indicates the subject does not exist or does not
	// belong to the caller.
	ErrSubjectNotFound = errors.New("subject not found")
)

// Ranking is the ordered urgency list plus the capped suggestion slice.
type Ranking struct {
	// Entries is the full ranking, most urgent first.
	Entries []Entry `json:"entries"`

	// Suggestions is the top of the ranking, at most SuggestionLimit entries.
	Suggestions []Entry `json:"suggestions"`
}

// Entry is one subject's position in the ranking.
type Entry struct {
	SubjectID   uuid.UUID `json:"subject_id"`
	SubjectName string    `json:"subject_name"`

	// LastStudiedAt is the most recent session date, nil when no session
	// carries a date.
	LastStudiedAt    *time.Time `json:"last_studied_at,omitempty"`
	LastStudiedLabel string     `json:"last_studied_label"`

	DaysSinceLastStudy int `json:"days_since_last_study"`

	// AccuracyPercent is nil for subjects without graded questions.
	AccuracyPercent *int `json:"accuracy_percent"`

	TotalAttempted  int `json:"total_attempted"`
	TotalCorrect    int `json:"total_correct"`
	MarkedForReview int `json:"marked_for_review"`

	// Score is the one-decimal urgency score, nil for ungraded subjects
	// (they sort as zero but display their level only).
	Score *float64 `json:"score"`

	Level domainpriority.Level `json:"level"`
}

// SubjectDetail is the drill-down view of one subject's review history.
type SubjectDetail struct {
	SubjectID   uuid.UUID       `json:"subject_id"`
	SubjectName string          `json:"subject_name"`
	Sessions    []SessionDetail `json:"sessions"`
	Summary     DetailSummary   `json:"summary"`
}

// SessionDetail is one logged session annotated for display.
type SessionDetail struct {
	ID                 uuid.UUID          `json:"id"`
	StudyDate          time.Time          `json:"study_date"`
	DateLabel          string             `json:"date_label"`
	Kind               domain.SessionKind `json:"kind"`
	Minutes            *int               `json:"minutes"`
	Topics             string             `json:"topics,omitempty"`
	QuestionsAttempted *int               `json:"questions_attempted"`
	QuestionsCorrect   *int               `json:"questions_correct"`
	MarkedForReview    *int               `json:"marked_for_review"`
	AccuracyPercent    *int               `json:"accuracy_percent"`
}

// DetailSummary aggregates the whole session history of one subject.
type DetailSummary struct {
	TotalMinutes    int     `json:"total_minutes"`
	TotalHours      float64 `json:"total_hours"`
	TotalAttempted  int     `json:"total_attempted"`
	TotalCorrect    int     `json:"total_correct"`
	TotalMarked     int     `json:"total_marked"`
	AccuracyPercent *int    `json:"accuracy_percent"`
}

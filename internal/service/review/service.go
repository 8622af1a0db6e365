// Package review owns the lifecycle of scheduled reviews (complete, skip,
// snooze, delete) and assembles the dashboard and history views over them.
// Review rows themselves are created by an external collaborator through the
// store boundary; this package never generates review cadences.
package review

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/kauestudy/revise-api/internal/domain"
)

// DefaultSnoozeDays is how far a snooze pushes a review when the caller does
// not say otherwise.
const DefaultSnoozeDays = 2

// Service transitions single scheduled reviews and builds the read views
// over them.
type Service interface {
	// Complete marks the review matching id+owner as done. Completing an
	// already-terminal review is a no-op overwrite, never an error.
	// Returns ErrReviewNotFound when no row matches id+owner.
	Complete(ctx context.Context, id, ownerID uuid.UUID) error

	// Skip marks the review matching id+owner as skipped. Same contract as
	// Complete.
	Skip(ctx context.Context, id, ownerID uuid.UUID) error

	// Snooze moves the review's scheduled date forward by days, keeping the
	// status pending. The day count is applied as given; sign and range are
	// the caller's business. Returns ErrReviewNotFound when no row matches.
	Snooze(ctx context.Context, id, ownerID uuid.UUID, days int) error

	// Delete permanently removes the review matching id+owner. The row does
	// not have to be terminal. Returns ErrReviewNotFound when no row matches.
	Delete(ctx context.Context, id, ownerID uuid.UUID) error

	// Dashboard partitions the owner's pending reviews into today, overdue,
	// and future buckets against the given calendar day (the zero time means
	// the current day). Future reviews are grouped by subject and then by
	// originating study session. Owners with no data get empty buckets.
	Dashboard(ctx context.Context, ownerID uuid.UUID, today time.Time) (*Dashboard, error)

	// History returns the owner's done and skipped reviews as a flat list,
	// newest scheduled date first.
	History(ctx context.Context, ownerID uuid.UUID) ([]HistoryItem, error)
}

// Common review service errors
var (
	// ErrReviewNotFound indicates the scheduled review does not exist or
	// does not belong to the caller; the two cases are indistinguishable.
	ErrReviewNotFound = errors.New("scheduled review not found")
)

// Dashboard is the three-bucket pending view.
type Dashboard struct {
	Today   []Item         `json:"today"`
	Overdue []Item         `json:"overdue"`
	Future  []SubjectGroup `json:"future"`
}

// Item is one pending review flattened for the today/overdue buckets,
// carrying the display fields of its origin session when one exists.
type Item struct {
	ID              uuid.UUID         `json:"id"`
	SubjectID       uuid.UUID         `json:"subject_id"`
	SubjectName     string            `json:"subject_name"`
	ScheduledDate   string            `json:"scheduled_date"`
	DateLabel       string            `json:"date_label"`
	Stage           domain.CycleStage `json:"stage"`
	OriginSessionID *uuid.UUID        `json:"origin_session_id,omitempty"`

	Topics             string `json:"topics,omitempty"`
	Minutes            *int   `json:"minutes"`
	QuestionsAttempted *int   `json:"questions_attempted"`
	QuestionsCorrect   *int   `json:"questions_correct"`

	// DaysLate is set only on overdue items, always >= 1.
	DaysLate int `json:"days_late,omitempty"`
}

// SubjectGroup collects one subject's future reviews with subject-level
// progress over the subject's entire review history, any status.
type SubjectGroup struct {
	SubjectID    uuid.UUID      `json:"subject_id"`
	SubjectName  string         `json:"subject_name"`
	AccentColor  string         `json:"accent_color"`
	PendingCount int            `json:"pending_count"`
	PercentDone  *int           `json:"percent_done"`
	Contents     []ContentGroup `json:"contents"`
}

// ContentGroup collects the future reviews sharing one origin session (or
// the subject's synthetic unlinked group) with content-level progress.
type ContentGroup struct {
	// OriginSessionID is nil for the synthetic unlinked group.
	OriginSessionID *uuid.UUID `json:"origin_session_id"`

	Topics             string `json:"topics,omitempty"`
	Minutes            *int   `json:"minutes"`
	QuestionsAttempted *int   `json:"questions_attempted"`
	QuestionsCorrect   *int   `json:"questions_correct"`

	PercentDone *int           `json:"percent_done"`
	Reviews     []FutureReview `json:"reviews"`
}

// FutureReview is one scheduled instance inside a content group.
type FutureReview struct {
	ID              uuid.UUID         `json:"id"`
	Stage           domain.CycleStage `json:"stage"`
	ScheduledDate   string            `json:"scheduled_date"`
	DateLabel       string            `json:"date_label"`
	DaysRemaining   int               `json:"days_remaining"`
	OriginSessionID *uuid.UUID        `json:"origin_session_id,omitempty"`
}

// HistoryItem is one terminal review in the flat historical view.
type HistoryItem struct {
	Item
	Status domain.ReviewStatus `json:"status"`
}

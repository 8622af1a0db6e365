package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ScheduledReview-specific validation errors
var (
	// ErrReviewIDEmpty is returned when a scheduled review ID is empty or nil.
	ErrReviewIDEmpty = errors.New("scheduled review ID cannot be empty")

	// ErrReviewOwnerEmpty is returned when a review's owner ID is empty or nil.
	ErrReviewOwnerEmpty = errors.New("scheduled review owner ID cannot be empty")

	// ErrReviewSubjectEmpty is returned when a review's subject ID is empty or nil.
	ErrReviewSubjectEmpty = errors.New("scheduled review subject ID cannot be empty")

	// ErrReviewDateZero is returned when a review has no scheduled date.
	ErrReviewDateZero = errors.New("scheduled review date cannot be zero")
)

// CycleStage is the position of a scheduled review within the five-stage
// repetition cycle. It is a closed, ordered enumeration: R1 is the first
// repetition after the originating study session, R5 the last.
type CycleStage string

const (
	CycleStageR1 CycleStage = "R1"
	CycleStageR2 CycleStage = "R2"
	CycleStageR3 CycleStage = "R3"
	CycleStageR4 CycleStage = "R4"
	CycleStageR5 CycleStage = "R5"
)

// CycleStages lists all stages in cycle order.
var CycleStages = []CycleStage{
	CycleStageR1,
	CycleStageR2,
	CycleStageR3,
	CycleStageR4,
	CycleStageR5,
}

// Validate checks that the stage is one of R1..R5.
func (c CycleStage) Validate() error {
	switch c {
	case CycleStageR1, CycleStageR2, CycleStageR3, CycleStageR4, CycleStageR5:
		return nil
	default:
		return ErrInvalidCycleStage
	}
}

// Ordinal returns the 1-based position of the stage in the cycle, or 0 for
// an invalid stage. Useful for ordering without string comparison.
func (c CycleStage) Ordinal() int {
	switch c {
	case CycleStageR1:
		return 1
	case CycleStageR2:
		return 2
	case CycleStageR3:
		return 3
	case CycleStageR4:
		return 4
	case CycleStageR5:
		return 5
	default:
		return 0
	}
}

// ReviewStatus is the lifecycle state of a scheduled review.
// pending is the only non-terminal state: done and skipped rows are never
// resurrected to pending.
type ReviewStatus string

const (
	// ReviewStatusPending marks a review that has not been acted on yet.
	ReviewStatusPending ReviewStatus = "pending"

	// ReviewStatusDone marks a review the user completed. Terminal.
	ReviewStatusDone ReviewStatus = "done"

	// ReviewStatusSkipped marks a review the user chose to skip. Terminal.
	ReviewStatusSkipped ReviewStatus = "skipped"
)

// Validate checks that the status is one of the closed set of values.
func (s ReviewStatus) Validate() error {
	switch s {
	case ReviewStatusPending, ReviewStatusDone, ReviewStatusSkipped:
		return nil
	default:
		return ErrInvalidReviewStatus
	}
}

// Terminal reports whether the status ends the review's lifecycle.
func (s ReviewStatus) Terminal() bool {
	return s == ReviewStatusDone || s == ReviewStatusSkipped
}

// ScheduledReview represents a durable, dated obligation to review a subject.
// A review optionally references the study session that originated it
// (OriginSessionID nil for manually scheduled, unlinked reviews).
//
// Rows are created by the scheduling collaborator outside this engine; the
// engine only transitions their status, postpones their date, or deletes
// them.
type ScheduledReview struct {
	ID              uuid.UUID    `json:"id"`
	OwnerID         uuid.UUID    `json:"owner_id"`
	SubjectID       uuid.UUID    `json:"subject_id"`
	ScheduledDate   time.Time    `json:"scheduled_date"`
	Stage           CycleStage   `json:"stage"`
	OriginSessionID *uuid.UUID   `json:"origin_session_id,omitempty"`
	Status          ReviewStatus `json:"status"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// NewScheduledReview creates a pending ScheduledReview for the given owner,
// subject, date, and stage. originSessionID may be nil for unlinked reviews.
// Returns an error if validation fails.
func NewScheduledReview(
	ownerID, subjectID uuid.UUID,
	scheduledDate time.Time,
	stage CycleStage,
	originSessionID *uuid.UUID,
) (*ScheduledReview, error) {
	review := &ScheduledReview{
		ID:              uuid.New(),
		OwnerID:         ownerID,
		SubjectID:       subjectID,
		ScheduledDate:   scheduledDate,
		Stage:           stage,
		OriginSessionID: originSessionID,
		Status:          ReviewStatusPending,
		CreatedAt:       time.Now().UTC(),
		UpdatedAt:       time.Now().UTC(),
	}

	if err := review.Validate(); err != nil {
		return nil, err
	}

	return review, nil
}

// Validate checks if the ScheduledReview has valid data.
// Returns an error if any field fails validation.
func (r *ScheduledReview) Validate() error {
	if r.ID == uuid.Nil {
		return ErrReviewIDEmpty
	}

	if r.OwnerID == uuid.Nil {
		return ErrReviewOwnerEmpty
	}

	if r.SubjectID == uuid.Nil {
		return ErrReviewSubjectEmpty
	}

	if r.ScheduledDate.IsZero() {
		return ErrReviewDateZero
	}

	if err := r.Stage.Validate(); err != nil {
		return err
	}

	if err := r.Status.Validate(); err != nil {
		return err
	}

	return nil
}

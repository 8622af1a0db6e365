// Package studylog records review-type study sessions, the engine's input
// data. Logging can optionally close out the scheduled review the session
// fulfilled, in which case both writes happen in one transaction.
package studylog

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/kauestudy/revise-api/internal/domain"
)

// Service logs study sessions for the owner's subjects.
type Service interface {
	// LogReviewSession records a review session for a subject on a date.
	// When input.CompletedReviewID is set, the session insert and the
	// review's status=done update run atomically; failure of either rolls
	// both back.
	// Returns ErrSubjectNotFound when the subject does not exist for the
	// owner, ErrReviewNotFound when CompletedReviewID matches no row.
	LogReviewSession(ctx context.Context, input LogInput) (*domain.StudySession, error)
}

// Common studylog service errors
var (
	// ErrSubjectNotFound indicates the subject does not exist or does not
	// belong to the caller.
	ErrSubjectNotFound = errors.New("subject not found")

	// ErrReviewNotFound indicates the scheduled review to complete does not
	// exist or does not belong to the caller.
	ErrReviewNotFound = errors.New("scheduled review not found")
)

// LogInput carries one session to record.
type LogInput struct {
	OwnerID   uuid.UUID
	SubjectID uuid.UUID
	StudyDate time.Time

	Minutes            *int
	Topics             string
	QuestionsAttempted *int
	QuestionsCorrect   *int
	MarkedForReview    *int

	// CompletedReviewID, when set, marks that scheduled review done in the
	// same transaction as the session insert.
	CompletedReviewID *uuid.UUID
}

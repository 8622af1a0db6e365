package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// StudySession-specific validation errors
var (
	// ErrSessionIDEmpty is returned when a study session ID is empty or nil.
	ErrSessionIDEmpty = errors.New("study session ID cannot be empty")

	// ErrSessionOwnerEmpty is returned when a session's owner ID is empty or nil.
	ErrSessionOwnerEmpty = errors.New("study session owner ID cannot be empty")

	// ErrSessionSubjectEmpty is returned when a session's subject ID is empty or nil.
	ErrSessionSubjectEmpty = errors.New("study session subject ID cannot be empty")

	// ErrSessionDateZero is returned when a session has no study date.
	ErrSessionDateZero = errors.New("study session date cannot be zero")

	// ErrSessionNegativeMetric is returned when a question or minute count is negative.
	ErrSessionNegativeMetric = errors.New("study session metrics cannot be negative")

	// ErrSessionCorrectExceedsAttempted is returned when correct answers exceed attempts.
	ErrSessionCorrectExceedsAttempted = errors.New(
		"correct questions cannot exceed attempted questions",
	)
)

// SessionKind is the coarse classification of a logged study session.
// It is a closed enumeration; use the constants below.
type SessionKind string

const (
	// SessionKindNewContent marks a first pass over new material.
	SessionKindNewContent SessionKind = "new_content"

	// SessionKindReview marks a review pass over previously studied material.
	SessionKindReview SessionKind = "review"

	// SessionKindErrorReview marks a pass focused on previously missed questions.
	SessionKindErrorReview SessionKind = "error_review"
)

// Validate checks that the kind is one of the closed set of values.
func (k SessionKind) Validate() error {
	switch k {
	case SessionKindNewContent, SessionKindReview, SessionKindErrorReview:
		return nil
	default:
		return ErrInvalidSessionKind
	}
}

// StudySession represents one logged study event for a subject on a date.
// The review engine treats sessions as immutable, read-only input: they are
// aggregated for prioritization and joined for display, never modified.
//
// The question metrics and minutes are optional (nil when the user logged the
// session without them, e.g. essay practice with nothing gradeable).
type StudySession struct {
	ID                 uuid.UUID   `json:"id"`
	OwnerID            uuid.UUID   `json:"owner_id"`
	SubjectID          uuid.UUID   `json:"subject_id"`
	StudyDate          time.Time   `json:"study_date"`
	Kind               SessionKind `json:"kind"`
	Minutes            *int        `json:"minutes,omitempty"`
	Topics             string      `json:"topics,omitempty"`
	QuestionsAttempted *int        `json:"questions_attempted,omitempty"`
	QuestionsCorrect   *int        `json:"questions_correct,omitempty"`
	MarkedForReview    *int        `json:"marked_for_review,omitempty"`
	CreatedAt          time.Time   `json:"created_at"`
}

// NewStudySession creates a new StudySession for the given owner and subject.
// The study date is truncated to its calendar day. Returns an error if
// validation fails.
func NewStudySession(
	ownerID, subjectID uuid.UUID,
	studyDate time.Time,
	kind SessionKind,
) (*StudySession, error) {
	session := &StudySession{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		SubjectID: subjectID,
		StudyDate: studyDate,
		Kind:      kind,
		CreatedAt: time.Now().UTC(),
	}

	if err := session.Validate(); err != nil {
		return nil, err
	}

	return session, nil
}

// Validate checks if the StudySession has valid data.
// Returns an error if any field fails validation.
func (s *StudySession) Validate() error {
	if s.ID == uuid.Nil {
		return ErrSessionIDEmpty
	}

	if s.OwnerID == uuid.Nil {
		return ErrSessionOwnerEmpty
	}

	if s.SubjectID == uuid.Nil {
		return ErrSessionSubjectEmpty
	}

	if s.StudyDate.IsZero() {
		return ErrSessionDateZero
	}

	if err := s.Kind.Validate(); err != nil {
		return err
	}

	for _, metric := range []*int{s.Minutes, s.QuestionsAttempted, s.QuestionsCorrect, s.MarkedForReview} {
		if metric != nil && *metric < 0 {
			return ErrSessionNegativeMetric
		}
	}

	if s.QuestionsAttempted != nil && s.QuestionsCorrect != nil &&
		*s.QuestionsCorrect > *s.QuestionsAttempted {
		return ErrSessionCorrectExceedsAttempted
	}

	return nil
}

// AccuracyPercent returns the rounded percentage of correct answers, or nil
// when the session has no attempted questions to grade.
func (s *StudySession) AccuracyPercent() *int {
	if s.QuestionsAttempted == nil || *s.QuestionsAttempted <= 0 || s.QuestionsCorrect == nil {
		return nil
	}
	pct := int(float64(*s.QuestionsCorrect)/float64(*s.QuestionsAttempted)*100 + 0.5)
	return &pct
}

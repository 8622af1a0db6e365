package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Subject-specific validation errors
var (
	// ErrSubjectIDEmpty is returned when a subject ID is empty or nil.
	ErrSubjectIDEmpty = errors.New("subject ID cannot be empty")

	// ErrSubjectOwnerEmpty is returned when a subject's owner ID is empty or nil.
	ErrSubjectOwnerEmpty = errors.New("subject owner ID cannot be empty")

	// ErrSubjectNameEmpty is returned when a subject's display name is blank.
	ErrSubjectNameEmpty = errors.New("subject name cannot be empty")
)

// Subject represents a topic or course area a user studies.
// Subjects are created through the external CRUD surface; the review engine
// reads them but never mutates them.
type Subject struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSubject creates a new Subject owned by the given user.
// It generates a new UUID for the subject ID and sets the timestamps.
// Returns an error if validation fails.
func NewSubject(ownerID uuid.UUID, name string) (*Subject, error) {
	subject := &Subject{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Name:      strings.TrimSpace(name),
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := subject.Validate(); err != nil {
		return nil, err
	}

	return subject, nil
}

// Validate checks if the Subject has valid data.
// Returns an error if any field fails validation.
func (s *Subject) Validate() error {
	if s.ID == uuid.Nil {
		return ErrSubjectIDEmpty
	}

	if s.OwnerID == uuid.Nil {
		return ErrSubjectOwnerEmpty
	}

	if strings.TrimSpace(s.Name) == "" {
		return ErrSubjectNameEmpty
	}

	return nil
}

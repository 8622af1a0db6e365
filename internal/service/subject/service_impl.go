package subject

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/kauestudy/revise-api/internal/domain"
	"github.com/kauestudy/revise-api/internal/platform/logger"
	"github.com/kauestudy/revise-api/internal/store"
)

// Verify interface compliance at compile time
var _ Service = (*serviceImpl)(nil)

// serviceImpl implements the Service interface.
type serviceImpl struct {
	subjectStore store.SubjectStore
	logger       *slog.Logger
}

// NewService creates a new subject Service implementation.
func NewService(subjectStore store.SubjectStore, logger *slog.Logger) Service {
	if subjectStore == nil {
		panic("subjectStore cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &serviceImpl{
		subjectStore: subjectStore,
		logger:       logger.With(slog.String("component", "subject_service")),
	}
}

// List implements Service.List.
func (s *serviceImpl) List(ctx context.Context, ownerID uuid.UUID) ([]*domain.Subject, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	subjects, err := s.subjectStore.ListByOwner(ctx, ownerID)
	if err != nil {
		log.Error("failed to list subjects",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}
	return subjects, nil
}

// Create implements Service.Create.
func (s *serviceImpl) Create(
	ctx context.Context,
	ownerID uuid.UUID,
	name string,
) (*domain.Subject, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	subject, err := domain.NewSubject(ownerID, name)
	if err != nil {
		return nil, err
	}

	if err := s.subjectStore.Create(ctx, subject); err != nil {
		if errors.Is(err, store.ErrSubjectExists) {
			log.Debug("duplicate subject name",
				slog.String("owner_id", ownerID.String()))
			return nil, ErrSubjectExists
		}
		log.Error("failed to create subject",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, fmt.Errorf("failed to create subject: %w", err)
	}

	return subject, nil
}

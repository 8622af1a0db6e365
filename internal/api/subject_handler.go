package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/kauestudy/revise-api/internal/api/shared"
	"github.com/kauestudy/revise-api/internal/platform/logger"
	"github.com/kauestudy/revise-api/internal/service/priority"
	"github.com/kauestudy/revise-api/internal/service/subject"
)

// CreateSubjectRequest defines the payload for subject creation.
type CreateSubjectRequest struct {
	Name string `json:"name" validate:"required,min=1,max=120"`
}

// SubjectHandler handles subject CRUD requests and the per-subject review
// detail view.
type SubjectHandler struct {
	subjectService  subject.Service
	priorityService priority.Service
	logger          *slog.Logger
}

// NewSubjectHandler creates a new SubjectHandler.
func NewSubjectHandler(
	subjectService subject.Service,
	priorityService priority.Service,
	logger *slog.Logger,
) *SubjectHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for SubjectHandler")
	}

	return &SubjectHandler{
		subjectService:  subjectService,
		priorityService: priorityService,
		logger:          logger.With(slog.String("component", "subject_handler")),
	}
}

// List handles GET /api/subjects.
func (h *SubjectHandler) List(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	subjects, err := h.subjectService.List(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), "Failed to list subjects", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, subjects)
}

// Create handles POST /api/subjects.
func (h *SubjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req CreateSubjectRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	created, err := h.subjectService.Create(r.Context(), userID, req.Name)
	if err != nil {
		if errors.Is(err, subject.ErrSubjectExists) {
			shared.RespondWithError(w, r, http.StatusConflict, "Subject already exists")
			return
		}
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to create subject"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("subject created",
		slog.String("user_id", userID.String()),
		slog.String("subject_id", created.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, created)
}

// ReviewDetail handles GET /api/subjects/{id}/review-detail. It returns the
// subject's full session history annotated for display, plus aggregate
// totals.
func (h *SubjectHandler) ReviewDetail(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, subjectID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	detail, err := h.priorityService.SubjectDetail(r.Context(), userID, subjectID)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to load subject detail"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("subject detail served",
		slog.String("user_id", userID.String()),
		slog.String("subject_id", subjectID.String()),
		slog.Int("session_count", len(detail.Sessions)))
	shared.RespondWithJSON(w, r, http.StatusOK, detail)
}

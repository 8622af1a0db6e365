package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/kauestudy/revise-api/internal/api/shared"
	"github.com/kauestudy/revise-api/internal/dateutil"
	"github.com/kauestudy/revise-api/internal/platform/logger"
	"github.com/kauestudy/revise-api/internal/service/studylog"
)

// LogSessionRequest defines the payload for recording a review session.
// StudyDate is a YYYY-MM-DD calendar date. CompletedReviewID, when present,
// marks that scheduled review done atomically with the session insert.
type LogSessionRequest struct {
	SubjectID          uuid.UUID  `json:"subject_id"           validate:"required"`
	StudyDate          string     `json:"study_date"           validate:"required"`
	Minutes            *int       `json:"minutes"              validate:"omitempty,gte=0"`
	Topics             string     `json:"topics"               validate:"omitempty,max=2000"`
	QuestionsAttempted *int       `json:"questions_attempted"  validate:"omitempty,gte=0"`
	QuestionsCorrect   *int       `json:"questions_correct"    validate:"omitempty,gte=0"`
	MarkedForReview    *int       `json:"marked_for_review"    validate:"omitempty,gte=0"`
	CompletedReviewID  *uuid.UUID `json:"completed_review_id"`
}

// SessionHandler handles study session logging requests.
type SessionHandler struct {
	studylogService studylog.Service
	logger          *slog.Logger
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(studylogService studylog.Service, logger *slog.Logger) *SessionHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for SessionHandler")
	}

	return &SessionHandler{
		studylogService: studylogService,
		logger:          logger.With(slog.String("component", "session_handler")),
	}
}

// Create handles POST /api/sessions.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req LogSessionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	studyDate, err := dateutil.ParseISO(req.StudyDate)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid study_date, expected YYYY-MM-DD")
		return
	}

	session, err := h.studylogService.LogReviewSession(r.Context(), studylog.LogInput{
		OwnerID:            userID,
		SubjectID:          req.SubjectID,
		StudyDate:          studyDate,
		Minutes:            req.Minutes,
		Topics:             req.Topics,
		QuestionsAttempted: req.QuestionsAttempted,
		QuestionsCorrect:   req.QuestionsCorrect,
		MarkedForReview:    req.MarkedForReview,
		CompletedReviewID:  req.CompletedReviewID,
	})
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to log session"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("session logged",
		slog.String("user_id", userID.String()),
		slog.String("session_id", session.ID.String()),
		slog.String("subject_id", req.SubjectID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, session)
}

package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/kauestudy/revise-api/internal/api/shared"
	"github.com/kauestudy/revise-api/internal/dateutil"
	"github.com/kauestudy/revise-api/internal/platform/logger"
	"github.com/kauestudy/revise-api/internal/service/priority"
	"github.com/kauestudy/revise-api/internal/service/review"
)

// SnoozeRequest defines the payload for the snooze endpoint. Days is
// optional; omitted or zero falls back to the default snooze distance.
type SnoozeRequest struct {
	Days *int `json:"days"`
}

// ReviewHandler handles the scheduled review endpoints: the urgency
// ranking, the dashboard buckets, history, and the lifecycle mutations.
type ReviewHandler struct {
	reviewService   review.Service
	priorityService priority.Service
	logger          *slog.Logger
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(
	reviewService review.Service,
	priorityService priority.Service,
	logger *slog.Logger,
) *ReviewHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ReviewHandler")
	}

	return &ReviewHandler{
		reviewService:   reviewService,
		priorityService: priorityService,
		logger:          logger.With(slog.String("component", "review_handler")),
	}
}

// Suggestions handles GET /api/reviews/suggestions. It returns the full
// urgency ranking plus the capped suggestion list.
func (h *ReviewHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	ranking, err := h.priorityService.GetRanking(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), "Failed to build ranking", err)
		return
	}

	log.Debug("ranking served",
		slog.String("user_id", userID.String()),
		slog.Int("entry_count", len(ranking.Entries)))
	shared.RespondWithJSON(w, r, http.StatusOK, ranking)
}

// Dashboard handles GET /api/reviews/dashboard. The optional
// ?today=YYYY-MM-DD query parameter pins the reference date, which keeps
// the bucket boundaries reproducible in tests.
func (h *ReviewHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var today time.Time
	if raw := r.URL.Query().Get("today"); raw != "" {
		parsed, err := dateutil.ParseISO(raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid today, expected YYYY-MM-DD")
			return
		}
		today = parsed
	}

	dashboard, err := h.reviewService.Dashboard(r.Context(), userID, today)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), "Failed to build dashboard", err)
		return
	}

	log.Debug("dashboard served",
		slog.String("user_id", userID.String()),
		slog.Int("today_count", len(dashboard.Today)),
		slog.Int("overdue_count", len(dashboard.Overdue)),
		slog.Int("future_subject_count", len(dashboard.Future)))
	shared.RespondWithJSON(w, r, http.StatusOK, dashboard)
}

// History handles GET /api/reviews/history. It returns the flat list of
// completed and skipped reviews, most recent first.
func (h *ReviewHandler) History(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	history, err := h.reviewService.History(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), "Failed to load history", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, history)
}

// Complete handles POST /api/reviews/{id}/complete.
func (h *ReviewHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "complete", h.reviewService.Complete)
}

// Skip handles POST /api/reviews/{id}/skip.
func (h *ReviewHandler) Skip(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "skip", h.reviewService.Skip)
}

// Delete handles DELETE /api/reviews/{id}.
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "delete", h.reviewService.Delete)
}

// Snooze handles POST /api/reviews/{id}/snooze. The body is optional; a
// missing or zero days field snoozes by the default distance.
func (h *ReviewHandler) Snooze(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, reviewID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	days := review.DefaultSnoozeDays
	if r.Body != nil && r.ContentLength != 0 {
		var req SnoozeRequest
		if err := shared.DecodeJSON(r, &req); err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
			return
		}
		if req.Days != nil {
			days = *req.Days
		}
	}

	if err := h.reviewService.Snooze(r.Context(), reviewID, userID, days); err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to snooze review"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("review snoozed",
		slog.String("user_id", userID.String()),
		slog.String("review_id", reviewID.String()),
		slog.Int("days", days))
	w.WriteHeader(http.StatusNoContent)
}

// mutate runs one id-scoped lifecycle mutation and writes the shared
// success/failure responses.
func (h *ReviewHandler) mutate(
	w http.ResponseWriter,
	r *http.Request,
	action string,
	fn func(ctx context.Context, id, ownerID uuid.UUID) error,
) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, reviewID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := fn(r.Context(), reviewID, userID); err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to " + action + " review"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("review mutation applied",
		slog.String("action", action),
		slog.String("user_id", userID.String()),
		slog.String("review_id", reviewID.String()))
	w.WriteHeader(http.StatusNoContent)
}

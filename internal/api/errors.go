package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/kauestudy/revise-api/internal/domain"
	"github.com/kauestudy/revise-api/internal/service/auth"
	"github.com/kauestudy/revise-api/internal/service/priority"
	"github.com/kauestudy/revise-api/internal/service/review"
	"github.com/kauestudy/revise-api/internal/service/studylog"
	"github.com/kauestudy/revise-api/internal/service/subject"
	"github.com/kauestudy/revise-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return http.StatusUnauthorized

	// Not found errors. Cross-owner access reports not found as well, so
	// a 404 never confirms that a row exists for someone else.
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, priority.ErrSubjectNotFound),
		errors.Is(err, review.ErrReviewNotFound),
		errors.Is(err, studylog.ErrSubjectNotFound),
		errors.Is(err, studylog.ErrReviewNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists),
		errors.Is(err, subject.ErrSubjectExists):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrSessionNegativeMetric),
		errors.Is(err, domain.ErrSessionCorrectExceedsAttempted),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid refresh token"

	// Not found errors
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrSubjectNotFound),
		errors.Is(err, priority.ErrSubjectNotFound),
		errors.Is(err, studylog.ErrSubjectNotFound):
		return "Subject not found"

	case errors.Is(err, store.ErrScheduledReviewNotFound),
		errors.Is(err, review.ErrReviewNotFound),
		errors.Is(err, studylog.ErrReviewNotFound):
		return "Scheduled review not found"

	case errors.Is(err, store.ErrStudySessionNotFound):
		return "Study session not found"

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, subject.ErrSubjectExists):
		return "Subject already exists"

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	case errors.Is(err, domain.ErrSessionNegativeMetric),
		errors.Is(err, domain.ErrSessionCorrectExceedsAttempted):
		return "Invalid session metrics"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Example format:
	// "Key: 'LoginRequest.Email' Error:Field validation for 'Email' failed on the 'required' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}

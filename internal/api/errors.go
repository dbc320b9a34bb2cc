package api

import (
	"errors"
	"net/http"

	"github.com/bodasandeepsai/task-manager/internal/advice"
	"github.com/bodasandeepsai/task-manager/internal/api/shared"
	"github.com/bodasandeepsai/task-manager/internal/domain"
	"github.com/bodasandeepsai/task-manager/internal/service"
	"github.com/bodasandeepsai/task-manager/internal/service/auth"
	"github.com/bodasandeepsai/task-manager/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status
// codes based on the error type. This prevents leaking internal error
// types or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, service.ErrTaskNotOwned):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, store.ErrTaskNotFound):
		return http.StatusNotFound

	// Duplicate unique fields at registration surface as 400 with the
	// offending field named, matching the client contract.
	case errors.Is(err, store.ErrEmailExists),
		errors.Is(err, store.ErrUsernameExists):
		return http.StatusBadRequest

	// Validation errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrEmptyTaskTitle),
		errors.Is(err, domain.ErrMissingDueDate),
		errors.Is(err, domain.ErrMissingAssignee),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInvalidPriority),
		errors.Is(err, service.ErrAssigneeNotFound),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, advice.ErrEmptyMessage):
		return http.StatusBadRequest

	// Upstream dependency failures
	case errors.Is(err, advice.ErrUpstreamFailure),
		errors.Is(err, advice.ErrInvalidResponse),
		errors.Is(err, advice.ErrContentBlocked):
		return http.StatusInternalServerError

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
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken):
		return "Unauthorized"

	case errors.Is(err, service.ErrTaskNotOwned):
		return "You do not have access to this task"

	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already registered"

	case errors.Is(err, store.ErrUsernameExists):
		return "Username already taken"

	case errors.Is(err, domain.ErrEmptyTaskTitle):
		return "Title is required"

	case errors.Is(err, domain.ErrMissingDueDate):
		return "Due date is required"

	case errors.Is(err, domain.ErrMissingAssignee),
		errors.Is(err, service.ErrAssigneeNotFound):
		return "Task must be assigned to an existing user"

	case errors.Is(err, domain.ErrInvalidStatus):
		return "Invalid task status"

	case errors.Is(err, domain.ErrInvalidPriority):
		return "Invalid task priority"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request data"

	case errors.Is(err, advice.ErrEmptyMessage):
		return "Message is required"

	case errors.Is(err, advice.ErrUpstreamFailure),
		errors.Is(err, advice.ErrInvalidResponse),
		errors.Is(err, advice.ErrContentBlocked):
		return "Failed to get AI response"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes the appropriate error response for err. When
// overrideMessage is non-empty it replaces the mapped safe message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, overrideMessage string) {
	status := MapErrorToStatusCode(err)
	message := overrideMessage
	if message == "" {
		message = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

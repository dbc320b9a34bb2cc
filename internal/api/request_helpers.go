package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	apimiddleware "github.com/bodasandeepsai/task-manager/internal/api/middleware"
	"github.com/bodasandeepsai/task-manager/internal/domain"
	"github.com/bodasandeepsai/task-manager/internal/service"
	"github.com/bodasandeepsai/task-manager/internal/service/auth"
)

// requireIdentity extracts the authenticated identity placed in the
// context by the auth middleware, writing a 401 response if it is
// missing (which means a route was registered outside the middleware).
func requireIdentity(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
	identity, ok := apimiddleware.GetIdentity(r)
	if !ok || identity.ID == uuid.Nil {
		HandleAPIError(w, r, auth.ErrMissingToken, "Unauthorized")
		return auth.Identity{}, false
	}
	return identity, true
}

// getPathUUID extracts and parses a UUID path parameter.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}

	return id, nil
}

// newTaskResponse converts a service-layer task detail to its API shape.
func newTaskResponse(detail *service.TaskDetail) TaskResponse {
	return TaskResponse{
		ID:          detail.ID,
		Title:       detail.Title,
		Description: detail.Description,
		Status:      string(detail.Status),
		Priority:    string(detail.Priority),
		DueDate:     detail.DueDate,
		AssignedTo: UserResponse{
			ID:       detail.Assignee.ID,
			Username: detail.Assignee.Username,
			Email:    detail.Assignee.Email,
		},
		CreatedBy: detail.CreatedBy,
		CreatedAt: detail.CreatedAt,
		UpdatedAt: detail.UpdatedAt,
	}
}

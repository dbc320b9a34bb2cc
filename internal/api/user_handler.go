package api

import (
	"log/slog"
	"net/http"

	"github.com/bodasandeepsai/task-manager/internal/api/shared"
	"github.com/bodasandeepsai/task-manager/internal/store"
)

// UserHandler serves the user directory used for assignee selection.
type UserHandler struct {
	userStore store.UserStore
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userStore store.UserStore) *UserHandler {
	return &UserHandler{userStore: userStore}
}

// List handles GET /api/users. It returns every registered user's
// public identity so callers can pick an assignee.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireIdentity(w, r); !ok {
		return
	}

	users, err := h.userStore.List(r.Context())
	if err != nil {
		slog.Error("failed to list users", "error", err)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to list users")
		return
	}

	responses := make([]UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, newUserResponse(user))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

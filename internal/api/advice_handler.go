package api

import (
	"log/slog"
	"net/http"

	"github.com/bodasandeepsai/task-manager/internal/advice"
	"github.com/bodasandeepsai/task-manager/internal/api/shared"
)

// AdviceHandler relays task-management questions to the AI advisor.
type AdviceHandler struct {
	advisor advice.Advisor
}

// NewAdviceHandler creates a new AdviceHandler.
func NewAdviceHandler(advisor advice.Advisor) *AdviceHandler {
	return &AdviceHandler{advisor: advisor}
}

// Advise handles POST /api/ai/advice.
func (h *AdviceHandler) Advise(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req AdviceRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Message is required")
		return
	}

	reply, err := h.advisor.Advise(r.Context(), req.Message)
	if err != nil {
		slog.Error("advice request failed", "error", err, "user_id", identity.ID)
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AdviceResponse{Response: reply})
}

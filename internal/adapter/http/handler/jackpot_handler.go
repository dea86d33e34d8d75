package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pixluck/wallet/internal/adapter/http/dto"
)

// JackpotService defines the behavior needed by JackpotHandler.
type JackpotService interface {
	Get(ctx context.Context) (int64, error)
	Set(ctx context.Context, cents int64) error
}

// JackpotHandler serves the public jackpot display value.
type JackpotHandler struct {
	jackpotUC JackpotService
}

// NewJackpotHandler creates a new JackpotHandler.
func NewJackpotHandler(jackpotUC JackpotService) *JackpotHandler {
	return &JackpotHandler{jackpotUC: jackpotUC}
}

// Get returns the displayed jackpot value.
func (h *JackpotHandler) Get(w http.ResponseWriter, r *http.Request) {
	cents, err := h.jackpotUC.Get(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get jackpot", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.JackpotResponse{JackpotCents: cents})
}

// Update sets the displayed jackpot value. Admin only.
func (h *JackpotHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateJackpotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.jackpotUC.Set(r.Context(), req.JackpotCents); err != nil {
		writeError(w, mapDomainError(err), "failed to update jackpot", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.JackpotResponse{JackpotCents: req.JackpotCents})
}

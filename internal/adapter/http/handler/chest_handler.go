package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pixluck/wallet/internal/adapter/http/dto"
	"github.com/pixluck/wallet/internal/domain"
	"github.com/pixluck/wallet/internal/infrastructure/metrics"
	"github.com/pixluck/wallet/internal/usecase"
)

// ChestService defines the behavior needed by ChestHandler.
type ChestService interface {
	ListChests(ctx context.Context, accountID string) ([]*domain.Chest, int, error)
	Claim(ctx context.Context, accountID, chestID string) (*usecase.ClaimResult, error)
}

// ChestHandler handles invite chest HTTP requests.
type ChestHandler struct {
	chestUC ChestService
}

// NewChestHandler creates a new ChestHandler.
func NewChestHandler(chestUC ChestService) *ChestHandler {
	return &ChestHandler{chestUC: chestUC}
}

// List returns the account's chest ladder.
func (h *ChestHandler) List(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	chests, qualified, err := h.chestUC.ListChests(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list chests", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListChestsResponse{
		Chests:             dto.ChestsFromDomain(chests),
		QualifiedReferrals: qualified,
	})
}

// Claim pays out an unlocked chest.
func (h *ChestHandler) Claim(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	chestID := chi.URLParam(r, "chestID")
	if accountID == "" || chestID == "" {
		writeError(w, http.StatusBadRequest, "missing account or chest ID", "")
		return
	}

	result, err := h.chestUC.Claim(r.Context(), accountID, chestID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to claim chest", err.Error())
		return
	}

	metrics.ChestClaims.WithLabelValues(string(result.ChestType)).Inc()
	writeJSON(w, http.StatusOK, dto.ClaimChestResponse{
		RewardCents:     result.RewardCents,
		NewBalanceCents: result.NewBalance,
	})
}

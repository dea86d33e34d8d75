package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pixluck/wallet/internal/adapter/http/dto"
	"github.com/pixluck/wallet/internal/domain"
	"github.com/pixluck/wallet/internal/usecase"
)

// AffiliateService defines the behavior needed by AffiliateHandler.
type AffiliateService interface {
	GetStats(ctx context.Context, accountID string) (*usecase.Stats, error)
	Withdraw(ctx context.Context, accountID string, amountCents int64) (*domain.Account, error)
}

// AffiliateHandler handles affiliate dashboard HTTP requests.
type AffiliateHandler struct {
	affiliateUC AffiliateService
}

// NewAffiliateHandler creates a new AffiliateHandler.
func NewAffiliateHandler(affiliateUC AffiliateService) *AffiliateHandler {
	return &AffiliateHandler{affiliateUC: affiliateUC}
}

// Stats returns an account's affiliate dashboard numbers.
func (h *AffiliateHandler) Stats(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	stats, err := h.affiliateUC.GetStats(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get affiliate stats", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AffiliateStatsFromUseCase(stats))
}

// Withdraw moves affiliate earnings into the main balance.
func (h *AffiliateHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req dto.AffiliateWithdrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.affiliateUC.Withdraw(r.Context(), id, req.AmountCents)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to withdraw affiliate balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pixluck/wallet/internal/adapter/http/dto"
	"github.com/pixluck/wallet/internal/domain"
	"github.com/pixluck/wallet/internal/usecase"
)

// AdminHandler serves the admin configuration surface. Routes carrying
// it are guarded by the JWT middleware.
type AdminHandler struct {
	configRepo usecase.ConfigRepository
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(configRepo usecase.ConfigRepository) *AdminHandler {
	return &AdminHandler{configRepo: configRepo}
}

// GetConfig returns the platform configuration without secrets.
func (h *AdminHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.configRepo.Get(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load config", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ConfigFromDomain(cfg))
}

// UpdateConfig replaces the platform configuration wholesale. Secrets
// left empty in the request keep their stored values.
func (h *AdminHandler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	bonusPercent, err := parsePercent(req.FirstDepositBonusPercent)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid first_deposit_bonus_percent", err.Error())
		return
	}
	revShare, err := parsePercent(req.RevSharePercent)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid rev_share_percent", err.Error())
		return
	}
	if req.JackpotCents < 0 || req.CPACents < 0 || req.TotalDepositsCycle < 0 || req.SkipDeposits < 0 {
		writeError(w, http.StatusBadRequest, "invalid config values", domain.ErrInvalidAmount.Error())
		return
	}
	depositTiers, err := parseDepositTiers(req.DepositTiers)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid deposit_tiers", err.Error())
		return
	}
	chestTiers, err := parseChestTiers(req.ChestTiers)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid chest_tiers", err.Error())
		return
	}

	current, err := h.configRepo.Get(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load config", err.Error())
		return
	}

	cfg := &domain.PlatformConfig{
		JackpotCents:             req.JackpotCents,
		AgentCode:                req.AgentCode,
		AgentToken:               req.AgentToken,
		GatewayAPIKey:            req.GatewayAPIKey,
		GatewayURL:               req.GatewayURL,
		WebhookBaseURL:           req.WebhookBaseURL,
		FirstDepositBonusPercent: bonusPercent,
		DepositTiers:             depositTiers,
		ChestTiers:               chestTiers,
		CPACents:                 req.CPACents,
		RevSharePercent:          revShare,
		TotalDepositsCycle:       req.TotalDepositsCycle,
		SkipDeposits:             req.SkipDeposits,
		UpdatedAt:                time.Now().UTC(),
	}
	if cfg.AgentToken == "" {
		cfg.AgentToken = current.AgentToken
	}
	if cfg.GatewayAPIKey == "" {
		cfg.GatewayAPIKey = current.GatewayAPIKey
	}
	// Tier lists absent from the request keep the stored ladders.
	if req.DepositTiers == nil {
		cfg.DepositTiers = current.DepositTiers
	}
	if req.ChestTiers == nil {
		cfg.ChestTiers = current.ChestTiers
	}

	if err := h.configRepo.Update(r.Context(), cfg); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update config", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ConfigFromDomain(cfg))
}

func parsePercent(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

func parseDepositTiers(tiers []dto.DepositTier) ([]domain.DepositBonusTier, error) {
	out := make([]domain.DepositBonusTier, 0, len(tiers))
	for i, t := range tiers {
		percent, err := decimal.NewFromString(t.BonusPercent)
		if err != nil {
			return nil, fmt.Errorf("tier %d: %w", i, err)
		}
		if t.MinAmountCents < 0 || percent.IsNegative() {
			return nil, fmt.Errorf("tier %d: %w", i, domain.ErrInvalidAmount)
		}
		if i > 0 && t.MinAmountCents <= tiers[i-1].MinAmountCents {
			return nil, fmt.Errorf("tier %d: min_amount_cents must ascend", i)
		}
		out = append(out, domain.DepositBonusTier{
			MinAmountCents: t.MinAmountCents,
			BonusPercent:   percent,
		})
	}
	return out, nil
}

func parseChestTiers(tiers []dto.ChestTier) ([]domain.InviteChestTier, error) {
	out := make([]domain.InviteChestTier, 0, len(tiers))
	for i, t := range tiers {
		if t.ReferralsRequired <= 0 || t.RewardCents <= 0 {
			return nil, fmt.Errorf("tier %d: %w", i, domain.ErrInvalidAmount)
		}
		if i > 0 && t.ReferralsRequired <= tiers[i-1].ReferralsRequired {
			return nil, fmt.Errorf("tier %d: referrals_required must ascend", i)
		}
		out = append(out, domain.InviteChestTier{
			ReferralsRequired: t.ReferralsRequired,
			RewardCents:       t.RewardCents,
		})
	}
	return out, nil
}

package dto

import (
	"github.com/pixluck/wallet/internal/usecase"
)

// RegisterRequest represents an account registration request.
type RegisterRequest struct {
	Name         string `json:"name"`
	Document     string `json:"document"`
	ReferralCode string `json:"referral_code,omitempty"`
}

// ToUseCaseInput converts the request to usecase input.
func (r *RegisterRequest) ToUseCaseInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		Name:         r.Name,
		Document:     r.Document,
		ReferralCode: r.ReferralCode,
	}
}

// CreateDepositRequest represents a PIX deposit charge request.
type CreateDepositRequest struct {
	AmountCents int64 `json:"amount_cents"`
}

// CreateWithdrawalRequest represents a PIX withdrawal request.
type CreateWithdrawalRequest struct {
	AmountCents int64  `json:"amount_cents"`
	PixKey      string `json:"pix_key"`
	PixKeyType  string `json:"pix_key_type"`
}

// AffiliateWithdrawRequest moves affiliate earnings to the main balance.
type AffiliateWithdrawRequest struct {
	AmountCents int64 `json:"amount_cents"`
}

// LaunchGameRequest represents a game session request.
type LaunchGameRequest struct {
	ProviderCode string `json:"provider_code"`
	GameCode     string `json:"game_code"`
	Lang         string `json:"lang,omitempty"`
}

// UpdateJackpotRequest sets the displayed jackpot value.
type UpdateJackpotRequest struct {
	JackpotCents int64 `json:"jackpot_cents"`
}

// UpdateConfigRequest replaces the admin-managed platform
// configuration. Tier lists left out entirely keep their stored
// values; an explicit empty array clears them.
type UpdateConfigRequest struct {
	JackpotCents             int64         `json:"jackpot_cents"`
	AgentCode                string        `json:"agent_code"`
	AgentToken               string        `json:"agent_token"`
	GatewayAPIKey            string        `json:"gateway_api_key"`
	GatewayURL               string        `json:"gateway_url"`
	WebhookBaseURL           string        `json:"webhook_base_url"`
	FirstDepositBonusPercent string        `json:"first_deposit_bonus_percent"`
	DepositTiers             []DepositTier `json:"deposit_tiers"`
	ChestTiers               []ChestTier   `json:"chest_tiers"`
	CPACents                 int64         `json:"cpa_cents"`
	RevSharePercent          string        `json:"rev_share_percent"`
	TotalDepositsCycle       int           `json:"total_deposits_cycle"`
	SkipDeposits             int           `json:"skip_deposits"`
}

// DepositTier grades the first-deposit bonus by deposit size.
type DepositTier struct {
	MinAmountCents int64  `json:"min_amount_cents"`
	BonusPercent   string `json:"bonus_percent"`
}

// ChestTier is one milestone of the invite chest ladder.
type ChestTier struct {
	ReferralsRequired int   `json:"referrals_required"`
	RewardCents       int64 `json:"reward_cents"`
}

// PixWebhookRequest is the gateway's callback payload.
type PixWebhookRequest struct {
	GatewayRef string `json:"id"`
	Kind       string `json:"type"`
	Status     string `json:"status"`
}

package dto

import (
	"time"

	"github.com/pixluck/wallet/internal/domain"
	"github.com/pixluck/wallet/internal/usecase"
)

// AccountResponse represents an account in API responses. Amounts are
// integer centavos.
type AccountResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	ReferralCode     string    `json:"referral_code"`
	ReferredBy       string    `json:"referred_by,omitempty"`
	BalanceCents     int64     `json:"balance_cents"`
	BonusCents       int64     `json:"bonus_cents"`
	AffiliateCents   int64     `json:"affiliate_cents"`
	TotalBetsCents   int64     `json:"total_bets_cents"`
	TotalDeposits    int64     `json:"total_deposits_cents"`
	DepositCount     int64     `json:"deposit_count"`
	Version          int64     `json:"version"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:             a.ID,
		Name:           a.Name,
		ReferralCode:   a.ReferralCode,
		ReferredBy:     a.ReferredBy,
		BalanceCents:   a.Balance,
		BonusCents:     a.BonusBalance,
		AffiliateCents: a.AffiliateBalance,
		TotalBetsCents: a.TotalBets,
		TotalDeposits:  a.TotalDeposits,
		DepositCount:   a.DepositCount,
		Version:        a.Version,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse wraps an account listing.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// LedgerEntryResponse represents a settlement entry in API responses.
type LedgerEntryResponse struct {
	ID                string    `json:"id"`
	TxnID             string    `json:"txn_id"`
	AccountID         string    `json:"account_id"`
	Kind              string    `json:"kind"`
	BetCents          int64     `json:"bet_cents"`
	WinCents          int64     `json:"win_cents"`
	ProviderCode      string    `json:"provider_code,omitempty"`
	GameCode          string    `json:"game_code,omitempty"`
	Sampled           bool      `json:"sampled"`
	BalanceAfterCents int64     `json:"balance_after_cents"`
	CreatedAt         time.Time `json:"created_at"`
}

// LedgerEntryFromDomain converts a domain entry to a response.
func LedgerEntryFromDomain(e *domain.LedgerEntry) *LedgerEntryResponse {
	return &LedgerEntryResponse{
		ID:                e.ID,
		TxnID:             e.TxnID,
		AccountID:         e.AccountID,
		Kind:              string(e.Kind),
		BetCents:          e.BetCents,
		WinCents:          e.WinCents,
		ProviderCode:      e.ProviderCode,
		GameCode:          e.GameCode,
		Sampled:           e.Sampled,
		BalanceAfterCents: e.BalanceAfter,
		CreatedAt:         e.CreatedAt,
	}
}

// LedgerEntriesFromDomain converts domain entries to responses.
func LedgerEntriesFromDomain(entries []*domain.LedgerEntry) []*LedgerEntryResponse {
	result := make([]*LedgerEntryResponse, len(entries))
	for i, e := range entries {
		result[i] = LedgerEntryFromDomain(e)
	}
	return result
}

// ListEntriesResponse wraps a ledger entry listing.
type ListEntriesResponse struct {
	Entries []*LedgerEntryResponse `json:"entries"`
	Total   int64                  `json:"total"`
}

// PaymentResponse represents a PIX payment in API responses.
type PaymentResponse struct {
	ID          string     `json:"id"`
	AccountID   string     `json:"account_id"`
	Direction   string     `json:"direction"`
	Status      string     `json:"status"`
	AmountCents int64      `json:"amount_cents"`
	PixKey      string     `json:"pix_key,omitempty"`
	PixKeyType  string     `json:"pix_key_type,omitempty"`
	GatewayRef  string     `json:"gateway_ref,omitempty"`
	QRCode      string     `json:"qr_code,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
}

// PaymentFromDomain converts a domain payment to a response.
func PaymentFromDomain(p *domain.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:          p.ID,
		AccountID:   p.AccountID,
		Direction:   string(p.Direction),
		Status:      string(p.Status),
		AmountCents: p.AmountCents,
		PixKey:      p.PixKey,
		PixKeyType:  p.PixKeyType,
		GatewayRef:  p.GatewayRef,
		QRCode:      p.QRCode,
		CreatedAt:   p.CreatedAt,
		ConfirmedAt: p.ConfirmedAt,
	}
}

// PaymentsFromDomain converts domain payments to responses.
func PaymentsFromDomain(payments []*domain.Payment) []*PaymentResponse {
	result := make([]*PaymentResponse, len(payments))
	for i, p := range payments {
		result[i] = PaymentFromDomain(p)
	}
	return result
}

// ChestResponse represents a chest in API responses.
type ChestResponse struct {
	ID                string     `json:"id"`
	Type              string     `json:"type"`
	Status            string     `json:"status"`
	RewardCents       int64      `json:"reward_cents"`
	ReferralsRequired int        `json:"referrals_required"`
	UnlockedAt        *time.Time `json:"unlocked_at,omitempty"`
	ClaimedAt         *time.Time `json:"claimed_at,omitempty"`
}

// ChestFromDomain converts a domain chest to a response.
func ChestFromDomain(c *domain.Chest) *ChestResponse {
	return &ChestResponse{
		ID:                c.ID,
		Type:              string(c.Type),
		Status:            string(c.Status),
		RewardCents:       c.RewardCents,
		ReferralsRequired: c.ReferralsRequired,
		UnlockedAt:        c.UnlockedAt,
		ClaimedAt:         c.ClaimedAt,
	}
}

// ListChestsResponse wraps the invite chest ladder.
type ListChestsResponse struct {
	Chests             []*ChestResponse `json:"chests"`
	QualifiedReferrals int              `json:"qualified_referrals"`
}

// ChestsFromDomain converts domain chests to responses.
func ChestsFromDomain(chests []*domain.Chest) []*ChestResponse {
	result := make([]*ChestResponse, len(chests))
	for i, c := range chests {
		result[i] = ChestFromDomain(c)
	}
	return result
}

// ClaimChestResponse reports a successful claim.
type ClaimChestResponse struct {
	RewardCents      int64 `json:"reward_cents"`
	NewBalanceCents  int64 `json:"new_balance_cents"`
}

// ReferralResponse represents a referral in API responses.
type ReferralResponse struct {
	ReferredID        string     `json:"referred_id"`
	Status            string     `json:"status"`
	TotalDepositCents int64      `json:"total_deposit_cents"`
	RewardCents       int64      `json:"reward_cents"`
	QualifiedAt       *time.Time `json:"qualified_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

// AffiliateStatsResponse is the affiliate dashboard payload.
type AffiliateStatsResponse struct {
	ReferralCode       string              `json:"referral_code"`
	AffiliateCents     int64               `json:"affiliate_cents"`
	TotalReferrals     int                 `json:"total_referrals"`
	QualifiedReferrals int                 `json:"qualified_referrals"`
	TotalDepositCents  int64               `json:"total_deposit_cents"`
	TotalRewardCents   int64               `json:"total_reward_cents"`
	Referrals          []*ReferralResponse `json:"referrals"`
}

// AffiliateStatsFromUseCase converts usecase stats to a response.
func AffiliateStatsFromUseCase(s *usecase.Stats) *AffiliateStatsResponse {
	referrals := make([]*ReferralResponse, len(s.Referrals))
	for i, r := range s.Referrals {
		referrals[i] = &ReferralResponse{
			ReferredID:        r.ReferredID,
			Status:            string(r.Status),
			TotalDepositCents: r.TotalDepositCents,
			RewardCents:       r.RewardCents,
			QualifiedAt:       r.QualifiedAt,
			CreatedAt:         r.CreatedAt,
		}
	}
	return &AffiliateStatsResponse{
		ReferralCode:       s.ReferralCode,
		AffiliateCents:     s.AffiliateBalance,
		TotalReferrals:     s.TotalReferrals,
		QualifiedReferrals: s.QualifiedReferrals,
		TotalDepositCents:  s.TotalDepositCents,
		TotalRewardCents:   s.TotalRewardCents,
		Referrals:          referrals,
	}
}

// JackpotResponse carries the displayed jackpot value.
type JackpotResponse struct {
	JackpotCents int64 `json:"jackpot_cents"`
}

// LaunchGameResponse carries a provider game session URL.
type LaunchGameResponse struct {
	LaunchURL string `json:"launch_url"`
}

// ConfigResponse represents the platform configuration. Secrets are
// never echoed back.
type ConfigResponse struct {
	JackpotCents             int64         `json:"jackpot_cents"`
	AgentCode                string        `json:"agent_code"`
	GatewayURL               string        `json:"gateway_url"`
	WebhookBaseURL           string        `json:"webhook_base_url"`
	FirstDepositBonusPercent string        `json:"first_deposit_bonus_percent"`
	DepositTiers             []DepositTier `json:"deposit_tiers"`
	ChestTiers               []ChestTier   `json:"chest_tiers"`
	CPACents                 int64         `json:"cpa_cents"`
	RevSharePercent          string        `json:"rev_share_percent"`
	TotalDepositsCycle       int           `json:"total_deposits_cycle"`
	SkipDeposits             int           `json:"skip_deposits"`
	UpdatedAt                time.Time     `json:"updated_at"`
}

// ConfigFromDomain converts the platform config to a response.
func ConfigFromDomain(c *domain.PlatformConfig) *ConfigResponse {
	depositTiers := make([]DepositTier, 0, len(c.DepositTiers))
	for _, t := range c.DepositTiers {
		depositTiers = append(depositTiers, DepositTier{
			MinAmountCents: t.MinAmountCents,
			BonusPercent:   t.BonusPercent.String(),
		})
	}
	chestTiers := make([]ChestTier, 0, len(c.ChestTiers))
	for _, t := range c.ChestTiers {
		chestTiers = append(chestTiers, ChestTier{
			ReferralsRequired: t.ReferralsRequired,
			RewardCents:       t.RewardCents,
		})
	}
	return &ConfigResponse{
		JackpotCents:             c.JackpotCents,
		AgentCode:                c.AgentCode,
		GatewayURL:               c.GatewayURL,
		WebhookBaseURL:           c.WebhookBaseURL,
		FirstDepositBonusPercent: c.FirstDepositBonusPercent.String(),
		DepositTiers:             depositTiers,
		ChestTiers:               chestTiers,
		CPACents:                 c.CPACents,
		RevSharePercent:          c.RevSharePercent.String(),
		TotalDepositsCycle:       c.TotalDepositsCycle,
		SkipDeposits:             c.SkipDeposits,
		UpdatedAt:                c.UpdatedAt,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

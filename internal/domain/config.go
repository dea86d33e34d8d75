package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlatformConfig is the single admin-managed configuration document:
// provider credentials, gateway credentials, bonus parameters and the
// displayed jackpot value. It is loaded once at startup and replaced
// wholesale on admin updates; nothing lazily initialises it on the
// data path.
type PlatformConfig struct {
	JackpotCents             int64
	AgentCode                string
	AgentToken               string
	GatewayAPIKey            string
	GatewayURL               string
	WebhookBaseURL           string
	FirstDepositBonusPercent decimal.Decimal
	DepositTiers             []DepositBonusTier
	ChestTiers               []InviteChestTier
	CPACents                 int64
	RevSharePercent          decimal.Decimal
	TotalDepositsCycle       int
	SkipDeposits             int
	UpdatedAt                time.Time
}

// DepositBonusTier grades the first-deposit bonus by deposit size.
// Tiers are kept sorted ascending by MinAmountCents; the highest tier
// the deposit reaches wins. JSON tags match the platform_config
// deposit_tiers column.
type DepositBonusTier struct {
	MinAmountCents int64           `json:"min_amount_cents"`
	BonusPercent   decimal.Decimal `json:"bonus_percent"`
}

// Affiliate extracts the commission parameters.
func (c *PlatformConfig) Affiliate() AffiliateConfig {
	return AffiliateConfig{
		CPACents:           c.CPACents,
		RevSharePercent:    c.RevSharePercent,
		TotalDepositsCycle: c.TotalDepositsCycle,
		SkipDeposits:       c.SkipDeposits,
	}
}

// DepositBonusCents computes the first-deposit bonus for amount,
// rounded half-up to whole centavos. With deposit tiers configured the
// highest tier the amount reaches sets the percentage; otherwise the
// flat FirstDepositBonusPercent applies.
func (c *PlatformConfig) DepositBonusCents(amountCents int64) int64 {
	percent := c.FirstDepositBonusPercent
	for _, tier := range c.DepositTiers {
		if amountCents >= tier.MinAmountCents {
			percent = tier.BonusPercent
		}
	}
	if percent.IsZero() {
		return 0
	}
	return decimal.NewFromInt(amountCents).
		Mul(percent).
		Div(decimal.NewFromInt(100)).
		Round(0).
		IntPart()
}

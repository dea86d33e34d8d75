package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AffiliateConfig holds the commission parameters applied to deposits
// made by referred users.
type AffiliateConfig struct {
	// CPACents is the one-time payout for a referred user's first
	// deposit. Zero disables CPA.
	CPACents int64
	// RevSharePercent is the recurring share of each non-skipped
	// deposit, e.g. 10 means 10%.
	RevSharePercent decimal.Decimal
	// TotalDepositsCycle is the cycle length for the skip window.
	// Zero disables cycling (no deposit is ever skipped).
	TotalDepositsCycle int
	// SkipDeposits is how many positions at the start of each cycle
	// earn no revenue share.
	SkipDeposits int
}

// DepositClass is the outcome of classifying one referred-user deposit
// within the affiliate's cycle.
type DepositClass struct {
	CyclePosition  int
	IsSkipped      bool
	IsFirstDeposit bool
}

// ClassifyDeposit places the seq-th deposit (1-based) of a referred
// user within the affiliate's cycle. When cycling is disabled the
// position is the raw sequence number and nothing is skipped.
func ClassifyDeposit(cfg AffiliateConfig, seq int) DepositClass {
	class := DepositClass{IsFirstDeposit: seq == 1}
	if cfg.TotalDepositsCycle <= 0 {
		class.CyclePosition = seq
		return class
	}
	class.CyclePosition = (seq-1)%cfg.TotalDepositsCycle + 1
	class.IsSkipped = class.CyclePosition <= cfg.SkipDeposits
	return class
}

// RevShareCents computes the revenue share for a deposit, rounded
// half-up to whole centavos.
func RevShareCents(depositCents int64, percent decimal.Decimal) int64 {
	return decimal.NewFromInt(depositCents).
		Mul(percent).
		Div(decimal.NewFromInt(100)).
		Round(0).
		IntPart()
}

// AffiliateDeposit records the commission decision for a single
// referred-user deposit. Exactly one row exists per payment; the
// cpaPaid / revShareCalculated flags are one-way and set atomically
// with the corresponding credit.
type AffiliateDeposit struct {
	ID                 string
	AffiliateID        string
	ReferredID         string
	PaymentID          string
	DepositCents       int64
	IsFirstDeposit     bool
	CyclePosition      int
	IsSkipped          bool
	CPAPaid            bool
	CPACents           int64
	RevShareCalculated bool
	RevShareCents      int64
	CreatedAt          time.Time
}

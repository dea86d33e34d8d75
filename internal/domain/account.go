package domain

import (
	"time"
)

// Account represents a player wallet. All monetary fields are integer
// centavos; conversion to decimal reais happens only at external
// boundaries.
type Account struct {
	ID               string
	Name             string
	Document         string
	ReferralCode     string
	ReferredBy       string
	Balance          int64
	BonusBalance     int64
	AffiliateBalance int64
	TotalBets        int64
	TotalDeposits    int64
	DepositCount     int64
	Version          int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// CanApply checks whether applying delta keeps the balance non-negative.
func (a *Account) CanApply(delta int64) error {
	if a.Balance+delta < 0 {
		return ErrInsufficientFunds
	}
	return nil
}

// ApplySettlement applies a settlement delta to the account. The caller
// must have validated the delta with CanApply first. BonusBalance is
// capped at the new balance and TotalBets grows by the wagered amount.
func (a *Account) ApplySettlement(delta int64) {
	a.Balance += delta
	if a.BonusBalance > a.Balance {
		a.BonusBalance = a.Balance
	}
	if delta < 0 {
		a.TotalBets += -delta
	}
}

// ApplyDeposit credits a confirmed deposit plus an optional bonus.
func (a *Account) ApplyDeposit(amount, bonus int64) {
	a.Balance += amount + bonus
	a.BonusBalance += bonus
	a.TotalDeposits += amount
	a.DepositCount++
}

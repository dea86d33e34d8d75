package domain

import (
	"testing"
)

func TestAccountCanApply(t *testing.T) {
	tests := []struct {
		name    string
		balance int64
		delta   int64
		wantErr error
	}{
		{"positive delta always allowed", 0, 500, nil},
		{"debit within balance", 1000, -1000, nil},
		{"debit below zero rejected", 1000, -1001, ErrInsufficientFunds},
		{"zero delta allowed", 0, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &Account{Balance: tt.balance}
			err := a.CanApply(tt.delta)
			if err != tt.wantErr {
				t.Errorf("CanApply(%d) = %v, want %v", tt.delta, err, tt.wantErr)
			}
		})
	}
}

func TestAccountApplySettlement(t *testing.T) {
	t.Run("losing round caps bonus and bumps total bets", func(t *testing.T) {
		a := &Account{Balance: 10000, BonusBalance: 9500, TotalBets: 100}
		a.ApplySettlement(-1500)

		if a.Balance != 8500 {
			t.Errorf("Balance = %d, want 8500", a.Balance)
		}
		if a.BonusBalance != 8500 {
			t.Errorf("BonusBalance = %d, want 8500", a.BonusBalance)
		}
		if a.TotalBets != 1600 {
			t.Errorf("TotalBets = %d, want 1600", a.TotalBets)
		}
	})

	t.Run("winning round leaves bonus and total bets alone", func(t *testing.T) {
		a := &Account{Balance: 10000, BonusBalance: 2000, TotalBets: 100}
		a.ApplySettlement(500)

		if a.Balance != 10500 {
			t.Errorf("Balance = %d, want 10500", a.Balance)
		}
		if a.BonusBalance != 2000 {
			t.Errorf("BonusBalance = %d, want 2000", a.BonusBalance)
		}
		if a.TotalBets != 100 {
			t.Errorf("TotalBets = %d, want 100", a.TotalBets)
		}
	})
}

func TestAccountApplyDeposit(t *testing.T) {
	a := &Account{Balance: 1000}
	a.ApplyDeposit(5000, 500)

	if a.Balance != 6500 {
		t.Errorf("Balance = %d, want 6500", a.Balance)
	}
	if a.BonusBalance != 500 {
		t.Errorf("BonusBalance = %d, want 500", a.BonusBalance)
	}
	if a.TotalDeposits != 5000 {
		t.Errorf("TotalDeposits = %d, want 5000", a.TotalDeposits)
	}
	if a.DepositCount != 1 {
		t.Errorf("DepositCount = %d, want 1", a.DepositCount)
	}
}

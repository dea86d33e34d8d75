package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestClassifyDeposit(t *testing.T) {
	cfg := AffiliateConfig{TotalDepositsCycle: 10, SkipDeposits: 3}

	tests := []struct {
		seq          int
		wantPosition int
		wantSkipped  bool
		wantFirst    bool
	}{
		{1, 1, true, true},
		{2, 2, true, false},
		{3, 3, true, false},
		{4, 4, false, false},
		{10, 10, false, false},
		{11, 1, true, false},
		{13, 3, true, false},
		{14, 4, false, false},
		{21, 1, true, false},
	}

	for _, tt := range tests {
		class := ClassifyDeposit(cfg, tt.seq)
		if class.CyclePosition != tt.wantPosition {
			t.Errorf("seq %d: CyclePosition = %d, want %d", tt.seq, class.CyclePosition, tt.wantPosition)
		}
		if class.IsSkipped != tt.wantSkipped {
			t.Errorf("seq %d: IsSkipped = %v, want %v", tt.seq, class.IsSkipped, tt.wantSkipped)
		}
		if class.IsFirstDeposit != tt.wantFirst {
			t.Errorf("seq %d: IsFirstDeposit = %v, want %v", tt.seq, class.IsFirstDeposit, tt.wantFirst)
		}
	}
}

func TestClassifyDepositCyclingDisabled(t *testing.T) {
	cfg := AffiliateConfig{TotalDepositsCycle: 0, SkipDeposits: 3}

	for _, seq := range []int{1, 2, 5, 50} {
		class := ClassifyDeposit(cfg, seq)
		if class.IsSkipped {
			t.Errorf("seq %d: IsSkipped = true, want false when cycling disabled", seq)
		}
		if class.CyclePosition != seq {
			t.Errorf("seq %d: CyclePosition = %d, want %d", seq, class.CyclePosition, seq)
		}
	}
}

func TestRevShareCents(t *testing.T) {
	tests := []struct {
		deposit int64
		percent string
		want    int64
	}{
		{10000, "10", 1000},
		{10000, "12.5", 1250},
		{333, "10", 33},
		{335, "10", 34}, // rounds half-up
		{10000, "0", 0},
	}

	for _, tt := range tests {
		pct, _ := decimal.NewFromString(tt.percent)
		got := RevShareCents(tt.deposit, pct)
		if got != tt.want {
			t.Errorf("RevShareCents(%d, %s%%) = %d, want %d", tt.deposit, tt.percent, got, tt.want)
		}
	}
}

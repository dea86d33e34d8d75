package domain

import "time"

// ReferralStatus is the lifecycle of a referral link.
type ReferralStatus string

const (
	ReferralPending   ReferralStatus = "pending"
	ReferralQualified ReferralStatus = "qualified"
	ReferralRewarded  ReferralStatus = "rewarded"
)

// Referral links a referred account to its referrer. A referral
// qualifies on the referred user's first confirmed deposit.
type Referral struct {
	ID                string
	ReferrerID        string
	ReferredID        string
	ReferralCode      string
	Status            ReferralStatus
	TotalDepositCents int64
	TotalBetCents     int64
	RewardCents       int64
	QualifiedAt       *time.Time
	RewardedAt        *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

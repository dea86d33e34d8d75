package domain

import "time"

// ChestType distinguishes the reward tracks.
type ChestType string

const (
	ChestInvite ChestType = "invite"
	ChestVIP    ChestType = "vip"
	ChestDaily  ChestType = "daily"
)

// ChestStatus is the claim lifecycle of a chest.
type ChestStatus string

const (
	ChestLocked   ChestStatus = "locked"
	ChestUnlocked ChestStatus = "unlocked"
	ChestClaimed  ChestStatus = "claimed"
)

// Chest is a one-time reward unlocked by reaching a milestone. Invite
// chests pay into the affiliate balance, the others into the main
// balance.
type Chest struct {
	ID                string
	AccountID         string
	Type              ChestType
	RewardCents       int64
	Status            ChestStatus
	ReferralsRequired int
	UnlockedAt        *time.Time
	ClaimedAt         *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Claimable returns nil when the chest can be claimed by accountID.
func (c *Chest) Claimable(accountID string) error {
	if c.AccountID != accountID {
		return ErrChestNotOwned
	}
	switch c.Status {
	case ChestLocked:
		return ErrChestLocked
	case ChestClaimed:
		return ErrChestClaimed
	}
	return nil
}

// InviteChestTier defines one milestone of the invite chest ladder.
// JSON tags match the platform_config chest_tiers column.
type InviteChestTier struct {
	ReferralsRequired int   `json:"referrals_required"`
	RewardCents       int64 `json:"reward_cents"`
}

// DefaultInviteChestTiers is the stock ladder, seeded into
// platform_config and used whenever the admin has not configured one.
var DefaultInviteChestTiers = []InviteChestTier{
	{ReferralsRequired: 1, RewardCents: 1000},
	{ReferralsRequired: 5, RewardCents: 4000},
	{ReferralsRequired: 10, RewardCents: 5000},
	{ReferralsRequired: 20, RewardCents: 5000},
	{ReferralsRequired: 30, RewardCents: 5000},
	{ReferralsRequired: 50, RewardCents: 5000},
	{ReferralsRequired: 75, RewardCents: 10000},
	{ReferralsRequired: 100, RewardCents: 10000},
	{ReferralsRequired: 150, RewardCents: 20000},
	{ReferralsRequired: 200, RewardCents: 20000},
	{ReferralsRequired: 300, RewardCents: 50000},
	{ReferralsRequired: 500, RewardCents: 50000},
	{ReferralsRequired: 1000, RewardCents: 108800},
}

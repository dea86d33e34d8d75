package usecase

import (
	"context"
	"time"

	"github.com/pixluck/wallet/internal/domain"
)

// ChestUseCase maintains and pays the invite chest ladder. The ladder
// itself is admin-managed platform configuration.
type ChestUseCase struct {
	txManager    TransactionManager
	accountRepo  AccountRepository
	chestRepo    ChestRepository
	referralRepo ReferralRepository
	idGen        IDGenerator
	config       ConfigRepository
}

// NewChestUseCase creates a new ChestUseCase.
func NewChestUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	chestRepo ChestRepository,
	referralRepo ReferralRepository,
	idGen IDGenerator,
	config ConfigRepository,
) *ChestUseCase {
	return &ChestUseCase{
		txManager:    txManager,
		accountRepo:  accountRepo,
		chestRepo:    chestRepo,
		referralRepo: referralRepo,
		idGen:        idGen,
		config:       config,
	}
}

// ListChests returns the account's invite chest ladder, creating
// missing tiers and unlocking those whose milestone is reached.
func (uc *ChestUseCase) ListChests(ctx context.Context, accountID string) ([]*domain.Chest, int, error) {
	qualified, err := uc.referralRepo.CountQualifiedByReferrer(ctx, accountID)
	if err != nil {
		return nil, 0, err
	}

	cfg, err := uc.config.Get(ctx)
	if err != nil {
		return nil, 0, err
	}
	tiers := cfg.ChestTiers
	if len(tiers) == 0 {
		tiers = domain.DefaultInviteChestTiers
	}

	existing, err := uc.chestRepo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, 0, err
	}
	byMilestone := make(map[int]*domain.Chest, len(existing))
	for _, c := range existing {
		if c.Type == domain.ChestInvite {
			byMilestone[c.ReferralsRequired] = c
		}
	}

	now := time.Now().UTC()
	chests := make([]*domain.Chest, 0, len(tiers))

	for _, tier := range tiers {
		chest, ok := byMilestone[tier.ReferralsRequired]
		if !ok {
			chest = &domain.Chest{
				ID:                uc.idGen.Generate(),
				AccountID:         accountID,
				Type:              domain.ChestInvite,
				RewardCents:       tier.RewardCents,
				Status:            domain.ChestLocked,
				ReferralsRequired: tier.ReferralsRequired,
				CreatedAt:         now,
				UpdatedAt:         now,
			}
			if qualified >= tier.ReferralsRequired {
				chest.Status = domain.ChestUnlocked
				chest.UnlockedAt = &now
			}
			if err := uc.chestRepo.Create(ctx, chest); err != nil {
				return nil, 0, err
			}
		} else if chest.Status == domain.ChestLocked && qualified >= tier.ReferralsRequired {
			chest.Status = domain.ChestUnlocked
			chest.UnlockedAt = &now
			chest.UpdatedAt = now
			if err := uc.chestRepo.Update(ctx, nil, chest); err != nil {
				return nil, 0, err
			}
		}
		chests = append(chests, chest)
	}

	return chests, qualified, nil
}

// ClaimResult reports a successful chest claim.
type ClaimResult struct {
	ChestType   domain.ChestType
	RewardCents int64
	NewBalance  int64
}

// Claim pays out an unlocked chest exactly once. Invite chests credit
// the affiliate balance, other types the main balance.
func (uc *ChestUseCase) Claim(ctx context.Context, accountID, chestID string) (*ClaimResult, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	chest, err := uc.chestRepo.GetByIDForUpdate(ctx, tx, chestID)
	if err != nil {
		return nil, err
	}
	if err := chest.Claimable(accountID); err != nil {
		return nil, err
	}

	account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, accountID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var newBalance int64
	if chest.Type == domain.ChestInvite {
		account.AffiliateBalance += chest.RewardCents
		newBalance = account.AffiliateBalance
	} else {
		account.Balance += chest.RewardCents
		newBalance = account.Balance
	}

	if err := uc.accountRepo.UpdateBalances(ctx, tx, account, now); err != nil {
		return nil, err
	}

	chest.Status = domain.ChestClaimed
	chest.ClaimedAt = &now
	chest.UpdatedAt = now
	if err := uc.chestRepo.Update(ctx, tx, chest); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &ClaimResult{ChestType: chest.Type, RewardCents: chest.RewardCents, NewBalance: newBalance}, nil
}

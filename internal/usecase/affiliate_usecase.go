package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/pixluck/wallet/internal/domain"
)

// AffiliateUseCase decides, per referred-user deposit, whether the
// referrer earns a one-time CPA payout and/or a recurring revenue
// share, under the configured skip-window cycle.
type AffiliateUseCase struct {
	txManager     TransactionManager
	accountRepo   AccountRepository
	affiliateRepo AffiliateRepository
	referralRepo  ReferralRepository
	idGen         IDGenerator
	config        ConfigRepository
}

// NewAffiliateUseCase creates a new AffiliateUseCase.
func NewAffiliateUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	affiliateRepo AffiliateRepository,
	referralRepo ReferralRepository,
	idGen IDGenerator,
	config ConfigRepository,
) *AffiliateUseCase {
	return &AffiliateUseCase{
		txManager:     txManager,
		accountRepo:   accountRepo,
		affiliateRepo: affiliateRepo,
		referralRepo:  referralRepo,
		idGen:         idGen,
		config:        config,
	}
}

// ProcessDepositInput identifies one confirmed deposit of a possibly
// referred user.
type ProcessDepositInput struct {
	PaymentID    string
	ReferredID   string
	DepositCents int64
}

// ProcessDeposit runs affiliate cycle accounting for one confirmed
// deposit. Replays (same PaymentID) are no-ops: the one-time flags on
// the affiliate deposit record are set atomically with the credits, so
// a redelivered deposit event can never pay twice. Returns nil record
// when the depositor was not referred.
func (uc *AffiliateUseCase) ProcessDeposit(ctx context.Context, input ProcessDepositInput) (*domain.AffiliateDeposit, error) {
	if input.PaymentID == "" || input.ReferredID == "" || input.DepositCents <= 0 {
		return nil, domain.ErrInvalidRequest
	}

	referral, err := uc.referralRepo.GetByReferred(ctx, input.ReferredID)
	if errors.Is(err, domain.ErrReferralNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	cfg, err := uc.config.Get(ctx)
	if err != nil {
		return nil, err
	}
	affCfg := cfg.Affiliate()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Serialize on the affiliate's account row: concurrent deposits
	// from different referred users credit the same balance.
	affiliate, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, referral.ReferrerID)
	if err != nil {
		return nil, err
	}

	existing, err := uc.affiliateRepo.GetByPaymentID(ctx, tx, input.PaymentID)
	if err != nil && !errors.Is(err, domain.ErrEntryNotFound) {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	seq, err := uc.affiliateRepo.CountByReferred(ctx, tx, input.ReferredID)
	if err != nil {
		return nil, err
	}
	seq++

	class := domain.ClassifyDeposit(affCfg, seq)
	now := time.Now().UTC()

	dep := &domain.AffiliateDeposit{
		ID:             uc.idGen.Generate(),
		AffiliateID:    referral.ReferrerID,
		ReferredID:     input.ReferredID,
		PaymentID:      input.PaymentID,
		DepositCents:   input.DepositCents,
		IsFirstDeposit: class.IsFirstDeposit,
		CyclePosition:  class.CyclePosition,
		IsSkipped:      class.IsSkipped,
		CreatedAt:      now,
	}

	if class.IsFirstDeposit && affCfg.CPACents > 0 {
		affiliate.AffiliateBalance += affCfg.CPACents
		dep.CPAPaid = true
		dep.CPACents = affCfg.CPACents
	}

	if !class.IsSkipped && !affCfg.RevSharePercent.IsZero() {
		share := domain.RevShareCents(input.DepositCents, affCfg.RevSharePercent)
		if share > 0 {
			affiliate.AffiliateBalance += share
			dep.RevShareCalculated = true
			dep.RevShareCents = share
		}
	}

	if dep.CPAPaid || dep.RevShareCalculated {
		if err := uc.accountRepo.UpdateBalances(ctx, tx, affiliate, now); err != nil {
			return nil, err
		}
	}

	if err := uc.affiliateRepo.Create(ctx, tx, dep); err != nil {
		if errors.Is(err, domain.ErrDuplicateTransaction) {
			// Concurrent processing of the same deposit event won the
			// race; our credits roll back with the transaction.
			tx.Rollback(ctx)
			return uc.affiliateRepo.GetByPaymentID(ctx, nil, input.PaymentID)
		}
		return nil, err
	}

	// Keep the referral aggregates in step with the deposit.
	locked, err := uc.referralRepo.GetByReferredForUpdate(ctx, tx, input.ReferredID)
	if err != nil {
		return nil, err
	}
	locked.TotalDepositCents += input.DepositCents
	if locked.Status == domain.ReferralPending {
		locked.Status = domain.ReferralQualified
		locked.QualifiedAt = &now
	}
	locked.RewardCents += dep.CPACents + dep.RevShareCents
	if err := uc.referralRepo.Update(ctx, tx, locked); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return dep, nil
}

// Withdraw moves amountCents from the affiliate balance to the main
// balance of the same account.
func (uc *AffiliateUseCase) Withdraw(ctx context.Context, accountID string, amountCents int64) (*domain.Account, error) {
	if amountCents <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, accountID)
	if err != nil {
		return nil, err
	}

	if account.AffiliateBalance < amountCents {
		return nil, domain.ErrInsufficientFunds
	}

	account.AffiliateBalance -= amountCents
	account.Balance += amountCents

	if err := uc.accountRepo.UpdateBalances(ctx, tx, account, time.Now().UTC()); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return account, nil
}

// Stats aggregates an affiliate's referral performance.
type Stats struct {
	ReferralCode       string
	AffiliateBalance   int64
	TotalReferrals     int
	QualifiedReferrals int
	TotalDepositCents  int64
	TotalRewardCents   int64
	Referrals          []*domain.Referral
}

// GetStats returns the affiliate dashboard numbers for an account.
func (uc *AffiliateUseCase) GetStats(ctx context.Context, accountID string) (*Stats, error) {
	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	referrals, err := uc.referralRepo.ListByReferrer(ctx, accountID, 1000, 0)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		ReferralCode:     account.ReferralCode,
		AffiliateBalance: account.AffiliateBalance,
		TotalReferrals:   len(referrals),
		Referrals:        referrals,
	}
	for _, r := range referrals {
		if r.Status != domain.ReferralPending {
			stats.QualifiedReferrals++
		}
		stats.TotalDepositCents += r.TotalDepositCents
		stats.TotalRewardCents += r.RewardCents
	}

	return stats, nil
}

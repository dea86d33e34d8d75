package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/pixluck/wallet/internal/domain"
)

// SettlementUseCase applies exactly-once, balance-safe monetary deltas
// from provider settlement callbacks. Per-account mutation is
// serialized by a row lock; the ledger's unique txn_id constraint
// backstops the in-transaction dedup check.
type SettlementUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	ledgerRepo  LedgerRepository
	idGen       IDGenerator
	retrier     Retrier
	samplesMode bool
}

// NewSettlementUseCase creates a new SettlementUseCase. In samples mode
// settlements are logged to the ledger but never move real balance.
func NewSettlementUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	ledgerRepo LedgerRepository,
	idGen IDGenerator,
	retrier Retrier,
	samplesMode bool,
) *SettlementUseCase {
	return &SettlementUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		idGen:       idGen,
		retrier:     retrier,
		samplesMode: samplesMode,
	}
}

// SettleInput is the canonical settlement request.
type SettleInput struct {
	TxnID        string
	AccountID    string
	Kind         domain.EntryKind
	BetCents     int64
	WinCents     int64
	ProviderCode string
	GameCode     string
}

// SettleResult reports the balance after the settlement was applied (or
// after the original application, for replays).
type SettleResult struct {
	BalanceAfter int64
	Replayed     bool
	Sampled      bool
}

// Settle processes one settlement request. Replays of an already
// settled txn_id return the stored balance without touching the
// account; a settlement that would drive the balance negative fails
// with domain.ErrInsufficientFunds and writes nothing.
func (uc *SettlementUseCase) Settle(ctx context.Context, input SettleInput) (*SettleResult, error) {
	if input.TxnID == "" || input.AccountID == "" {
		return nil, domain.ErrInvalidRequest
	}
	if input.BetCents < 0 || input.WinCents < 0 {
		return nil, domain.ErrInvalidRequest
	}
	if input.Kind == "" {
		input.Kind = domain.EntryDebitCredit
	}
	if !input.Kind.Valid() {
		return nil, domain.ErrInvalidRequest
	}

	var result *SettleResult

	err := uc.retrier.Retry(ctx, func() error {
		r, err := uc.settleOnce(ctx, input)
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	if errors.Is(err, domain.ErrDuplicateTransaction) {
		// Lost the append race to a concurrent writer with the same
		// txn_id. The winner's entry is committed, answer from it.
		return uc.replay(ctx, input.TxnID)
	}
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (uc *SettlementUseCase) settleOnce(ctx context.Context, input SettleInput) (*SettleResult, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Lock the account row first: this serializes settlements per
	// account and makes the dedup read below race-free.
	account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, input.AccountID)
	if err != nil {
		return nil, err
	}

	existing, err := uc.ledgerRepo.GetByTxnIDTx(ctx, tx, input.TxnID)
	if err != nil && !errors.Is(err, domain.ErrEntryNotFound) {
		return nil, err
	}
	if existing != nil {
		return &SettleResult{
			BalanceAfter: existing.BalanceAfter,
			Replayed:     true,
			Sampled:      existing.Sampled,
		}, nil
	}

	now := time.Now().UTC()
	entry := &domain.LedgerEntry{
		ID:           uc.idGen.Generate(),
		TxnID:        input.TxnID,
		AccountID:    account.ID,
		Kind:         input.Kind,
		BetCents:     input.BetCents,
		WinCents:     input.WinCents,
		ProviderCode: input.ProviderCode,
		GameCode:     input.GameCode,
		CreatedAt:    now,
	}

	if uc.samplesMode {
		// Demo traffic: record the entry for audit and dedup, leave
		// the balance untouched.
		entry.Sampled = true
		entry.BalanceAfter = account.Balance
		if err := uc.ledgerRepo.Create(ctx, tx, entry); err != nil {
			return nil, err
		}
		if err := tx.Commit(ctx); err != nil {
			return nil, err
		}
		return &SettleResult{BalanceAfter: account.Balance, Sampled: true}, nil
	}

	delta := entry.Delta()
	if err := account.CanApply(delta); err != nil {
		return nil, err
	}

	account.ApplySettlement(delta)
	entry.BalanceAfter = account.Balance

	if err := uc.accountRepo.UpdateBalances(ctx, tx, account, now); err != nil {
		return nil, err
	}
	if err := uc.ledgerRepo.Create(ctx, tx, entry); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &SettleResult{BalanceAfter: account.Balance}, nil
}

func (uc *SettlementUseCase) replay(ctx context.Context, txnID string) (*SettleResult, error) {
	entry, err := uc.ledgerRepo.GetByTxnID(ctx, txnID)
	if err != nil {
		return nil, err
	}
	return &SettleResult{
		BalanceAfter: entry.BalanceAfter,
		Replayed:     true,
		Sampled:      entry.Sampled,
	}, nil
}

// Balance returns the current balance of an account, floored at zero
// for the provider-facing surface.
func (uc *SettlementUseCase) Balance(ctx context.Context, accountID string) (int64, error) {
	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return 0, err
	}
	if account.Balance < 0 {
		return 0, nil
	}
	return account.Balance, nil
}

// ListEntriesInput represents input for listing ledger entries.
type ListEntriesInput struct {
	AccountID string
	Limit     int
	Offset    int
}

// ListEntries lists settlement entries for an account.
func (uc *SettlementUseCase) ListEntries(ctx context.Context, input ListEntriesInput) ([]*domain.LedgerEntry, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}
	if input.Limit > 100 {
		input.Limit = 100
	}
	return uc.ledgerRepo.ListByAccount(ctx, input.AccountID, input.Limit, input.Offset)
}

package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/pixluck/wallet/internal/domain"
)

// AccountUseCase handles account registration and lookups.
type AccountUseCase struct {
	accountRepo  AccountRepository
	referralRepo ReferralRepository
	provider     GameProvider
	idGen        IDGenerator
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(
	accountRepo AccountRepository,
	referralRepo ReferralRepository,
	provider GameProvider,
	idGen IDGenerator,
) *AccountUseCase {
	return &AccountUseCase{
		accountRepo:  accountRepo,
		referralRepo: referralRepo,
		provider:     provider,
		idGen:        idGen,
	}
}

// RegisterInput represents input for registering an account.
type RegisterInput struct {
	Name         string
	Document     string
	ReferralCode string
}

// Register creates an account, mirrors it at the game provider and
// links it to a referrer when a valid referral code was supplied.
func (uc *AccountUseCase) Register(ctx context.Context, input RegisterInput) (*domain.Account, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, domain.ErrInvalidRequest
	}

	now := time.Now().UTC()
	account := &domain.Account{
		ID:           uc.idGen.Generate(),
		Name:         strings.TrimSpace(input.Name),
		Document:     input.Document,
		ReferralCode: uc.idGen.Generate(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if input.ReferralCode != "" {
		referrer, err := uc.accountRepo.GetByReferralCode(ctx, input.ReferralCode)
		if err != nil && !errors.Is(err, domain.ErrAccountNotFound) {
			return nil, err
		}
		if referrer != nil {
			account.ReferredBy = referrer.ID
		}
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	if account.ReferredBy != "" {
		referral := &domain.Referral{
			ID:           uc.idGen.Generate(),
			ReferrerID:   account.ReferredBy,
			ReferredID:   account.ID,
			ReferralCode: input.ReferralCode,
			Status:       domain.ReferralPending,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := uc.referralRepo.Create(ctx, referral); err != nil {
			return nil, err
		}
	}

	if uc.provider != nil {
		if err := uc.provider.CreateUser(ctx, account.ID); err != nil {
			// Provider mirror is best effort at registration; the
			// seamless wallet is authoritative for balance.
			return account, nil
		}
	}

	return account, nil
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// LaunchGameInput represents input for launching a provider game.
type LaunchGameInput struct {
	AccountID    string
	ProviderCode string
	GameCode     string
	Lang         string
}

// LaunchGame asks the provider for a game session URL.
func (uc *AccountUseCase) LaunchGame(ctx context.Context, input LaunchGameInput) (string, error) {
	if input.ProviderCode == "" || input.GameCode == "" {
		return "", domain.ErrInvalidRequest
	}
	if _, err := uc.accountRepo.GetByID(ctx, input.AccountID); err != nil {
		return "", err
	}
	lang := input.Lang
	if lang == "" {
		lang = "pt"
	}
	return uc.provider.LaunchGame(ctx, input.AccountID, input.ProviderCode, input.GameCode, lang)
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	Limit  int
	Offset int
}

// ListAccounts lists accounts with pagination.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.Account, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}
	if input.Limit > 100 {
		input.Limit = 100
	}
	return uc.accountRepo.List(ctx, input.Limit, input.Offset)
}

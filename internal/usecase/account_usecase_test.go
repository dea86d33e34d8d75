package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixluck/wallet/internal/domain"
	"github.com/pixluck/wallet/internal/usecase"
	"github.com/pixluck/wallet/internal/usecase/mocks"
)

type accountFixture struct {
	accountRepo  *mocks.MockAccountRepository
	referralRepo *mocks.MockReferralRepository
	provider     *mocks.MockGameProvider
	uc           *usecase.AccountUseCase
}

func newAccountFixture(t *testing.T) *accountFixture {
	t.Helper()
	f := &accountFixture{
		accountRepo:  mocks.NewMockAccountRepository(),
		referralRepo: mocks.NewMockReferralRepository(),
		provider:     mocks.NewMockGameProvider(),
	}
	f.uc = usecase.NewAccountUseCase(f.accountRepo, f.referralRepo, f.provider, mocks.NewMockIDGenerator())
	return f
}

func TestAccountUseCase_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates account and provider mirror", func(t *testing.T) {
		f := newAccountFixture(t)

		var mirrored string
		f.provider.CreateUserFunc = func(ctx context.Context, userCode string) error {
			mirrored = userCode
			return nil
		}

		account, err := f.uc.Register(ctx, usecase.RegisterInput{
			Name:     "  Maria Silva ",
			Document: "12345678900",
		})

		require.NoError(t, err)
		assert.Equal(t, "Maria Silva", account.Name)
		assert.NotEmpty(t, account.ReferralCode)
		assert.Empty(t, account.ReferredBy)
		assert.Equal(t, account.ID, mirrored)
		assert.NotNil(t, f.accountRepo.Stored(account.ID))
	})

	t.Run("valid referral code links referrer", func(t *testing.T) {
		f := newAccountFixture(t)
		now := time.Now().UTC()
		f.accountRepo.Seed(&domain.Account{
			ID: "aff-1", Name: "Affiliate", ReferralCode: "CODE1",
			CreatedAt: now, UpdatedAt: now,
		})

		account, err := f.uc.Register(ctx, usecase.RegisterInput{
			Name:         "Maria Silva",
			ReferralCode: "CODE1",
		})

		require.NoError(t, err)
		assert.Equal(t, "aff-1", account.ReferredBy)

		referral := f.referralRepo.Stored(account.ID)
		require.NotNil(t, referral)
		assert.Equal(t, "aff-1", referral.ReferrerID)
		assert.Equal(t, domain.ReferralPending, referral.Status)
	})

	t.Run("unknown referral code is ignored", func(t *testing.T) {
		f := newAccountFixture(t)

		account, err := f.uc.Register(ctx, usecase.RegisterInput{
			Name:         "Maria Silva",
			ReferralCode: "NOPE",
		})

		require.NoError(t, err)
		assert.Empty(t, account.ReferredBy)
		assert.Nil(t, f.referralRepo.Stored(account.ID))
	})

	t.Run("provider failure does not fail registration", func(t *testing.T) {
		f := newAccountFixture(t)
		f.provider.CreateUserFunc = func(ctx context.Context, userCode string) error {
			return errors.New("provider down")
		}

		account, err := f.uc.Register(ctx, usecase.RegisterInput{Name: "Maria Silva"})

		require.NoError(t, err)
		assert.NotNil(t, f.accountRepo.Stored(account.ID))
	})

	t.Run("blank name rejected", func(t *testing.T) {
		f := newAccountFixture(t)

		_, err := f.uc.Register(ctx, usecase.RegisterInput{Name: "   "})
		assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	})
}

func TestAccountUseCase_LaunchGame(t *testing.T) {
	ctx := context.Background()

	t.Run("returns provider launch url", func(t *testing.T) {
		f := newAccountFixture(t)
		now := time.Now().UTC()
		f.accountRepo.Seed(&domain.Account{ID: "acc-1", CreatedAt: now, UpdatedAt: now})

		var gotLang string
		f.provider.LaunchGameFunc = func(ctx context.Context, userCode, providerCode, gameCode, lang string) (string, error) {
			gotLang = lang
			return "https://games.example/session/abc", nil
		}

		url, err := f.uc.LaunchGame(ctx, usecase.LaunchGameInput{
			AccountID:    "acc-1",
			ProviderCode: "PGSOFT",
			GameCode:     "fortune-tiger",
		})

		require.NoError(t, err)
		assert.Equal(t, "https://games.example/session/abc", url)
		assert.Equal(t, "pt", gotLang)
	})

	t.Run("missing game code", func(t *testing.T) {
		f := newAccountFixture(t)

		_, err := f.uc.LaunchGame(ctx, usecase.LaunchGameInput{
			AccountID:    "acc-1",
			ProviderCode: "PGSOFT",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	})

	t.Run("unknown account", func(t *testing.T) {
		f := newAccountFixture(t)

		_, err := f.uc.LaunchGame(ctx, usecase.LaunchGameInput{
			AccountID:    "missing",
			ProviderCode: "PGSOFT",
			GameCode:     "fortune-tiger",
		})
		assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	})
}

func TestAccountUseCase_ListAccounts(t *testing.T) {
	ctx := context.Background()
	f := newAccountFixture(t)

	var gotLimit int
	f.accountRepo.ListFunc = func(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
		gotLimit = limit
		return nil, nil
	}

	_, err := f.uc.ListAccounts(ctx, usecase.ListAccountsInput{})
	require.NoError(t, err)
	assert.Equal(t, 20, gotLimit)

	_, err = f.uc.ListAccounts(ctx, usecase.ListAccountsInput{Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, 100, gotLimit)
}

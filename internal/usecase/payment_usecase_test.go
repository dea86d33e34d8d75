package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixluck/wallet/internal/domain"
	"github.com/pixluck/wallet/internal/usecase"
	"github.com/pixluck/wallet/internal/usecase/mocks"
)

type paymentFixture struct {
	accountRepo   *mocks.MockAccountRepository
	paymentRepo   *mocks.MockPaymentRepository
	webhookRepo   *mocks.MockWebhookRepository
	affiliateRepo *mocks.MockAffiliateRepository
	referralRepo  *mocks.MockReferralRepository
	gateway       *mocks.MockPixGateway
	uc            *usecase.PaymentUseCase
}

func newPaymentFixture(t *testing.T, cfg *domain.PlatformConfig) *paymentFixture {
	t.Helper()
	if cfg == nil {
		cfg = &domain.PlatformConfig{WebhookBaseURL: "https://wallet.example"}
	}
	f := &paymentFixture{
		accountRepo:   mocks.NewMockAccountRepository(),
		paymentRepo:   mocks.NewMockPaymentRepository(),
		webhookRepo:   mocks.NewMockWebhookRepository(),
		affiliateRepo: mocks.NewMockAffiliateRepository(),
		referralRepo:  mocks.NewMockReferralRepository(),
		gateway:       mocks.NewMockPixGateway(),
	}
	txManager := mocks.NewMockTransactionManager()
	idGen := mocks.NewMockIDGenerator()
	configRepo := mocks.NewMockConfigRepository(cfg)
	affiliateUC := usecase.NewAffiliateUseCase(
		txManager, f.accountRepo, f.affiliateRepo, f.referralRepo, idGen, configRepo,
	)
	f.uc = usecase.NewPaymentUseCase(
		txManager, f.accountRepo, f.paymentRepo, f.webhookRepo,
		affiliateUC, f.gateway, idGen, configRepo,
	)
	return f
}

func (f *paymentFixture) seedPlayer(id string, balance int64) {
	now := time.Now().UTC()
	f.accountRepo.Seed(&domain.Account{
		ID: id, Name: "Player", Document: "12345678900",
		Balance: balance, CreatedAt: now, UpdatedAt: now,
	})
}

func TestPaymentUseCase_CreateDeposit(t *testing.T) {
	ctx := context.Background()

	t.Run("creates pending charge with gateway ref", func(t *testing.T) {
		f := newPaymentFixture(t, nil)
		f.seedPlayer("acc-1", 0)

		var gotInput usecase.PixChargeInput
		f.gateway.GeneratePixFunc = func(ctx context.Context, input usecase.PixChargeInput) (*usecase.PixCharge, error) {
			gotInput = input
			return &usecase.PixCharge{GatewayRef: "gw-1", QRCode: "qr-1"}, nil
		}

		payment, err := f.uc.CreateDeposit(ctx, usecase.CreateDepositInput{
			AccountID:   "acc-1",
			AmountCents: 5000,
		})

		require.NoError(t, err)
		assert.Equal(t, domain.PaymentPending, payment.Status)
		assert.Equal(t, "gw-1", payment.GatewayRef)
		assert.Equal(t, "qr-1", payment.QRCode)
		assert.Equal(t, int64(5000), gotInput.AmountCents)
		assert.Equal(t, "https://wallet.example/api/v1/webhooks/pix", gotInput.WebhookURL)

		// Balance only moves on webhook confirmation.
		assert.Equal(t, int64(0), f.accountRepo.Stored("acc-1").Balance)
	})

	t.Run("gateway failure leaves no claimable charge", func(t *testing.T) {
		f := newPaymentFixture(t, nil)
		f.seedPlayer("acc-1", 0)
		f.gateway.GeneratePixFunc = func(ctx context.Context, input usecase.PixChargeInput) (*usecase.PixCharge, error) {
			return nil, errors.New("gateway down")
		}

		_, err := f.uc.CreateDeposit(ctx, usecase.CreateDepositInput{
			AccountID:   "acc-1",
			AmountCents: 5000,
		})
		assert.Error(t, err)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		f := newPaymentFixture(t, nil)

		_, err := f.uc.CreateDeposit(ctx, usecase.CreateDepositInput{AccountID: "acc-1"})
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	})

	t.Run("unknown account", func(t *testing.T) {
		f := newPaymentFixture(t, nil)

		_, err := f.uc.CreateDeposit(ctx, usecase.CreateDepositInput{
			AccountID:   "missing",
			AmountCents: 5000,
		})
		assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	})
}

func TestPaymentUseCase_ConfirmDeposit(t *testing.T) {
	ctx := context.Background()

	seedPendingDeposit := func(f *paymentFixture, id, accountID, gatewayRef string, amount int64) {
		f.paymentRepo.Seed(&domain.Payment{
			ID:          id,
			AccountID:   accountID,
			Direction:   domain.PaymentDeposit,
			Status:      domain.PaymentPending,
			AmountCents: amount,
			GatewayRef:  gatewayRef,
			CreatedAt:   time.Now().UTC(),
		})
	}

	t.Run("credits balance and marks confirmed", func(t *testing.T) {
		f := newPaymentFixture(t, nil)
		f.seedPlayer("acc-1", 1000)
		seedPendingDeposit(f, "pay-1", "acc-1", "gw-1", 5000)

		err := f.uc.ConfirmDeposit(ctx, "gw-1", []byte(`{"status":"paid"}`))
		require.NoError(t, err)

		account := f.accountRepo.Stored("acc-1")
		assert.Equal(t, int64(6000), account.Balance)
		assert.Equal(t, int64(5000), account.TotalDeposits)
		assert.Equal(t, int64(1), account.DepositCount)

		payment := f.paymentRepo.Stored("pay-1")
		assert.Equal(t, domain.PaymentConfirmed, payment.Status)
		require.NotNil(t, payment.ConfirmedAt)

		events := f.webhookRepo.Events()
		require.Len(t, events, 1)
		assert.True(t, events[0].Processed)
	})

	t.Run("first deposit earns bonus", func(t *testing.T) {
		cfg := &domain.PlatformConfig{
			WebhookBaseURL:           "https://wallet.example",
			FirstDepositBonusPercent: decimal.NewFromInt(20),
		}
		f := newPaymentFixture(t, cfg)
		f.seedPlayer("acc-1", 0)
		seedPendingDeposit(f, "pay-1", "acc-1", "gw-1", 5000)
		seedPendingDeposit(f, "pay-2", "acc-1", "gw-2", 5000)

		require.NoError(t, f.uc.ConfirmDeposit(ctx, "gw-1", nil))

		account := f.accountRepo.Stored("acc-1")
		assert.Equal(t, int64(6000), account.Balance)
		assert.Equal(t, int64(1000), account.BonusBalance)

		// Second deposit gets no bonus.
		require.NoError(t, f.uc.ConfirmDeposit(ctx, "gw-2", nil))
		account = f.accountRepo.Stored("acc-1")
		assert.Equal(t, int64(11000), account.Balance)
		assert.Equal(t, int64(1000), account.BonusBalance)
	})

	t.Run("redelivered webhook does not double credit", func(t *testing.T) {
		f := newPaymentFixture(t, nil)
		f.seedPlayer("acc-1", 0)
		seedPendingDeposit(f, "pay-1", "acc-1", "gw-1", 5000)

		require.NoError(t, f.uc.ConfirmDeposit(ctx, "gw-1", nil))
		require.NoError(t, f.uc.ConfirmDeposit(ctx, "gw-1", nil))

		assert.Equal(t, int64(5000), f.accountRepo.Stored("acc-1").Balance)
		assert.Equal(t, int64(1), f.accountRepo.Stored("acc-1").DepositCount)
		// Both deliveries are recorded.
		assert.Len(t, f.webhookRepo.Events(), 2)
	})

	t.Run("referred depositor triggers affiliate accounting", func(t *testing.T) {
		cfg := &domain.PlatformConfig{
			WebhookBaseURL:     "https://wallet.example",
			CPACents:           1000,
			RevSharePercent:    decimal.NewFromInt(10),
			TotalDepositsCycle: 10,
			SkipDeposits:       3,
		}
		f := newPaymentFixture(t, cfg)
		now := time.Now().UTC()
		f.accountRepo.Seed(&domain.Account{ID: "aff-1", Name: "Affiliate", CreatedAt: now, UpdatedAt: now})
		f.seedPlayer("acc-1", 0)
		f.referralRepo.Seed(&domain.Referral{
			ID: "rel-1", ReferrerID: "aff-1", ReferredID: "acc-1",
			Status: domain.ReferralPending, CreatedAt: now, UpdatedAt: now,
		})
		seedPendingDeposit(f, "pay-1", "acc-1", "gw-1", 5000)

		require.NoError(t, f.uc.ConfirmDeposit(ctx, "gw-1", nil))

		assert.Equal(t, int64(1000), f.accountRepo.Stored("aff-1").AffiliateBalance)
		dep, err := f.affiliateRepo.GetByPaymentID(ctx, nil, "pay-1")
		require.NoError(t, err)
		assert.True(t, dep.CPAPaid)
	})

	t.Run("affiliate failure after credit is repaired by redelivery", func(t *testing.T) {
		cfg := &domain.PlatformConfig{
			WebhookBaseURL:     "https://wallet.example",
			CPACents:           1000,
			RevSharePercent:    decimal.NewFromInt(10),
			TotalDepositsCycle: 10,
		}
		f := newPaymentFixture(t, cfg)
		now := time.Now().UTC()
		f.accountRepo.Seed(&domain.Account{ID: "aff-1", Name: "Affiliate", CreatedAt: now, UpdatedAt: now})
		f.seedPlayer("acc-1", 0)
		f.referralRepo.Seed(&domain.Referral{
			ID: "rel-1", ReferrerID: "aff-1", ReferredID: "acc-1",
			Status: domain.ReferralPending, CreatedAt: now, UpdatedAt: now,
		})
		seedPendingDeposit(f, "pay-1", "acc-1", "gw-1", 5000)

		f.affiliateRepo.CountByReferredFunc = func(ctx context.Context, tx usecase.Transaction, referredID string) (int, error) {
			return 0, errors.New("db down")
		}

		err := f.uc.ConfirmDeposit(ctx, "gw-1", nil)
		require.Error(t, err)

		// The credit committed before the affiliate step failed.
		assert.Equal(t, int64(5000), f.accountRepo.Stored("acc-1").Balance)
		assert.Equal(t, int64(0), f.accountRepo.Stored("aff-1").AffiliateBalance)

		// The gateway retries; the commission must still be paid.
		f.affiliateRepo.CountByReferredFunc = nil
		require.NoError(t, f.uc.ConfirmDeposit(ctx, "gw-1", nil))

		assert.Equal(t, int64(5000), f.accountRepo.Stored("acc-1").Balance)
		assert.Equal(t, int64(1500), f.accountRepo.Stored("aff-1").AffiliateBalance)
		dep, err := f.affiliateRepo.GetByPaymentID(ctx, nil, "pay-1")
		require.NoError(t, err)
		assert.True(t, dep.CPAPaid)
		assert.True(t, dep.RevShareCalculated)

		// Further redeliveries pay nothing more.
		require.NoError(t, f.uc.ConfirmDeposit(ctx, "gw-1", nil))
		assert.Equal(t, int64(1500), f.accountRepo.Stored("aff-1").AffiliateBalance)
	})

	t.Run("unknown gateway ref", func(t *testing.T) {
		f := newPaymentFixture(t, nil)

		err := f.uc.ConfirmDeposit(ctx, "gw-unknown", nil)
		assert.ErrorIs(t, err, domain.ErrPaymentNotFound)
	})

	t.Run("empty gateway ref", func(t *testing.T) {
		f := newPaymentFixture(t, nil)

		err := f.uc.ConfirmDeposit(ctx, "", nil)
		assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	})
}

func TestPaymentUseCase_CreateWithdrawal(t *testing.T) {
	ctx := context.Background()

	t.Run("debits up front and sends payout", func(t *testing.T) {
		f := newPaymentFixture(t, nil)
		f.seedPlayer("acc-1", 10000)
		f.gateway.SendPixFunc = func(ctx context.Context, input usecase.PixPayoutInput) (*usecase.PixPayout, error) {
			return &usecase.PixPayout{GatewayRef: "gw-out-1"}, nil
		}

		payment, err := f.uc.CreateWithdrawal(ctx, usecase.CreateWithdrawalInput{
			AccountID:   "acc-1",
			AmountCents: 4000,
			PixKey:      "player@example.com",
			PixKeyType:  "email",
		})

		require.NoError(t, err)
		assert.Equal(t, domain.PaymentPending, payment.Status)
		assert.Equal(t, "gw-out-1", payment.GatewayRef)
		assert.Equal(t, int64(6000), f.accountRepo.Stored("acc-1").Balance)
	})

	t.Run("gateway failure refunds the debit", func(t *testing.T) {
		f := newPaymentFixture(t, nil)
		f.seedPlayer("acc-1", 10000)
		f.gateway.SendPixFunc = func(ctx context.Context, input usecase.PixPayoutInput) (*usecase.PixPayout, error) {
			return nil, errors.New("gateway down")
		}

		_, err := f.uc.CreateWithdrawal(ctx, usecase.CreateWithdrawalInput{
			AccountID:   "acc-1",
			AmountCents: 4000,
			PixKey:      "player@example.com",
			PixKeyType:  "email",
		})

		require.Error(t, err)
		assert.Equal(t, int64(10000), f.accountRepo.Stored("acc-1").Balance)
	})

	t.Run("insufficient balance", func(t *testing.T) {
		f := newPaymentFixture(t, nil)
		f.seedPlayer("acc-1", 1000)

		_, err := f.uc.CreateWithdrawal(ctx, usecase.CreateWithdrawalInput{
			AccountID:   "acc-1",
			AmountCents: 4000,
			PixKey:      "player@example.com",
			PixKeyType:  "email",
		})

		assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
		assert.Equal(t, int64(1000), f.accountRepo.Stored("acc-1").Balance)
	})

	t.Run("missing pix key", func(t *testing.T) {
		f := newPaymentFixture(t, nil)

		_, err := f.uc.CreateWithdrawal(ctx, usecase.CreateWithdrawalInput{
			AccountID:   "acc-1",
			AmountCents: 4000,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	})
}

func TestPaymentUseCase_ConfirmWithdrawal(t *testing.T) {
	ctx := context.Background()

	seedPendingWithdrawal := func(f *paymentFixture) {
		f.paymentRepo.Seed(&domain.Payment{
			ID:          "pay-1",
			AccountID:   "acc-1",
			Direction:   domain.PaymentWithdrawal,
			Status:      domain.PaymentPending,
			AmountCents: 4000,
			GatewayRef:  "gw-out-1",
			CreatedAt:   time.Now().UTC(),
		})
	}

	t.Run("success finalizes payment", func(t *testing.T) {
		f := newPaymentFixture(t, nil)
		f.seedPlayer("acc-1", 6000)
		seedPendingWithdrawal(f)

		require.NoError(t, f.uc.ConfirmWithdrawal(ctx, "gw-out-1", true, nil))

		assert.Equal(t, domain.PaymentConfirmed, f.paymentRepo.Stored("pay-1").Status)
		assert.Equal(t, int64(6000), f.accountRepo.Stored("acc-1").Balance)
	})

	t.Run("failure refunds the debit", func(t *testing.T) {
		f := newPaymentFixture(t, nil)
		f.seedPlayer("acc-1", 6000)
		seedPendingWithdrawal(f)

		require.NoError(t, f.uc.ConfirmWithdrawal(ctx, "gw-out-1", false, nil))

		assert.Equal(t, domain.PaymentFailed, f.paymentRepo.Stored("pay-1").Status)
		assert.Equal(t, int64(10000), f.accountRepo.Stored("acc-1").Balance)
	})

	t.Run("redelivery after settle is a no-op", func(t *testing.T) {
		f := newPaymentFixture(t, nil)
		f.seedPlayer("acc-1", 6000)
		seedPendingWithdrawal(f)

		require.NoError(t, f.uc.ConfirmWithdrawal(ctx, "gw-out-1", false, nil))
		require.NoError(t, f.uc.ConfirmWithdrawal(ctx, "gw-out-1", false, nil))

		assert.Equal(t, int64(10000), f.accountRepo.Stored("acc-1").Balance)
	})
}

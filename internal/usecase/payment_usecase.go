package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pixluck/wallet/internal/domain"
)

// PaymentUseCase drives PIX deposits and withdrawals against the
// gateway and settles their webhook confirmations.
type PaymentUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	paymentRepo PaymentRepository
	webhookRepo WebhookRepository
	affiliateUC *AffiliateUseCase
	gateway     PixGateway
	idGen       IDGenerator
	config      ConfigRepository
}

// NewPaymentUseCase creates a new PaymentUseCase.
func NewPaymentUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	paymentRepo PaymentRepository,
	webhookRepo WebhookRepository,
	affiliateUC *AffiliateUseCase,
	gateway PixGateway,
	idGen IDGenerator,
	config ConfigRepository,
) *PaymentUseCase {
	return &PaymentUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		paymentRepo: paymentRepo,
		webhookRepo: webhookRepo,
		affiliateUC: affiliateUC,
		gateway:     gateway,
		idGen:       idGen,
		config:      config,
	}
}

// CreateDepositInput represents a deposit charge request.
type CreateDepositInput struct {
	AccountID   string
	AmountCents int64
}

// CreateDeposit creates a pending deposit and asks the gateway for a
// PIX charge. Nothing is credited until the webhook confirms payment.
func (uc *PaymentUseCase) CreateDeposit(ctx context.Context, input CreateDepositInput) (*domain.Payment, error) {
	if input.AmountCents <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	account, err := uc.accountRepo.GetByID(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}

	cfg, err := uc.config.Get(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	payment := &domain.Payment{
		ID:          uc.idGen.Generate(),
		AccountID:   account.ID,
		Direction:   domain.PaymentDeposit,
		Status:      domain.PaymentPending,
		AmountCents: input.AmountCents,
		CreatedAt:   now,
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	if err := uc.paymentRepo.Create(ctx, tx, payment); err != nil {
		tx.Rollback(ctx)
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	charge, err := uc.gateway.GeneratePix(ctx, PixChargeInput{
		PayerName:     account.Name,
		PayerDocument: account.Document,
		AmountCents:   input.AmountCents,
		WebhookURL:    cfg.WebhookBaseURL + "/api/v1/webhooks/pix",
	})
	if err != nil {
		return nil, fmt.Errorf("generate pix charge: %w", err)
	}

	if err := uc.paymentRepo.SetGatewayRef(ctx, payment.ID, charge.GatewayRef, charge.QRCode); err != nil {
		return nil, err
	}
	payment.GatewayRef = charge.GatewayRef
	payment.QRCode = charge.QRCode

	return payment, nil
}

// ConfirmDeposit settles a gateway deposit confirmation. Redelivered
// webhooks never credit twice: the balance credit is guarded by the
// payment status, the affiliate step by its unique payment link. The
// affiliate step runs on every delivery so a failure after the credit
// committed is repaired by the gateway's retry.
func (uc *PaymentUseCase) ConfirmDeposit(ctx context.Context, gatewayRef string, payload []byte) error {
	if gatewayRef == "" {
		return domain.ErrInvalidRequest
	}

	now := time.Now().UTC()
	event := &domain.WebhookEvent{
		ID:         uc.idGen.Generate(),
		GatewayRef: gatewayRef,
		Kind:       "pix.deposit",
		Payload:    payload,
		CreatedAt:  now,
	}
	if err := uc.webhookRepo.Create(ctx, event); err != nil {
		return err
	}

	cfg, err := uc.config.Get(ctx)
	if err != nil {
		return err
	}

	var payment *domain.Payment

	err = func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		payment, err = uc.paymentRepo.GetByGatewayRefForUpdate(ctx, tx, gatewayRef)
		if err != nil {
			return err
		}
		if payment.Status != domain.PaymentPending {
			// Replayed webhook, already credited. Fall through to the
			// affiliate step, which may still be owed.
			return nil
		}

		account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, payment.AccountID)
		if err != nil {
			return err
		}

		var bonus int64
		if account.DepositCount == 0 {
			bonus = cfg.DepositBonusCents(payment.AmountCents)
		}
		account.ApplyDeposit(payment.AmountCents, bonus)

		if err := uc.accountRepo.UpdateBalances(ctx, tx, account, now); err != nil {
			return err
		}
		if err := uc.paymentRepo.UpdateStatus(ctx, tx, payment.ID, domain.PaymentConfirmed, &now); err != nil {
			return err
		}

		return tx.Commit(ctx)
	}()
	if err != nil {
		return err
	}

	// Affiliate accounting runs in its own transaction; the unique
	// payment link makes redelivery harmless.
	if _, err := uc.affiliateUC.ProcessDeposit(ctx, ProcessDepositInput{
		PaymentID:    payment.ID,
		ReferredID:   payment.AccountID,
		DepositCents: payment.AmountCents,
	}); err != nil {
		return fmt.Errorf("affiliate accounting for payment %s: %w", payment.ID, err)
	}

	return uc.webhookRepo.MarkProcessed(ctx, event.ID, time.Now().UTC())
}

// CreateWithdrawalInput represents a withdrawal request.
type CreateWithdrawalInput struct {
	AccountID   string
	AmountCents int64
	PixKey      string
	PixKeyType  string
}

// CreateWithdrawal debits the balance up-front, records a pending
// withdrawal and sends the payout. A gateway failure refunds the debit.
func (uc *PaymentUseCase) CreateWithdrawal(ctx context.Context, input CreateWithdrawalInput) (*domain.Payment, error) {
	if input.AmountCents <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if input.PixKey == "" || input.PixKeyType == "" {
		return nil, domain.ErrInvalidRequest
	}

	cfg, err := uc.config.Get(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	payment := &domain.Payment{
		ID:          uc.idGen.Generate(),
		AccountID:   input.AccountID,
		Direction:   domain.PaymentWithdrawal,
		Status:      domain.PaymentPending,
		AmountCents: input.AmountCents,
		PixKey:      input.PixKey,
		PixKeyType:  input.PixKeyType,
		CreatedAt:   now,
	}

	var account *domain.Account

	err = func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		account, err = uc.accountRepo.GetByIDForUpdate(ctx, tx, input.AccountID)
		if err != nil {
			return err
		}
		if err := account.CanApply(-input.AmountCents); err != nil {
			return err
		}
		account.Balance -= input.AmountCents
		if account.BonusBalance > account.Balance {
			account.BonusBalance = account.Balance
		}

		if err := uc.accountRepo.UpdateBalances(ctx, tx, account, now); err != nil {
			return err
		}
		if err := uc.paymentRepo.Create(ctx, tx, payment); err != nil {
			return err
		}

		return tx.Commit(ctx)
	}()
	if err != nil {
		return nil, err
	}

	payout, err := uc.gateway.SendPix(ctx, PixPayoutInput{
		AmountCents:  input.AmountCents,
		PixKey:       input.PixKey,
		PixKeyType:   input.PixKeyType,
		Document:     account.Document,
		ReceiverName: account.Name,
		WebhookURL:   cfg.WebhookBaseURL + "/api/v1/webhooks/pix",
	})
	if err != nil {
		if refundErr := uc.refundWithdrawal(ctx, payment.ID); refundErr != nil {
			return nil, errors.Join(err, refundErr)
		}
		return nil, fmt.Errorf("send pix payout: %w", err)
	}

	if err := uc.paymentRepo.SetGatewayRef(ctx, payment.ID, payout.GatewayRef, ""); err != nil {
		return nil, err
	}
	payment.GatewayRef = payout.GatewayRef

	return payment, nil
}

// ConfirmWithdrawal settles a gateway withdrawal callback: success
// finalizes the pending payment, failure refunds the debit.
func (uc *PaymentUseCase) ConfirmWithdrawal(ctx context.Context, gatewayRef string, succeeded bool, payload []byte) error {
	if gatewayRef == "" {
		return domain.ErrInvalidRequest
	}

	now := time.Now().UTC()
	event := &domain.WebhookEvent{
		ID:         uc.idGen.Generate(),
		GatewayRef: gatewayRef,
		Kind:       "pix.withdrawal",
		Payload:    payload,
		CreatedAt:  now,
	}
	if err := uc.webhookRepo.Create(ctx, event); err != nil {
		return err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	payment, err := uc.paymentRepo.GetByGatewayRefForUpdate(ctx, tx, gatewayRef)
	if err != nil {
		return err
	}
	if payment.Status != domain.PaymentPending {
		return uc.webhookRepo.MarkProcessed(ctx, event.ID, time.Now().UTC())
	}

	if succeeded {
		if err := uc.paymentRepo.UpdateStatus(ctx, tx, payment.ID, domain.PaymentConfirmed, &now); err != nil {
			return err
		}
	} else {
		account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, payment.AccountID)
		if err != nil {
			return err
		}
		account.Balance += payment.AmountCents
		if err := uc.accountRepo.UpdateBalances(ctx, tx, account, now); err != nil {
			return err
		}
		if err := uc.paymentRepo.UpdateStatus(ctx, tx, payment.ID, domain.PaymentFailed, nil); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	return uc.webhookRepo.MarkProcessed(ctx, event.ID, time.Now().UTC())
}

func (uc *PaymentUseCase) refundWithdrawal(ctx context.Context, paymentID string) error {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	payment, err := uc.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return err
	}

	account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, payment.AccountID)
	if err != nil {
		return err
	}
	account.Balance += payment.AmountCents

	if err := uc.accountRepo.UpdateBalances(ctx, tx, account, time.Now().UTC()); err != nil {
		return err
	}
	if err := uc.paymentRepo.UpdateStatus(ctx, tx, payment.ID, domain.PaymentFailed, nil); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// ListPayments lists an account's payments.
func (uc *PaymentUseCase) ListPayments(ctx context.Context, accountID string, limit, offset int) ([]*domain.Payment, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return uc.paymentRepo.ListByAccount(ctx, accountID, limit, offset)
}

package usecase

import (
	"context"
	"time"

	"github.com/pixluck/wallet/internal/domain"
)

// AccountRepository defines data access for player accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByReferralCode(ctx context.Context, code string) (*domain.Account, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Account, error)
	// UpdateBalances persists all balance-bearing fields of account and
	// bumps its version.
	UpdateBalances(ctx context.Context, tx Transaction, account *domain.Account, updatedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

// LedgerRepository defines data access for settlement entries. It is
// the sole source of truth for idempotency.
type LedgerRepository interface {
	// Create appends an entry. Returns domain.ErrDuplicateTransaction
	// when the txn_id already exists.
	Create(ctx context.Context, tx Transaction, entry *domain.LedgerEntry) error
	GetByTxnID(ctx context.Context, txnID string) (*domain.LedgerEntry, error)
	// GetByTxnIDTx reads within tx so the dedup check sees writes of
	// concurrent committed transactions under the account row lock.
	GetByTxnIDTx(ctx context.Context, tx Transaction, txnID string) (*domain.LedgerEntry, error)
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.LedgerEntry, error)
}

// AffiliateRepository defines data access for affiliate deposit records.
type AffiliateRepository interface {
	// Create inserts a record. Returns domain.ErrDuplicateTransaction
	// when a record for the same payment already exists.
	Create(ctx context.Context, tx Transaction, dep *domain.AffiliateDeposit) error
	GetByPaymentID(ctx context.Context, tx Transaction, paymentID string) (*domain.AffiliateDeposit, error)
	CountByReferred(ctx context.Context, tx Transaction, referredID string) (int, error)
	ListByAffiliate(ctx context.Context, affiliateID string, limit, offset int) ([]*domain.AffiliateDeposit, error)
}

// ReferralRepository defines data access for referrals.
type ReferralRepository interface {
	Create(ctx context.Context, referral *domain.Referral) error
	GetByReferred(ctx context.Context, referredID string) (*domain.Referral, error)
	GetByReferredForUpdate(ctx context.Context, tx Transaction, referredID string) (*domain.Referral, error)
	Update(ctx context.Context, tx Transaction, referral *domain.Referral) error
	CountQualifiedByReferrer(ctx context.Context, referrerID string) (int, error)
	ListByReferrer(ctx context.Context, referrerID string, limit, offset int) ([]*domain.Referral, error)
}

// ChestRepository defines data access for chests.
type ChestRepository interface {
	Create(ctx context.Context, chest *domain.Chest) error
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Chest, error)
	ListByAccount(ctx context.Context, accountID string) ([]*domain.Chest, error)
	Update(ctx context.Context, tx Transaction, chest *domain.Chest) error
}

// PaymentRepository defines data access for PIX payments.
type PaymentRepository interface {
	Create(ctx context.Context, tx Transaction, payment *domain.Payment) error
	GetByID(ctx context.Context, id string) (*domain.Payment, error)
	GetByGatewayRefForUpdate(ctx context.Context, tx Transaction, gatewayRef string) (*domain.Payment, error)
	UpdateStatus(ctx context.Context, tx Transaction, id string, status domain.PaymentStatus, confirmedAt *time.Time) error
	SetGatewayRef(ctx context.Context, id, gatewayRef, qrCode string) error
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Payment, error)
}

// WebhookRepository records received gateway callbacks.
type WebhookRepository interface {
	Create(ctx context.Context, event *domain.WebhookEvent) error
	MarkProcessed(ctx context.Context, id string, processedAt time.Time) error
}

// ConfigRepository holds the single platform configuration row.
type ConfigRepository interface {
	Get(ctx context.Context) (*domain.PlatformConfig, error)
	Update(ctx context.Context, cfg *domain.PlatformConfig) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier retries an operation on transient persistence failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IdempotencyStore handles idempotency key storage for the HTTP layer.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not. Returns
	// (true, cached) when a previous response was stored.
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// PixChargeInput is a request to generate a PIX deposit charge.
type PixChargeInput struct {
	PayerName     string
	PayerDocument string
	AmountCents   int64
	WebhookURL    string
}

// PixCharge is the gateway's answer to a charge request.
type PixCharge struct {
	GatewayRef string
	QRCode     string
	CopyPaste  string
}

// PixPayoutInput is a request to send a PIX withdrawal.
type PixPayoutInput struct {
	AmountCents   int64
	PixKey        string
	PixKeyType    string
	Document      string
	ReceiverName  string
	WebhookURL    string
}

// PixPayout is the gateway's answer to a payout request.
type PixPayout struct {
	GatewayRef string
}

// PixGateway is the payment gateway client.
type PixGateway interface {
	GeneratePix(ctx context.Context, input PixChargeInput) (*PixCharge, error)
	SendPix(ctx context.Context, input PixPayoutInput) (*PixPayout, error)
}

// GameProvider is the slot-game provider client (transfer API side).
type GameProvider interface {
	CreateUser(ctx context.Context, userCode string) error
	LaunchGame(ctx context.Context, userCode, providerCode, gameCode, lang string) (string, error)
}

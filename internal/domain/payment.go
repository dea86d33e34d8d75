package domain

import "time"

// PaymentDirection separates PIX deposits from withdrawals.
type PaymentDirection string

const (
	PaymentDeposit    PaymentDirection = "deposit"
	PaymentWithdrawal PaymentDirection = "withdrawal"
)

// PaymentStatus is the gateway lifecycle of a payment.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentConfirmed PaymentStatus = "confirmed"
	PaymentFailed    PaymentStatus = "failed"
)

// Payment tracks one PIX movement against the gateway. Withdrawals
// debit the balance when created and are refunded if the gateway
// reports failure; deposits credit only on webhook confirmation.
type Payment struct {
	ID          string
	AccountID   string
	Direction   PaymentDirection
	Status      PaymentStatus
	AmountCents int64
	PixKey      string
	PixKeyType  string
	GatewayRef  string
	QRCode      string
	CreatedAt   time.Time
	ConfirmedAt *time.Time
}

// WebhookEvent is the audit record of one received gateway callback.
// Events are processed at most once; replays are answered from the
// stored payment state.
type WebhookEvent struct {
	ID          string
	GatewayRef  string
	Kind        string
	Payload     []byte
	Processed   bool
	ProcessedAt *time.Time
	CreatedAt   time.Time
}

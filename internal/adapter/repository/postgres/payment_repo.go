package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pixluck/wallet/internal/domain"
	"github.com/pixluck/wallet/internal/usecase"
)

const paymentColumns = `id, account_id, direction, status, amount_cents,
	pix_key, pix_key_type, gateway_ref, qr_code, created_at, confirmed_at`

// PaymentRepository implements usecase.PaymentRepository.
type PaymentRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository creates a new PaymentRepository.
func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{pool: pool}
}

// Create creates a new payment.
func (r *PaymentRepository) Create(ctx context.Context, tx usecase.Transaction, payment *domain.Payment) error {
	_, err := querier(r.pool, tx).Exec(ctx, `
		INSERT INTO payments (`+paymentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		payment.ID, payment.AccountID, string(payment.Direction), string(payment.Status),
		payment.AmountCents, payment.PixKey, payment.PixKeyType,
		nullString(payment.GatewayRef), payment.QRCode, payment.CreatedAt, payment.ConfirmedAt,
	)
	return err
}

// GetByID retrieves a payment by ID.
func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	return r.get(ctx, r.pool, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id)
}

// GetByGatewayRefForUpdate retrieves a payment by gateway reference
// with a FOR UPDATE lock. Webhook processing serializes on this row.
func (r *PaymentRepository) GetByGatewayRefForUpdate(ctx context.Context, tx usecase.Transaction, gatewayRef string) (*domain.Payment, error) {
	return r.get(ctx, querier(r.pool, tx),
		`SELECT `+paymentColumns+` FROM payments WHERE gateway_ref = $1 FOR UPDATE`, gatewayRef)
}

// UpdateStatus moves the payment through its lifecycle.
func (r *PaymentRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.PaymentStatus, confirmedAt *time.Time) error {
	tag, err := querier(r.pool, tx).Exec(ctx, `
		UPDATE payments SET status = $2, confirmed_at = $3 WHERE id = $1`,
		id, string(status), confirmedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPaymentNotFound
	}
	return nil
}

// SetGatewayRef stores the gateway's reference and QR code after a
// charge was generated.
func (r *PaymentRepository) SetGatewayRef(ctx context.Context, id, gatewayRef, qrCode string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE payments SET gateway_ref = $2, qr_code = $3 WHERE id = $1`,
		id, gatewayRef, qrCode,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPaymentNotFound
	}
	return nil
}

// ListByAccount lists an account's payments, newest first.
func (r *PaymentRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Payment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+paymentColumns+` FROM payments
		WHERE account_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*domain.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	return payments, rows.Err()
}

func (r *PaymentRepository) get(ctx context.Context, q dbtx, sql string, args ...any) (*domain.Payment, error) {
	payment, err := scanPayment(q.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrPaymentNotFound
	}
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func scanPayment(row pgx.Row) (*domain.Payment, error) {
	var p domain.Payment
	var direction, status string
	var gatewayRef *string
	err := row.Scan(
		&p.ID, &p.AccountID, &direction, &status, &p.AmountCents,
		&p.PixKey, &p.PixKeyType, &gatewayRef, &p.QRCode, &p.CreatedAt, &p.ConfirmedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Direction = domain.PaymentDirection(direction)
	p.Status = domain.PaymentStatus(status)
	if gatewayRef != nil {
		p.GatewayRef = *gatewayRef
	}
	return &p, nil
}

package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pixluck/wallet/internal/domain"
	"github.com/pixluck/wallet/internal/usecase"
)

const affiliateColumns = `id, affiliate_id, referred_id, payment_id,
	deposit_cents, is_first_deposit, cycle_position, is_skipped,
	cpa_paid, cpa_cents, rev_share_calculated, rev_share_cents, created_at`

// AffiliateRepository implements usecase.AffiliateRepository. The
// unique index on payment_id guarantees one commission decision per
// deposit.
type AffiliateRepository struct {
	pool *pgxpool.Pool
}

// NewAffiliateRepository creates a new AffiliateRepository.
func NewAffiliateRepository(pool *pgxpool.Pool) *AffiliateRepository {
	return &AffiliateRepository{pool: pool}
}

// Create inserts a commission record. A payment_id collision maps to
// domain.ErrDuplicateTransaction.
func (r *AffiliateRepository) Create(ctx context.Context, tx usecase.Transaction, dep *domain.AffiliateDeposit) error {
	_, err := querier(r.pool, tx).Exec(ctx, `
		INSERT INTO affiliate_deposits (`+affiliateColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		dep.ID, dep.AffiliateID, dep.ReferredID, dep.PaymentID,
		dep.DepositCents, dep.IsFirstDeposit, dep.CyclePosition, dep.IsSkipped,
		dep.CPAPaid, dep.CPACents, dep.RevShareCalculated, dep.RevShareCents,
		dep.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
			return domain.ErrDuplicateTransaction
		}
		return err
	}
	return nil
}

// GetByPaymentID retrieves the commission record for a payment.
func (r *AffiliateRepository) GetByPaymentID(ctx context.Context, tx usecase.Transaction, paymentID string) (*domain.AffiliateDeposit, error) {
	dep, err := scanAffiliateDeposit(querier(r.pool, tx).QueryRow(ctx,
		`SELECT `+affiliateColumns+` FROM affiliate_deposits WHERE payment_id = $1`, paymentID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrEntryNotFound
	}
	if err != nil {
		return nil, err
	}
	return dep, nil
}

// CountByReferred counts commission records for a referred user. Run
// within the affiliate-locking transaction this yields the 1-based
// deposit sequence number.
func (r *AffiliateRepository) CountByReferred(ctx context.Context, tx usecase.Transaction, referredID string) (int, error) {
	var count int
	err := querier(r.pool, tx).QueryRow(ctx,
		`SELECT COUNT(*) FROM affiliate_deposits WHERE referred_id = $1`, referredID).Scan(&count)
	return count, err
}

// ListByAffiliate lists an affiliate's commission records, newest first.
func (r *AffiliateRepository) ListByAffiliate(ctx context.Context, affiliateID string, limit, offset int) ([]*domain.AffiliateDeposit, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+affiliateColumns+` FROM affiliate_deposits
		WHERE affiliate_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, affiliateID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deps []*domain.AffiliateDeposit
	for rows.Next() {
		dep, err := scanAffiliateDeposit(rows)
		if err != nil {
			return nil, err
		}
		deps = append(deps, dep)
	}
	return deps, rows.Err()
}

func scanAffiliateDeposit(row pgx.Row) (*domain.AffiliateDeposit, error) {
	var d domain.AffiliateDeposit
	err := row.Scan(
		&d.ID, &d.AffiliateID, &d.ReferredID, &d.PaymentID,
		&d.DepositCents, &d.IsFirstDeposit, &d.CyclePosition, &d.IsSkipped,
		&d.CPAPaid, &d.CPACents, &d.RevShareCalculated, &d.RevShareCents,
		&d.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

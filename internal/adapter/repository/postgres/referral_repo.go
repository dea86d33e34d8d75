package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pixluck/wallet/internal/domain"
	"github.com/pixluck/wallet/internal/usecase"
)

const referralColumns = `id, referrer_id, referred_id, referral_code, status,
	total_deposit_cents, total_bet_cents, reward_cents,
	qualified_at, rewarded_at, created_at, updated_at`

// ReferralRepository implements usecase.ReferralRepository.
type ReferralRepository struct {
	pool *pgxpool.Pool
}

// NewReferralRepository creates a new ReferralRepository.
func NewReferralRepository(pool *pgxpool.Pool) *ReferralRepository {
	return &ReferralRepository{pool: pool}
}

// Create creates a new referral link.
func (r *ReferralRepository) Create(ctx context.Context, referral *domain.Referral) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO referrals (`+referralColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		referral.ID, referral.ReferrerID, referral.ReferredID, referral.ReferralCode,
		string(referral.Status), referral.TotalDepositCents, referral.TotalBetCents,
		referral.RewardCents, referral.QualifiedAt, referral.RewardedAt,
		referral.CreatedAt, referral.UpdatedAt,
	)
	return err
}

// GetByReferred retrieves the referral link for a referred account.
func (r *ReferralRepository) GetByReferred(ctx context.Context, referredID string) (*domain.Referral, error) {
	return r.get(ctx, r.pool,
		`SELECT `+referralColumns+` FROM referrals WHERE referred_id = $1`, referredID)
}

// GetByReferredForUpdate retrieves the referral link with a FOR UPDATE
// lock so qualification happens exactly once.
func (r *ReferralRepository) GetByReferredForUpdate(ctx context.Context, tx usecase.Transaction, referredID string) (*domain.Referral, error) {
	return r.get(ctx, querier(r.pool, tx),
		`SELECT `+referralColumns+` FROM referrals WHERE referred_id = $1 FOR UPDATE`, referredID)
}

// Update persists the referral's status and accumulated totals.
func (r *ReferralRepository) Update(ctx context.Context, tx usecase.Transaction, referral *domain.Referral) error {
	tag, err := querier(r.pool, tx).Exec(ctx, `
		UPDATE referrals SET
			status = $2,
			total_deposit_cents = $3,
			total_bet_cents = $4,
			reward_cents = $5,
			qualified_at = $6,
			rewarded_at = $7,
			updated_at = $8
		WHERE id = $1`,
		referral.ID, string(referral.Status), referral.TotalDepositCents,
		referral.TotalBetCents, referral.RewardCents, referral.QualifiedAt,
		referral.RewardedAt, referral.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrReferralNotFound
	}
	return nil
}

// CountQualifiedByReferrer counts a referrer's non-pending referrals.
func (r *ReferralRepository) CountQualifiedByReferrer(ctx context.Context, referrerID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM referrals
		WHERE referrer_id = $1 AND status <> 'pending'`, referrerID).Scan(&count)
	return count, err
}

// ListByReferrer lists a referrer's referrals, newest first.
func (r *ReferralRepository) ListByReferrer(ctx context.Context, referrerID string, limit, offset int) ([]*domain.Referral, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+referralColumns+` FROM referrals
		WHERE referrer_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, referrerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var referrals []*domain.Referral
	for rows.Next() {
		referral, err := scanReferral(rows)
		if err != nil {
			return nil, err
		}
		referrals = append(referrals, referral)
	}
	return referrals, rows.Err()
}

func (r *ReferralRepository) get(ctx context.Context, q dbtx, sql string, args ...any) (*domain.Referral, error) {
	referral, err := scanReferral(q.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrReferralNotFound
	}
	if err != nil {
		return nil, err
	}
	return referral, nil
}

func scanReferral(row pgx.Row) (*domain.Referral, error) {
	var ref domain.Referral
	var status string
	err := row.Scan(
		&ref.ID, &ref.ReferrerID, &ref.ReferredID, &ref.ReferralCode, &status,
		&ref.TotalDepositCents, &ref.TotalBetCents, &ref.RewardCents,
		&ref.QualifiedAt, &ref.RewardedAt, &ref.CreatedAt, &ref.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	ref.Status = domain.ReferralStatus(status)
	return &ref, nil
}

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

// querier returns the transaction when one is passed, the pool
// otherwise. Usecases pass nil for reads outside a transaction.
func querier(pool *pgxpool.Pool, tx usecase.Transaction) dbtx {
	if tx == nil {
		return pool
	}
	return tx.(*Tx).PgxTx()
}

const accountColumns = `id, name, document, referral_code, referred_by,
	balance, bonus_balance, affiliate_balance, total_bets, total_deposits,
	deposit_count, version, created_at, updated_at`

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// Create creates a new account.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO accounts (`+accountColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		account.ID, account.Name, account.Document, account.ReferralCode,
		nullString(account.ReferredBy), account.Balance, account.BonusBalance,
		account.AffiliateBalance, account.TotalBets, account.TotalDeposits,
		account.DepositCount, account.Version, account.CreatedAt, account.UpdatedAt,
	)
	return err
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	return r.get(ctx, r.pool, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
}

// GetByReferralCode retrieves an account by its referral code.
func (r *AccountRepository) GetByReferralCode(ctx context.Context, code string) (*domain.Account, error) {
	return r.get(ctx, r.pool, `SELECT `+accountColumns+` FROM accounts WHERE referral_code = $1`, code)
}

// GetByIDForUpdate retrieves an account by ID with a FOR UPDATE lock.
// This is the per-account serialization point for settlements.
func (r *AccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	return r.get(ctx, querier(r.pool, tx),
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1 FOR UPDATE`, id)
}

// UpdateBalances persists all balance-bearing fields and bumps the
// version.
func (r *AccountRepository) UpdateBalances(ctx context.Context, tx usecase.Transaction, account *domain.Account, updatedAt time.Time) error {
	tag, err := querier(r.pool, tx).Exec(ctx, `
		UPDATE accounts SET
			balance = $2,
			bonus_balance = $3,
			affiliate_balance = $4,
			total_bets = $5,
			total_deposits = $6,
			deposit_count = $7,
			version = version + 1,
			updated_at = $8
		WHERE id = $1`,
		account.ID, account.Balance, account.BonusBalance, account.AffiliateBalance,
		account.TotalBets, account.TotalDeposits, account.DepositCount, updatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// List lists accounts with pagination.
func (r *AccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+accountColumns+` FROM accounts
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

func (r *AccountRepository) get(ctx context.Context, q dbtx, sql string, args ...any) (*domain.Account, error) {
	account, err := scanAccount(q.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return account, nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	var referredBy *string
	err := row.Scan(
		&a.ID, &a.Name, &a.Document, &a.ReferralCode, &referredBy,
		&a.Balance, &a.BonusBalance, &a.AffiliateBalance, &a.TotalBets,
		&a.TotalDeposits, &a.DepositCount, &a.Version, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if referredBy != nil {
		a.ReferredBy = *referredBy
	}
	return &a, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

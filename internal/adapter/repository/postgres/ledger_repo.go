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

const ledgerColumns = `id, txn_id, account_id, kind, bet_cents, win_cents,
	provider_code, game_code, sampled, balance_after, created_at`

// LedgerRepository implements usecase.LedgerRepository. The unique
// index on txn_id is the engine's last line of defense against
// concurrent duplicate settlements.
type LedgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

// Create appends an entry. A txn_id collision maps to
// domain.ErrDuplicateTransaction so the engine can replay.
func (r *LedgerRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error {
	_, err := querier(r.pool, tx).Exec(ctx, `
		INSERT INTO ledger_entries (`+ledgerColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		entry.ID, entry.TxnID, entry.AccountID, string(entry.Kind),
		entry.BetCents, entry.WinCents, entry.ProviderCode, entry.GameCode,
		entry.Sampled, entry.BalanceAfter, entry.CreatedAt,
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

// GetByTxnID retrieves an entry by its idempotency key.
func (r *LedgerRepository) GetByTxnID(ctx context.Context, txnID string) (*domain.LedgerEntry, error) {
	return r.get(ctx, r.pool, txnID)
}

// GetByTxnIDTx retrieves an entry by its idempotency key within tx.
func (r *LedgerRepository) GetByTxnIDTx(ctx context.Context, tx usecase.Transaction, txnID string) (*domain.LedgerEntry, error) {
	return r.get(ctx, querier(r.pool, tx), txnID)
}

// ListByAccount lists an account's entries, newest first.
func (r *LedgerRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.LedgerEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+ledgerColumns+` FROM ledger_entries
		WHERE account_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.LedgerEntry
	for rows.Next() {
		entry, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *LedgerRepository) get(ctx context.Context, q dbtx, txnID string) (*domain.LedgerEntry, error) {
	entry, err := scanLedgerEntry(q.QueryRow(ctx,
		`SELECT `+ledgerColumns+` FROM ledger_entries WHERE txn_id = $1`, txnID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrEntryNotFound
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func scanLedgerEntry(row pgx.Row) (*domain.LedgerEntry, error) {
	var e domain.LedgerEntry
	var kind string
	err := row.Scan(
		&e.ID, &e.TxnID, &e.AccountID, &kind, &e.BetCents, &e.WinCents,
		&e.ProviderCode, &e.GameCode, &e.Sampled, &e.BalanceAfter, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Kind = domain.EntryKind(kind)
	return &e, nil
}

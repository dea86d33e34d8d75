package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pixluck/wallet/internal/domain"
	"github.com/pixluck/wallet/internal/usecase"
)

const chestColumns = `id, account_id, type, reward_cents, status,
	referrals_required, unlocked_at, claimed_at, created_at, updated_at`

// ChestRepository implements usecase.ChestRepository.
type ChestRepository struct {
	pool *pgxpool.Pool
}

// NewChestRepository creates a new ChestRepository.
func NewChestRepository(pool *pgxpool.Pool) *ChestRepository {
	return &ChestRepository{pool: pool}
}

// Create creates a new chest.
func (r *ChestRepository) Create(ctx context.Context, chest *domain.Chest) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO chests (`+chestColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		chest.ID, chest.AccountID, string(chest.Type), chest.RewardCents,
		string(chest.Status), chest.ReferralsRequired, chest.UnlockedAt,
		chest.ClaimedAt, chest.CreatedAt, chest.UpdatedAt,
	)
	return err
}

// GetByIDForUpdate retrieves a chest with a FOR UPDATE lock so a claim
// happens exactly once.
func (r *ChestRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Chest, error) {
	chest, err := scanChest(querier(r.pool, tx).QueryRow(ctx,
		`SELECT `+chestColumns+` FROM chests WHERE id = $1 FOR UPDATE`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrChestNotFound
	}
	if err != nil {
		return nil, err
	}
	return chest, nil
}

// ListByAccount lists an account's chests in ladder order.
func (r *ChestRepository) ListByAccount(ctx context.Context, accountID string) ([]*domain.Chest, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+chestColumns+` FROM chests
		WHERE account_id = $1
		ORDER BY referrals_required ASC, created_at ASC`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chests []*domain.Chest
	for rows.Next() {
		chest, err := scanChest(rows)
		if err != nil {
			return nil, err
		}
		chests = append(chests, chest)
	}
	return chests, rows.Err()
}

// Update persists the chest's claim state.
func (r *ChestRepository) Update(ctx context.Context, tx usecase.Transaction, chest *domain.Chest) error {
	tag, err := querier(r.pool, tx).Exec(ctx, `
		UPDATE chests SET
			status = $2,
			unlocked_at = $3,
			claimed_at = $4,
			updated_at = $5
		WHERE id = $1`,
		chest.ID, string(chest.Status), chest.UnlockedAt, chest.ClaimedAt, chest.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrChestNotFound
	}
	return nil
}

func scanChest(row pgx.Row) (*domain.Chest, error) {
	var c domain.Chest
	var chestType, status string
	err := row.Scan(
		&c.ID, &c.AccountID, &chestType, &c.RewardCents, &status,
		&c.ReferralsRequired, &c.UnlockedAt, &c.ClaimedAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Type = domain.ChestType(chestType)
	c.Status = domain.ChestStatus(status)
	return &c, nil
}

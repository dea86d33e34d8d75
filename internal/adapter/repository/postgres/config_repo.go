package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pixluck/wallet/internal/domain"
)

const configColumns = `jackpot_cents, agent_code, agent_token,
	gateway_api_key, gateway_url, webhook_base_url,
	first_deposit_bonus_percent, deposit_tiers, chest_tiers,
	cpa_cents, rev_share_percent,
	total_deposits_cycle, skip_deposits, updated_at`

// ConfigRepository implements usecase.ConfigRepository. The
// platform_config table holds exactly one row, enforced by a CHECK on
// its id.
type ConfigRepository struct {
	pool *pgxpool.Pool
}

// NewConfigRepository creates a new ConfigRepository.
func NewConfigRepository(pool *pgxpool.Pool) *ConfigRepository {
	return &ConfigRepository{pool: pool}
}

// Get loads the configuration row.
func (r *ConfigRepository) Get(ctx context.Context) (*domain.PlatformConfig, error) {
	var (
		cfg          domain.PlatformConfig
		depositTiers []byte
		chestTiers   []byte
	)
	err := r.pool.QueryRow(ctx,
		`SELECT `+configColumns+` FROM platform_config WHERE id = 1`).Scan(
		&cfg.JackpotCents, &cfg.AgentCode, &cfg.AgentToken,
		&cfg.GatewayAPIKey, &cfg.GatewayURL, &cfg.WebhookBaseURL,
		&cfg.FirstDepositBonusPercent, &depositTiers, &chestTiers,
		&cfg.CPACents, &cfg.RevSharePercent,
		&cfg.TotalDepositsCycle, &cfg.SkipDeposits, &cfg.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(depositTiers, &cfg.DepositTiers); err != nil {
		return nil, fmt.Errorf("decode deposit tiers: %w", err)
	}
	if err := json.Unmarshal(chestTiers, &cfg.ChestTiers); err != nil {
		return nil, fmt.Errorf("decode chest tiers: %w", err)
	}
	return &cfg, nil
}

// Update replaces the configuration row wholesale.
func (r *ConfigRepository) Update(ctx context.Context, cfg *domain.PlatformConfig) error {
	depositTiers, err := json.Marshal(cfg.DepositTiers)
	if err != nil {
		return fmt.Errorf("encode deposit tiers: %w", err)
	}
	chestTiers, err := json.Marshal(cfg.ChestTiers)
	if err != nil {
		return fmt.Errorf("encode chest tiers: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		UPDATE platform_config SET
			jackpot_cents = $1,
			agent_code = $2,
			agent_token = $3,
			gateway_api_key = $4,
			gateway_url = $5,
			webhook_base_url = $6,
			first_deposit_bonus_percent = $7,
			deposit_tiers = $8,
			chest_tiers = $9,
			cpa_cents = $10,
			rev_share_percent = $11,
			total_deposits_cycle = $12,
			skip_deposits = $13,
			updated_at = $14
		WHERE id = 1`,
		cfg.JackpotCents, cfg.AgentCode, cfg.AgentToken,
		cfg.GatewayAPIKey, cfg.GatewayURL, cfg.WebhookBaseURL,
		cfg.FirstDepositBonusPercent, depositTiers, chestTiers,
		cfg.CPACents, cfg.RevSharePercent,
		cfg.TotalDepositsCycle, cfg.SkipDeposits, cfg.UpdatedAt,
	)
	return err
}

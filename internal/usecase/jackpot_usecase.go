package usecase

import (
	"context"
	"strconv"
	"time"

	"github.com/pixluck/wallet/internal/domain"
)

const (
	jackpotCacheKey = "jackpot"
	jackpotCacheTTL = 30 * time.Second
)

// JackpotUseCase serves the public jackpot display value, cached in
// front of the config row, and applies admin updates.
type JackpotUseCase struct {
	config ConfigRepository
	cache  Cache
}

// NewJackpotUseCase creates a new JackpotUseCase. Cache may be nil.
func NewJackpotUseCase(config ConfigRepository, cache Cache) *JackpotUseCase {
	return &JackpotUseCase{config: config, cache: cache}
}

// Get returns the displayed jackpot value in centavos.
func (uc *JackpotUseCase) Get(ctx context.Context) (int64, error) {
	if uc.cache != nil {
		if v, err := uc.cache.Get(ctx, jackpotCacheKey); err == nil {
			if cents, perr := strconv.ParseInt(v, 10, 64); perr == nil {
				return cents, nil
			}
		}
	}

	cfg, err := uc.config.Get(ctx)
	if err != nil {
		return 0, err
	}

	if uc.cache != nil {
		_ = uc.cache.Set(ctx, jackpotCacheKey, strconv.FormatInt(cfg.JackpotCents, 10), jackpotCacheTTL)
	}

	return cfg.JackpotCents, nil
}

// Set updates the displayed jackpot value and drops the cache.
func (uc *JackpotUseCase) Set(ctx context.Context, cents int64) error {
	if cents < 0 {
		return domain.ErrInvalidAmount
	}

	cfg, err := uc.config.Get(ctx)
	if err != nil {
		return err
	}
	cfg.JackpotCents = cents
	cfg.UpdatedAt = time.Now().UTC()

	if err := uc.config.Update(ctx, cfg); err != nil {
		return err
	}

	if uc.cache != nil {
		_ = uc.cache.Delete(ctx, jackpotCacheKey)
	}

	return nil
}

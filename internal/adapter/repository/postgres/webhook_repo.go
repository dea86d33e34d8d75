package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pixluck/wallet/internal/domain"
)

// WebhookRepository implements usecase.WebhookRepository. Every
// received gateway callback is recorded before it is acted on.
type WebhookRepository struct {
	pool *pgxpool.Pool
}

// NewWebhookRepository creates a new WebhookRepository.
func NewWebhookRepository(pool *pgxpool.Pool) *WebhookRepository {
	return &WebhookRepository{pool: pool}
}

// Create records a received callback.
func (r *WebhookRepository) Create(ctx context.Context, event *domain.WebhookEvent) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO webhook_events (id, gateway_ref, kind, payload, processed, processed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		event.ID, event.GatewayRef, event.Kind, event.Payload,
		event.Processed, event.ProcessedAt, event.CreatedAt,
	)
	return err
}

// MarkProcessed flags the event after its effects were committed.
func (r *WebhookRepository) MarkProcessed(ctx context.Context, id string, processedAt time.Time) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE webhook_events SET processed = TRUE, processed_at = $2 WHERE id = $1`,
		id, processedAt,
	)
	return err
}

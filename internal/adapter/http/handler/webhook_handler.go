package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/pixluck/wallet/internal/adapter/http/dto"
	"github.com/pixluck/wallet/internal/infrastructure/metrics"
)

// WebhookService defines the payment confirmation behavior needed by
// WebhookHandler.
type WebhookService interface {
	ConfirmDeposit(ctx context.Context, gatewayRef string, payload []byte) error
	ConfirmWithdrawal(ctx context.Context, gatewayRef string, succeeded bool, payload []byte) error
}

// WebhookHandler receives PIX gateway callbacks. The gateway retries
// until it sees 2xx, so every delivery must be safe to replay.
type WebhookHandler struct {
	paymentUC WebhookService
	logger    zerolog.Logger
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(paymentUC WebhookService, logger zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{paymentUC: paymentUC, logger: logger}
}

// HandlePix processes one PIX gateway callback.
func (h *WebhookHandler) HandlePix(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read body", err.Error())
		return
	}

	var req dto.PixWebhookRequest
	if err := json.NewDecoder(bytes.NewReader(payload)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if req.GatewayRef == "" {
		writeError(w, http.StatusBadRequest, "missing gateway reference", "")
		return
	}

	switch req.Kind {
	case "withdrawal", "payout":
		metrics.Webhooks.WithLabelValues("pix.withdrawal").Inc()
		err = h.paymentUC.ConfirmWithdrawal(r.Context(), req.GatewayRef, req.Status == "paid", payload)
	default:
		// Deposits only settle on a paid status; other statuses are
		// recorded by the usecase but change nothing.
		if req.Status != "paid" {
			h.logger.Info().
				Str("gateway_ref", req.GatewayRef).
				Str("status", req.Status).
				Msg("ignoring non-paid deposit webhook")
			writeJSON(w, http.StatusOK, map[string]string{"status": "ignored"})
			return
		}
		metrics.Webhooks.WithLabelValues("pix.deposit").Inc()
		err = h.paymentUC.ConfirmDeposit(r.Context(), req.GatewayRef, payload)
	}
	if err != nil {
		h.logger.Error().Err(err).Str("gateway_ref", req.GatewayRef).Msg("webhook processing failed")
		writeError(w, mapDomainError(err), "failed to process webhook", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

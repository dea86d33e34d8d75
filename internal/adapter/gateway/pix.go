package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/pixluck/wallet/internal/usecase"
)

// PixClient implements usecase.PixGateway against the PIX payment
// provider's REST API. Gateway URL and API key live in the platform
// configuration so an admin can rotate them without a restart.
type PixClient struct {
	httpClient *http.Client
	config     usecase.ConfigRepository
	logger     zerolog.Logger
}

// NewPixClient creates a new PixClient.
func NewPixClient(config usecase.ConfigRepository, logger zerolog.Logger) *PixClient {
	return &PixClient{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		config:     config,
		logger:     logger,
	}
}

type pixChargeRequest struct {
	Amount     string   `json:"amount"`
	Payer      pixPayer `json:"payer"`
	WebhookURL string   `json:"webhook_url"`
}

type pixPayer struct {
	Name     string `json:"name"`
	Document string `json:"document"`
}

type pixChargeResponse struct {
	ID        string `json:"id"`
	QRCode    string `json:"qr_code"`
	CopyPaste string `json:"copy_paste"`
}

// GeneratePix asks the gateway for a deposit charge. The gateway
// expects amounts in reais with two decimal places.
func (c *PixClient) GeneratePix(ctx context.Context, input usecase.PixChargeInput) (*usecase.PixCharge, error) {
	body := pixChargeRequest{
		Amount: reais(input.AmountCents),
		Payer: pixPayer{
			Name:     input.PayerName,
			Document: input.PayerDocument,
		},
		WebhookURL: input.WebhookURL,
	}

	var resp pixChargeResponse
	if err := c.post(ctx, "/v1/pix/charges", body, &resp); err != nil {
		return nil, fmt.Errorf("generate pix: %w", err)
	}

	return &usecase.PixCharge{
		GatewayRef: resp.ID,
		QRCode:     resp.QRCode,
		CopyPaste:  resp.CopyPaste,
	}, nil
}

type pixPayoutRequest struct {
	Amount       string `json:"amount"`
	PixKey       string `json:"pix_key"`
	PixKeyType   string `json:"pix_key_type"`
	Document     string `json:"document"`
	ReceiverName string `json:"receiver_name"`
	WebhookURL   string `json:"webhook_url"`
}

type pixPayoutResponse struct {
	ID string `json:"id"`
}

// SendPix asks the gateway to pay out a withdrawal.
func (c *PixClient) SendPix(ctx context.Context, input usecase.PixPayoutInput) (*usecase.PixPayout, error) {
	body := pixPayoutRequest{
		Amount:       reais(input.AmountCents),
		PixKey:       input.PixKey,
		PixKeyType:   input.PixKeyType,
		Document:     input.Document,
		ReceiverName: input.ReceiverName,
		WebhookURL:   input.WebhookURL,
	}

	var resp pixPayoutResponse
	if err := c.post(ctx, "/v1/pix/payouts", body, &resp); err != nil {
		return nil, fmt.Errorf("send pix: %w", err)
	}

	return &usecase.PixPayout{GatewayRef: resp.ID}, nil
}

func (c *PixClient) post(ctx context.Context, path string, body, out any) error {
	cfg, err := c.config.Get(ctx)
	if err != nil {
		return fmt.Errorf("load gateway config: %w", err)
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.GatewayURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+cfg.GatewayAPIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error().
			Int("status", resp.StatusCode).
			Str("path", path).
			Msg("pix gateway rejected request")
		return fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	return json.Unmarshal(raw, out)
}

// reais renders integer centavos as a reais amount with two decimals.
func reais(cents int64) string {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100)).StringFixed(2)
}

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

	"github.com/pixluck/wallet/internal/usecase"
)

// ProviderClient implements usecase.GameProvider against the slot
// provider's transfer API. Agent credentials come from the platform
// configuration; the API base URL is fixed per environment.
type ProviderClient struct {
	httpClient *http.Client
	baseURL    string
	config     usecase.ConfigRepository
	logger     zerolog.Logger
}

// NewProviderClient creates a new ProviderClient.
func NewProviderClient(baseURL string, config usecase.ConfigRepository, logger zerolog.Logger) *ProviderClient {
	return &ProviderClient{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    baseURL,
		config:     config,
		logger:     logger,
	}
}

type providerRequest struct {
	Method       string `json:"method"`
	AgentCode    string `json:"agent_code"`
	AgentToken   string `json:"agent_token"`
	UserCode     string `json:"user_code"`
	ProviderCode string `json:"provider_code,omitempty"`
	GameCode     string `json:"game_code,omitempty"`
	Lang         string `json:"lang,omitempty"`
}

type providerResponse struct {
	Status    int    `json:"status"`
	Msg       string `json:"msg"`
	LaunchURL string `json:"launch_url"`
}

// CreateUser registers the account on the provider side. The provider
// treats an already registered user_code as success.
func (c *ProviderClient) CreateUser(ctx context.Context, userCode string) error {
	_, err := c.call(ctx, providerRequest{
		Method:   "user_create",
		UserCode: userCode,
	})
	return err
}

// LaunchGame requests a game session URL for the user.
func (c *ProviderClient) LaunchGame(ctx context.Context, userCode, providerCode, gameCode, lang string) (string, error) {
	resp, err := c.call(ctx, providerRequest{
		Method:       "game_launch",
		UserCode:     userCode,
		ProviderCode: providerCode,
		GameCode:     gameCode,
		Lang:         lang,
	})
	if err != nil {
		return "", err
	}
	if resp.LaunchURL == "" {
		return "", fmt.Errorf("provider returned no launch url")
	}
	return resp.LaunchURL, nil
}

func (c *ProviderClient) call(ctx context.Context, body providerRequest) (*providerResponse, error) {
	cfg, err := c.config.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load provider config: %w", err)
	}
	body.AgentCode = cfg.AgentCode
	body.AgentToken = cfg.AgentToken

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(httpResp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		c.logger.Error().
			Int("status", httpResp.StatusCode).
			Str("method", body.Method).
			Msg("provider rejected request")
		return nil, fmt.Errorf("provider returned status %d", httpResp.StatusCode)
	}

	var resp providerResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, err
	}
	if resp.Status != 1 {
		return nil, fmt.Errorf("provider %s failed: %s", body.Method, resp.Msg)
	}
	return &resp, nil
}

// ConfigCredentials sources the seamless agent credentials from the
// platform configuration. The agent token doubles as the shared secret
// the provider presents on callbacks.
type ConfigCredentials struct {
	config usecase.ConfigRepository
}

// NewConfigCredentials creates a new ConfigCredentials.
func NewConfigCredentials(config usecase.ConfigRepository) *ConfigCredentials {
	return &ConfigCredentials{config: config}
}

// AgentCredentials returns the expected agent code and secret.
func (c *ConfigCredentials) AgentCredentials(ctx context.Context) (string, string, error) {
	cfg, err := c.config.Get(ctx)
	if err != nil {
		return "", "", err
	}
	return cfg.AgentCode, cfg.AgentToken, nil
}

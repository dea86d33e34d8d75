package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/pixluck/wallet/internal/adapter/http/handler"
	"github.com/pixluck/wallet/internal/adapter/http/middleware"
	"github.com/pixluck/wallet/internal/infrastructure/auth"
	"github.com/pixluck/wallet/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	WalletHandler    *handler.WalletHandler
	SeamlessHandler  *handler.SeamlessHandler
	AffiliateHandler *handler.AffiliateHandler
	ChestHandler     *handler.ChestHandler
	JackpotHandler   *handler.JackpotHandler
	AdminHandler     *handler.AdminHandler
	WebhookHandler   *handler.WebhookHandler
	HealthHandler    *handler.HealthHandler
	IdempotencyStore usecase.IdempotencyStore
	JWTManager       *auth.JWTManager
	Logger           zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// Provider-facing seamless wallet endpoint. The provider signs
	// requests with agent credentials in the body, not with our JWT.
	r.Route("/api/seamless", func(r chi.Router) {
		r.Get("/", cfg.SeamlessHandler.Ping)
		r.Post("/", cfg.SeamlessHandler.Handle)
	})

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.IdempotencyStore != nil {
			r.Use(middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore).Wrap)
		}

		r.Get("/jackpot", cfg.JackpotHandler.Get)
		r.Post("/webhooks/pix", cfg.WebhookHandler.HandlePix)

		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.WalletHandler.Register)
			r.Get("/", cfg.WalletHandler.List)
			r.Get("/{id}", cfg.WalletHandler.Get)
			r.Get("/{id}/entries", cfg.WalletHandler.ListEntries)
			r.Post("/{id}/games", cfg.WalletHandler.LaunchGame)
			r.Post("/{id}/deposits", cfg.WalletHandler.CreateDeposit)
			r.Post("/{id}/withdrawals", cfg.WalletHandler.CreateWithdrawal)
			r.Get("/{id}/payments", cfg.WalletHandler.ListPayments)
			r.Get("/{id}/affiliate", cfg.AffiliateHandler.Stats)
			r.Post("/{id}/affiliate/withdraw", cfg.AffiliateHandler.Withdraw)
			r.Get("/{id}/chests", cfg.ChestHandler.List)
			r.Post("/{id}/chests/{chestID}/claim", cfg.ChestHandler.Claim)
		})

		r.Route("/admin", func(r chi.Router) {
			if cfg.JWTManager != nil {
				r.Use(middleware.AdminAuth(cfg.JWTManager))
			}
			r.Get("/config", cfg.AdminHandler.GetConfig)
			r.Put("/config", cfg.AdminHandler.UpdateConfig)
			r.Put("/jackpot", cfg.JackpotHandler.Update)
		})
	})

	return r
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/pixluck/wallet/internal/adapter/gateway"
	httpAdapter "github.com/pixluck/wallet/internal/adapter/http"
	"github.com/pixluck/wallet/internal/adapter/http/handler"
	postgresRepo "github.com/pixluck/wallet/internal/adapter/repository/postgres"
	redisRepo "github.com/pixluck/wallet/internal/adapter/repository/redis"
	"github.com/pixluck/wallet/internal/infrastructure/auth"
	"github.com/pixluck/wallet/internal/infrastructure/config"
	"github.com/pixluck/wallet/internal/infrastructure/logger"
	"github.com/pixluck/wallet/internal/infrastructure/postgres"
	"github.com/pixluck/wallet/internal/infrastructure/redis"
	"github.com/pixluck/wallet/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	log.Logger = appLogger

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	appLogger.Info().Msg("connected to postgres")

	if err := postgres.RunMigrations(cfg.DatabaseURL, "migrations", appLogger); err != nil {
		appLogger.Fatal().Err(err).Msg("failed to run migrations")
	}

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	appLogger.Info().Msg("connected to redis")

	// Repositories
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	ledgerRepo := postgresRepo.NewLedgerRepository(pool)
	affiliateRepo := postgresRepo.NewAffiliateRepository(pool)
	referralRepo := postgresRepo.NewReferralRepository(pool)
	chestRepo := postgresRepo.NewChestRepository(pool)
	paymentRepo := postgresRepo.NewPaymentRepository(pool)
	webhookRepo := postgresRepo.NewWebhookRepository(pool)
	configRepo := postgresRepo.NewConfigRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	cache := redisRepo.NewCache(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(appLogger)

	// Gateways
	pixGateway := gateway.NewPixClient(configRepo, appLogger)
	gameProvider := gateway.NewProviderClient(cfg.ProviderAPIURL, configRepo, appLogger)
	agentCredentials := gateway.NewConfigCredentials(configRepo)

	// Use cases
	settlementUC := usecase.NewSettlementUseCase(txManager, accountRepo, ledgerRepo, idGen, retrier, cfg.SamplesMode)
	affiliateUC := usecase.NewAffiliateUseCase(txManager, accountRepo, affiliateRepo, referralRepo, idGen, configRepo)
	accountUC := usecase.NewAccountUseCase(accountRepo, referralRepo, gameProvider, idGen)
	paymentUC := usecase.NewPaymentUseCase(txManager, accountRepo, paymentRepo, webhookRepo, affiliateUC, pixGateway, idGen, configRepo)
	chestUC := usecase.NewChestUseCase(txManager, accountRepo, chestRepo, referralRepo, idGen, configRepo)
	jackpotUC := usecase.NewJackpotUseCase(configRepo, cache)

	// Admin auth is enabled only when a secret is configured.
	var jwtManager *auth.JWTManager
	if cfg.JWTSecret != "" {
		jwtManager = auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
	} else {
		appLogger.Warn().Msg("JWT_SECRET is empty, admin endpoints are unauthenticated")
	}

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		WalletHandler:    handler.NewWalletHandler(accountUC, settlementUC, paymentUC),
		SeamlessHandler:  handler.NewSeamlessHandler(settlementUC, agentCredentials, appLogger),
		AffiliateHandler: handler.NewAffiliateHandler(affiliateUC),
		ChestHandler:     handler.NewChestHandler(chestUC),
		JackpotHandler:   handler.NewJackpotHandler(jackpotUC),
		AdminHandler:     handler.NewAdminHandler(configRepo),
		WebhookHandler:   handler.NewWebhookHandler(paymentUC, appLogger),
		HealthHandler:    handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore: idempotencyStore,
		JWTManager:       jwtManager,
		Logger:           appLogger,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		appLogger.Info().Str("port", cfg.HTTPPort).Bool("samples_mode", cfg.SamplesMode).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	appLogger.Info().Msg("server stopped")
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"esports-wagering-platform/config"
	httpHandler "esports-wagering-platform/internal/adapter/http/handler"
	"esports-wagering-platform/internal/adapter/matchfeed"
	"esports-wagering-platform/internal/adapter/metrics"
	"esports-wagering-platform/internal/adapter/notify"
	pgStorage "esports-wagering-platform/internal/adapter/storage/postgres"
	redisStorage "esports-wagering-platform/internal/adapter/storage/redis"
	"esports-wagering-platform/internal/core/ports"
	"esports-wagering-platform/internal/service"
	"esports-wagering-platform/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Esports Wagering Platform")

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories
	accountRepo := pgStorage.NewAccountRepo(pool)
	betRepo := pgStorage.NewBetRepo(pool)
	txRepo := pgStorage.NewTransactionRepo(pool)
	cancelRepo := pgStorage.NewCancellationRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	// Initialize collaborators
	invalidator := redisStorage.NewInvalidator(rdb, logger.Component(log, "cache"))
	notifier := notify.NewKafkaNotifier(cfg.Kafka, logger.Component(log, "kafka"))
	defer notifier.Close()
	matchFeed := matchfeed.NewClient(cfg.MatchFeed, logger.Component(log, "matchfeed"))

	// Initialize core services
	tokenSvc := service.NewJWTTokenService(cfg.Auth.JWTSecret, cfg.Auth.Expiry, cfg.Auth.Issuer)
	guardSvc := service.NewGuardService(accountRepo, betRepo, txRepo, cfg.Betting, logger.Component(log, "guard"))
	ledgerSvc := service.NewLedgerService(
		accountRepo,
		betRepo,
		txRepo,
		cancelRepo,
		transactor,
		guardSvc,
		matchFeed,
		notifier,
		invalidator,
		cfg.Betting,
		logger.Component(log, "ledger"),
	)
	settlementSvc := service.NewSettlementService(
		accountRepo,
		betRepo,
		txRepo,
		transactor,
		matchFeed,
		notifier,
		invalidator,
		logger.Component(log, "settlement"),
	)
	reportingSvc := service.NewReportingService(accountRepo, betRepo, txRepo, logger.Component(log, "reporting"))

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Sidecar metrics listener: /metrics + /healthz
	metricsSrv := metrics.StartMetricsServer(cfg.Metrics.Port, func(ctx context.Context) error {
		if err := pgHealth.Ping(ctx); err != nil {
			return err
		}
		return redisHealth.Ping(ctx)
	})
	log.Info().Str("port", cfg.Metrics.Port).Msg("Metrics server listening")

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		LedgerSvc:      ledgerSvc,
		SettlementSvc:  settlementSvc,
		ReportingSvc:   reportingSvc,
		TokenSvc:       tokenSvc,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Metrics server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

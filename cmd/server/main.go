package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"charity-transparency/internal/config"
	"charity-transparency/internal/database"
	"charity-transparency/internal/events"
	"charity-transparency/internal/handlers"
	"charity-transparency/internal/reporting"
	"charity-transparency/internal/repositories"
	"charity-transparency/internal/server"
	"charity-transparency/internal/services"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// a missing .env is normal outside local development
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}

func newLogger(cfg *config.Config) *slog.Logger {
	if cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func run(cfg *config.Config, logger *slog.Logger) error {
	db, err := database.Initialize(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database", "error", err)
		}
	}()

	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}

	publisher, err := events.NewPublisher(&cfg.Messaging, logger)
	if err != nil {
		logger.Warn("Event broker unavailable, donation events will only be logged", "error", err)
		publisher = events.NewLogPublisher(logger)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error("Failed to close event publisher", "error", err)
		}
	}()

	// middleware counters use the default registry, so service metrics join them there
	metrics := services.NewPrometheusMetrics(prometheus.DefaultRegisterer)

	donationRepo := repositories.NewDonationRepository(db.DB)
	expenseRepo := repositories.NewExpenseRepository(db.DB)
	activityRepo := repositories.NewActivityRepository(db.DB)
	adminUserRepo := repositories.NewAdminUserRepository(db.DB)
	auditLogRepo := repositories.NewAuditLogRepository(db.DB)
	blacklistRepo := repositories.NewBlacklistedTokenRepository(db.DB)

	engine := reporting.NewEngine(
		reporting.WithLocation(cfg.Reporting.Location),
		reporting.WithMonths(cfg.Reporting.Months),
		reporting.WithTimelineLimit(cfg.Reporting.TimelineLimit),
		reporting.WithLogger(logger.With("component", "reporting")),
	)

	tokenService := services.NewTokenService(&cfg.JWT)
	passwordService := services.NewPasswordService(cfg.Security.BCryptCost, cfg.Security.PasswordMinLength)

	reportService := services.NewReportService(donationRepo, expenseRepo, activityRepo, engine, metrics, logger)
	donationService := services.NewDonationService(donationRepo, activityRepo, publisher, metrics, logger)
	expenseService := services.NewExpenseService(expenseRepo, activityRepo, metrics, logger)
	activityService := services.NewActivityService(activityRepo, donationRepo, expenseRepo, logger)
	auditService := services.NewAuditService(auditLogRepo, logger.With("component", "audit"))
	authService := services.NewAuthService(adminUserRepo, blacklistRepo, auditService, passwordService, tokenService, metrics, logger)

	srv := server.New(cfg, server.Handlers{
		Health:   handlers.NewHealthCheckHandler(sqlDB),
		Report:   handlers.NewReportHandler(reportService, auditService, logger),
		Activity: handlers.NewActivityHandler(activityService, auditService),
		Donation: handlers.NewDonationHandler(donationService, auditService),
		Expense:  handlers.NewExpenseHandler(expenseService, auditService),
		Auth:     handlers.NewAuthHandler(authService),
		Audit:    handlers.NewAuditHandler(auditService),
	}, tokenService, blacklistRepo, prometheus.DefaultGatherer)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go services.RunTokenPurge(ctx, authService, cfg.Security.TokenPurgeInterval, logger.With("component", "token_purge"))

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting charity transparency server",
			"addr", srv.Addr(),
			"environment", cfg.Server.Environment,
			"report_timezone", cfg.Reporting.Timezone,
		)
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

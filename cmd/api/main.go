package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	_ "github.com/flouswise/finance/docs"
	"github.com/flouswise/finance/internal/config"
	"github.com/flouswise/finance/internal/events"
	"github.com/flouswise/finance/internal/handler"
	"github.com/flouswise/finance/internal/logger"
	"github.com/flouswise/finance/internal/repository"
	"github.com/flouswise/finance/internal/scheduler"
	"github.com/flouswise/finance/internal/service"
)

// @title FlousWise Finance API
// @version 1.0
// @description Financial profile, health scoring and ratio analytics for FlousWise users.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@flouswise.ma

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg := config.Load()

	// Setup structured logger
	logger.Setup(cfg.Env, os.Stdout)
	log := logger.Logger()

	db, err := sqlx.Connect("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), 30*time.Second)
	if err := repository.Migrate(migrateCtx, db); err != nil {
		cancelMigrate()
		log.Error("failed to apply schema", "error", err)
		os.Exit(1)
	}
	cancelMigrate()

	// Initialize repositories
	profileRepo := repository.NewProfileRepository(db)
	healthRepo := repository.NewHealthScoreRepository(db)
	ratiosRepo := repository.NewRatiosRepository(db)
	spendingRepo := repository.NewSpendingRepository(db)
	netWorthRepo := repository.NewNetWorthRepository(db)

	// Initialize services
	analyticsService := service.NewAnalyticsService(profileRepo, service.AnalyticsStores{
		HealthScores: healthRepo,
		Ratios:       ratiosRepo,
		Spending:     spendingRepo,
		NetWorth:     netWorthRepo,
		Tx:           repository.NewTransactor(db),
	}, service.DefaultEngines())
	analyticsService.SetAsync(cfg.AnalyticsAsync, cfg.AnalyticsTimeout)
	analyticsService.SetDefaultTrendMonths(cfg.NetWorthDefaultMonths)

	profileService := service.NewProfileService(profileRepo, analyticsService)
	profileService.SetDefaultCurrency(cfg.DefaultCurrency)

	exportService := service.NewExportService(analyticsService, profileService)

	// Events
	var publisher events.Publisher = events.NoopPublisher{}
	consumerCtx, stopConsumer := context.WithCancel(context.Background())
	consumerDone := make(chan struct{})
	if cfg.Kafka.Enabled {
		kp, err := events.NewKafkaPublisher(cfg.Kafka)
		if err != nil {
			log.Error("failed to create kafka publisher", "error", err)
			os.Exit(1)
		}
		publisher = kp

		consumer, err := events.NewConsumer(cfg.Kafka, profileService)
		if err != nil {
			log.Error("failed to create kafka consumer", "error", err)
			os.Exit(1)
		}
		go func() {
			defer close(consumerDone)
			if err := consumer.Run(consumerCtx); err != nil {
				log.Error("kafka consumer stopped", "error", err)
			}
		}()
		log.Info("Kafka enabled", "bootstrap_servers", cfg.Kafka.BootstrapServers)
	} else {
		close(consumerDone)
	}
	profileService.SetPublisher(publisher)

	// Initialize handlers
	router := handler.NewRouter(handler.Routes{
		Profile:        handler.NewProfileHandler(profileService),
		Analytics:      handler.NewAnalyticsHandler(analyticsService),
		Export:         handler.NewExportHandler(exportService),
		Health:         handler.NewHealthHandler(db),
		JWTSecret:      cfg.JWTSecret,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	// Nightly recompute so net worth history grows without profile edits
	snapshotScheduler := scheduler.New(scheduler.Config{
		Schedule: cfg.SnapshotSchedule,
		Timeout:  cfg.SnapshotTimeout,
		Enabled:  cfg.SnapshotEnabled,
	}, analyticsService, log)
	if err := snapshotScheduler.Start(); err != nil {
		log.Error("Failed to start snapshot scheduler", "error", err)
	} else if cfg.SnapshotEnabled {
		log.Info("Next analytics snapshot", "at", snapshotScheduler.GetNextRunTime())
		if cfg.SnapshotRunOnStart {
			snapshotScheduler.RunNow()
		}
	}

	// Create server
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Handle graceful shutdown
	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("Shutting down server...")

		// Stop scheduler first
		<-snapshotScheduler.Stop().Done()
		log.Info("Scheduler stopped")

		stopConsumer()
		<-consumerDone

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Error("Server shutdown error", "error", err)
		}

		// Let background recomputes finish before the publisher goes away
		analyticsService.Wait()
		publisher.Close()
	}()

	log.Info("Server starting", "port", cfg.Port, "env", cfg.Env)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("Server failed", "error", err)
		os.Exit(1)
	}
	<-shutdownDone
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/swvikum/cake-bucket-sync/internal/client"
	"github.com/swvikum/cake-bucket-sync/internal/config"
	"github.com/swvikum/cake-bucket-sync/internal/core/port"
	"github.com/swvikum/cake-bucket-sync/internal/core/service"
	"github.com/swvikum/cake-bucket-sync/internal/infrastructure/amqp"
	"github.com/swvikum/cake-bucket-sync/internal/scheduler"
	"github.com/swvikum/cake-bucket-sync/internal/server"
	"github.com/swvikum/cake-bucket-sync/internal/storage"
)

func main() {
	log.SetFormatter(&log.JSONFormatter{})
	log.SetLevel(log.InfoLevel)

	_ = godotenv.Load()
	cfg := config.Load()

	ctx := context.Background()
	db, err := storage.NewPostgresDB(ctx, cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ordersStorage := storage.NewOrdersStorage(db)
	tokensStorage := storage.NewTokensStorage(db)

	notifier := setupNotifier(cfg.AMQPURL)

	tokenService := service.NewTokenService(
		tokensStorage,
		client.NewGoogleTokenExchanger(cfg.GoogleClientID, cfg.GoogleClientSecret),
	)
	syncService := service.NewSyncService(
		tokenService,
		client.NewGoogleCalendarSource(cfg.GoogleCalendarID),
		ordersStorage,
		notifier,
	)

	validate := validator.New()
	httpServer := server.NewHTTPServer(syncService, cfg.CronSecret, validate)

	go func() {
		if err := httpServer.Start(cfg.HTTPAddr); err != nil {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	var sched *scheduler.Scheduler
	if cfg.SyncSchedule != "" {
		sched, err = scheduler.New(cfg.SyncSchedule, syncService, cfg.SyncDaysBack, cfg.SyncDaysAhead)
		if err != nil {
			log.Fatalf("Invalid sync schedule %q: %v", cfg.SyncSchedule, err)
		}
		sched.Start()
	}

	log.Info("Calendar sync service started")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info("Shutting down calendar sync service...")

	if sched != nil {
		sched.Stop()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Error shutting down HTTP server: %v", err)
	}
}

// setupNotifier connects to RabbitMQ when configured, falling back to a
// no-op so the sync itself never depends on the broker being up.
func setupNotifier(amqpURL string) port.Notifier {
	if amqpURL == "" {
		log.Warn("AMQP_URL not set, sync notifications disabled")
		return client.NoopNotifier{}
	}

	amqpClient, err := amqp.NewClient(amqpURL)
	if err != nil {
		log.WithError(err).Warn("Failed to connect to RabbitMQ, sync notifications disabled")
		return client.NoopNotifier{}
	}

	if err := amqp.NewTopologyManager(amqpClient).Setup(); err != nil {
		log.WithError(err).Warn("Failed to setup AMQP topology, sync notifications disabled")
		return client.NoopNotifier{}
	}

	return client.NewAMQPNotifier(amqp.NewPublisher(amqpClient))
}

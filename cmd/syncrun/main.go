package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/swvikum/cake-bucket-sync/internal/client"
	"github.com/swvikum/cake-bucket-sync/internal/config"
	"github.com/swvikum/cake-bucket-sync/internal/core/service"
	"github.com/swvikum/cake-bucket-sync/internal/storage"
)

// syncrun performs a single sync and exits: handy for ops and for external
// schedulers that prefer spawning a process over hitting the HTTP trigger.
func main() {
	log.SetFormatter(&log.JSONFormatter{})
	log.SetLevel(log.InfoLevel)

	_ = godotenv.Load()
	cfg := config.Load()

	daysBack := flag.Int("days-back", cfg.SyncDaysBack, "how many days back the sync window reaches")
	daysAhead := flag.Int("days-ahead", cfg.SyncDaysAhead, "how many days ahead the sync window reaches")
	flag.Parse()

	ctx := context.Background()
	db, err := storage.NewPostgresDB(ctx, cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	tokenService := service.NewTokenService(
		storage.NewTokensStorage(db),
		client.NewGoogleTokenExchanger(cfg.GoogleClientID, cfg.GoogleClientSecret),
	)
	syncService := service.NewSyncService(
		tokenService,
		client.NewGoogleCalendarSource(cfg.GoogleCalendarID),
		storage.NewOrdersStorage(db),
		client.NoopNotifier{},
	)

	report, err := syncService.Run(ctx, *daysBack, *daysAhead)
	if err != nil {
		log.WithError(err).Error("Calendar sync failed")
		os.Exit(1)
	}

	out, _ := json.Marshal(report)
	os.Stdout.Write(append(out, '\n'))
}

package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/imobo/imobo/internal/billing"
	"github.com/imobo/imobo/internal/config"
	contractStore "github.com/imobo/imobo/internal/contract/store"
	"github.com/imobo/imobo/internal/database"
	paymentStore "github.com/imobo/imobo/internal/payment/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	billingService := billing.NewService(contractStore.New(db), paymentStore.New(db), nil)
	runner := billing.NewRunner(billingService, cfg.Billing.SweepInterval)

	runner.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")
	runner.Stop()
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/salesdash/internal/config"
	salesHttp "github.com/MrJamesThe3rd/salesdash/internal/http"
	"github.com/MrJamesThe3rd/salesdash/internal/http/health"
	"github.com/MrJamesThe3rd/salesdash/internal/http/importseed"
	reportHandler "github.com/MrJamesThe3rd/salesdash/internal/http/report"
	txHandler "github.com/MrJamesThe3rd/salesdash/internal/http/transaction"
	"github.com/MrJamesThe3rd/salesdash/internal/importer"
	"github.com/MrJamesThe3rd/salesdash/internal/logging"
	"github.com/MrJamesThe3rd/salesdash/internal/report"
	"github.com/MrJamesThe3rd/salesdash/internal/storage"
	"github.com/MrJamesThe3rd/salesdash/internal/transaction"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env file", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Setup(os.Stdout, cfg.App.Name, cfg.Log.Format, cfg.LogLevel())

	if err := run(cfg); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	store, err := storage.Open(cfg)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}

	defer func() {
		if err := store.Close(); err != nil {
			slog.Error("failed to close store", "error", err)
		}
	}()

	var (
		transactionService = transaction.NewService(store)
		reportService      = report.NewService(transactionService)
		importService      = importer.NewService(transactionService, importer.Options{
			SeedURL:         cfg.Seed.URL,
			Timeout:         cfg.Seed.Timeout,
			SkipIfPopulated: cfg.Seed.SkipIfPopulated,
		})
	)

	router := salesHttp.New(
		salesHttp.Options{AllowedOrigins: cfg.Server.AllowedOrigins},
		health.NewHandler(transactionService),
		importseed.NewHandler(importService),
		txHandler.NewHandler(transactionService),
		reportHandler.NewHandler(reportService),
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.Timeout,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout + cfg.Seed.Timeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)

	go func() {
		slog.Info("starting server", "addr", srv.Addr, "store", cfg.Store.Driver)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}

	return nil
}

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

	"github.com/spf13/cobra"

	"trade_logger/internal/api"
	"trade_logger/internal/auth"
	"trade_logger/internal/config"
	"trade_logger/internal/ingest"
	"trade_logger/internal/notify"
	"trade_logger/internal/storage"
)

const (
	shutdownTimeout = 30 * time.Second

	// пакет синхронизации истории пишется последовательно и может идти долго
	writeTimeout = 10 * time.Minute
)

func newServeCmd() *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP ingestion server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, closeLog, err := newLogger(os.Stdout, config.LoadLogging())
			if err != nil {
				return err
			}
			defer closeLog()

			cfg := config.Load(logger)
			if address != "" {
				cfg.Address = address
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, logger)
		},
	}

	cmd.Flags().StringVar(&address, "address", "", "listen address, overrides ADDRESS/PORT")

	return cmd
}

func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("=== MT4 Trade Logger ===", slog.String("version", version))

	var (
		ingestOpts []ingest.Option
		apiOpts    []api.Option
	)

	// Локальный журнал
	if cfg.DBPath != "" {
		journal, err := storage.New(cfg.DBPath, logger)
		if err != nil {
			return fmt.Errorf("initialize journal: %w", err)
		}
		defer journal.Close()

		ingestOpts = append(ingestOpts, ingest.WithJournal(journal))
		apiOpts = append(apiOpts, api.WithJournal(journal))
	} else {
		logger.Info("📒 DB_PATH is empty, journal disabled")
	}

	// Оповещения в Telegram
	if cfg.AlertsEnabled() {
		notifier, err := notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID, logger)
		if err != nil {
			// без оповещений сервис работает дальше
			logger.Error("Failed to initialize Telegram notifier", slog.Any("error", err))
		} else {
			defer notifier.Close()

			ingestOpts = append(ingestOpts, ingest.WithNotifier(notifier))
		}
	}

	// Токены терминалов
	if cfg.JWTSecret != "" {
		authService, err := auth.NewService(cfg.JWTSecret, 0)
		if err != nil {
			return err
		}

		apiOpts = append(apiOpts, api.WithAuth(authService))
	}

	svc := newIngestService(cfg, logger, ingestOpts...)

	handler := api.New(svc, api.ServiceInfo{Name: serviceName, Version: version}, logger, apiOpts...)

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      handler.SetupRouter(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: writeTimeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		logger.Info("🚀 Server starting...", slog.String("address", cfg.Address))
		logger.Info(fmt.Sprintf("🏥 Health check at http://%s/health", cfg.Address))

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}

		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}

		return nil
	case <-ctx.Done():
	}

	logger.Info("🛑 Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", slog.Any("error", err))
		return err
	}

	logger.Info("✅ Server stopped")

	return nil
}

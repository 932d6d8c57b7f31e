package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"spendbot/internal/adapters"
	"spendbot/internal/amqp"
	"spendbot/internal/backend"
	"spendbot/internal/bot"
	"spendbot/internal/category"
	"spendbot/internal/cli"
	apphttp "spendbot/internal/http"
	"spendbot/internal/ledger"
	"spendbot/internal/log"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	ctx := context.Background()

	result, err := backend.Open(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize data backend",
			log.FieldError, err, log.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer func() {
			if err := result.Cleanup(); err != nil {
				logger.Error("Backend cleanup failed", log.FieldError, err)
			}
		}()
	}

	svc := ledger.New(result.Store)
	registry := category.New(result.Store)

	// Expenses are appended through AMQP when a broker is configured, so a
	// slow spreadsheet write never blocks the chat reply. Without a broker
	// the ledger writes directly.
	var appender bot.Appender = svc
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", log.FieldError, err)
			os.Exit(1)
		}
		defer amqpClient.Close()
		appender = adapters.NewQueueAppender(amqpClient)
		logger.Info("Expense appends routed through AMQP", log.FieldQueue, cfg.AMQPQueue)
	}

	dispatcher := bot.NewDispatcher(svc, appender, registry, cfg.AllowedUserIDs, logger)
	srv := apphttp.NewServer(":"+cfg.Port, dispatcher, logger)

	shutdownCtx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
		}
	})

	logger.Info("Starting spendbot server",
		"port", cfg.Port, log.FieldBackend, cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(shutdownCtx, done)
	logger.Info("Server stopped gracefully")
}

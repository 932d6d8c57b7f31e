package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"spendbot/internal/amqp"
	"spendbot/internal/backend"
	"spendbot/internal/cli"
	"spendbot/internal/log"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger().WithComponent(log.ComponentWorker)
	cfg := cli.LoadAndValidateConfig(logger)

	logger.Info("Starting spendbot-worker")

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

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

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	store := result.Store

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return amqpClient.ConsumeExpenseAppends(gctx, func(ctx context.Context, msg *amqp.ExpenseAppendMessage) error {
			appendCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			defer cancel()
			if err := store.AppendRow(appendCtx, msg.Row()); err != nil {
				logger.ErrorContext(ctx, "Failed to append expense row",
					log.FieldError, err, log.FieldItem, msg.Item)
				return err
			}
			logger.InfoContext(ctx, "Expense appended",
				log.FieldItem, msg.Item, log.FieldPrice, msg.Price)
			return nil
		})
	})

	logger.Info("Consuming expense appends", log.FieldQueue, cfg.AMQPQueue)
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Message consumption failed", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Worker shutdown complete")
}

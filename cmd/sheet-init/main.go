// Command sheet-init verifies access to the configured row store and writes
// the header row when the sheet is still empty. Run it once against a fresh
// spreadsheet before starting the bot.
package main

import (
	"context"
	"os"
	"time"

	"spendbot/internal/backend"
	"spendbot/internal/cli"
	"spendbot/internal/log"
	"spendbot/internal/rowstore"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	result, err := backend.Open(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize data backend",
			log.FieldError, err, log.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}
	defer func() {
		if result.Cleanup != nil {
			if err := result.Cleanup(); err != nil {
				logger.Error("Backend cleanup failed", log.FieldError, err)
			}
		}
	}()

	rows, err := result.Store.ReadAllRows(ctx)
	if err != nil {
		logger.Error("Failed to read rows", log.FieldError, err)
		os.Exit(1)
	}

	if len(rows) > 0 {
		logger.Info("Sheet already initialized", "rows", len(rows))
		return
	}

	if err := result.Store.AppendRow(ctx, rowstore.HeaderRow); err != nil {
		logger.Error("Failed to write header row", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Header row written", log.FieldBackend, cfg.DataBackend)
}

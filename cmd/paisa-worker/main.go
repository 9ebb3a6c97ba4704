package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"paisa/internal/amqp"
	"paisa/internal/cli"
	"paisa/internal/log"
	"paisa/internal/sheets"
	gsheet "paisa/internal/sheets/google"
	sheetsmem "paisa/internal/sheets/memory"
	"paisa/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentWorker)
	cfg := cli.LoadAndValidateConfig(logger)

	gateway := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer gateway.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var exporter sheets.Exporter
	if cfg.GoogleSpreadsheetID != "" {
		client, err := gsheet.NewFromEnv(ctx)
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", log.FieldError, err.Error())
			os.Exit(1)
		}
		exporter = client
		logger.Info("Google Sheets exporter initialized",
			"spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		exporter = sheetsmem.New()
		logger.Info("No GOOGLE_SPREADSHEET_ID set, using in-memory exporter")
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err.Error())
		os.Exit(1)
	}
	defer amqpClient.Close()

	syncWorker := worker.NewSyncWorker(gateway, exporter)

	g, gctx := errgroup.WithContext(ctx)

	// Consume until cancelled. On broker failures back off for one sync
	// interval and reattach.
	g.Go(func() error {
		for {
			err := amqpClient.ConsumeTransactionSync(gctx, func(msg *amqp.TransactionSyncMessage) error {
				return syncWorker.HandleSyncMessage(gctx, msg)
			})
			if gctx.Err() != nil {
				return nil
			}
			if err != nil {
				logger.Error("Message consumption failed, retrying",
					log.FieldError, err.Error(),
					"retry_in", cfg.SyncInterval.String())
			}
			select {
			case <-gctx.Done():
				return nil
			case <-time.After(cfg.SyncInterval):
			}
		}
	})

	logger.Info("Worker started", log.FieldOperation, log.OpStartup)
	if err := g.Wait(); err != nil {
		logger.Error("Worker stopped with error", log.FieldError, err.Error())
		os.Exit(1)
	}
	logger.Info("Worker stopped", log.FieldOperation, log.OpShutdown)
}

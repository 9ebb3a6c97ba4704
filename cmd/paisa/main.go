package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"paisa/internal/amqp"
	"paisa/internal/auth"
	"paisa/internal/cache"
	"paisa/internal/cli"
	apphttp "paisa/internal/http"
	"paisa/internal/log"
	"paisa/internal/period"
	"paisa/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentApp)
	cfg := cli.LoadAndValidateConfig(logger)

	gateway := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer gateway.Close()

	// The broker is optional. Writes succeed without it; sheet sync
	// simply stops until it is back.
	var publisher services.Publisher
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("AMQP unavailable, sheet sync disabled", log.FieldError, err.Error())
		} else {
			defer client.Close()
			publisher = client
		}
	}

	authSvc := auth.NewService(gateway, logger)
	transactions := services.NewTransactionService(publisher, logger)
	onboarding := services.NewOnboarding(logger)
	reporter := services.NewReporter(period.Now, cfg.ReportCacheSize, cfg.ReportCacheTTL)

	cacheManager := cache.NewManager()
	reporter.RegisterCaches(cacheManager)
	cacheManager.StartCleanup(cfg.ReportCacheTTL)
	defer cacheManager.Stop()

	srv := apphttp.NewServer(cfg, gateway, authSvc, transactions, onboarding, reporter, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received", log.FieldOperation, log.OpShutdown)
	case err := <-errCh:
		if err != nil {
			logger.Error("Server error", log.FieldError, err.Error())
			os.Exit(1)
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", log.FieldError, err.Error())
	}
}

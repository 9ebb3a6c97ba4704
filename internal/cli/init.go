// Package cli provides the shared bootstrap used by cmd/paisa and
// cmd/paisa-worker: env file, logger, validated config and storage.
package cli

import (
	"os"

	"github.com/joho/godotenv"

	"paisa/internal/config"
	"paisa/internal/log"
	"paisa/internal/storage"
)

// SetupLogger initializes structured logging and installs it as the
// process default.
func SetupLogger(component string) *log.Logger {
	cfg := log.DefaultConfig()
	cfg.Component = component
	logger := log.New(cfg)
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development. Errors are
// ignored silently as the file is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration or exits the process on
// validation failure.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err.Error())
		os.Exit(1)
	}
	return cfg
}

// InitSQLite opens the SQLite gateway, running migrations, or exits the
// process on failure.
func InitSQLite(logger *log.Logger, dbPath string) *storage.SQLiteGateway {
	gw, err := storage.NewSQLiteGateway(dbPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite gateway",
			log.FieldError, err.Error(), "path", dbPath)
		os.Exit(1)
	}
	return gw
}

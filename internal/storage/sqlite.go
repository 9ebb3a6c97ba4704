// Package storage implements the persistence gateway: per-user CRUD for
// wallets, categories, transactions and preferences, plus the identity
// user table. It owns no business logic; referential integrity is
// deliberately not enforced, deletes never cascade and historical rows may
// carry dangling ids the ledger engine tolerates.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when an update targets a row that does not
// exist. Deletes are unconditional and never return it.
var ErrNotFound = errors.New("record not found")

// SQLiteGateway is the durable gateway backed by a local SQLite database.
type SQLiteGateway struct {
	db *sql.DB
}

func NewSQLiteGateway(dbPath string) (*SQLiteGateway, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteGateway{db: db}, nil
}

func (g *SQLiteGateway) Close() error {
	if g.db != nil {
		return g.db.Close()
	}
	return nil
}

func newID() string {
	return uuid.NewString()
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

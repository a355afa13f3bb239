package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// sqliteAdapter stores everything in a single local file. Concurrent writers
// are serialised by SQLite itself (WAL + busy timeout).
type sqliteAdapter struct {
	sqlAdapter
	path string
}

func (a *sqliteAdapter) Initialize(ctx context.Context) error {
	if dir := filepath.Dir(a.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", sqliteDSN(a.path))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		return multierr.Append(fmt.Errorf("failed to ping database: %w", err), db.Close())
	}

	a.db = db
	a.logger.Info("Using SQLite", zap.String("path", a.path))
	return nil
}

func sqliteDSN(path string) string {
	return "file:" + path + "?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000"
}

package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"time"

	"github.com/AlexTLDR/bringwhat/internal/config"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed migrations
var migrations embed.FS

// DB is the event/item repository on top of an initialised Adapter.
type DB struct {
	Adapter
	logger *zap.Logger
	clock  *clock
}

// New selects the adapter for cfg, connects it and returns the repository.
func New(ctx context.Context, cfg config.Database, logger *zap.Logger) (*DB, error) {
	adapter, err := NewAdapter(cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := adapter.Initialize(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize %s database: %w", adapter.Kind(), err)
	}

	return NewWithAdapter(adapter, logger), nil
}

// NewWithAdapter wraps an adapter that has already been initialised.
func NewWithAdapter(adapter Adapter, logger *zap.Logger) *DB {
	return &DB{
		Adapter: adapter,
		logger:  logger,
		clock:   newClock(time.Now),
	}
}

// Migrate creates the tables and indexes if they do not exist yet.
func (db *DB) Migrate(ctx context.Context) error {
	base := db.base()
	if base.db == nil {
		return fmt.Errorf("failed to run migrations: %s database is not initialized", base.kind)
	}

	dialect, err := gooseDialect(base.kind)
	if err != nil {
		return err
	}

	fsys, err := fs.Sub(migrations, "migrations/"+string(base.kind))
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	provider, err := goose.NewProvider(dialect, base.db, fsys)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	for _, r := range results {
		db.logger.Info("Applied migration",
			zap.Int64("version", r.Source.Version),
			zap.String("file", r.Source.Path),
			zap.Duration("took", r.Duration))
	}
	return nil
}

func gooseDialect(kind Kind) (goose.Dialect, error) {
	switch kind {
	case KindSQLite:
		return goose.DialectSQLite3, nil
	case KindPostgres:
		return goose.DialectPostgres, nil
	case KindMySQL:
		return goose.DialectMySQL, nil
	default:
		return "", fmt.Errorf("no migration dialect for %q", kind)
	}
}

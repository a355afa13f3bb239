package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/AlexTLDR/bringwhat/internal/config"
	"github.com/sethvargo/go-retry"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Kind names a supported backend.
type Kind string

const (
	KindSQLite   Kind = config.DBTypeSQLite
	KindPostgres Kind = config.DBTypePostgres
	KindMySQL    Kind = config.DBTypeMySQL
)

// Adapter runs "?"-style SQL against one backend. Implementations rewrite the
// placeholders into whatever syntax the backend needs.
type Adapter interface {
	Kind() Kind
	// Initialize opens the connection pool. Networked backends retry.
	Initialize(ctx context.Context) error
	Execute(ctx context.Context, query string, args ...any) (sql.Result, error)
	// FetchOne returns a row whose Scan reports sql.ErrNoRows when nothing matched.
	FetchOne(ctx context.Context, query string, args ...any) *Row
	FetchAll(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	Ping(ctx context.Context) error
	Close() error

	base() *sqlAdapter
}

// QueryError is returned for any failed statement.
type QueryError struct {
	Op      string
	Backend Kind
	Err     error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Backend, e.Op, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// Row wraps *sql.Row so scan failures come back as *QueryError.
type Row struct {
	row  *sql.Row
	kind Kind
}

// Scan copies the columns into dest. A missing row is reported as sql.ErrNoRows.
func (r *Row) Scan(dest ...any) error {
	err := r.row.Scan(dest...)
	if err == nil || errors.Is(err, sql.ErrNoRows) {
		return err
	}
	return &QueryError{Op: "fetch one", Backend: r.kind, Err: err}
}

// NewAdapter picks the implementation for cfg.Type. Nothing is opened until
// Initialize is called.
func NewAdapter(cfg config.Database, logger *zap.Logger) (Adapter, error) {
	switch Kind(cfg.Type) {
	case KindSQLite:
		return &sqliteAdapter{sqlAdapter: sqlAdapter{kind: KindSQLite, bind: BindQuestion, logger: logger}, path: cfg.Path}, nil
	case KindPostgres:
		return &postgresAdapter{sqlAdapter: sqlAdapter{kind: KindPostgres, bind: BindDollar, logger: logger}, cfg: cfg}, nil
	case KindMySQL:
		return &mysqlAdapter{sqlAdapter: sqlAdapter{kind: KindMySQL, bind: BindQuestion, logger: logger}, cfg: cfg}, nil
	default:
		return nil, fmt.Errorf("unsupported database type %q", cfg.Type)
	}
}

// sqlAdapter holds what the three backends share once a *sql.DB exists.
type sqlAdapter struct {
	db     *sql.DB
	kind   Kind
	bind   BindStyle
	logger *zap.Logger
}

func (a *sqlAdapter) base() *sqlAdapter {
	return a
}

func (a *sqlAdapter) Kind() Kind {
	return a.kind
}

func (a *sqlAdapter) Execute(ctx context.Context, query string, args ...any) (sql.Result, error) {
	res, err := a.db.ExecContext(ctx, Rebind(a.bind, query), args...)
	if err != nil {
		return nil, &QueryError{Op: "execute", Backend: a.kind, Err: err}
	}
	return res, nil
}

func (a *sqlAdapter) FetchOne(ctx context.Context, query string, args ...any) *Row {
	return &Row{row: a.db.QueryRowContext(ctx, Rebind(a.bind, query), args...), kind: a.kind}
}

func (a *sqlAdapter) FetchAll(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	rows, err := a.db.QueryContext(ctx, Rebind(a.bind, query), args...)
	if err != nil {
		return nil, &QueryError{Op: "fetch all", Backend: a.kind, Err: err}
	}
	return rows, nil
}

func (a *sqlAdapter) Ping(ctx context.Context) error {
	if a.db == nil {
		return fmt.Errorf("%s database is not initialized", a.kind)
	}
	if err := a.db.PingContext(ctx); err != nil {
		return &QueryError{Op: "ping", Backend: a.kind, Err: err}
	}
	return nil
}

func (a *sqlAdapter) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// connectWithRetry opens and pings the pool, retrying with a constant delay.
// open errors (bad DSN) are not retried.
func (a *sqlAdapter) connectWithRetry(ctx context.Context, attempts int, delay time.Duration, open func() (*sql.DB, error)) error {
	if attempts < 1 {
		attempts = 1
	}
	backoff := retry.WithMaxRetries(uint64(attempts-1), retry.NewConstant(delay))

	attempt := 0
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		db, err := open()
		if err != nil {
			return err
		}
		if err := db.PingContext(ctx); err != nil {
			err = multierr.Append(err, db.Close())
			a.logger.Warn("Database connection failed",
				zap.String("database", string(a.kind)),
				zap.Int("attempt", attempt),
				zap.Int("max_attempts", attempts),
				zap.Error(err))
			return retry.RetryableError(err)
		}
		a.db = db
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to connect to %s after %d attempt(s): %w", a.kind, attempt, err)
	}

	a.logger.Info("Connected to database", zap.String("database", string(a.kind)), zap.Int("attempts", attempt))
	return nil
}

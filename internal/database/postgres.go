package database

import (
	"context"
	"database/sql"
	"net/url"
	"strings"

	"github.com/AlexTLDR/bringwhat/internal/config"
	_ "github.com/lib/pq"
)

type postgresAdapter struct {
	sqlAdapter
	cfg config.Database
}

func (a *postgresAdapter) Initialize(ctx context.Context) error {
	dsn := postgresDSN(a.cfg)
	return a.connectWithRetry(ctx, a.cfg.ConnectAttempts, a.cfg.ConnectDelay, func() (*sql.DB, error) {
		return sql.Open("postgres", dsn)
	})
}

// postgresDSN prefers DATABASE_URL and otherwise builds a key/value conninfo
// string from the individual DB_* settings. DB_SSL adds sslmode=require to a
// DATABASE_URL that does not choose an sslmode itself.
func postgresDSN(cfg config.Database) string {
	if cfg.URL != "" {
		if cfg.SSL {
			return withSSLMode(cfg.URL, "require")
		}
		return cfg.URL
	}

	sslMode := "disable"
	if cfg.SSL {
		// Encrypted, but the server certificate is not verified.
		sslMode = "require"
	}

	var parts []string
	add := func(key, value string) {
		if value != "" {
			parts = append(parts, key+"="+quoteConnValue(value))
		}
	}
	add("host", cfg.Host)
	add("port", cfg.Port)
	add("user", cfg.User)
	add("password", cfg.Password)
	add("dbname", cfg.Name)
	add("sslmode", sslMode)
	return strings.Join(parts, " ")
}

// withSSLMode sets sslmode on a URL or conninfo string unless it already has one.
func withSSLMode(dsn, mode string) string {
	if !strings.Contains(dsn, "://") {
		if strings.Contains(dsn, "sslmode=") {
			return dsn
		}
		return dsn + " sslmode=" + mode
	}

	u, err := url.Parse(dsn)
	if err != nil {
		// lib/pq reports the malformed URL on connect.
		return dsn
	}
	q := u.Query()
	if q.Get("sslmode") != "" {
		return dsn
	}
	q.Set("sslmode", mode)
	u.RawQuery = q.Encode()
	return u.String()
}

func quoteConnValue(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

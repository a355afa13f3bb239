package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Supported values for DB_TYPE
const (
	DBTypeSQLite   = "sqlite"
	DBTypePostgres = "postgres"
	DBTypeMySQL    = "mysql"
)

// Supported values for AI_PROVIDER
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

type Config struct {
	// App
	Port          string
	Environment   string
	LogLevel      string
	StaticDir     string
	SessionSecret string
	CORSOrigins   []string

	Database Database
	AI       AI
}

// Database holds the settings for whichever backend DB_TYPE selects.
type Database struct {
	Type string
	Path string

	URL      string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSL      bool

	ConnectAttempts int
	ConnectDelay    time.Duration
}

// AI holds the suggestion provider settings.
type AI struct {
	Provider string
	APIKey   string
	BaseURL  string
	Model    string
	Timeout  time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:          getEnv("PORT", "3000"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		StaticDir:     getEnv("STATIC_DIR", "./dist"),
		SessionSecret: getEnv("SESSION_SECRET", "change-me-in-production"),
		Database: Database{
			Type:     strings.ToLower(getEnv("DB_TYPE", DBTypeSQLite)),
			Path:     getEnv("DB_PATH", "./bringwhat.db"),
			URL:      getEnv("DATABASE_URL", ""),
			Host:     getEnv("DB_HOST", ""),
			Port:     getEnv("DB_PORT", ""),
			User:     getEnv("DB_USER", ""),
			Password: getEnv("DB_PASS", ""),
			Name:     getEnv("DB_NAME", ""),
			SSL:      getEnv("DB_SSL", "") == "true",
		},
		AI: AI{
			Provider: strings.ToLower(getEnv("AI_PROVIDER", ProviderGemini)),
			APIKey:   getEnv("API_KEY", ""),
			BaseURL:  getEnv("AI_BASE_URL", ""),
			Model:    getEnv("AI_MODEL", ""),
		},
	}

	switch cfg.Database.Type {
	case DBTypeSQLite, DBTypePostgres, DBTypeMySQL:
	default:
		return nil, fmt.Errorf("invalid DB_TYPE %q: must be sqlite, postgres or mysql", cfg.Database.Type)
	}

	switch cfg.AI.Provider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return nil, fmt.Errorf("invalid AI_PROVIDER %q: must be gemini or openai", cfg.AI.Provider)
	}

	attempts, err := strconv.Atoi(getEnv("DB_CONNECT_ATTEMPTS", "5"))
	if err != nil || attempts < 1 {
		return nil, fmt.Errorf("invalid DB_CONNECT_ATTEMPTS: must be a positive integer")
	}
	cfg.Database.ConnectAttempts = attempts

	if cfg.Database.ConnectDelay, err = getDuration("DB_CONNECT_DELAY", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.AI.Timeout, err = getDuration("AI_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}

	// Parse CORS origins
	if origins := getEnv("CORS_ORIGINS", ""); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			o = strings.TrimSpace(o)
			if o == "" {
				continue
			}
			if !validOrigin(o) {
				return nil, fmt.Errorf("invalid CORS_ORIGINS entry %q: must be * or start with http:// or https://", o)
			}
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// validOrigin mirrors the origins the CORS middleware accepts without extra schemas.
func validOrigin(origin string) bool {
	return strings.Contains(origin, "*") ||
		strings.HasPrefix(origin, "http://") ||
		strings.HasPrefix(origin, "https://")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s format: %w", key, err)
	}
	return d, nil
}

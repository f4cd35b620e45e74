package config

import (
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppName string
	AppEnv  string
	AppURL  string
	Port    string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Security
	SessionSecret string
	SessionExpiry time.Duration

	// Admin identity (single administrative account, no user table).
	// Password resolution priority: AdminPasswordHash (bcrypt) if set,
	// else AdminPassword (plaintext), else a development fallback.
	AdminEmail        string
	AdminPasswordHash string
	AdminPassword     string

	// PDF export (optional explicit Chromium binary for headless rendering)
	ChromeBin string

	// Observability (optional)
	SentryDSN string
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName: envString("APP_NAME", "Reassess"),
		AppEnv:  envRequired("APP_ENV"), // Required: 'development' or 'production'
		AppURL:  envString("APP_URL", "http://localhost:8090"),
		Port:    envString("PORT", "8090"),

		// Database
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/reassess.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		// Security
		SessionSecret: envRequired("SESSION_SECRET"),
		SessionExpiry: envDuration("SESSION_EXPIRY", 24*time.Hour),

		// Admin identity
		AdminEmail:        envString("ADMIN_EMAIL", "admin@example.com"),
		AdminPasswordHash: envString("ADMIN_PASSWORD_HASH", ""),
		AdminPassword:     envString("ADMIN_PASSWORD", ""),

		// PDF export
		ChromeBin: envString("CHROME_BIN", ""),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),
	}

	// Production: refuse the development fallback credential
	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction ensures a real admin credential is configured for
// production deployments. Development allows the hard-coded fallback for
// easier local testing.
func validateProduction(cfg *Config) {
	if cfg.AdminPasswordHash == "" && cfg.AdminPassword == "" {
		slog.Error("production deployment requires ADMIN_PASSWORD_HASH or ADMIN_PASSWORD",
			"hint", "set APP_ENV=development for local testing with the fallback credential")
		os.Exit(1)
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Sanitized returns a copy of the config with only public/safe fields.
// Secrets and credentials are excluded. Safe to expose in ctx and templates.
func (c *Config) Sanitized() *Config {
	return &Config{
		AppName: c.AppName,
		AppEnv:  c.AppEnv,
		AppURL:  c.AppURL,
		Port:    c.Port,
	}
}

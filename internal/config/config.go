package config

import (
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppEnv string
	Port   string

	// Site
	Region            string
	GoogleAnalyticsID string

	// Auth (one of AdminPassword / AdminPasswordHash must be set)
	AdminPassword     string
	AdminPasswordHash string
	CookieSecret      string
	CookieExpiry      time.Duration

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Storage ("fs" keeps files on local disk, one directory per document id;
	// "s3" for deployments without a persistent disk)
	StorageBackend string
	DocsPath       string
	S3Region       string
	S3Bucket       string
	S3AccessKey    string
	S3SecretKey    string
	S3Endpoint     string

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
		AppEnv: envString("APP_ENV", "development"),
		Port:   envString("PORT", "8000"),

		Region:            envRequired("REGION"),
		GoogleAnalyticsID: envString("GOOGLE_ANALYTICS_ID", ""),

		AdminPassword:     envString("ADMIN_PASSWORD", ""),
		AdminPasswordHash: envString("ADMIN_PASSWORD_HASH", ""),
		CookieSecret:      envRequired("COOKIE_SECRET"),
		CookieExpiry:      envDuration("COOKIE_EXPIRY", 720*time.Hour), // 30 days

		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./storage/db/docstore.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		StorageBackend: envString("STORAGE_BACKEND", "fs"),
		DocsPath:       envString("DOCS_PATH", "./storage/docs"),
		S3Region:       envString("S3_REGION", ""),
		S3Bucket:       envString("S3_BUCKET", ""),
		S3AccessKey:    envString("S3_ACCESS_KEY", ""),
		S3SecretKey:    envString("S3_SECRET_KEY", ""),
		S3Endpoint:     envString("S3_ENDPOINT", ""),

		SentryDSN: envString("SENTRY_DSN", ""),
	}

	if cfg.AdminPassword == "" && cfg.AdminPasswordHash == "" {
		slog.Error("config requires ADMIN_PASSWORD or ADMIN_PASSWORD_HASH")
		os.Exit(1)
	}

	if cfg.StorageBackend == "s3" {
		for _, key := range []string{"S3_REGION", "S3_BUCKET", "S3_ACCESS_KEY", "S3_SECRET_KEY"} {
			envRequired(key)
		}
	}

	return cfg
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

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures the runtime configuration for the application.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Session  SessionConfig
	Uploads  UploadConfig
	LogLevel string
}

// ServerConfig configures the HTTP server runtime behavior.
type ServerConfig struct {
	Addr string
}

// DatabaseConfig contains the database connection settings. Driver selects
// between "postgres" (the default) and "sqlite" for local runs.
type DatabaseConfig struct {
	Driver string
	URL    string
}

// SessionConfig controls the cookie session behavior.
type SessionConfig struct {
	Lifetime     time.Duration
	CookieName   string
	CookieSecure bool
}

// UploadConfig controls where record attachments are written.
type UploadConfig struct {
	Dir     string
	MaxSize int64
}

// DefaultMaxUploadSize caps attachment uploads at 5 MiB.
const DefaultMaxUploadSize = 5 << 20

// Load inspects the environment and builds a Config value.
func Load() (Config, error) {
	cfg := Config{}

	cfg.Server = ServerConfig{
		Addr: firstNonEmpty(
			os.Getenv("SERVER_ADDR"),
			os.Getenv("ADDR"),
			":8080",
		),
	}

	cfg.Database = DatabaseConfig{
		Driver: strings.ToLower(firstNonEmpty(os.Getenv("DATABASE_DRIVER"), "postgres")),
		URL: firstNonEmpty(
			os.Getenv("DATABASE_URL"),
			os.Getenv("DB_URL"),
			"",
		),
	}

	cfg.Session = SessionConfig{
		Lifetime:     12 * time.Hour,
		CookieName:   firstNonEmpty(os.Getenv("SESSION_COOKIE_NAME"), "zinclab_session"),
		CookieSecure: parseBool(os.Getenv("SESSION_COOKIE_SECURE")),
	}
	if raw := strings.TrimSpace(os.Getenv("SESSION_LIFETIME")); raw != "" {
		lifetime, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("parse SESSION_LIFETIME: %w", err)
		}
		cfg.Session.Lifetime = lifetime
	}

	cfg.Uploads = UploadConfig{
		Dir:     firstNonEmpty(os.Getenv("UPLOAD_DIR"), "data/uploads"),
		MaxSize: DefaultMaxUploadSize,
	}
	if raw := strings.TrimSpace(os.Getenv("UPLOAD_MAX_BYTES")); raw != "" {
		size, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || size <= 0 {
			return Config{}, fmt.Errorf("invalid UPLOAD_MAX_BYTES: %q", raw)
		}
		cfg.Uploads.MaxSize = size
	}

	cfg.LogLevel = firstNonEmpty(os.Getenv("LOG_LEVEL"), "info")

	if strings.TrimSpace(cfg.Server.Addr) == "" {
		return Config{}, fmt.Errorf("server address must not be empty")
	}

	switch cfg.Database.Driver {
	case "postgres", "sqlite":
	default:
		return Config{}, fmt.Errorf("unsupported database driver: %q", cfg.Database.Driver)
	}

	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

func parseBool(value string) bool {
	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	return err == nil && parsed
}

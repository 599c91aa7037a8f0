package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/AkshatMishra0/Derivity-ai/pkg/httpx"
	"github.com/AkshatMishra0/Derivity-ai/pkg/jwtx"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	DatabaseDriver string // sqlite or postgres (default: sqlite)
	DatabaseFile   string // SQLite database file (default: site.db)
	DatabaseURL    string // Postgres DSN, required when DatabaseDriver is postgres

	PepperFile     string        // File holding the password pepper, created on first start (default: pepper)
	SigningKeyFile string        // Ed25519 PEM for session tokens, created on first start (default: session.key)
	Issuer         string        // Issuer claim of session tokens (default: derivity-site)
	SessionTTL     time.Duration // Session lifetime (default: 14 days)

	CookieName   string // Session cookie name (default: derivity_session)
	CookieSecure bool   // Set the Secure attribute on the session cookie (default: true outside dev)

	TrustedProxies string // Comma separated CIDRs allowed to set X-Forwarded-For (default: none)

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Session cleanup interval (default: 1h)
}

func LoadConfig() Config {
	env := getEnvOrDefault("ENV", "dev")

	return Config{
		DatabaseDriver: strings.ToLower(getEnvOrDefault("SITE_DATABASE_DRIVER", DriverSQLite)),
		DatabaseFile:   getEnvOrDefault("SITE_DATABASE_FILE", "site.db"),
		DatabaseURL:    os.Getenv("SITE_DATABASE_URL"),

		PepperFile:     getEnvOrDefault("SITE_PEPPER_FILE", "pepper"),
		SigningKeyFile: getEnvOrDefault("SITE_SIGNING_KEY_FILE", "session.key"),
		Issuer:         getEnvOrDefault("SITE_ISSUER", "derivity-site"),
		SessionTTL:     getEnvDurationOrDefault("SITE_SESSION_TTL", jwtx.DefaultSessionTTL),

		CookieName:   getEnvOrDefault("SITE_COOKIE_NAME", "derivity_session"),
		CookieSecure: getEnvBoolOrDefault("SITE_COOKIE_SECURE", env != "dev"),

		TrustedProxies: os.Getenv("TRUSTED_PROXIES"),

		Env:                  env,
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}
}

// Validate reports settings the service cannot start with.
func (c Config) Validate() error {
	switch c.DatabaseDriver {
	case DriverSQLite:
		if c.DatabaseFile == "" {
			return fmt.Errorf("SITE_DATABASE_FILE is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("SITE_DATABASE_URL is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown SITE_DATABASE_DRIVER %q (want sqlite or postgres)", c.DatabaseDriver)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SITE_SESSION_TTL must be positive")
	}
	if _, err := httpx.ParseTrustedProxies(c.TrustedProxies); err != nil {
		return fmt.Errorf("TRUSTED_PROXIES: %w", err)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT %d is out of range", c.Port)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}

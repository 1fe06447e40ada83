package app

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/meusdesafios/auth/pkg/jwtx"
)

// devFallbackSecret is the fixed secret substituted for missing JWT and
// cookie secrets outside production. Deliberately recognizable in logs and
// useless in any deployed environment, where LoadConfig refuses to start
// without real secrets.
const devFallbackSecret = "insecure-dev-secret-do-not-deploy-0000"

type Config struct {
	Issuer           string // Issuer claim for access tokens (default: meusdesafios)
	JWTSecret        string // Required in prod: HS256 signing secret, min 32 chars
	CookieSealSecret string // Required in prod: cookie sealing secret, min 32 chars
	GoogleClientID   string // Optional: enables Google sign-in when set

	AccessTTL  time.Duration // Access token lifetime (default: 15m)
	RefreshTTL time.Duration // Refresh session lifetime (default: 30 days)

	DatabaseFile         string        // Path to SQLite database file (default: ./auth.db)
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
}

// Production reports whether this deployment must refuse weak secrets.
func (c Config) Production() bool {
	return c.Env == "prod" || c.Env == "production"
}

// LoadConfig reads configuration from the environment. In production a
// missing or short secret is a startup failure; in development the fixed
// fallback is substituted and loudly reported by New.
func LoadConfig() (Config, error) {
	cfg := Config{
		Issuer:           getEnvOrDefault("AUTH_ISSUER", "meusdesafios"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		CookieSealSecret: os.Getenv("COOKIE_SEAL_SECRET"),
		GoogleClientID:   os.Getenv("GOOGLE_CLIENT_ID"),

		AccessTTL:  time.Duration(getEnvIntOrDefault("ACCESS_TTL_MINUTES", 15)) * time.Minute,
		RefreshTTL: time.Duration(getEnvIntOrDefault("REFRESH_TTL_DAYS", 30)) * 24 * time.Hour,

		DatabaseFile:         getEnvOrDefault("AUTH_DATABASE_FILE", "auth.db"),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}

	if cfg.AccessTTL <= 0 {
		return Config{}, fmt.Errorf("ACCESS_TTL_MINUTES must be positive")
	}
	if cfg.RefreshTTL <= 0 {
		return Config{}, fmt.Errorf("REFRESH_TTL_DAYS must be positive")
	}

	if cfg.Production() {
		if len(cfg.JWTSecret) < jwtx.MinSecretLen {
			return Config{}, fmt.Errorf("JWT_SECRET must be set to at least %d characters in production", jwtx.MinSecretLen)
		}
		if len(cfg.CookieSealSecret) < jwtx.MinSecretLen {
			return Config{}, fmt.Errorf("COOKIE_SEAL_SECRET must be set to at least %d characters in production", jwtx.MinSecretLen)
		}
	}

	return cfg, nil
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

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}

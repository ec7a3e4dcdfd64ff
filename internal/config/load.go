package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment variable bindings. Names match the deployment surface
// (PORT, DB_*, JWT_*) rather than the internal struct layout.
var envBindings = map[string]string{
	"server.port":       "PORT",
	"server.log_level":  "LOG_LEVEL",
	"database.host":     "DB_HOST",
	"database.port":     "DB_PORT",
	"database.user":     "DB_USER",
	"database.password": "DB_PASSWORD",
	"database.name":     "DB_NAME",
	"database.sslmode":  "DB_SSLMODE",
	"auth.jwt_secret":   "JWT_SECRET",
}

// Load reads configuration from environment variables, with an optional .env
// file loaded first (missing .env is not an error). Environment variables
// always win over .env values. Returns a populated Config struct or an error
// if loading or validation fails.
func Load() (*Config, error) {
	// Best-effort .env load so local development matches production wiring.
	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("server.port", 3000)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "blog")
	v.SetDefault("database.sslmode", "disable")

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// JWT_EXPIRES_IN is parsed by hand: it accepts Go duration syntax plus a
	// day suffix ("1d"), defaulting to one day.
	lifetime, err := parseLifetime(os.Getenv("JWT_EXPIRES_IN"))
	if err != nil {
		return nil, err
	}
	cfg.Auth.TokenLifetime = lifetime

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// parseLifetime resolves the token lifetime. Accepts "24h", "30m", "1d", "7d".
func parseLifetime(raw string) (time.Duration, error) {
	if raw == "" {
		return 24 * time.Hour, nil
	}

	if strings.HasSuffix(raw, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(raw, "d"))
		if err != nil {
			return 0, fmt.Errorf("invalid JWT_EXPIRES_IN %q: %w", raw, err)
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid JWT_EXPIRES_IN %q: %w", raw, err)
	}
	return d, nil
}

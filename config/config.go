/*
Package config loads service configuration from the environment.

PURPOSE:
  One explicit Config struct, populated from environment variables with a
  .env file as a development convenience. Nothing else in the codebase
  reads os.Getenv; configuration enters through Load and is passed down.

VARIABLES:
  APP_ENV        deployment environment (development, staging, production)
  PORT           HTTP listen port
  DATABASE_PATH  SQLite database path (":memory:" allowed)
  CORS_ORIGINS   comma-separated allowed origins
*/
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Defaults applied when a variable is unset.
const (
	DefaultPort   = 8080
	DefaultDBPath = "./data/payroll.db"
	DefaultEnv    = "development"
)

// Config is the complete runtime configuration.
type Config struct {
	Environment    string
	Port           int
	DBPath         string
	AllowedOrigins []string
}

// Load reads configuration from the environment. A .env file in the working
// directory is merged in first when present; real environment variables win.
func Load() (Config, error) {
	// Ignore a missing .env; it is a development convenience only.
	_ = godotenv.Load()

	cfg := Config{
		Environment:    envOr("APP_ENV", DefaultEnv),
		Port:           DefaultPort,
		DBPath:         envOr("DATABASE_PATH", DefaultDBPath),
		AllowedOrigins: []string{"*"},
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return Config{}, fmt.Errorf("invalid PORT %q", v)
		}
		cfg.Port = port
	}

	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		if len(origins) > 0 {
			cfg.AllowedOrigins = origins
		}
	}

	return cfg, nil
}

// IsProduction reports whether this deployment must refuse destructive
// operations: either the environment says so, or the database path smells
// like a production DSN.
func (c Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	if env == "production" || env == "prod" {
		return true
	}
	dsn := strings.ToLower(c.DBPath)
	return strings.Contains(dsn, "prod")
}

// Addr returns the listen address for the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

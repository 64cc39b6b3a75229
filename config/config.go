// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the runtime configuration for the application.
type Config struct {
	// HTTPAddr is the listen address for the HTTP API.
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":3000"`
	// DBPath is the SQLite database file path.
	DBPath string `env:"DB_PATH" envDefault:"taskflow.db"`
	// DBDebug enables GORM query logging.
	DBDebug bool `env:"DB_DEBUG" envDefault:"false"`
	// SeedDemoData seeds demo users and tasks on startup.
	SeedDemoData bool `env:"SEED_DEMO_DATA" envDefault:"false"`
	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// Load parses configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

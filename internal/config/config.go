// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	// DatabaseURL selects the PostgreSQL backend when set; otherwise the
	// embedded SQLite database at DBPath is used. The choice is fixed for
	// the process lifetime.
	DatabaseURL string `env:"GUIDEKIT_DATABASE_URL"`
	DBPath      string `env:"GUIDEKIT_DB_PATH" envDefault:"./data/guidekit.db"`

	ServerHost string `env:"GUIDEKIT_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"GUIDEKIT_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"GUIDEKIT_ENV" envDefault:"development"`
	LogLevel   string `env:"GUIDEKIT_LOG_LEVEL" envDefault:"info"`
	UploadsDir string `env:"GUIDEKIT_UPLOADS_DIR" envDefault:"./uploads"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UsePostgres returns true if the PostgreSQL backend is configured.
func (c Config) UsePostgres() bool {
	return c.DatabaseURL != ""
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.ServerPort < 1 || cfg.ServerPort > 65535 {
		return nil, fmt.Errorf("GUIDEKIT_SERVER_PORT must be between 1 and 65535, got %d", cfg.ServerPort)
	}

	if cfg.DatabaseURL != "" &&
		!strings.HasPrefix(cfg.DatabaseURL, "postgres://") &&
		!strings.HasPrefix(cfg.DatabaseURL, "postgresql://") {
		return nil, fmt.Errorf("GUIDEKIT_DATABASE_URL must be a postgres:// connection URL")
	}

	return cfg, nil
}

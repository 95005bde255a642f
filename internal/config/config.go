// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads application configuration from environment
// variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"OCRM_DB_PATH" envDefault:"./data/ocrm.db"`
	SessionSecret string `env:"OCRM_SESSION_SECRET,required"`
	ServerHost    string `env:"OCRM_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"OCRM_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"OCRM_ENV" envDefault:"development"`
	LogLevel      string `env:"OCRM_LOG_LEVEL" envDefault:"info"`

	// RedisURL enables cross-instance change notification when set.
	RedisURL string `env:"OCRM_REDIS_URL"`

	// CatalogURL is the read-only external product catalog endpoint.
	CatalogURL string `env:"OCRM_CATALOG_URL"`

	// EventRetentionDays bounds the audit log; older events are pruned nightly.
	EventRetentionDays int `env:"OCRM_EVENT_RETENTION_DAYS" envDefault:"30"`

	// CartStaleDays bounds abandoned carts; older items are cleared nightly.
	CartStaleDays int `env:"OCRM_CART_STALE_DAYS" envDefault:"14"`
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisBus returns true if cross-instance notification is configured.
func (c Config) UseRedisBus() bool {
	return c.RedisURL != ""
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("OCRM_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	return cfg, nil
}

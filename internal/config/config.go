// Copyright (c) 2025-2026 InstaTrainMe
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"ITM_DB_PATH" envDefault:"./data/site.db"`
	ServerHost string `env:"ITM_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"ITM_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"ITM_ENV" envDefault:"development"`
	LogLevel   string `env:"ITM_LOG_LEVEL" envDefault:"info"`

	// Mailgun configuration. Notifications are silently disabled when the
	// API key or domain is missing.
	MailgunAPIKey string `env:"ITM_MAILGUN_API_KEY"`
	MailgunDomain string `env:"ITM_MAILGUN_DOMAIN"`
	NotifyEmail   string `env:"ITM_NOTIFY_EMAIL" envDefault:"Sales@instatrainme.com"`

	// Cache configuration
	RedisURL    string `env:"ITM_REDIS_URL"`                      // Optional Redis URL for distributed caching
	CachePrefix string `env:"ITM_CACHE_PREFIX" envDefault:"itm:"` // Redis key prefix
	CacheTTL    int    `env:"ITM_CACHE_TTL" envDefault:"300"`     // Blog cache TTL in seconds
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// MailgunEnabled returns true if the Mailgun provider is configured.
func (c Config) MailgunEnabled() bool {
	return c.MailgunAPIKey != "" && c.MailgunDomain != ""
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

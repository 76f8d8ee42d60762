// Copyright (c) 2025-2026 InstaTrainMe
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.DBPath != "./data/site.db" {
		t.Errorf("DBPath = %q, want ./data/site.db", cfg.DBPath)
	}
	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort = %d, want 8080", cfg.ServerPort)
	}
	if !cfg.IsDevelopment() {
		t.Error("expected development mode by default")
	}
	if cfg.MailgunEnabled() {
		t.Error("mailgun should be disabled without credentials")
	}
	if cfg.UseRedisCache() {
		t.Error("redis cache should be disabled without URL")
	}
	if cfg.NotifyEmail != "Sales@instatrainme.com" {
		t.Errorf("NotifyEmail = %q", cfg.NotifyEmail)
	}
	if cfg.CacheTTL != 300 {
		t.Errorf("CacheTTL = %d, want 300", cfg.CacheTTL)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ITM_SERVER_HOST", "0.0.0.0")
	t.Setenv("ITM_SERVER_PORT", "9090")
	t.Setenv("ITM_ENV", "production")
	t.Setenv("ITM_MAILGUN_API_KEY", "key-test")
	t.Setenv("ITM_MAILGUN_DOMAIN", "mg.example.com")
	t.Setenv("ITM_REDIS_URL", "redis://localhost:6379/0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got := cfg.ServerAddr(); got != "0.0.0.0:9090" {
		t.Errorf("ServerAddr = %q", got)
	}
	if cfg.IsDevelopment() {
		t.Error("production config reported as development")
	}
	if !cfg.MailgunEnabled() {
		t.Error("mailgun should be enabled")
	}
	if !cfg.UseRedisCache() {
		t.Error("redis cache should be enabled")
	}
}

func TestLoadInvalidPort(t *testing.T) {
	t.Setenv("ITM_SERVER_PORT", "not-a-number")

	if _, err := Load(); err == nil {
		t.Error("expected error for invalid port")
	}
}

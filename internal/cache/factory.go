// Copyright (c) 2025-2026 InstaTrainMe
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"log/slog"
	"time"
)

// New creates a cache backend. When redisURL is set a Redis cache is used;
// if the Redis connection fails the app falls back to the in-memory cache
// rather than starting without caching.
func New(redisURL, prefix string, defaultTTL time.Duration) Cacher {
	if redisURL != "" {
		c, err := NewRedisCache(redisURL, prefix, defaultTTL)
		if err == nil {
			slog.Info("using redis cache", "prefix", prefix)
			return c
		}
		slog.Warn("redis cache unavailable, falling back to memory cache", "error", err)
	}

	return NewMemoryCache(defaultTTL)
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cache provides a small caching abstraction with in-memory and
// Redis backends, used for rendered social previews.
package cache

import (
	"context"
	"time"
)

// Cache is implemented by all cache backends. Implementations must be
// safe for concurrent use.
type Cache interface {
	// Get retrieves a value. Returns ErrCacheMiss if absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the given TTL. A zero TTL uses the backend default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// Error represents an error type for cache operations.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	// ErrCacheMiss indicates the key was not found in cache or has expired.
	ErrCacheMiss Error = "cache miss"

	// ErrCacheClosed indicates the cache has been closed.
	ErrCacheClosed Error = "cache closed"
)

// Config holds configuration for cache creation.
type Config struct {
	// RedisURL selects the Redis backend when non-empty.
	RedisURL string

	// Prefix is the key prefix for Redis.
	Prefix string

	// DefaultTTL is the default TTL for cache entries.
	DefaultTTL time.Duration

	// MaxSize is the maximum number of entries for the memory backend
	// (0 = unlimited).
	MaxSize int
}

// New creates a cache backend based on the provided configuration:
// Redis when a URL is configured, in-memory otherwise.
func New(cfg Config) (Cache, error) {
	if cfg.RedisURL != "" {
		return NewRedisCache(RedisOptions{
			URL:        cfg.RedisURL,
			Prefix:     cfg.Prefix,
			DefaultTTL: cfg.DefaultTTL,
		})
	}
	return NewMemoryCache(MemoryOptions{
		DefaultTTL:      cfg.DefaultTTL,
		MaxSize:         cfg.MaxSize,
		CleanupInterval: time.Minute,
	}), nil
}

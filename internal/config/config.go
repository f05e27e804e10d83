// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// DefaultCrawlerPatterns is the built-in set of client identity substrings
// that classify a request as a social/search crawler. Matching is
// case-insensitive. The set is overridable via CMS_CRAWLER_PATTERNS.
var DefaultCrawlerPatterns = []string{
	"facebookexternalhit",
	"linkedinbot",
	"twitterbot",
	"whatsapp",
	"telegrambot",
	"googlebot",
	"bingbot",
	"discordbot",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"CMS_DB_PATH" envDefault:"./data/cms.db"`
	JWTSecret  string `env:"CMS_JWT_SECRET,required"`
	ServerHost string `env:"CMS_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"CMS_SERVER_PORT" envDefault:"4000"`
	Env        string `env:"CMS_ENV" envDefault:"development"`
	LogLevel   string `env:"CMS_LOG_LEVEL" envDefault:"info"`
	UploadsDir string `env:"CMS_UPLOADS_DIR" envDefault:"./uploads"`

	// PublicURL is the externally visible base URL of this backend, used to
	// build absolute image and canonical URLs in social previews.
	PublicURL string `env:"CMS_PUBLIC_URL" envDefault:"http://localhost:4000"`
	// FrontendURL is the front-end origin that human visitors of
	// /blogs/{idOrSlug} are redirected to.
	FrontendURL string `env:"CMS_FRONTEND_URL" envDefault:"http://localhost:3000"`
	// DefaultOGImage is served in previews when a post has no image.
	DefaultOGImage string `env:"CMS_DEFAULT_OG_IMAGE" envDefault:"/default-og.jpg"`

	// CrawlerPatterns overrides the built-in crawler identity substrings.
	CrawlerPatterns []string `env:"CMS_CRAWLER_PATTERNS" envSeparator:","`

	CORSOrigins []string `env:"CMS_CORS_ORIGINS" envSeparator:"," envDefault:"*"`

	// Cache configuration
	RedisURL     string `env:"CMS_REDIS_URL"`                        // Optional Redis URL for distributed caching
	CachePrefix  string `env:"CMS_CACHE_PREFIX" envDefault:"cms:"`   // Redis key prefix
	CacheTTL     int    `env:"CMS_CACHE_TTL" envDefault:"900"`       // Preview cache TTL in seconds
	CacheMaxSize int    `env:"CMS_CACHE_MAX_SIZE" envDefault:"1000"` // Max memory cache entries

	// Seeding configuration
	DoSeed            bool   `env:"CMS_DO_SEED" envDefault:"false"`
	SeedAdminEmail    string `env:"CMS_SEED_ADMIN_EMAIL" envDefault:"admin@example.com"`
	SeedAdminPassword string `env:"CMS_SEED_ADMIN_PASSWORD" envDefault:"changeme"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// Crawlers returns the effective crawler pattern set.
func (c Config) Crawlers() []string {
	if len(c.CrawlerPatterns) > 0 {
		return c.CrawlerPatterns
	}
	return DefaultCrawlerPatterns
}

// MinJWTSecretLength is the minimum required length for the token signing key.
const MinJWTSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.JWTSecret) < MinJWTSecretLength {
		return nil, fmt.Errorf("CMS_JWT_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinJWTSecretLength, len(cfg.JWTSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.JWTSecret == weak {
			return nil, fmt.Errorf("CMS_JWT_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	cfg.PublicURL = strings.TrimRight(cfg.PublicURL, "/")
	cfg.FrontendURL = strings.TrimRight(cfg.FrontendURL, "/")

	return cfg, nil
}

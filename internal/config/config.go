// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"FOLIO_DB_PATH" envDefault:"./data/folio.db"`
	SessionSecret string `env:"FOLIO_SESSION_SECRET,required"`
	ServerHost    string `env:"FOLIO_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"FOLIO_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"FOLIO_ENV" envDefault:"development"`
	LogLevel      string `env:"FOLIO_LOG_LEVEL" envDefault:"info"`

	// Session configuration
	CookieName     string `env:"FOLIO_COOKIE_NAME" envDefault:"folio_session"`
	SessionTTLDays int    `env:"FOLIO_SESSION_TTL_DAYS" envDefault:"365"`

	// Admin account. AdminEmail decides who gets the admin role at login.
	// Exactly one of AdminPasswordHash (argon2id, preferred) or AdminPassword
	// must be set for logins to succeed.
	AdminEmail        string `env:"FOLIO_ADMIN_EMAIL"`
	AdminName         string `env:"FOLIO_ADMIN_NAME"`
	AdminPassword     string `env:"FOLIO_ADMIN_PASSWORD"`
	AdminPasswordHash string `env:"FOLIO_ADMIN_PASSWORD_HASH"`

	// Object storage configuration. Uploads are disabled unless the bucket
	// and credentials are all present.
	S3Endpoint       string `env:"FOLIO_S3_ENDPOINT"`
	S3Region         string `env:"FOLIO_S3_REGION" envDefault:"us-east-1"`
	S3Bucket         string `env:"FOLIO_S3_BUCKET"`
	S3AccessKey      string `env:"FOLIO_S3_ACCESS_KEY"`
	S3SecretKey      string `env:"FOLIO_S3_SECRET_KEY"`
	S3PublicBaseURL  string `env:"FOLIO_S3_PUBLIC_BASE_URL"`
	S3ForcePathStyle bool   `env:"FOLIO_S3_FORCE_PATH_STYLE" envDefault:"false"`

	// CORS configuration
	AllowedOrigins []string `env:"FOLIO_ALLOWED_ORIGINS" envSeparator:","`

	// Seeding configuration
	DoSeed bool `env:"FOLIO_DO_SEED" envDefault:"false"`

	// Audit log retention. Entries older than this are pruned nightly.
	EventRetentionDays int `env:"FOLIO_EVENT_RETENTION_DAYS" envDefault:"90"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// StorageConfigured returns true if the object storage bridge can be used.
func (c Config) StorageConfigured() bool {
	return c.S3Bucket != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}

// MinSessionSecretLength is the minimum required length for the session
// secret used to sign tokens.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("FOLIO_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("FOLIO_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("FOLIO_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	if cfg.SessionTTLDays <= 0 {
		return nil, fmt.Errorf("FOLIO_SESSION_TTL_DAYS must be positive, got %d", cfg.SessionTTLDays)
	}

	if cfg.AdminEmail == "" {
		slog.Warn("FOLIO_ADMIN_EMAIL is not set; no account will be granted the admin role")
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}

// Package config assembles RentDesk settings from defaults, an optional JSON
// file, RENTDESK_* environment variables (optionally loaded from a .env
// file) and command-line flags. Later sources override earlier ones.
package config

import (
	"os"
	"time"

	"github.com/dmitrijs2005/rentdesk/internal/attachments"
	"github.com/dmitrijs2005/rentdesk/internal/directory"
	"github.com/dmitrijs2005/rentdesk/internal/validation"
)

// Config holds runtime settings for RentDesk.
//
// Fields:
//   - DatabaseDriver / DatabaseDSN: database/sql driver ("sqlite" or "pgx") and DSN.
//   - SecretKey: HMAC secret for session tokens. Do not use the default in prod.
//   - SessionValidity: session token lifetime; zero (the default) means sessions never expire.
//   - ResetCodeValidity: password-reset code lifetime.
//   - HashPasswords: store new passwords as argon2id hashes.
//   - Attachments*: where uploaded files go and how large they may be.
//   - S3*: object storage settings for the "s3" attachments backend.
//   - LogBackend / LogLevel / LogFile: logger selection; an empty LogFile means stderr.
type Config struct {
	DatabaseDriver     string        `validate:"oneof=sqlite sqlite3 pgx postgres"`
	DatabaseDSN        string        `validate:"required"`
	SecretKey          string        `validate:"required"`
	SessionValidity    time.Duration `validate:"gte=0"`
	ResetCodeValidity  time.Duration `validate:"gt=0"`
	HashPasswords      bool
	AttachmentsBackend string `validate:"oneof=file s3"`
	AttachmentsDir     string
	AttachmentsMaxSize int64 `validate:"gt=0"`
	S3AccessKey        string
	S3SecretKey        string
	S3Bucket           string `validate:"required_if=AttachmentsBackend s3"`
	S3Region           string
	S3Endpoint         string
	LogBackend         string `validate:"oneof=slog zap"`
	LogLevel           string `validate:"oneof=debug info warn error"`
	LogFile            string
}

// LoadDefaults populates Config with development defaults.
// NOTE: SecretKey and the S3 credentials must be overridden in production.
func (c *Config) LoadDefaults() {
	c.DatabaseDriver = "sqlite"
	c.DatabaseDSN = "rentdesk.db"
	c.SecretKey = "rentdesk-dev-secret"
	c.SessionValidity = 0
	c.ResetCodeValidity = directory.DefaultResetCodeValidity
	c.HashPasswords = false
	c.AttachmentsBackend = attachments.BackendFile
	c.AttachmentsDir = "attachments"
	c.AttachmentsMaxSize = attachments.DefaultMaxSize
	c.S3AccessKey = "admin"
	c.S3SecretKey = "secretpassword"
	c.S3Bucket = "rentdesk"
	c.S3Region = "us-east-1"
	c.S3Endpoint = "http://127.0.0.1:9000"
	c.LogBackend = "slog"
	c.LogLevel = "info"
}

// LoadConfig builds a Config from defaults, the JSON file named by -c/-config
// or RENTDESK_CONFIG, the environment and the command-line flags, then
// validates it.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, os.Args[1:]); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings against their allowed values.
func (c *Config) Validate() error {
	return validation.Struct(c)
}

// StoreOptions returns the directory store settings.
func (c *Config) StoreOptions() directory.Options {
	return directory.Options{
		SecretKey:         []byte(c.SecretKey),
		SessionValidity:   c.SessionValidity,
		ResetCodeValidity: c.ResetCodeValidity,
		HashPasswords:     c.HashPasswords,
	}
}

// Attachments returns the attachment store settings.
func (c *Config) Attachments() attachments.Config {
	return attachments.Config{
		Backend:     c.AttachmentsBackend,
		MaxSize:     c.AttachmentsMaxSize,
		Dir:         c.AttachmentsDir,
		S3Region:    c.S3Region,
		S3Endpoint:  c.S3Endpoint,
		S3AccessKey: c.S3AccessKey,
		S3SecretKey: c.S3SecretKey,
		S3Bucket:    c.S3Bucket,
	}
}

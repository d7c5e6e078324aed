package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// EnvFileVar names the variable holding the .env path.
const EnvFileVar = "RENTDESK_ENV_FILE"

// parseEnv loads the .env file (if any) into the process environment without
// overriding variables that are already set, then overlays cfg with the
// RENTDESK_* variables:
//
//	RENTDESK_DB_DRIVER, RENTDESK_DB_DSN, RENTDESK_SECRET_KEY,
//	RENTDESK_SESSION_VALIDITY, RENTDESK_RESET_CODE_VALIDITY (Go durations),
//	RENTDESK_HASH_PASSWORDS (bool),
//	RENTDESK_ATTACHMENTS_BACKEND, RENTDESK_ATTACHMENTS_DIR,
//	RENTDESK_ATTACHMENTS_MAX_SIZE (bytes),
//	RENTDESK_S3_ACCESS_KEY, RENTDESK_S3_SECRET_KEY, RENTDESK_S3_BUCKET,
//	RENTDESK_S3_REGION, RENTDESK_S3_ENDPOINT,
//	RENTDESK_LOG_BACKEND, RENTDESK_LOG_LEVEL, RENTDESK_LOG_FILE
func parseEnv(cfg *Config) error {
	envFile := os.Getenv(EnvFileVar)
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", envFile, err)
	}

	str := func(name string, dst *string) {
		if v, ok := os.LookupEnv(name); ok {
			*dst = v
		}
	}
	str("RENTDESK_DB_DRIVER", &cfg.DatabaseDriver)
	str("RENTDESK_DB_DSN", &cfg.DatabaseDSN)
	str("RENTDESK_SECRET_KEY", &cfg.SecretKey)
	str("RENTDESK_ATTACHMENTS_BACKEND", &cfg.AttachmentsBackend)
	str("RENTDESK_ATTACHMENTS_DIR", &cfg.AttachmentsDir)
	str("RENTDESK_S3_ACCESS_KEY", &cfg.S3AccessKey)
	str("RENTDESK_S3_SECRET_KEY", &cfg.S3SecretKey)
	str("RENTDESK_S3_BUCKET", &cfg.S3Bucket)
	str("RENTDESK_S3_REGION", &cfg.S3Region)
	str("RENTDESK_S3_ENDPOINT", &cfg.S3Endpoint)
	str("RENTDESK_LOG_BACKEND", &cfg.LogBackend)
	str("RENTDESK_LOG_LEVEL", &cfg.LogLevel)
	str("RENTDESK_LOG_FILE", &cfg.LogFile)

	if err := envDuration("RENTDESK_SESSION_VALIDITY", &cfg.SessionValidity); err != nil {
		return err
	}
	if err := envDuration("RENTDESK_RESET_CODE_VALIDITY", &cfg.ResetCodeValidity); err != nil {
		return err
	}

	if v, ok := os.LookupEnv("RENTDESK_HASH_PASSWORDS"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("RENTDESK_HASH_PASSWORDS: %w", err)
		}
		cfg.HashPasswords = b
	}
	if v, ok := os.LookupEnv("RENTDESK_ATTACHMENTS_MAX_SIZE"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("RENTDESK_ATTACHMENTS_MAX_SIZE: %w", err)
		}
		cfg.AttachmentsMaxSize = n
	}
	return nil
}

func envDuration(name string, dst *time.Duration) error {
	v, ok := os.LookupEnv(name)
	if !ok {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*dst = d
	return nil
}

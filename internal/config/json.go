package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/rentdesk/internal/flagx"
	"github.com/dmitrijs2005/rentdesk/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations
// use timex.Duration so the file may say "90m" or give nanoseconds.
type JsonConfig struct {
	DatabaseDriver     string         `json:"database_driver"`
	DatabaseDSN        string         `json:"database_dsn"`
	SecretKey          string         `json:"secret_key"`
	SessionValidity    timex.Duration `json:"session_validity"`
	ResetCodeValidity  timex.Duration `json:"reset_code_validity"`
	HashPasswords      bool           `json:"hash_passwords"`
	AttachmentsBackend string         `json:"attachments_backend"`
	AttachmentsDir     string         `json:"attachments_dir"`
	AttachmentsMaxSize int64          `json:"attachments_max_size"`
	S3AccessKey        string         `json:"s3_access_key"`
	S3SecretKey        string         `json:"s3_secret_key"`
	S3Bucket           string         `json:"s3_bucket"`
	S3Region           string         `json:"s3_region"`
	S3Endpoint         string         `json:"s3_endpoint"`
	LogBackend         string         `json:"log_backend"`
	LogLevel           string         `json:"log_level"`
	LogFile            string         `json:"log_file"`
}

// parseJson overlays cfg with the JSON file named by -c/-config or
// RENTDESK_CONFIG. Keys missing from the file keep their current values.
func parseJson(cfg *Config) error {
	path := flagx.ConfigFilePath()
	if path == "" {
		return nil
	}
	return loadJsonFile(cfg, path)
}

func loadJsonFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	jc := JsonConfig{
		DatabaseDriver:     cfg.DatabaseDriver,
		DatabaseDSN:        cfg.DatabaseDSN,
		SecretKey:          cfg.SecretKey,
		SessionValidity:    timex.Duration{Duration: cfg.SessionValidity},
		ResetCodeValidity:  timex.Duration{Duration: cfg.ResetCodeValidity},
		HashPasswords:      cfg.HashPasswords,
		AttachmentsBackend: cfg.AttachmentsBackend,
		AttachmentsDir:     cfg.AttachmentsDir,
		AttachmentsMaxSize: cfg.AttachmentsMaxSize,
		S3AccessKey:        cfg.S3AccessKey,
		S3SecretKey:        cfg.S3SecretKey,
		S3Bucket:           cfg.S3Bucket,
		S3Region:           cfg.S3Region,
		S3Endpoint:         cfg.S3Endpoint,
		LogBackend:         cfg.LogBackend,
		LogLevel:           cfg.LogLevel,
		LogFile:            cfg.LogFile,
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.DatabaseDriver = jc.DatabaseDriver
	cfg.DatabaseDSN = jc.DatabaseDSN
	cfg.SecretKey = jc.SecretKey
	cfg.SessionValidity = jc.SessionValidity.Duration
	cfg.ResetCodeValidity = jc.ResetCodeValidity.Duration
	cfg.HashPasswords = jc.HashPasswords
	cfg.AttachmentsBackend = jc.AttachmentsBackend
	cfg.AttachmentsDir = jc.AttachmentsDir
	cfg.AttachmentsMaxSize = jc.AttachmentsMaxSize
	cfg.S3AccessKey = jc.S3AccessKey
	cfg.S3SecretKey = jc.S3SecretKey
	cfg.S3Bucket = jc.S3Bucket
	cfg.S3Region = jc.S3Region
	cfg.S3Endpoint = jc.S3Endpoint
	cfg.LogBackend = jc.LogBackend
	cfg.LogLevel = jc.LogLevel
	cfg.LogFile = jc.LogFile
	return nil
}

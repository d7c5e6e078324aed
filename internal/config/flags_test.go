package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		mutate    func(c *Config)
		expectErr bool
	}{
		{
			name: "all flags",
			args: []string{"-r", "pgx", "-d", "postgres://db/rentdesk", "-k", "k", "-s", "30", "-t", "5",
				"-x", "-a", "s3", "-f", "/var/rentdesk", "-o", "zap", "-l", "debug", "-w", "/tmp/rentdesk.log"},
			mutate: func(c *Config) {
				c.DatabaseDriver = "pgx"
				c.DatabaseDSN = "postgres://db/rentdesk"
				c.SecretKey = "k"
				c.SessionValidity = 30 * time.Minute
				c.ResetCodeValidity = 5 * time.Minute
				c.HashPasswords = true
				c.AttachmentsBackend = "s3"
				c.AttachmentsDir = "/var/rentdesk"
				c.LogBackend = "zap"
				c.LogLevel = "debug"
				c.LogFile = "/tmp/rentdesk.log"
			},
		},
		{
			name:   "equals form and foreign flags",
			args:   []string{"-c", "conf.json", "-d=other.db", "-unknown", "x"},
			mutate: func(c *Config) { c.DatabaseDSN = "other.db" },
		},
		{
			name:   "expiry is opt-in",
			args:   []string{"-s", "1440"},
			mutate: func(c *Config) { c.SessionValidity = 24 * time.Hour },
		},
		{name: "bad session validity", args: []string{"-s", "abc"}, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			err := parseFlags(cfg, tt.args)
			if tt.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			want := defaults()
			tt.mutate(want)
			assert.Empty(t, cmp.Diff(want, cfg))
		})
	}
}

func TestParseFlags_KeepsSubMinuteDurations(t *testing.T) {
	cfg := defaults()
	cfg.ResetCodeValidity = 90 * time.Second

	require.NoError(t, parseFlags(cfg, []string{"-l", "warn"}))
	assert.Equal(t, 90*time.Second, cfg.ResetCodeValidity)
}

package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/rentdesk/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-r string   database driver ("sqlite" or "pgx")
//	-d string   database DSN
//	-k string   session token secret key
//	-s int      session validity, minutes (0 disables expiry)
//	-t int      reset code validity, minutes
//	-x          store new passwords as argon2id hashes
//	-a string   attachments backend ("file" or "s3")
//	-f string   attachments directory for the file backend
//	-o string   log backend ("slog" or "zap")
//	-l string   log level
//	-w string   log file (default stderr)
//
// args are filtered with flagx.FilterArgs first, so flags meant for other
// components are ignored.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-r", "-d", "-k", "-s", "-t", "-x", "-a", "-f", "-o", "-l", "-w"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DatabaseDriver, "r", cfg.DatabaseDriver, "database driver")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.SecretKey, "k", cfg.SecretKey, "secret key")

	sessionValidity := fs.Int("s", int(cfg.SessionValidity.Minutes()), "session validity (in minutes)")
	resetCodeValidity := fs.Int("t", int(cfg.ResetCodeValidity.Minutes()), "reset code validity (in minutes)")

	fs.BoolVar(&cfg.HashPasswords, "x", cfg.HashPasswords, "hash passwords")
	fs.StringVar(&cfg.AttachmentsBackend, "a", cfg.AttachmentsBackend, "attachments backend")
	fs.StringVar(&cfg.AttachmentsDir, "f", cfg.AttachmentsDir, "attachments directory")
	fs.StringVar(&cfg.LogBackend, "o", cfg.LogBackend, "log backend")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFile, "w", cfg.LogFile, "log file")

	if err := fs.Parse(args); err != nil {
		return err
	}

	// Only flags given explicitly replace durations, which may carry
	// sub-minute precision from JSON or the environment.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "s":
			cfg.SessionValidity = time.Duration(*sessionValidity) * time.Minute
		case "t":
			cfg.ResetCodeValidity = time.Duration(*resetCodeValidity) * time.Minute
		}
	})
	return nil
}

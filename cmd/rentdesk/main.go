package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/rentdesk/internal/attachments"
	"github.com/dmitrijs2005/rentdesk/internal/buildinfo"
	"github.com/dmitrijs2005/rentdesk/internal/config"
	"github.com/dmitrijs2005/rentdesk/internal/console"
	"github.com/dmitrijs2005/rentdesk/internal/directory"
	"github.com/dmitrijs2005/rentdesk/internal/kv"
	"github.com/dmitrijs2005/rentdesk/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := run(cfg); err != nil {
		log.Fatalf("%v", err)
	}

}

func run(cfg *config.Config) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	var logOut io.Writer = os.Stderr
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
		if err != nil {
			return err
		}
		defer f.Close()
		logOut = f
	}
	logger, err := logging.New(logging.Backend(cfg.LogBackend), cfg.LogLevel, logOut)
	if err != nil {
		return err
	}

	db, err := kv.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseDSN, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	store := directory.New(db, logger, cfg.StoreOptions())
	if err := store.Seed(ctx); err != nil {
		return err
	}

	files, err := attachments.New(cfg.Attachments())
	if err != nil {
		return err
	}

	logger.Info(ctx, "starting rentdesk", "driver", cfg.DatabaseDriver, "attachments", cfg.AttachmentsBackend)

	// unblock the pending read so the REPL can return
	go func() {
		<-ctx.Done()
		_ = os.Stdin.Close()
	}()

	app := console.NewApp(store, files, logger, os.Stdin, os.Stdout, cfg.AttachmentsMaxSize)
	return app.Run(ctx)
}

// taskboard serves the team, project and task REST API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"taskboard/config"
	"taskboard/database"
	"taskboard/logger"
	"taskboard/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "FATAL:", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(".env")
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Logging.Level, cfg.IsProduction())
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	db, err := database.Open(cfg.Database, cfg.Logging.Level, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Warnw("database close", "error", err)
		}
	}()

	if err := database.Migrate(db, log); err != nil {
		return err
	}

	app := server.New(cfg, db, log)

	errCh := make(chan error, 1)
	go func() {
		log.Infow("http server starting", "addr", cfg.ServerAddr(), "env", cfg.AppEnv, "version", server.Version)
		errCh <- app.Listen(cfg.ServerAddr())
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}
	stop()

	log.Infow("shutting down", "timeout", cfg.Server.ShutdownTimeout)
	if err := app.ShutdownWithTimeout(cfg.Server.ShutdownTimeout); err != nil {
		log.Warnw("server shutdown", "error", err)
	}
	return nil
}

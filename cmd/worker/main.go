// Package main implements the analysis worker, which claims pending
// motion-capture analysis jobs, scores their recorded landmark frames and
// stores one result per session.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/shimonatia-ops/Fuji36-sub001/internal/config"
	"github.com/shimonatia-ops/Fuji36-sub001/internal/platform/logger"
	"github.com/shimonatia-ops/Fuji36-sub001/internal/platform/postgres"
)

// migrateCommands are the goose commands accepted by -migrate.
var migrateCommands = map[string]bool{
	"up":        true,
	"up-by-one": true,
	"down":      true,
	"redo":      true,
	"status":    true,
	"version":   true,
}

func main() {
	migrateCmd := flag.String("migrate", "",
		"run a database migration command (up, up-by-one, down, redo, status, version) and exit")
	flag.Parse()

	if err := run(*migrateCmd); err != nil {
		slog.Error("analysis worker exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// run wires the worker and blocks until SIGINT or SIGTERM.
func run(migrateCmd string) error {
	if err := validateMigrateCommand(migrateCmd); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := setupAppDatabase(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("failed to close database connection", slog.String("error", err.Error()))
		}
	}()

	if migrateCmd != "" {
		return postgres.RunMigrations(ctx, db, log, migrateCmd)
	}

	app, err := newApplication(cfg, log, db)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.run(ctx)
}

func validateMigrateCommand(cmd string) error {
	if cmd == "" || migrateCommands[cmd] {
		return nil
	}
	return fmt.Errorf("unsupported migration command %q", cmd)
}

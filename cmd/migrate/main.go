// Command migrate applies or rolls back the database schema.
//
// Flags:
//
//	--command  up (default), down or version
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/deck-authoring/internal/adapter/postgres"
	"github.com/heartmarshall/deck-authoring/internal/app"
	"github.com/heartmarshall/deck-authoring/internal/config"
)

func main() {
	command := flag.String("command", "up", "migration command: up, down or version")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log, os.Stderr)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	m, err := postgres.NewMigrator(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Error("open migrator", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer m.Close()

	switch *command {
	case "up":
		n, err := m.Up(ctx)
		if err != nil {
			logger.Error("migrate up failed", slog.Int("applied", n), slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("migrations applied", slog.Int("applied", n))

	case "down":
		if err := m.Down(ctx); err != nil {
			logger.Error("migrate down failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("rolled back one migration")

	case "version":
		v, err := m.Version(ctx)
		if err != nil {
			logger.Error("read schema version", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("schema version", slog.Int64("version", v))

	default:
		logger.Error("unknown command", slog.String("command", *command))
		os.Exit(1)
	}
}

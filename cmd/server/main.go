// Command server runs the deck authoring HTTP API.
//
// Configuration is read from the YAML file at CONFIG_PATH (or ./config.yaml)
// with environment overrides. SIGINT and SIGTERM trigger a graceful shutdown.
//
// Exit codes: 0 = clean shutdown, 1 = error.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/deck-authoring/internal/app"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := app.Run(ctx); err != nil {
		slog.Error("server terminated with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

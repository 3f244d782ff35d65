package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/odyssey-erp/flextime/cmd/flextime/cli"
	"github.com/odyssey-erp/flextime/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(cli.ExitUsage)
	}

	logger := app.NewLogger(cfg, os.Stderr)

	code := cli.Execute(ctx, cfg, logger, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

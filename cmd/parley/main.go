package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/harunnryd/parley/pkg/logging"
	"github.com/harunnryd/parley/pkg/parley"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the session config file")
	flag.Parse()

	// Optional .env with API keys referenced as ${...} in the config.
	_ = godotenv.Load()

	cfg, err := parley.LoadConfig(*configPath)
	if err != nil {
		slog.Error("config_load_failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	engine := parley.NewEngine(cfg, parley.DefaultRegistry())
	if err := engine.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("session_failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

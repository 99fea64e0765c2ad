// Command worker relays committed outbox rows to Kafka.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-staffhub/internal/app"
	"go-staffhub/internal/bootstrap"
	"go-staffhub/internal/config"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger, err := bootstrap.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = bootstrap.RunProcess(ctx, "worker", "outbox relay", bootstrap.NewStdoutAuditLogger(logger),
		func(ctx context.Context) error { return app.RunWorker(ctx, cfg, logger) })
	if err != nil {
		logger.Fatal("worker failed", zap.Error(err))
	}
}

// Command consumer records time-off lifecycle events from Kafka into the
// audit history.
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

	run := func(ctx context.Context) error { return app.RunConsumer(ctx, cfg, logger) }
	if err := bootstrap.RunProcess(ctx, "consumer", "time off audit consumer", bootstrap.NewStdoutAuditLogger(logger), run); err != nil {
		logger.Fatal("consumer failed", zap.Error(err))
	}
}

// Command api serves the staffhub HTTP API.
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
	"go-staffhub/internal/shared/apperror"

	"github.com/gin-gonic/gin"
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

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}
	apperror.Init()

	r := gin.New()
	r.Use(gin.Recovery())

	cleanup, err := app.BuildApp(r, cfg, logger)
	if err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := bootstrap.Serve(ctx, r, bootstrap.DefaultServerConfig(cfg.Port), bootstrap.NewStdoutAuditLogger(logger)); err != nil {
		logger.Error("http server stopped", zap.Error(err))
	}
}

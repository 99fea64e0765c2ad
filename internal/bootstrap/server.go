package bootstrap

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	ActionServerStarted  = "SERVER_STARTED"
	ActionServerShutdown = "SERVER_SHUTDOWN"
)

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// DefaultServerConfig returns the timeouts every binary serves with.
func DefaultServerConfig(port string) ServerConfig {
	return ServerConfig{
		Port:            port,
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    10 * time.Second,
		IdleTimeout:     60 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Serve runs router until ctx is cancelled, then drains in-flight requests
// within ShutdownTimeout.
func Serve(ctx context.Context, router *gin.Engine, cfg ServerConfig, auditLogger AuditLogger) error {
	logger := zap.L().Named("http.server")

	listener, err := net.Listen("tcp", ":"+cfg.Port)
	if err != nil {
		return err
	}

	server := &http.Server{
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server running", zap.String("addr", listener.Addr().String()))
		serveErr <- server.Serve(listener)
	}()

	auditLogger.Log(ctx, AuditLog{
		Action:  ActionServerStarted,
		Message: "server accepting connections",
		Meta:    map[string]any{"addr": listener.Addr().String()},
	})

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	auditLogger.Log(context.Background(), AuditLog{
		Action:  ActionServerShutdown,
		Message: "server is shutting down",
		Meta:    map[string]any{"cause": context.Cause(ctx).Error()},
	})

	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
		return err
	}
	logger.Info("server exited gracefully")
	return nil
}

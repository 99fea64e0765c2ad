package app

import (
	"context"
	"fmt"

	"go-staffhub/internal/audit"
	"go-staffhub/internal/config"
	"go-staffhub/internal/events"
	"go-staffhub/internal/messaging/kafka/consumer"
	"go-staffhub/internal/shared/connection"

	"go.uber.org/zap"
)

// RunConsumer records time-off lifecycle events into the audit trail until
// ctx is cancelled.
func RunConsumer(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.L()
	}
	logger = logger.Named("app.consumer")

	if cfg.KafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	gormDB, err := OpenDatabase(cfg, logger)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	auditService := audit.NewService(audit.NewRepository(gormDB), logger)

	reader := connection.NewKafkaReader(cfg.KafkaBroker, cfg.KafkaGroupID, events.TimeOffLifecycleTopic)
	defer reader.Close()

	consumer.ConsumeTimeOffLifecycle(ctx, reader, auditService, logger)

	logger.Info("consumer shutting down")
	return nil
}

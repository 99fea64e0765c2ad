package app

import (
	"context"
	"fmt"

	"go-staffhub/internal/config"
	"go-staffhub/internal/messaging/kafka"
	"go-staffhub/internal/messaging/kafka/producer"
	"go-staffhub/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker relays outbox rows to Kafka until ctx is cancelled.
func RunWorker(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.L()
	}
	logger = logger.Named("app.worker")

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

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.KafkaBroker, cfg.DBRetries, logger)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	producer.NewRelay(
		kafka.NewOutboxRepository(gormDB),
		kafkaWriter,
		producer.WithLogger(logger),
		producer.WithPollInterval(cfg.OutboxPollInterval),
	).Run(ctx)

	logger.Info("worker shutting down")
	return nil
}

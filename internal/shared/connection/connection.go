package connection

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// RetryDelay is the pause between connection attempts.
var RetryDelay = 5 * time.Second

func PostgresDialector(dsn string) gorm.Dialector {
	return postgres.Open(dsn)
}

// SQLiteDialector opens a local database file. Foreign keys are enabled so
// relations behave like they do on postgres.
func SQLiteDialector(path string) gorm.Dialector {
	return sqlite.Open(path + "?_foreign_keys=on&_busy_timeout=5000")
}

func ConnectGORMWithRetry(dialector gorm.Dialector, maxRetries int, logger *zap.Logger) (*gorm.DB, error) {
	if logger == nil {
		logger = zap.L()
	}
	if maxRetries < 1 {
		maxRetries = 1
	}

	var lastErr error
	for i := 1; i <= maxRetries; i++ {
		db, err := gorm.Open(dialector, &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Warn),
			// users are owned by the identity provider and may lag behind
			// the requests that reference them.
			DisableForeignKeyConstraintWhenMigrating: true,
		})
		if err != nil {
			lastErr = err
			logger.Warn("gorm open failed", zap.Int("attempt", i), zap.Int("max", maxRetries), zap.Error(err))
			time.Sleep(RetryDelay)
			continue
		}

		sqlDB, err := db.DB()
		if err != nil {
			lastErr = err
			logger.Warn("get sql.DB failed", zap.Int("attempt", i), zap.Int("max", maxRetries), zap.Error(err))
			time.Sleep(RetryDelay)
			continue
		}

		if err := sqlDB.Ping(); err != nil {
			lastErr = err
			logger.Warn("db ping failed", zap.Int("attempt", i), zap.Int("max", maxRetries), zap.Error(err))
			time.Sleep(RetryDelay)
			continue
		}

		if dialector.Name() == "sqlite" {
			// A single writer keeps sqlite from returning SQLITE_BUSY under load.
			sqlDB.SetMaxOpenConns(1)
		} else {
			sqlDB.SetMaxOpenConns(25)
			sqlDB.SetMaxIdleConns(10)
			sqlDB.SetConnMaxLifetime(time.Hour)
		}

		logger.Info("gorm connected to database", zap.String("dialect", dialector.Name()))
		return db, nil
	}

	return nil, fmt.Errorf("database connection failed after %d retries: %w", maxRetries, lastErr)
}

func ConnectRedisWithRetry(addr string, maxRetries int, logger *zap.Logger) (*redis.Client, error) {
	if logger == nil {
		logger = zap.L()
	}
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	var lastErr error
	for i := 1; i <= maxRetries; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		lastErr = rdb.Ping(ctx).Err()
		cancel()
		if lastErr == nil {
			logger.Info("connected to redis", zap.String("addr", addr))
			return rdb, nil
		}

		logger.Warn("redis ping failed", zap.Int("attempt", i), zap.Int("max", maxRetries), zap.Error(lastErr))
		time.Sleep(RetryDelay)
	}

	_ = rdb.Close()
	return nil, fmt.Errorf("failed to connect redis after %d retries: %w", maxRetries, lastErr)
}

func NewKafkaWriter(broker string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(broker),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
	}
}

// ConnectKafkaWithRetry checks the broker answers before handing out a
// writer; kafka.Writer itself dials lazily.
func ConnectKafkaWithRetry(broker string, maxRetries int, logger *zap.Logger) (*kafka.Writer, error) {
	if logger == nil {
		logger = zap.L()
	}

	var lastErr error
	for i := 1; i <= maxRetries; i++ {
		conn, err := kafka.Dial("tcp", broker)
		if err == nil {
			_, lastErr = conn.Brokers()
			_ = conn.Close()
			if lastErr == nil {
				logger.Info("connected to kafka", zap.String("broker", broker))
				return NewKafkaWriter(broker), nil
			}
		} else {
			lastErr = err
		}

		logger.Warn("kafka dial failed", zap.Int("attempt", i), zap.Int("max", maxRetries), zap.Error(lastErr))
		time.Sleep(RetryDelay)
	}

	return nil, fmt.Errorf("failed to connect kafka after %d retries: %w", maxRetries, lastErr)
}

func NewKafkaReader(broker, groupID, topic string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:        []string{broker},
		GroupID:        groupID,
		Topic:          topic,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: 0,
	})
}

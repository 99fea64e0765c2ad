package app

import (
	"fmt"

	"go-staffhub/internal/config"
	"go-staffhub/internal/middleware"
	"go-staffhub/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// BuildApp connects the stores and registers every module on router. The
// returned cleanup closes the connections it opened.
func BuildApp(router *gin.Engine, cfg config.Config, logger *zap.Logger) (func(), error) {
	if logger == nil {
		logger = zap.L()
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	gormDB, err := OpenDatabase(cfg, logger)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	logger.Info("database connection established", zap.String("driver", cfg.DBDriver))

	if cfg.AutoMigrate {
		if err := Migrate(gormDB); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
		logger.Info("database schema migrated")
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.DBRetries, logger)
		if err != nil {
			// Redis only backs caching and idempotency; both degrade to
			// pass-through without it.
			logger.Warn("redis unavailable, continuing without cache", zap.Error(err))
			rdb = nil
		} else {
			logger.Info("redis connection established")
		}
	}

	router.Use(
		middleware.RequestID(),
		middleware.ContextLogger(logger),
		middleware.RateLimitByIP(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst),
	)

	if err := registerModules(router, moduleDeps{
		cfg:    cfg,
		loc:    loc,
		db:     sqlDB,
		gormDB: gormDB,
		rdb:    rdb,
		logger: logger,
	}); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	cleanup := func() {
		if rdb != nil {
			_ = rdb.Close()
		}
		_ = sqlDB.Close()
	}
	return cleanup, nil
}

// OpenDatabase dials the configured driver with retries.
func OpenDatabase(cfg config.Config, logger *zap.Logger) (*gorm.DB, error) {
	dialector := connection.PostgresDialector(cfg.PostgresDSN())
	if cfg.DBDriver == config.DriverSQLite {
		dialector = connection.SQLiteDialector(cfg.SQLitePath)
	}
	return connection.ConnectGORMWithRetry(dialector, cfg.DBRetries, logger)
}

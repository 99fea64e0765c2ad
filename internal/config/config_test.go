package config_test

import (
	"testing"
	"time"

	"go-staffhub/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("OUTBOX_POLL_INTERVAL", "")
	t.Setenv("LOG_FORMAT", "")
	t.Setenv("USER_RATE_LIMIT_RPS", "")
	t.Setenv("USER_RATE_LIMIT_BURST", "")

	cfg := config.Load()

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, config.DriverPostgres, cfg.DBDriver)
	assert.Equal(t, 3*time.Second, cfg.OutboxPollInterval)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, 2.0, cfg.UserRateLimitRPS)
	assert.Equal(t, 10, cfg.UserRateLimitBurst)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_AUTO_MIGRATE", "true")
	t.Setenv("RATE_LIMIT_BURST", "3")
	t.Setenv("APP_TIMEZONE", "UTC")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("USER_RATE_LIMIT_RPS", "0.5")
	t.Setenv("USER_RATE_LIMIT_BURST", "4")

	cfg := config.Load()

	assert.Equal(t, config.DriverSQLite, cfg.DBDriver)
	assert.True(t, cfg.AutoMigrate)
	assert.Equal(t, 3, cfg.RateLimitBurst)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 0.5, cfg.UserRateLimitRPS)
	assert.Equal(t, 4, cfg.UserRateLimitBurst)
	assert.NoError(t, cfg.Validate())

	loc, err := cfg.Location()
	assert.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestValidate(t *testing.T) {
	t.Run("missing secret", func(t *testing.T) {
		cfg := config.Config{DBDriver: config.DriverPostgres}
		assert.Error(t, cfg.Validate())
	})

	t.Run("unknown driver", func(t *testing.T) {
		cfg := config.Config{JWTSecret: "x", DBDriver: "mysql"}
		assert.Error(t, cfg.Validate())
	})

	t.Run("bad timezone", func(t *testing.T) {
		cfg := config.Config{JWTSecret: "x", DBDriver: config.DriverSQLite, Timezone: "Mars/Olympus"}
		assert.Error(t, cfg.Validate())
	})
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Port string

	LogLevel  string
	LogFormat string

	DBDriver    string
	DBHost      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBPort      string
	DBSSLMode   string
	SQLitePath  string
	AutoMigrate bool
	DBRetries   int

	RedisAddr string

	KafkaBroker        string
	KafkaGroupID       string
	OutboxPollInterval time.Duration

	JWTSecret string
	Timezone  string

	RateLimitRPS   float64
	RateLimitBurst int

	// UserRateLimitRPS throttles each signed-in user on write routes. Zero
	// or less turns the per-user limit off.
	UserRateLimitRPS   float64
	UserRateLimitBurst int
}

// Load reads configuration from the environment. Callers load .env first
// (godotenv) the same way every binary in cmd/ does.
func Load() Config {
	return Config{
		Port:               getEnv("PORT", "3000"),
		LogLevel:           getEnv("LOG_LEVEL", "debug"),
		LogFormat:          getEnv("LOG_FORMAT", "console"),
		DBDriver:           getEnv("DB_DRIVER", DriverPostgres),
		DBHost:             getEnv("DB_HOST", "localhost"),
		DBUser:             getEnv("DB_USER", "postgres"),
		DBPassword:         getEnv("DB_PASSWORD", ""),
		DBName:             getEnv("DB_NAME", "staffhub"),
		DBPort:             getEnv("DB_PORT", "5432"),
		DBSSLMode:          getEnv("DB_SSLMODE", "disable"),
		SQLitePath:         getEnv("SQLITE_PATH", "staffhub.db"),
		AutoMigrate:        getEnvBool("DB_AUTO_MIGRATE", false),
		DBRetries:          getEnvInt("DB_RETRIES", 5),
		RedisAddr:          getEnv("REDIS_ADDR", ""),
		KafkaBroker:        getEnv("KAFKA_BROKER", ""),
		KafkaGroupID:       getEnv("KAFKA_GROUP_ID", "staffhub-timeoff-audit"),
		OutboxPollInterval: getEnvDuration("OUTBOX_POLL_INTERVAL", 3*time.Second),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		Timezone:           getEnv("APP_TIMEZONE", "Local"),
		RateLimitRPS:       getEnvFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst:     getEnvInt("RATE_LIMIT_BURST", 10),
		UserRateLimitRPS:   getEnvFloat("USER_RATE_LIMIT_RPS", 2),
		UserRateLimitBurst: getEnvInt("USER_RATE_LIMIT_BURST", 10),
	}
}

func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	switch c.DBDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location is the calendar used to interpret yyyy-mm-dd inputs and "today".
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func (c Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return v
	}
	return fallback
}

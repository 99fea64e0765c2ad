package connection_test

import (
	"testing"

	"go-staffhub/internal/shared/connection"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
)

func TestConnectGORMWithRetry_SQLite(t *testing.T) {
	db, err := connection.ConnectGORMWithRetry(sqlite.Open(":memory:"), 1, zap.NewNop())
	assert.NoError(t, err)

	sqlDB, err := db.DB()
	assert.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
	assert.NoError(t, sqlDB.Close())
}

func TestNewKafkaWriter(t *testing.T) {
	w := connection.NewKafkaWriter("localhost:9092")
	assert.Equal(t, "localhost:9092", w.Addr.String())
	assert.True(t, w.AllowAutoTopicCreation)
}

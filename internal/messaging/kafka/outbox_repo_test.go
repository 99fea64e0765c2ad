package kafka_test

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"go-staffhub/internal/messaging/kafka"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newSQLiteDB(t *testing.T) (*gorm.DB, *sql.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Discard})
	assert.NoError(t, err)

	sqlDB, err := db.DB()
	assert.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	assert.NoError(t, db.AutoMigrate(&kafka.OutboxEvent{}))
	return db, sqlDB
}

func newEvent(t *testing.T) kafka.OutboxEvent {
	t.Helper()
	e, err := kafka.NewOutboxEvent("rid-1", "time_off_request", uuid.New().String(), "timeoff.created", "staff.timeoff.lifecycle.v1", map[string]string{"k": "v"})
	assert.NoError(t, err)
	return e
}

func TestOutboxRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	db, _ := newSQLiteDB(t)
	repo := kafka.NewOutboxRepository(db)
	now := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)

	first := newEvent(t)
	second := newEvent(t)
	assert.NoError(t, repo.Create(ctx, first))
	assert.NoError(t, repo.Create(ctx, second))

	pending, err := repo.ListPending(ctx, now, 10)
	assert.NoError(t, err)
	assert.Len(t, pending, 2)

	assert.NoError(t, repo.MarkSent(ctx, first.ID, now))
	assert.NoError(t, repo.MarkFailed(ctx, second, "broker down", now))

	// The failed event waits for its backoff.
	pending, err = repo.ListPending(ctx, now.Add(5*time.Second), 10)
	assert.NoError(t, err)
	assert.Empty(t, pending)

	pending, err = repo.ListPending(ctx, now.Add(kafka.RetryBackoff(1)), 10)
	assert.NoError(t, err)
	if assert.Len(t, pending, 1) {
		assert.Equal(t, second.ID, pending[0].ID)
		assert.Equal(t, 1, pending[0].RetryCount)
		assert.Equal(t, kafka.OutboxStatusFailed, pending[0].Status)
		assert.Equal(t, "broker down", *pending[0].ErrorMessage)
	}
}

func TestOutboxRepository_MarkFailedTruncatesOnRuneBoundary(t *testing.T) {
	ctx := context.Background()
	db, _ := newSQLiteDB(t)
	repo := kafka.NewOutboxRepository(db)
	now := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)

	e := newEvent(t)
	assert.NoError(t, repo.Create(ctx, e))

	// The two-byte rune straddles the 500 byte limit.
	reason := strings.Repeat("a", 499) + "é" + " broker said no"
	assert.NoError(t, repo.MarkFailed(ctx, e, reason, now))

	pending, err := repo.ListPending(ctx, now.Add(kafka.RetryBackoff(1)), 10)
	assert.NoError(t, err)
	if assert.Len(t, pending, 1) {
		stored := *pending[0].ErrorMessage
		assert.True(t, utf8.ValidString(stored))
		assert.Equal(t, strings.Repeat("a", 499), stored)
	}
}

func TestOutboxRepository_WithTxRollback(t *testing.T) {
	ctx := context.Background()
	db, sqlDB := newSQLiteDB(t)
	repo := kafka.NewOutboxRepository(db)

	tx, err := sqlDB.BeginTx(ctx, nil)
	assert.NoError(t, err)
	assert.NoError(t, repo.WithTx(tx).Create(ctx, newEvent(t)))
	assert.NoError(t, tx.Rollback())

	pending, err := repo.ListPending(ctx, time.Now().UTC(), 10)
	assert.NoError(t, err)
	assert.Empty(t, pending)
}

func TestOutboxRepository_CreateValidates(t *testing.T) {
	db, _ := newSQLiteDB(t)
	repo := kafka.NewOutboxRepository(db)

	e := newEvent(t)
	e.Topic = ""
	assert.EqualError(t, repo.Create(context.Background(), e), "outbox topic is required")
}

func TestRetryBackoff(t *testing.T) {
	assert.Equal(t, 15*time.Second, kafka.RetryBackoff(0))
	assert.Equal(t, 45*time.Second, kafka.RetryBackoff(3))
	assert.Equal(t, 150*time.Second, kafka.RetryBackoff(42))
}

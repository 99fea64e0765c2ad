package kafka

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"
)

const (
	OutboxStatusPending = "pending"
	OutboxStatusSent    = "sent"
	OutboxStatusFailed  = "failed"

	maxErrorMessageLen = 500
	retryStep          = 15 * time.Second
	maxRetrySteps      = 10
)

type OutboxEvent struct {
	ID            string     `gorm:"column:id;type:uuid;primaryKey"`
	RequestID     string     `gorm:"column:request_id;type:varchar(64)"`
	AggregateType string     `gorm:"column:aggregate_type;type:varchar(50);not null"`
	AggregateID   string     `gorm:"column:aggregate_id;type:uuid;not null"`
	EventType     string     `gorm:"column:event_type;type:varchar(80);not null"`
	Topic         string     `gorm:"column:topic;type:varchar(120);not null"`
	Payload       []byte     `gorm:"column:payload;not null"`
	Status        string     `gorm:"column:status;type:varchar(20);not null;index:idx_outbox_status_created"`
	RetryCount    int        `gorm:"column:retry_count;not null;default:0"`
	NextRetryAt   *time.Time `gorm:"column:next_retry_at"`
	ErrorMessage  *string    `gorm:"column:error_message;type:text"`
	ProcessedAt   *time.Time `gorm:"column:processed_at"`
	CreatedAt     time.Time  `gorm:"column:created_at;index:idx_outbox_status_created"`
	UpdatedAt     time.Time  `gorm:"column:updated_at"`
}

func (OutboxEvent) TableName() string {
	return "outbox_events"
}

//go:generate mockgen -source=outbox_repo.go -destination=mock/outbox_repo_mock.go -package=mock
type OutboxRepository interface {
	WithTx(tx *sql.Tx) OutboxRepository
	Create(ctx context.Context, event OutboxEvent) error
	ListPending(ctx context.Context, now time.Time, limit int) ([]OutboxEvent, error)
	MarkSent(ctx context.Context, id string, at time.Time) error
	MarkFailed(ctx context.Context, event OutboxEvent, reason string, at time.Time) error
}

type outboxRepository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewOutboxRepository(db *gorm.DB) OutboxRepository {
	return &outboxRepository{db: db}
}

func (r *outboxRepository) WithTx(tx *sql.Tx) OutboxRepository {
	return &outboxRepository{db: r.db, tx: tx}
}

func (r *outboxRepository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *outboxRepository) Create(ctx context.Context, event OutboxEvent) error {
	if err := ValidateOutboxEvent(event); err != nil {
		return err
	}
	return r.conn(ctx).Create(&event).Error
}

// ListPending returns pending events and failed events whose retry time has
// come, oldest first.
func (r *outboxRepository) ListPending(ctx context.Context, now time.Time, limit int) ([]OutboxEvent, error) {
	var rows []OutboxEvent
	err := r.conn(ctx).
		Where("status IN ?", []string{OutboxStatusPending, OutboxStatusFailed}).
		Where("(next_retry_at IS NULL OR next_retry_at <= ?)", now).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *outboxRepository) MarkSent(ctx context.Context, id string, at time.Time) error {
	return r.conn(ctx).
		Model(&OutboxEvent{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":        OutboxStatusSent,
			"processed_at":  at,
			"error_message": nil,
			"updated_at":    at,
		}).Error
}

func (r *outboxRepository) MarkFailed(ctx context.Context, event OutboxEvent, reason string, at time.Time) error {
	reason = truncateUTF8(reason, maxErrorMessageLen)
	return r.conn(ctx).
		Model(&OutboxEvent{}).
		Where("id = ?", event.ID).
		Updates(map[string]any{
			"status":        OutboxStatusFailed,
			"retry_count":   gorm.Expr("retry_count + 1"),
			"error_message": reason,
			"next_retry_at": at.Add(RetryBackoff(event.RetryCount + 1)),
			"updated_at":    at,
		}).Error
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// RetryBackoff grows linearly by 15s per attempt and caps at ten steps.
func RetryBackoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	if attempt > maxRetrySteps {
		attempt = maxRetrySteps
	}
	return time.Duration(attempt) * retryStep
}

func ValidateOutboxEvent(event OutboxEvent) error {
	if event.ID == "" {
		return errors.New("outbox id is required")
	}
	if event.Topic == "" {
		return errors.New("outbox topic is required")
	}
	if len(event.Payload) == 0 {
		return errors.New("outbox payload is required")
	}
	switch event.Status {
	case OutboxStatusPending, OutboxStatusSent, OutboxStatusFailed:
		return nil
	default:
		return fmt.Errorf("invalid outbox status: %s", event.Status)
	}
}

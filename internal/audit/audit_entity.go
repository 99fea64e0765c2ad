package audit

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventIndex   = "uq_timeoff_audit_event"
	eventColumns = "timeoff_audit_log.event_id"
)

// Entry is one recorded lifecycle event of a time-off request. Entries
// outlive the request they describe.
type Entry struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	EventID        string    `gorm:"column:event_id;type:varchar(64);not null;uniqueIndex:uq_timeoff_audit_event"`
	EventType      string    `gorm:"column:event_type;type:varchar(80);not null"`
	TimeOffID      uuid.UUID `gorm:"column:time_off_id;type:uuid;not null;index:idx_timeoff_audit_request"`
	UserID         uuid.UUID `gorm:"column:user_id;type:uuid;not null"`
	ActorID        string    `gorm:"column:actor_id;type:varchar(64)"`
	Status         string    `gorm:"column:status;type:varchar(20);not null"`
	PreviousStatus string    `gorm:"column:previous_status;type:varchar(20)"`
	RequestID      string    `gorm:"column:request_id;type:varchar(64)"`
	OccurredAt     time.Time `gorm:"column:occurred_at;not null;index:idx_timeoff_audit_request"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (Entry) TableName() string {
	return "timeoff_audit_log"
}

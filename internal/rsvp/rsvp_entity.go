package rsvp

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventUserIndex   = "uq_rsvps_event_user"
	eventUserColumns = "rsvps.event_id, rsvps.user_id"
)

type Rsvp struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	EventID   string    `gorm:"column:event_id;type:varchar(100);not null;uniqueIndex:uq_rsvps_event_user,priority:1"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:uq_rsvps_event_user,priority:2;index:idx_rsvps_user"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (Rsvp) TableName() string {
	return "rsvps"
}

package event

import (
	"time"

	"github.com/google/uuid"
)

// Event is a company calendar event. Date holds the calendar day encoded as
// UTC midnight; StartsAt is the free-form time label shown next to it.
type Event struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Title       string    `gorm:"column:title;type:varchar(200);not null"`
	Date        time.Time `gorm:"column:date;type:date;not null;index:idx_events_date"`
	StartsAt    string    `gorm:"column:starts_at;type:varchar(40)"`
	Location    string    `gorm:"column:location;type:varchar(200)"`
	Description string    `gorm:"column:description;type:text"`
	CreatedBy   uuid.UUID `gorm:"column:created_by;type:uuid;not null"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (Event) TableName() string {
	return "events"
}

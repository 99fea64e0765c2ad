package timeentry

import (
	"time"

	"github.com/google/uuid"
)

const (
	SourceWeb = "WEB"

	// OpenEntryIndex allows a single row per user with clock_out IS NULL.
	OpenEntryIndex   = "uq_time_entries_open_user"
	openEntryColumns = "time_entries.user_id"
)

type TimeEntry struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	UserID    uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index;uniqueIndex:uq_time_entries_open_user,where:clock_out IS NULL"`
	ClockIn   time.Time  `gorm:"column:clock_in;not null;index"`
	ClockOut  *time.Time `gorm:"column:clock_out"`
	Source    string     `gorm:"column:source;type:varchar(30);not null;default:WEB"`
	CreatedAt time.Time  `gorm:"column:created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at"`
}

func (TimeEntry) TableName() string {
	return "time_entries"
}

func (e TimeEntry) IsOpen() bool {
	return e.ClockOut == nil
}

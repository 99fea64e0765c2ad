package timeoff

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusDenied   = "DENIED"
)

// TimeOffRequest dates hold calendar days encoded as UTC midnight; see
// calendar.Civil.
type TimeOffRequest struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	UserID    uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index:idx_time_off_user"`
	Reason    string     `gorm:"column:reason;type:text;not null"`
	Status    string     `gorm:"column:status;type:varchar(20);not null;default:PENDING;index:idx_time_off_status_dates"`
	StartDate time.Time  `gorm:"column:start_date;type:date;not null;index:idx_time_off_status_dates"`
	EndDate   time.Time  `gorm:"column:end_date;type:date;not null;index:idx_time_off_status_dates"`
	DecidedBy *uuid.UUID `gorm:"column:decided_by;type:uuid"`
	DecidedAt *time.Time `gorm:"column:decided_at"`
	CreatedAt time.Time  `gorm:"column:created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at"`
	User      *UserRef   `gorm:"foreignKey:UserID;references:ID"`
}

func (TimeOffRequest) TableName() string {
	return "time_off_requests"
}

// UserRef is the slice of the identity provider's users table needed to
// label requests.
type UserRef struct {
	ID   uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name string    `gorm:"column:name"`
}

func (UserRef) TableName() string {
	return "users"
}

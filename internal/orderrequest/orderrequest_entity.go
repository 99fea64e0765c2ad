package orderrequest

import (
	"time"

	"github.com/google/uuid"
)

// OrderRequest asks for supplies to be purchased. Items is stored as a JSON
// array so the same column works on every driver.
type OrderRequest struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	RequesterID uuid.UUID  `gorm:"column:requester_id;type:uuid;not null;index:idx_order_requests_requester"`
	Items       []string   `gorm:"column:items;type:text;not null;serializer:json"`
	Details     string     `gorm:"column:details;type:text"`
	Reason      string     `gorm:"column:reason;type:text"`
	Ordered     bool       `gorm:"column:ordered;not null;default:false;index:idx_order_requests_ordered"`
	OrderedBy   *uuid.UUID `gorm:"column:ordered_by;type:uuid"`
	OrderedAt   *time.Time `gorm:"column:ordered_at"`
	CreatedAt   time.Time  `gorm:"column:created_at;index:idx_order_requests_created"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
	Requester   *UserRef   `gorm:"foreignKey:RequesterID;references:ID"`
}

func (OrderRequest) TableName() string {
	return "order_requests"
}

// UserRef is the part of the users table needed to name the requester.
type UserRef struct {
	ID   uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name string    `gorm:"column:name"`
}

func (UserRef) TableName() string {
	return "users"
}

package app

import (
	"go-staffhub/internal/audit"
	"go-staffhub/internal/event"
	"go-staffhub/internal/identity"
	"go-staffhub/internal/messaging/kafka"
	"go-staffhub/internal/orderrequest"
	"go-staffhub/internal/rsvp"
	"go-staffhub/internal/timeentry"
	"go-staffhub/internal/timeoff"

	"gorm.io/gorm"
)

// Migrate creates or updates every table the services read and write.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&identity.User{},
		&timeentry.TimeEntry{},
		&timeoff.TimeOffRequest{},
		&rsvp.Rsvp{},
		&event.Event{},
		&orderrequest.OrderRequest{},
		&kafka.OutboxEvent{},
		&audit.Entry{},
	)
}

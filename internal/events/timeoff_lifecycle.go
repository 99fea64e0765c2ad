package events

import "time"

const TimeOffLifecycleTopic = "staff.timeoff.lifecycle.v1"

const (
	TimeOffCreated       = "timeoff.created"
	TimeOffStatusChanged = "timeoff.status_changed"
	TimeOffDeleted       = "timeoff.deleted"
)

type TimeOffLifecycleEvent struct {
	EventID        string    `json:"event_id"`
	EventType      string    `json:"event_type"`
	RequestID      string    `json:"request_id,omitempty"`
	TimeOffID      string    `json:"time_off_id"`
	UserID         string    `json:"user_id"`
	ActorID        string    `json:"actor_id"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	StartDate      string    `json:"start_date"`
	EndDate        string    `json:"end_date"`
	OccurredAt     time.Time `json:"occurred_at"`
}

package audit

type EntryResponse struct {
	EventType      string `json:"event_type"`
	Status         string `json:"status"`
	PreviousStatus string `json:"previous_status,omitempty"`
	ActorID        string `json:"actor_id"`
	RequestID      string `json:"request_id,omitempty"`
	OccurredAt     string `json:"occurred_at"`
}

package rsvp

type CreateRsvpRequest struct {
	EventID string `json:"event_id" binding:"required,max=100"`
}

type RsvpResponse struct {
	ID        string `json:"id"`
	EventID   string `json:"event_id"`
	UserID    string `json:"user_id"`
	CreatedAt string `json:"created_at"`
}

type UserEventsResponse struct {
	UserID   string   `json:"user_id"`
	EventIDs []string `json:"event_ids"`
}

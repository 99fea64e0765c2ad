package event

type CreateEventRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"max=40"`
	Location    string `json:"location" binding:"max=200"`
	Description string `json:"description" binding:"max=2000"`
}

// UpdateEventRequest changes only the fields that are present.
type UpdateEventRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=200"`
	Date        *string `json:"date"`
	Time        *string `json:"time" binding:"omitempty,max=40"`
	Location    *string `json:"location" binding:"omitempty,max=200"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
}

type ListEventsQuery struct {
	From string `form:"from"`
	To   string `form:"to"`
}

type EventResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Location    string `json:"location"`
	Description string `json:"description"`
	CreatedBy   string `json:"created_by"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

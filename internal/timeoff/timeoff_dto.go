package timeoff

type CreateTimeOffRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Reason    string `json:"reason" binding:"required"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type RangeQuery struct {
	From string `form:"from"`
	To   string `form:"to"`
}

type TimeOffResponse struct {
	ID        string  `json:"id"`
	UserID    string  `json:"user_id"`
	UserName  string  `json:"user_name"`
	Reason    string  `json:"reason"`
	Status    string  `json:"status"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	TotalDays int     `json:"total_days"`
	DecidedBy *string `json:"decided_by,omitempty"`
	DecidedAt *string `json:"decided_at,omitempty"`
	CreatedAt string  `json:"created_at"`
}

type CalendarResponse struct {
	From string                       `json:"from"`
	To   string                       `json:"to"`
	Days map[string][]TimeOffResponse `json:"days"`
}

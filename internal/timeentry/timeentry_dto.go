package timeentry

type ClockInRequest struct {
	Source string `json:"source" binding:"omitempty,max=30"`
}

type ListEntriesRequest struct {
	Since    string `form:"since"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

type TimeEntryResponse struct {
	ID       string  `json:"id"`
	UserID   string  `json:"user_id"`
	ClockIn  string  `json:"clock_in"`
	ClockOut *string `json:"clock_out"`
	Source   string  `json:"source"`
	Hours    float64 `json:"hours"`
}

type StatusResponse struct {
	ClockedIn     bool    `json:"clocked_in"`
	ActiveEntryID *string `json:"active_entry_id"`
	Since         *string `json:"since"`
}

type WeeklyTotalResponse struct {
	WeekStart   string  `json:"week_start"`
	WeekEnd     string  `json:"week_end"`
	TotalHours  float64 `json:"total_hours"`
	OpenEntries int     `json:"open_entries"`
}

package timeoff

import (
	"time"

	"go-staffhub/internal/calendar"
)

func mapToResponse(r TimeOffRequest) TimeOffResponse {
	res := TimeOffResponse{
		ID:        r.ID.String(),
		UserID:    r.UserID.String(),
		Reason:    r.Reason,
		Status:    r.Status,
		StartDate: calendar.DayKey(r.StartDate.UTC()),
		EndDate:   calendar.DayKey(r.EndDate.UTC()),
		TotalDays: calendar.SpanDays(r.StartDate.UTC(), r.EndDate.UTC()),
		CreatedAt: r.CreatedAt.UTC().Format(time.RFC3339),
	}
	if r.User != nil {
		res.UserName = r.User.Name
	}
	if r.DecidedBy != nil {
		by := r.DecidedBy.String()
		res.DecidedBy = &by
	}
	if r.DecidedAt != nil {
		at := r.DecidedAt.UTC().Format(time.RFC3339)
		res.DecidedAt = &at
	}
	return res
}

func mapToListResponse(rows []TimeOffRequest) []TimeOffResponse {
	out := make([]TimeOffResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, mapToResponse(r))
	}
	return out
}

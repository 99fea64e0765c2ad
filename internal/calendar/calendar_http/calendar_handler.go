package calendar_http

import (
	"net/http"
	"time"

	"go-staffhub/internal/calendar"
	"go-staffhub/internal/shared/apperror"
	"go-staffhub/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// MaxSpanDays bounds a single expansion request.
const MaxSpanDays = 366

type DaysQuery struct {
	Start string `form:"start" binding:"required"`
	End   string `form:"end" binding:"required"`
}

type DaysResponse struct {
	Start string   `json:"start"`
	End   string   `json:"end"`
	Days  []string `json:"days"`
}

type Handler struct {
	loc *time.Location
}

func NewHandler(loc *time.Location) *Handler {
	if loc == nil {
		loc = time.Local
	}
	return &Handler{loc: loc}
}

// DaysCovered lists every yyyy-mm-dd key in [start, end]. A reversed range
// yields an empty list.
func (h *Handler) DaysCovered(c *gin.Context) {
	var q DaysQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Fail(c, apperror.MapValidationError(err))
		return
	}

	start, err := calendar.ParseLocalDate(q.Start, h.loc)
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "start: "+err.Error(), nil)
		return
	}
	end, err := calendar.ParseLocalDate(q.End, h.loc)
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "end: "+err.Error(), nil)
		return
	}
	if calendar.SpanDays(start, end) > MaxSpanDays {
		response.Error(c, http.StatusUnprocessableEntity, apperror.CodeInvalidRange, "range must not exceed one year", nil)
		return
	}

	days := calendar.DaysCovered(start, end)
	if days == nil {
		days = []string{}
	}
	response.Success(c, http.StatusOK, DaysResponse{Start: q.Start, End: q.End, Days: days}, nil)
}

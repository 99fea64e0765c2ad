package timeentry

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"go-staffhub/internal/calendar"
	"go-staffhub/internal/identity"
	"go-staffhub/internal/shared/apperror"
	"go-staffhub/internal/shared/response"
	timeentryerrors "go-staffhub/internal/timeentry/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	loc     *time.Location
	logger  *zap.Logger
}

func NewHandler(service Service, loc *time.Location, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("timeentry.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("timeentry.handler")
	}
	if loc == nil {
		loc = time.Local
	}
	return &Handler{service: service, loc: loc, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	fields := []zap.Field{
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	}
	if apperror.IsUnexpected(err) {
		h.logger.Error("time entry request failed", append(fields, zap.Error(err))...)
	} else {
		h.logger.Debug("time entry request rejected", fields...)
	}
	response.Fail(c, err)
}

func (h *Handler) actor(c *gin.Context) (identity.Actor, bool) {
	actor, ok := identity.FromGin(c)
	if !ok {
		response.Fail(c, apperror.ErrUnauthorized)
	}
	return actor, ok
}

func (h *Handler) ClockIn(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req ClockInRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.ClockIn(c.Request.Context(), actor.ID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) ClockOut(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	resp, err := h.service.ClockOut(c.Request.Context(), actor.ID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// Status answers for anonymous callers too, reporting them as not clocked in.
func (h *Handler) Status(c *gin.Context) {
	actor, ok := identity.FromGin(c)
	if !ok {
		response.Success(c, http.StatusOK, StatusResponse{}, nil)
		return
	}

	resp, err := h.service.GetStatus(c.Request.Context(), actor.ID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) parseSince(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	since, err := calendar.ParseLocalDate(raw, h.loc)
	if err != nil {
		return time.Time{}, timeentryerrors.ErrInvalidSince
	}
	return since, nil
}

func (h *Handler) ListEntries(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req ListEntriesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	since, err := h.parseSince(req.Since)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.ListEntries(c.Request.Context(), actor.ID, since)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page, meta := response.Paginate(resp, req.Page, req.PageSize)
	response.Success(c, http.StatusOK, page, &meta)
}

func (h *Handler) WeeklyTotals(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	since, err := h.parseSince(c.Query("since"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.WeeklyTotals(c.Request.Context(), actor.ID, since)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

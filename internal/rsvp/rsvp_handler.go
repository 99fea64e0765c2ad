package rsvp

import (
	"net/http"

	"go-staffhub/internal/identity"
	"go-staffhub/internal/shared/apperror"
	"go-staffhub/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("rsvp.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rsvp.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	if apperror.IsUnexpected(err) {
		h.logger.Error("rsvp request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	response.Fail(c, err)
}

func (h *Handler) Create(c *gin.Context) {
	actor, ok := identity.FromGin(c)
	if !ok {
		response.Fail(c, apperror.ErrUnauthorized)
		return
	}

	var req CreateRsvpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) ListByUser(c *gin.Context) {
	resp, err := h.service.ListEventIDsByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	actor, ok := identity.FromGin(c)
	if !ok {
		response.Fail(c, apperror.ErrUnauthorized)
		return
	}

	if err := h.service.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

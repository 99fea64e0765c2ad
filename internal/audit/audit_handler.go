package audit

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
	l := zap.L().Named("audit.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) History(c *gin.Context) {
	actor, ok := identity.FromGin(c)
	if !ok {
		response.Fail(c, apperror.ErrUnauthorized)
		return
	}

	resp, err := h.service.History(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		if apperror.IsUnexpected(err) {
			h.logger.Error("time off history failed", zap.Error(err))
		}
		response.Fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

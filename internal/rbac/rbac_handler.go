package rbac

import (
	"net/http"
	"strings"

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
	l := zap.L()
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &Handler{service: service, logger: l.Named("rbac.handler")}
}

// Enforce answers whether the caller's own role grants resource:action.
func (h *Handler) Enforce(c *gin.Context) {
	actor, ok := identity.FromGin(c)
	if !ok {
		response.Fail(c, apperror.ErrUnauthorized)
		return
	}

	var req EnforceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperror.MapValidationError(err))
		return
	}

	req.Role = actor.Role
	req.Resource = strings.TrimSpace(req.Resource)
	req.Action = strings.TrimSpace(req.Action)

	allowed, err := h.service.Enforce(req)
	if err != nil {
		h.logger.Error("rbac enforce failed", zap.Error(err))
		response.Fail(c, apperror.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, EnforceResponse{Allowed: allowed}, nil)
}

func (h *Handler) MyPermissions(c *gin.Context) {
	actor, ok := identity.FromGin(c)
	if !ok {
		response.Fail(c, apperror.ErrUnauthorized)
		return
	}

	perms, err := h.service.PermissionsFor(actor.Role)
	if err != nil {
		h.logger.Error("list permissions failed", zap.Error(err))
		response.Fail(c, apperror.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, perms, nil)
}

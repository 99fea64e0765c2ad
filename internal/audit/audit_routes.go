package audit

import (
	"go-staffhub/internal/middleware"
	"go-staffhub/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	auth *middleware.Authenticator,
) {
	r.GET("/timeoff/:id/history",
		auth.Required(),
		middleware.RBACAuthorize(rbacService, rbac.ResourceTimeOff, rbac.ActionRead),
		handler.History,
	)
}

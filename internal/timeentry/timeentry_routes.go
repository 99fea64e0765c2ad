package timeentry

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
	writeLimit gin.HandlerFunc,
) {
	group := r.Group("/time")
	group.GET("/status", auth.Optional(), handler.Status)

	self := group.Group("")
	self.Use(auth.Required())
	{
		self.POST("/clock-in", writeLimit, middleware.RBACAuthorize(rbacService, rbac.ResourceTime, rbac.ActionWrite), handler.ClockIn)
		self.POST("/clock-out", writeLimit, middleware.RBACAuthorize(rbacService, rbac.ResourceTime, rbac.ActionWrite), handler.ClockOut)
		self.GET("/entries", middleware.RBACAuthorize(rbacService, rbac.ResourceTime, rbac.ActionRead), handler.ListEntries)
		self.GET("/weekly", middleware.RBACAuthorize(rbacService, rbac.ResourceTime, rbac.ActionRead), handler.WeeklyTotals)
	}
}

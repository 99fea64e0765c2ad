package timeoff

import (
	"go-staffhub/internal/middleware"
	"go-staffhub/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	auth *middleware.Authenticator,
	rdb *redis.Client,
	writeLimit gin.HandlerFunc,
) {
	group := r.Group("/timeoff")
	group.Use(auth.Required())
	{
		group.GET("", middleware.RBACAuthorize(rbacService, rbac.ResourceTimeOff, rbac.ActionRead), handler.List)
		group.GET("/day", middleware.RBACAuthorize(rbacService, rbac.ResourceTimeOff, rbac.ActionRead), handler.ListForDay)
		group.GET("/calendar", middleware.RBACAuthorize(rbacService, rbac.ResourceCalendar, rbac.ActionRead), handler.Calendar)
		group.POST("",
			writeLimit,
			middleware.RBACAuthorize(rbacService, rbac.ResourceTimeOff, rbac.ActionWrite),
			middleware.Idempotency(rdb, middleware.DefaultIdempotentTTL),
			handler.Create,
		)
		group.PATCH("/:id", writeLimit, middleware.RBACAuthorize(rbacService, rbac.ResourceTimeOff, rbac.ActionApprove), handler.UpdateStatus)
		group.DELETE("/:id", writeLimit, middleware.RBACAuthorize(rbacService, rbac.ResourceTimeOff, rbac.ActionDelete), handler.Delete)
	}
}

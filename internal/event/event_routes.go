package event

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
	group := r.Group("/events")
	group.Use(auth.Required())
	{
		group.GET("", middleware.RBACAuthorize(rbacService, rbac.ResourceEvent, rbac.ActionRead), handler.List)
		group.GET("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceEvent, rbac.ActionRead), handler.Get)
		group.POST("",
			writeLimit,
			middleware.RBACAuthorize(rbacService, rbac.ResourceEvent, rbac.ActionWrite),
			middleware.Idempotency(rdb, middleware.DefaultIdempotentTTL),
			handler.Create,
		)
		group.PATCH("/:id", writeLimit, middleware.RBACAuthorize(rbacService, rbac.ResourceEvent, rbac.ActionWrite), handler.Update)
		group.DELETE("/:id", writeLimit, middleware.RBACAuthorize(rbacService, rbac.ResourceEvent, rbac.ActionDelete), handler.Delete)
	}
}

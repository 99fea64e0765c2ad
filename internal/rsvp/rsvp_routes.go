package rsvp

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
	group := r.Group("/rsvps")
	group.Use(auth.Required())
	{
		group.POST("",
			writeLimit,
			middleware.RBACAuthorize(rbacService, rbac.ResourceRsvp, rbac.ActionWrite),
			middleware.Idempotency(rdb, middleware.DefaultIdempotentTTL),
			handler.Create,
		)
		group.GET("/users/:userId", middleware.RBACAuthorize(rbacService, rbac.ResourceRsvp, rbac.ActionRead), handler.ListByUser)
		group.DELETE("/:id", writeLimit, middleware.RBACAuthorize(rbacService, rbac.ResourceRsvp, rbac.ActionDelete), handler.Delete)
	}
}

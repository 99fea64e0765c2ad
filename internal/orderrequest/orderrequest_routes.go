package orderrequest

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
	group := r.Group("/order-requests")
	group.Use(auth.Required())
	{
		group.GET("", middleware.RBACAuthorize(rbacService, rbac.ResourceOrder, rbac.ActionRead), handler.List)
		group.POST("",
			writeLimit,
			middleware.RBACAuthorize(rbacService, rbac.ResourceOrder, rbac.ActionWrite),
			middleware.Idempotency(rdb, middleware.DefaultIdempotentTTL),
			handler.Create,
		)
		group.PATCH("/:id", writeLimit, middleware.RBACAuthorize(rbacService, rbac.ResourceOrder, rbac.ActionApprove), handler.MarkOrdered)
		group.DELETE("/:id", writeLimit, middleware.RBACAuthorize(rbacService, rbac.ResourceOrder, rbac.ActionDelete), handler.Delete)
	}
}

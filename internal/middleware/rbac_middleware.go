package middleware

import (
	"go-staffhub/internal/identity"
	"go-staffhub/internal/rbac"
	"go-staffhub/internal/shared/apperror"
	"go-staffhub/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RBACService is satisfied by rbac.Service.
type RBACService interface {
	Enforce(req rbac.EnforceRequest) (bool, error)
}

func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := identity.FromGin(c)
		if !ok {
			response.Fail(c, apperror.ErrUnauthorized)
			c.Abort()
			return
		}

		allowed, err := service.Enforce(rbac.EnforceRequest{
			Role:     actor.Role,
			Resource: resource,
			Action:   action,
		})
		if err != nil {
			zap.L().Error("rbac enforce failed",
				zap.String("resource", resource),
				zap.String("action", action),
				zap.Error(err),
			)
			response.Fail(c, apperror.ErrInternal)
			c.Abort()
			return
		}

		if !allowed {
			response.Error(c, apperror.ErrForbidden.HTTPStatus, apperror.CodeForbidden, apperror.ErrForbidden.Message, map[string]string{
				"required": resource + ":" + action,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

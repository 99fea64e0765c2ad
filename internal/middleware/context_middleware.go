package middleware

import (
	"context"

	"go-staffhub/internal/identity"
	"go-staffhub/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContextLogger runs after RequestID and hands services a logger tagged with
// the request metadata. Authenticator re-tags it once the actor is known.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if actor, ok := identity.FromGin(c); ok {
			ctx = contextutil.WithActor(ctx, actor.ID, actor.Role)
		}
		c.Request = c.Request.WithContext(withScopedLogger(ctx, logger))
		c.Next()
	}
}

func withScopedLogger(ctx context.Context, base *zap.Logger) context.Context {
	return contextutil.WithLogger(ctx, base.With(contextutil.MetadataFrom(ctx).Fields()...))
}

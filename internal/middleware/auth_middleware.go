package middleware

import (
	"strings"

	"go-staffhub/internal/identity"
	"go-staffhub/internal/shared/contextutil"
	"go-staffhub/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Authenticator verifies session tokens issued by the identity provider.
type Authenticator struct {
	secret string
}

func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{secret: secret}
}

func tokenFromRequest(c *gin.Context) string {
	tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	if !found {
		tokenString = ""
	}

	if tokenString == "" {
		if cookie, err := c.Cookie("access_token"); err == nil {
			tokenString = cookie
		}
	}
	return strings.TrimSpace(tokenString)
}

// Required rejects requests without a valid session.
func (a *Authenticator) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, err := identity.ParseToken(a.secret, tokenFromRequest(c))
		if err != nil {
			response.Fail(c, err)
			c.Abort()
			return
		}

		attachActor(c, actor)
		c.Next()
	}
}

func attachActor(c *gin.Context, actor identity.Actor) {
	identity.Set(c, actor)

	ctx := c.Request.Context()
	logger := contextutil.Logger(ctx, zap.L()).With(
		zap.String("user_id", actor.ID),
		zap.String("role", actor.Role),
	)
	ctx = contextutil.WithActor(ctx, actor.ID, actor.Role)
	c.Request = c.Request.WithContext(contextutil.WithLogger(ctx, logger))
}

// Optional attaches the actor when a valid session is present and lets the
// request through either way.
func (a *Authenticator) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if actor, err := identity.ParseToken(a.secret, tokenFromRequest(c)); err == nil {
			attachActor(c, actor)
		}
		c.Next()
	}
}

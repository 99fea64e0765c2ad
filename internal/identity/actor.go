// Package identity carries the verified caller through a request. Sessions
// are issued elsewhere; this package only reads them.
package identity

import (
	"context"
	"strings"

	"go-staffhub/internal/authz"

	"github.com/gin-gonic/gin"
)

// Actor is the authenticated caller as reported by the identity provider.
type Actor struct {
	ID   string
	Role string
}

func (a Actor) IsZero() bool {
	return strings.TrimSpace(a.ID) == ""
}

func (a Actor) IsPrivileged() bool {
	return authz.IsPrivileged(a.Role)
}

type ctxKey struct{}

const (
	ginActorKey = "actor"
	ginUserKey  = "user_id"
	ginRoleKey  = "role"
)

func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, ctxKey{}, a)
}

func FromContext(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(ctxKey{}).(Actor)
	if !ok || a.IsZero() {
		return Actor{}, false
	}
	return a, true
}

// Set stores the actor on the gin context and on the request context so
// both handlers and services can read it.
func Set(c *gin.Context, a Actor) {
	c.Set(ginActorKey, a)
	c.Set(ginUserKey, a.ID)
	c.Set(ginRoleKey, a.Role)
	c.Request = c.Request.WithContext(WithActor(c.Request.Context(), a))
}

func FromGin(c *gin.Context) (Actor, bool) {
	v, exists := c.Get(ginActorKey)
	if !exists {
		return Actor{}, false
	}
	a, ok := v.(Actor)
	if !ok || a.IsZero() {
		return Actor{}, false
	}
	return a, true
}

package contextutil

import (
	"context"

	"go.uber.org/zap"
)

type scopeKey struct{}

// Metadata identifies the request and the actor behind it. Every field is
// optional: background jobs carry none, anonymous requests carry only the
// request id.
type Metadata struct {
	RequestID string
	ActorID   string
	ActorRole string
}

// Fields renders the non-empty metadata as zap fields.
func (m Metadata) Fields() []zap.Field {
	fields := make([]zap.Field, 0, 3)
	if m.RequestID != "" {
		fields = append(fields, zap.String("request_id", m.RequestID))
	}
	if m.ActorID != "" {
		fields = append(fields, zap.String("user_id", m.ActorID))
	}
	if m.ActorRole != "" {
		fields = append(fields, zap.String("role", m.ActorRole))
	}
	return fields
}

type scope struct {
	meta   Metadata
	logger *zap.Logger
}

func scopeFrom(ctx context.Context) scope {
	if ctx == nil {
		return scope{}
	}
	if s, ok := ctx.Value(scopeKey{}).(scope); ok {
		return s
	}
	return scope{}
}

func with(ctx context.Context, update func(*scope)) context.Context {
	s := scopeFrom(ctx)
	update(&s)
	return context.WithValue(ctx, scopeKey{}, s)
}

func WithRequestID(ctx context.Context, rid string) context.Context {
	return with(ctx, func(s *scope) { s.meta.RequestID = rid })
}

func RequestID(ctx context.Context) string {
	return scopeFrom(ctx).meta.RequestID
}

// WithActor records who is making the request.
func WithActor(ctx context.Context, id, role string) context.Context {
	return with(ctx, func(s *scope) {
		s.meta.ActorID = id
		s.meta.ActorRole = role
	})
}

func ActorID(ctx context.Context) string {
	return scopeFrom(ctx).meta.ActorID
}

func MetadataFrom(ctx context.Context) Metadata {
	return scopeFrom(ctx).meta
}

func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return with(ctx, func(s *scope) { s.logger = logger })
}

// Logger returns the request logger, falling back to fallback and finally to
// a no-op logger so callers never get nil.
func Logger(ctx context.Context, fallback *zap.Logger) *zap.Logger {
	if l := scopeFrom(ctx).logger; l != nil {
		return l
	}
	if fallback != nil {
		return fallback
	}
	return zap.NewNop()
}

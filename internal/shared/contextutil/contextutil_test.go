package contextutil_test

import (
	"context"
	"testing"

	"go-staffhub/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMetadataAccumulates(t *testing.T) {
	ctx := contextutil.WithRequestID(context.Background(), "rid-1")
	ctx = contextutil.WithActor(ctx, "u-1", "ADMIN")

	assert.Equal(t, "rid-1", contextutil.RequestID(ctx))
	assert.Equal(t, "u-1", contextutil.ActorID(ctx))
	assert.Equal(t, contextutil.Metadata{RequestID: "rid-1", ActorID: "u-1", ActorRole: "ADMIN"}, contextutil.MetadataFrom(ctx))

	// Parent context is untouched.
	parent := contextutil.WithRequestID(context.Background(), "rid-2")
	_ = contextutil.WithActor(parent, "u-2", "EMPLOYEE")
	assert.Empty(t, contextutil.ActorID(parent))
}

func TestMetadataFieldsSkipsEmpty(t *testing.T) {
	assert.Empty(t, contextutil.Metadata{}.Fields())

	fields := contextutil.Metadata{RequestID: "rid"}.Fields()
	if assert.Len(t, fields, 1) {
		assert.Equal(t, "request_id", fields[0].Key)
	}
}

func TestLoggerFallbacks(t *testing.T) {
	assert.NotNil(t, contextutil.Logger(context.Background(), nil))

	fallback := zap.NewExample()
	assert.Same(t, fallback, contextutil.Logger(context.Background(), fallback))

	core, logs := observer.New(zapcore.InfoLevel)
	scoped := zap.New(core)
	ctx := contextutil.WithLogger(context.Background(), scoped)
	ctx = contextutil.WithActor(ctx, "u-3", "MANAGER")
	contextutil.Logger(ctx, fallback).Info("hello")
	assert.Equal(t, 1, logs.Len())
}

package bootstrap

import (
	"context"
	"time"

	"go-staffhub/internal/shared/contextutil"

	"go.uber.org/zap"
)

// StdoutAuditLogger writes audit entries through zap on the "audit" logger.
type StdoutAuditLogger struct {
	logger *zap.Logger
	now    func() time.Time
}

func NewStdoutAuditLogger(logger ...*zap.Logger) *StdoutAuditLogger {
	l := zap.L()
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &StdoutAuditLogger{logger: l.Named("audit"), now: time.Now}
}

func (l *StdoutAuditLogger) Log(ctx context.Context, entry AuditLog) {
	fields := []zap.Field{
		zap.String("timestamp", l.now().UTC().Format(time.RFC3339)),
		zap.String("action", entry.Action),
		zap.String("message", entry.Message),
		zap.Any("meta", entry.Meta),
	}
	fields = append(fields, contextutil.MetadataFrom(ctx).Fields()...)
	l.logger.Info("audit event", fields...)
}

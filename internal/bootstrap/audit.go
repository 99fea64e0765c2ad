package bootstrap

import (
	"context"
	"strings"
)

// AuditLog is an operational event of a process, such as startup or
// shutdown.
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}

// RunProcess runs a background process between <NAME>_STARTED and
// <NAME>_STOPPED audit entries and returns run's error.
func RunProcess(ctx context.Context, name, description string, auditLogger AuditLogger, run func(context.Context) error) error {
	action := strings.ToUpper(name)
	auditLogger.Log(ctx, AuditLog{Action: action + "_STARTED", Message: description + " starting"})

	err := run(ctx)

	meta := map[string]any{"cancelled": ctx.Err() != nil}
	if err != nil {
		meta["error"] = err.Error()
	}
	// ctx is usually cancelled by now; the entry still has to be written.
	auditLogger.Log(context.WithoutCancel(ctx), AuditLog{Action: action + "_STOPPED", Message: description + " stopped", Meta: meta})
	return err
}

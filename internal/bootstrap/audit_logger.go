package bootstrap

import "context"

// AuditLog is a process-level audit entry: lifecycle events of the server
// itself rather than domain mutations.
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}

package contextutil

import "context"

// Unexported key type keeps the request id from colliding with other
// context values.
type contextKey string

const requestIDKey contextKey = "request_id"

// GetRequestID reads the request id propagated by the middleware.
// Empty when the context never went through it (workers, tests).
func GetRequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey).(string); ok {
		return rid
	}
	return ""
}

// WithRequestID injects a request id, mainly for unit tests and for
// consumers re-attaching the id carried in an event payload.
func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey, rid)
}

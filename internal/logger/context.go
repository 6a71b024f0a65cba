package logger

import "context"

// contextKey namespaces this package's context values.
type contextKey struct{}

var requestIDKey = contextKey{}

// WithRequestID stores the request id that tags every log record emitted
// while handling one API call.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestID returns the request id from ctx, or "" when none was assigned.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

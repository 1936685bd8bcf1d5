// Package observability carries request-scoped fields into structured logs.
package observability

import "context"

type contextKey int

const (
	requestIDKey contextKey = iota
	routeKey
)

// WithRequestID stores the request identifier on the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFromContext returns the stored request identifier, if any.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	value, ok := ctx.Value(requestIDKey).(string)
	return value, ok && value != ""
}

// WithRoute stores the matched route pattern on the context.
func WithRoute(ctx context.Context, route string) context.Context {
	if route == "" {
		return ctx
	}
	return context.WithValue(ctx, routeKey, route)
}

// RouteFromContext returns the stored route pattern, if any.
func RouteFromContext(ctx context.Context) (string, bool) {
	value, ok := ctx.Value(routeKey).(string)
	return value, ok && value != ""
}

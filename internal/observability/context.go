package observability

import (
	"context"
)

// Context keys for observability data.
type contextKey string

const (
	requestIDKey   contextKey = "request_id"
	importRunIDKey contextKey = "import_run_id"
)

// WithRequestID adds a request ID to the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFromContext retrieves the request ID from context.
// Returns empty string if not present.
func RequestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

// WithImportRunID adds an import run ID to the context.
func WithImportRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, importRunIDKey, runID)
}

// ImportRunIDFromContext retrieves the import run ID from context.
// Returns empty string if not present.
func ImportRunIDFromContext(ctx context.Context) string {
	if v := ctx.Value(importRunIDKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

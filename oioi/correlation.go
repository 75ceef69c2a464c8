package oioi

import (
	"context"
	"strings"

	"oioi/utility"
)

type correlationContextKey struct{}

// WithCorrelationID annotates ctx with an identifier linking this call to
// the caller's own tracing. Blank values are ignored.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	id = strings.TrimSpace(id)
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, correlationContextKey{}, id)
}

// CorrelationIDFromContext extracts the identifier carried by ctx, if present.
func CorrelationIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(correlationContextKey{}).(string); ok {
		return v
	}
	return ""
}

func correlationID(ctx context.Context) string {
	if id := CorrelationIDFromContext(ctx); id != "" {
		return id
	}
	return utility.NewUUID()
}

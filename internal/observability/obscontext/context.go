// Package obscontext carries request-scoped correlation identifiers.
package obscontext

import (
	"context"
	"strings"
)

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	quoteIDKey   contextKey = "quote_id"
)

// WithRequestID stores the request id on the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFromContext returns the request id, or empty when absent.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// WithQuoteID stores the quote id a request is operating on.
func WithQuoteID(ctx context.Context, quoteID string) context.Context {
	quoteID = strings.TrimSpace(quoteID)
	if quoteID == "" {
		return ctx
	}
	return context.WithValue(ctx, quoteIDKey, quoteID)
}

// QuoteIDFromContext returns the quote id, or empty when absent.
func QuoteIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(quoteIDKey).(string); ok {
		return v
	}
	return ""
}

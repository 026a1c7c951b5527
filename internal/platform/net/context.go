// Package net provides utilities for working with request contexts
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// ctxKey is an unexported key type for context values
type ctxKey string

const (
	keyUnit ctxKey = "unit"
)

// WithRequest annotates context with common request scoped ids
// unit is the content unit key ("joke", "morning", ...) when the request
// targets a single unit
func WithRequest(ctx context.Context, reqID, unit string) context.Context {
	if reqID != "" {
		// set chi RequestID so chimw.GetReqID can retrieve it
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	if unit != "" {
		ctx = context.WithValue(ctx, keyUnit, unit)
	}
	return ctx
}

// WithUnit annotates context with the content unit being worked on
func WithUnit(ctx context.Context, unit string) context.Context {
	if unit != "" {
		ctx = context.WithValue(ctx, keyUnit, unit)
	}
	return ctx
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string {
	if v := chimw.GetReqID(ctx); v != "" {
		return v
	}
	return ""
}

// Unit returns the content unit key on the context if present
func Unit(ctx context.Context) string {
	if v, ok := ctx.Value(keyUnit).(string); ok {
		return v
	}
	return ""
}

// Package net holds the transport pieces shared by the http stack: the envelope and request context keys
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type ctxKey struct{}

// WithOperator stores the acting operator id
func WithOperator(ctx context.Context, operator int64) context.Context {
	return context.WithValue(ctx, ctxKey{}, operator)
}

// Operator returns the acting operator; 0 is the anonymous operator
func Operator(ctx context.Context) int64 {
	v, _ := ctx.Value(ctxKey{}).(int64)
	return v
}

// RequestID returns the id chi's RequestID middleware assigned, if any
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

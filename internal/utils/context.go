// Package utils provides general-purpose helpers shared across skyshelf:
// typed context keys, keyed hashing for ETags, JSON response writing, the
// resty client wrapper, unverified JWT claim parsing and ID generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
func (c contextKey) String() string {
	return string(c)
}

// TraceIDCtxKey is the key under which the HTTP layer stores the request
// trace ID.
var TraceIDCtxKey = contextKey("traceID")

// CollectionCtxKey is the key under which the collection being processed is
// stored for log enrichment.
var CollectionCtxKey = contextKey("collection")

// GetTraceIDFromContext retrieves the trace ID stored by the HTTP layer.
// ok is false when the value is missing or not a string.
func GetTraceIDFromContext(ctx context.Context) (string, bool) {
	traceID, ok := ctx.Value(TraceIDCtxKey).(string)
	return traceID, ok
}

// GetCollectionFromContext retrieves the collection name stored in ctx.
func GetCollectionFromContext(ctx context.Context) (string, bool) {
	collection, ok := ctx.Value(CollectionCtxKey).(string)
	return collection, ok
}

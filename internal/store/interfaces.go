// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store implements the local cache store: a key/value table of
// opaque serialized blobs backed by SQLite, PostgreSQL, bolt or memory.
package store

import (
	"context"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/cache_store_mock.go -package=mock

// CacheStore persists opaque serialized values under string keys.
//
// Get returns [ErrCacheEntryNotFound] for an absent key. Set overwrites any
// existing value. Delete of an absent key is not an error.
type CacheStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// ErrorClassificator decides whether a failed database operation may
// succeed on retry.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

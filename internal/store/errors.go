// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by cache stores. Callers should use [errors.Is]
// to match against these values.
var (
	// ErrCacheEntryNotFound is returned by Get when no value is stored under
	// the requested key.
	ErrCacheEntryNotFound = errors.New("cache entry not found")

	// ErrUnsupportedDSN is returned when the configured DSN selects no known
	// backend.
	ErrUnsupportedDSN = errors.New("unsupported cache DSN")

	// ErrStorageUnavailable wraps failures classified as retryable, such as
	// a lost connection.
	ErrStorageUnavailable = errors.New("cache storage unavailable")

	// ErrStoreClosed is returned by the memory store after Close.
	ErrStoreClosed = errors.New("cache store is closed")
)

// Low-level database operation errors.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when a result row cannot be scanned.
	ErrScanningRow = errors.New("error scanning row")

	// ErrOpeningBolt is returned when the bolt file cannot be opened or its
	// bucket cannot be created.
	ErrOpeningBolt = errors.New("error opening bolt database")
)

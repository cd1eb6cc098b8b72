// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	// ErrMalformedCache is returned when a cached blob exists but lacks the
	// posts field, for example one written by an older release.
	ErrMalformedCache = errors.New("old or malformed cache")

	// ErrUnknownCollection is returned for a collection name with no source.
	ErrUnknownCollection = errors.New("unknown collection")

	// ErrNotAuthenticated is returned when an operation needs an account
	// session and none is available.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrFetchSuperseded is returned by a fetch that was cancelled by a newer
	// fetch of the same collection. It never becomes an error state.
	ErrFetchSuperseded = errors.New("fetch superseded by a newer fetch")

	// ErrNoData is returned by statistics when the collection was never
	// indexed.
	ErrNoData = errors.New("collection is not indexed")

	ErrVersionIsNotSpecified = errors.New("version is not specified")
)

// ErrOrchestratorClosed is returned by fetches started after Close.
var ErrOrchestratorClosed = errors.New("orchestrator is closed")

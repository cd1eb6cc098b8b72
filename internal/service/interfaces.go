// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service holds the cache pipeline: per-collection sources built on
// a cursor fetcher and a cross-referencer, the cache service, the fetch
// orchestrator, the account session, statistics and the refresh job.
package service

import (
	"context"
	"time"

	"github.com/MKhiriev/sky-shelf/internal/pipeline"
	"github.com/MKhiriev/sky-shelf/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AppInfoService exposes build information.
type AppInfoService interface {
	// GetAppVersion returns the configured application version.
	GetAppVersion(ctx context.Context) string
}

// CollectionSource fetches one collection from the network in full.
type CollectionSource interface {
	// Collection names the collection this source produces.
	Collection() models.Collection

	// Fetch runs every page and batch request and returns the complete
	// result. Any request failure fails the whole fetch.
	Fetch(ctx context.Context) (*models.FetchData, error)
}

// CacheService reads and writes the serialized collection snapshots and
// the small UI keys kept next to them.
type CacheService interface {
	// Load returns the cached data of c, or nil without error when nothing
	// is cached. A blob without posts yields ErrMalformedCache.
	Load(ctx context.Context, c models.Collection) (*models.FetchData, error)

	// Save replaces the cached data of c.
	Save(ctx context.Context, c models.Collection, data *models.FetchData) error

	// Clear deletes the cached data of c. Clearing an absent entry is not an
	// error.
	Clear(ctx context.Context, c models.Collection) error

	// ClearAll deletes the cached data of every collection.
	ClearAll(ctx context.Context) error

	// LastTab returns the last selected collection, defaulting to the first.
	LastTab(ctx context.Context) (models.Collection, error)

	// SetLastTab persists the selected collection.
	SetLastTab(ctx context.Context, c models.Collection) error

	// CurrentIndex returns the page index remembered for this process.
	CurrentIndex(ctx context.Context) (int, error)

	// SetCurrentIndex remembers the page index until the process exits.
	SetCurrentIndex(ctx context.Context, index int) error
}

// Orchestrator owns the query state of every collection.
type Orchestrator interface {
	// Fetch serves c from the cache, or from the network when
	// opts.ForceRefresh is set. A forced fetch cancels the one in flight
	// for the same collection, which then returns ErrFetchSuperseded. A
	// fetch without ForceRefresh never cancels: while another fetch of c
	// runs it waits for that fetch to settle and returns its state.
	Fetch(ctx context.Context, c models.Collection, opts models.FetchOptions) (models.QueryState, error)

	// Refetch is Fetch with ForceRefresh.
	Refetch(ctx context.Context, c models.Collection) (models.QueryState, error)

	// State returns the current state of c.
	State(c models.Collection) models.QueryState

	// Searcher returns the search index built for the data of c.
	Searcher(c models.Collection) pipeline.Searcher

	// Clear drops the cached data of c and resets it to "not indexed".
	Clear(ctx context.Context, c models.Collection) error

	// ClearAll clears every collection.
	ClearAll(ctx context.Context) error

	// Subscribe delivers every state change until cancel is called.
	Subscribe() (updates <-chan models.QueryState, cancel func())

	// Close cancels all in-flight fetches and subscriptions.
	Close()
}

// SessionService manages the account session.
type SessionService interface {
	// Login creates a session with an app password and persists it.
	Login(ctx context.Context, creds models.Credentials) (models.Session, error)

	// Restore loads the persisted session, refreshing it when the access
	// token has expired. Without a stored session it returns
	// ErrNotAuthenticated.
	Restore(ctx context.Context) (models.Session, error)

	// Current returns the session in use.
	Current() models.Session

	// Logout forgets the session.
	Logout(ctx context.Context) error
}

// StatsService computes statistics over the likes collection.
type StatsService interface {
	// LikeStats summarizes the cached likes. Without cached likes it
	// returns ErrNoData.
	LikeStats(ctx context.Context) (models.LikeStats, error)

	// Unavailable describes every like whose post can no longer be
	// resolved.
	Unavailable(ctx context.Context) ([]models.UnavailablePost, error)
}

// RefreshJob refetches collections on a timer.
type RefreshJob interface {
	// Start stops a running job and starts a new one refreshing collections
	// every interval.
	Start(ctx context.Context, collections []models.Collection, interval time.Duration)

	// Stop cancels the job and waits for it to exit.
	Stop()
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport to a Bluesky PDS.
//
// The primary abstraction is [RemoteAdapter], which decouples the service
// layer from XRPC. The package ships one implementation over resty
// ([NewXRPCAdapter]) that attaches the session bearer token, refreshes an
// expired session once per call and shapes outbound traffic with a token
// bucket plus the server's ratelimit headers.
//
// Non-2xx responses are mapped by mapXRPCError to an [*XRPCError] that
// unwraps to the sentinel values in errors.go, so callers can use
// [errors.Is] for transport-agnostic handling (e.g. [ErrNotFound] for 404,
// [ErrExpiredToken] for an expired access token).
package adapter

import (
	"context"

	"github.com/MKhiriev/sky-shelf/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/remote_adapter_mock.go -package=mock

// RemoteAdapter is the set of XRPC methods skyshelf consumes. Listing
// methods return one [models.CursorPage]; an empty cursor marks the last
// page.
type RemoteAdapter interface {
	// SetSession stores the session whose access token is attached to all
	// subsequent authenticated requests.
	SetSession(session models.Session)

	// Session returns the session currently held by the adapter.
	Session() models.Session

	// OnSessionChange registers fn to be called whenever the adapter
	// replaces its session (after create or refresh).
	OnSessionChange(fn func(models.Session))

	// CreateSession logs in with an app password and stores the session.
	CreateSession(ctx context.Context, creds models.Credentials) (models.Session, error)

	// RefreshSession exchanges the stored refresh token for a new session.
	RefreshSession(ctx context.Context) (models.Session, error)

	// ListRecords lists records of collection in repo.
	ListRecords(ctx context.Context, repo, collection, cursor string, limit int) (models.CursorPage[models.ActionRecord], error)

	// GetActorLikes pages the posts liked by actor. Only the actor itself
	// may call it.
	GetActorLikes(ctx context.Context, actor, cursor string, limit int) (models.CursorPage[models.PostView], error)

	// SearchPosts runs a post search.
	SearchPosts(ctx context.Context, query models.SearchQuery, cursor string, limit int) (models.CursorPage[models.PostView], error)

	// GetBookmarks pages the bookmarks of the session account.
	GetBookmarks(ctx context.Context, cursor string, limit int) (models.CursorPage[models.Bookmark], error)

	// GetFollows pages the accounts followed by actor.
	GetFollows(ctx context.Context, actor, cursor string, limit int) (models.CursorPage[models.ProfileView], error)

	// GetPosts hydrates up to 25 post URIs. Posts that no longer exist are
	// omitted from the result without error.
	GetPosts(ctx context.Context, uris []string) ([]models.PostView, error)

	// GetProfiles hydrates up to 25 actors. Unknown actors are omitted.
	GetProfiles(ctx context.Context, actors []string) ([]models.ProfileView, error)

	// GetProfile hydrates one actor and reports why it cannot be resolved.
	GetProfile(ctx context.Context, actor string) (models.ProfileView, error)
}

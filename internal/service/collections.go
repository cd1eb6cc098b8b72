// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/sky-shelf/internal/adapter"
	"github.com/MKhiriev/sky-shelf/internal/config"
	"github.com/MKhiriev/sky-shelf/internal/logger"
	"github.com/MKhiriev/sky-shelf/models"
)

// Pins are self-replies consisting of this marker alone.
const (
	pinMarker = "📌"
	pinQuery  = "from:me " + pinMarker
)

// NewSources returns one source per collection. likesSource selects how
// likes are listed: config.LikesSourceRecords or config.LikesSourceFeed.
func NewSources(remote adapter.RemoteAdapter, likesSource string, logger *logger.Logger) map[models.Collection]CollectionSource {
	xref := newCrossReferencer(remote, logger)

	var likes CollectionSource = &likeRecordsSource{adapter: remote, xref: xref, logger: logger}
	if likesSource == config.LikesSourceFeed {
		likes = &likeFeedSource{adapter: remote, logger: logger}
	}

	return map[models.Collection]CollectionSource{
		models.CollectionLikes:     likes,
		models.CollectionPins:      &pinsSource{adapter: remote, xref: xref, logger: logger},
		models.CollectionBookmarks: &bookmarksSource{adapter: remote, logger: logger},
	}
}

func sessionDID(remote adapter.RemoteAdapter) (string, error) {
	did := remote.Session().DID
	if did == "" {
		return "", ErrNotAuthenticated
	}
	return did, nil
}

// likeRecordsSource lists the like records of the account and resolves
// their subjects, so likes of deleted posts are still counted.
type likeRecordsSource struct {
	adapter adapter.RemoteAdapter
	xref    *crossReferencer
	logger  *logger.Logger
}

func (s *likeRecordsSource) Collection() models.Collection { return models.CollectionLikes }

func (s *likeRecordsSource) Fetch(ctx context.Context) (*models.FetchData, error) {
	did, err := sessionDID(s.adapter)
	if err != nil {
		return nil, err
	}

	records, err := FetchAll(ctx, func(ctx context.Context, cursor string, limit int) (models.CursorPage[models.ActionRecord], error) {
		return s.adapter.ListRecords(ctx, did, models.LikeCollectionNSID, cursor, limit)
	})
	if err != nil {
		s.logger.Err(err).Str("func", "likeRecordsSource.Fetch").Msg("error listing like records")
		return nil, fmt.Errorf("list like records: %w", err)
	}
	s.logger.Debug().Int("records", len(records)).Msg("like records listed")

	return s.xref.CrossReference(ctx, records)
}

// likeFeedSource pages getActorLikes, which returns hydrated posts and
// silently drops the ones that are gone.
type likeFeedSource struct {
	adapter adapter.RemoteAdapter
	logger  *logger.Logger
}

func (s *likeFeedSource) Collection() models.Collection { return models.CollectionLikes }

func (s *likeFeedSource) Fetch(ctx context.Context) (*models.FetchData, error) {
	did, err := sessionDID(s.adapter)
	if err != nil {
		return nil, err
	}

	posts, err := FetchAll(ctx, func(ctx context.Context, cursor string, limit int) (models.CursorPage[models.PostView], error) {
		return s.adapter.GetActorLikes(ctx, did, cursor, limit)
	})
	if err != nil {
		s.logger.Err(err).Str("func", "likeFeedSource.Fetch").Msg("error fetching liked posts")
		return nil, fmt.Errorf("get actor likes: %w", err)
	}

	return &models.FetchData{Posts: posts, Authors: collectAuthors(posts)}, nil
}

// pinsSource finds the account's pin replies and resolves the posts they
// reply to.
type pinsSource struct {
	adapter adapter.RemoteAdapter
	xref    *crossReferencer
	logger  *logger.Logger
}

func (s *pinsSource) Collection() models.Collection { return models.CollectionPins }

func (s *pinsSource) Fetch(ctx context.Context) (*models.FetchData, error) {
	query := models.SearchQuery{Q: pinQuery, Sort: "latest"}

	replies, err := FetchAll(ctx, func(ctx context.Context, cursor string, limit int) (models.CursorPage[models.PostView], error) {
		return s.adapter.SearchPosts(ctx, query, cursor, limit)
	})
	if err != nil {
		s.logger.Err(err).Str("func", "pinsSource.Fetch").Msg("error searching pins")
		return nil, fmt.Errorf("search pins: %w", err)
	}

	posts, err := s.xref.ResolvePosts(ctx, pinnedURIs(replies))
	if err != nil {
		return nil, err
	}

	return &models.FetchData{Posts: posts, Authors: collectAuthors(posts)}, nil
}

// pinnedURIs returns the parent URIs of the replies that are pins.
func pinnedURIs(replies []models.PostView) []string {
	uris := make([]string, 0, len(replies))
	for _, r := range replies {
		if strings.TrimSpace(r.Record.Text) != pinMarker || r.Record.Reply == nil {
			continue
		}
		uris = append(uris, r.Record.Reply.Parent.URI)
	}
	return uris
}

// bookmarksSource pages the account bookmarks, skipping blocked and
// deleted entries.
type bookmarksSource struct {
	adapter adapter.RemoteAdapter
	logger  *logger.Logger
}

func (s *bookmarksSource) Collection() models.Collection { return models.CollectionBookmarks }

func (s *bookmarksSource) Fetch(ctx context.Context) (*models.FetchData, error) {
	bookmarks, err := FetchAll[models.Bookmark](ctx, s.adapter.GetBookmarks)
	if err != nil {
		s.logger.Err(err).Str("func", "bookmarksSource.Fetch").Msg("error fetching bookmarks")
		return nil, fmt.Errorf("get bookmarks: %w", err)
	}

	posts := make([]models.PostView, 0, len(bookmarks))
	for _, b := range bookmarks {
		if b.Item.Type == models.PostViewType {
			posts = append(posts, b.Item)
		}
	}

	return &models.FetchData{Posts: posts, Authors: collectAuthors(posts)}, nil
}

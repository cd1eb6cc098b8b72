// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/MKhiriev/sky-shelf/internal/adapter"
	"github.com/MKhiriev/sky-shelf/internal/logger"
	"github.com/MKhiriev/sky-shelf/models"
)

// BatchSize is the largest number of URIs or actors sent in one hydration
// request.
const BatchSize = 25

// crossReferencer resolves action records into the posts they target.
type crossReferencer struct {
	adapter adapter.RemoteAdapter
	logger  *logger.Logger
}

func newCrossReferencer(remote adapter.RemoteAdapter, logger *logger.Logger) *crossReferencer {
	return &crossReferencer{adapter: remote, logger: logger}
}

// CrossReference keeps the records whose subject is a post, hydrates those
// posts and attaches the profiles behind "via" references. Posts that no
// longer exist are left out; they show up as the difference between
// Records and Posts.
func (x *crossReferencer) CrossReference(ctx context.Context, records []models.ActionRecord) (*models.FetchData, error) {
	kept := make([]models.ActionRecord, 0, len(records))
	uris := make([]string, 0, len(records))
	for _, r := range records {
		if !r.TargetsPost() {
			continue
		}
		kept = append(kept, r)
		uris = append(uris, r.Subject.URI)
	}

	posts, err := x.ResolvePosts(ctx, uris)
	if err != nil {
		return nil, err
	}

	if err := x.ResolveViaProfiles(ctx, kept); err != nil {
		return nil, err
	}

	return &models.FetchData{
		Posts:   posts,
		Authors: collectAuthors(posts),
		Records: kept,
	}, nil
}

// ResolvePosts hydrates uris in sequential batches, keeping the order the
// API returns.
func (x *crossReferencer) ResolvePosts(ctx context.Context, uris []string) ([]models.PostView, error) {
	posts := make([]models.PostView, 0, len(uris))
	for _, batch := range Batches(uris, BatchSize) {
		res, err := x.adapter.GetPosts(ctx, batch)
		if err != nil {
			x.logger.Err(err).Str("func", "crossReferencer.ResolvePosts").Int("batch", len(batch)).Msg("error resolving posts")
			return nil, fmt.Errorf("resolve posts: %w", err)
		}
		posts = append(posts, res...)
	}
	return posts, nil
}

// ResolveViaProfiles fills ViaProfile of every record with a via reference.
// It runs as its own batched pass after post resolution.
func (x *crossReferencer) ResolveViaProfiles(ctx context.Context, records []models.ActionRecord) error {
	var dids []string
	seen := make(map[string]struct{})
	for _, r := range records {
		if r.Via == nil {
			continue
		}
		did, _, _ := models.SplitATURI(r.Via.URI)
		if did == "" {
			continue
		}
		if _, ok := seen[did]; ok {
			continue
		}
		seen[did] = struct{}{}
		dids = append(dids, did)
	}
	if len(dids) == 0 {
		return nil
	}

	profiles := make(map[string]models.ProfileView, len(dids))
	for _, batch := range Batches(dids, BatchSize) {
		res, err := x.adapter.GetProfiles(ctx, batch)
		if err != nil {
			x.logger.Err(err).Str("func", "crossReferencer.ResolveViaProfiles").Msg("error resolving via profiles")
			return fmt.Errorf("resolve via profiles: %w", err)
		}
		for _, p := range res {
			profiles[p.DID] = p
		}
	}

	for i := range records {
		if records[i].Via == nil {
			continue
		}
		did, _, _ := models.SplitATURI(records[i].Via.URI)
		if p, ok := profiles[did]; ok {
			records[i].ViaProfile = &p
		}
	}
	return nil
}

// collectAuthors returns the distinct authors of posts, first occurrence
// wins, ordered by handle.
func collectAuthors(posts []models.PostView) []models.ProfileViewBasic {
	authors := make([]models.ProfileViewBasic, 0)
	seen := make(map[string]struct{})
	for _, p := range posts {
		if _, ok := seen[p.Author.DID]; ok {
			continue
		}
		seen[p.Author.DID] = struct{}{}
		authors = append(authors, p.Author)
	}

	col := collate.New(language.Und)
	sort.SliceStable(authors, func(i, j int) bool {
		return col.CompareString(authors[i].Handle, authors[j].Handle) < 0
	})
	return authors
}

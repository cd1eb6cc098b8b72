// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package pipeline

import (
	"strings"

	"github.com/MKhiriev/sky-shelf/internal/search"
	"github.com/MKhiriev/sky-shelf/models"
)

// Searcher runs a ranked text search over indexed posts.
type Searcher interface {
	Search(query string, fuzziness float64) []search.Result
}

// SearchLayer keeps the posts whose ID the searcher returns for query, in
// their original order. A blank query or a nil searcher passes everything.
func SearchLayer(posts []models.PostView, query string, searcher Searcher, fuzziness float64) []models.PostView {
	if strings.TrimSpace(query) == "" || searcher == nil {
		return posts
	}

	hits := search.IDs(searcher.Search(query, fuzziness))
	out := make([]models.PostView, 0, len(hits))
	for _, p := range posts {
		if _, ok := hits[p.ID()]; ok {
			out = append(out, p)
		}
	}
	return out
}

// AuthorLayer keeps the posts written by one of dids. No dids passes
// everything.
func AuthorLayer(posts []models.PostView, dids []string) []models.PostView {
	if len(dids) == 0 {
		return posts
	}

	selected := make(map[string]struct{}, len(dids))
	for _, did := range dids {
		selected[did] = struct{}{}
	}

	out := make([]models.PostView, 0, len(posts))
	for _, p := range posts {
		if _, ok := selected[p.Author.DID]; ok {
			out = append(out, p)
		}
	}
	return out
}

// EmbedLayer keeps the posts with a non-zero count for any of kinds. No
// kinds passes everything.
func EmbedLayer(posts []models.PostView, kinds []models.EmbedKind) []models.PostView {
	if len(kinds) == 0 {
		return posts
	}

	out := make([]models.PostView, 0, len(posts))
	for _, p := range posts {
		if HasEmbedKind(p, kinds) {
			out = append(out, p)
		}
	}
	return out
}

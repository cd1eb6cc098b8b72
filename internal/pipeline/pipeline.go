// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package pipeline derives the visible page of a collection: search, then
// author filter, then embed filter, then pagination. Every layer passes its
// input through unchanged when its criterion is empty.
package pipeline

import (
	"github.com/MKhiriev/sky-shelf/models"
)

// Options configures a pipeline run.
type Options struct {
	Searcher  Searcher
	Fuzziness float64
	PageSize  int
	Flip      bool
}

func (o Options) pageSize() int {
	if o.PageSize <= 0 {
		return models.PostsPerPage
	}
	return o.PageSize
}

// Result carries the intermediate layers of a run.
type Result struct {
	Searched []models.PostView
	Authored []models.PostView
	Filtered []models.PostView
	Page     models.PostsPage
}

// Run applies every layer to posts in order.
//
// EmbedCounts of the page are taken after the search and author layers and
// before the embed layer, so every toggle shows what selecting it would
// yield.
func Run(posts []models.PostView, filter models.FilterState, opts Options) Result {
	var r Result
	r.Searched = SearchLayer(posts, filter.Query, opts.Searcher, opts.Fuzziness)
	r.Authored = AuthorLayer(r.Searched, filter.Authors)
	r.Filtered = EmbedLayer(r.Authored, filter.Embeds)
	r.Page = buildPage(r.Filtered, TotalEmbeds(r.Authored), filter.PageIndex, opts)
	return r
}

func buildPage(filtered []models.PostView, counts models.EmbedCounts, index int, opts Options) models.PostsPage {
	return models.PostsPage{
		Page:        Paginate(filtered, opts.pageSize(), index, opts.Flip),
		Total:       len(filtered),
		EmbedCounts: counts,
	}
}

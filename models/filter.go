// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// NoPages is the page index used when the filtered result set is empty.
const NoPages = -1

// PostsPerPage is the fixed page size of the post list.
const PostsPerPage = 50

// FilterState is the user-controlled input of the filter pipeline.
type FilterState struct {
	// Query is the free-text search string; blank disables the search layer.
	Query string `json:"query"`

	// Authors holds selected author DIDs; empty disables the author layer.
	Authors []string `json:"authors"`

	// Embeds holds active embed toggles; empty disables the embed layer.
	Embeds []EmbedKind `json:"embeds"`

	// PageIndex is the zero-based index of the current page.
	PageIndex int `json:"pageIndex"`
}

// Page is one slice of a paginated list.
type Page[T any] struct {
	Items     []T `json:"items"`
	PageCount int `json:"pageCount"`
	PageIndex int `json:"pageIndex"`
}

// PostsPage is the pipeline output served to consumers.
type PostsPage struct {
	Page[PostView]

	Total       int         `json:"total"`
	EmbedCounts EmbedCounts `json:"embedCounts"`
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Collection names a cached remote collection.
type Collection string

const (
	CollectionLikes     Collection = "likes"
	CollectionPins      Collection = "pins"
	CollectionBookmarks Collection = "bookmarks"
)

// Collections lists every supported collection in tab order.
var Collections = []Collection{CollectionLikes, CollectionPins, CollectionBookmarks}

// ParseCollection validates s as a [Collection].
func ParseCollection(s string) (Collection, bool) {
	for _, c := range Collections {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// CursorPage is one page of a cursor-paginated listing. An empty Cursor
// marks the last page.
type CursorPage[T any] struct {
	Items  []T
	Cursor string
}

// FetchData is the materialized result of a full collection fetch. It is
// always replaced as a whole, never patched.
type FetchData struct {
	// Posts are the resolved posts in API order, not deduplicated.
	Posts []PostView `json:"posts"`

	// Authors are the distinct authors of Posts ordered by handle.
	Authors []ProfileViewBasic `json:"authors"`

	// Records are the raw action records for collections whose targets are
	// resolved separately. Nil for collections that embed their posts.
	Records []ActionRecord `json:"records,omitempty"`
}

// UnavailableCount is the number of records whose post could not be
// resolved.
func (d *FetchData) UnavailableCount() int {
	if d == nil || len(d.Records) <= len(d.Posts) {
		return 0
	}
	return len(d.Records) - len(d.Posts)
}

// MissingRecords returns the records whose subject URI is not among Posts.
func (d *FetchData) MissingRecords() []ActionRecord {
	if d == nil {
		return nil
	}

	resolved := make(map[string]struct{}, len(d.Posts))
	for _, p := range d.Posts {
		resolved[p.URI] = struct{}{}
	}

	missing := make([]ActionRecord, 0, d.UnavailableCount())
	for _, r := range d.Records {
		if _, ok := resolved[r.Subject.URI]; !ok {
			missing = append(missing, r)
		}
	}
	return missing
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"strings"
	"time"
)

// Lexicon type names and collection NSIDs the cache works with.
const (
	PostViewType       = "app.bsky.feed.defs#postView"
	PostCollectionNSID = "app.bsky.feed.post"
	LikeCollectionNSID = "app.bsky.feed.like"
)

// StrongRef points at a specific version of a record.
type StrongRef struct {
	// URI is the at:// URI of the record.
	URI string `json:"uri"`

	// CID is the content hash of the referenced record version.
	CID string `json:"cid"`
}

// ReplyRef links a post to the thread it replies to.
type ReplyRef struct {
	Root   StrongRef `json:"root"`
	Parent StrongRef `json:"parent"`
}

// PostRecord is the user-authored part of a post.
type PostRecord struct {
	Type      string    `json:"$type,omitempty"`
	Text      string    `json:"text"`
	CreatedAt string    `json:"createdAt,omitempty"`
	Reply     *ReplyRef `json:"reply,omitempty"`
	Langs     []string  `json:"langs,omitempty"`
}

// PostView is a hydrated post as returned by the AppView.
//
// Type is only set when the view travels inside a union (bookmark items);
// plain feed responses leave it empty.
type PostView struct {
	Type        string           `json:"$type,omitempty"`
	URI         string           `json:"uri"`
	CID         string           `json:"cid"`
	Author      ProfileViewBasic `json:"author"`
	Record      PostRecord       `json:"record"`
	Embed       *EmbedView       `json:"embed,omitempty"`
	ReplyCount  int64            `json:"replyCount,omitempty"`
	RepostCount int64            `json:"repostCount,omitempty"`
	LikeCount   int64            `json:"likeCount,omitempty"`
	QuoteCount  int64            `json:"quoteCount,omitempty"`
	IndexedAt   string           `json:"indexedAt,omitempty"`
}

// ID returns the stable identifier used by the search index: the CID, or
// the URI when the CID is missing.
func (p PostView) ID() string {
	if p.CID != "" {
		return p.CID
	}
	return p.URI
}

// WebURL returns the bsky.app link for the post.
func (p PostView) WebURL() string {
	did, collection, rkey := SplitATURI(p.URI)
	if did == "" || collection != PostCollectionNSID || rkey == "" {
		return ""
	}
	handle := p.Author.Handle
	if handle == "" {
		handle = did
	}
	return "https://bsky.app/profile/" + handle + "/post/" + rkey
}

// ActionRecord is a like (or similar) record authored by the user. It refers
// to its target through Subject; the target post may no longer exist.
type ActionRecord struct {
	URI       string     `json:"uri"`
	CID       string     `json:"cid"`
	Subject   StrongRef  `json:"subject"`
	CreatedAt time.Time  `json:"createdAt"`
	Via       *StrongRef `json:"via,omitempty"`

	// ViaProfile is the account behind Via, attached by the cross-referencer.
	ViaProfile *ProfileView `json:"viaProfile,omitempty"`
}

// TargetsPost reports whether the record's subject is a post.
func (r ActionRecord) TargetsPost() bool {
	_, collection, _ := SplitATURI(r.Subject.URI)
	return collection == PostCollectionNSID
}

// SubjectDID returns the repository DID of the record's subject.
func (r ActionRecord) SubjectDID() string {
	did, _, _ := SplitATURI(r.Subject.URI)
	return did
}

// Bookmark is one entry of the bookmarks listing. Item is only usable when
// its Type is [PostViewType]; other variants are blocked or missing posts.
type Bookmark struct {
	Subject   StrongRef `json:"subject"`
	CreatedAt string    `json:"createdAt,omitempty"`
	Item      PostView  `json:"item"`
}

// SplitATURI splits "at://<authority>/<collection>/<rkey>" into its parts.
// Missing parts are returned empty.
func SplitATURI(uri string) (authority, collection, rkey string) {
	rest, ok := strings.CutPrefix(uri, "at://")
	if !ok {
		return "", "", ""
	}
	parts := strings.SplitN(rest, "/", 3)
	authority = parts[0]
	if len(parts) > 1 {
		collection = parts[1]
	}
	if len(parts) > 2 {
		rkey = parts[2]
	}
	return authority, collection, rkey
}

// SearchQuery holds the parameters of a post search.
type SearchQuery struct {
	Q      string `json:"q"`
	Sort   string `json:"sort,omitempty"`
	Author string `json:"author,omitempty"`
}

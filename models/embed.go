// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "encoding/json"

// Embed view type discriminators.
const (
	EmbedImagesView          = "app.bsky.embed.images#view"
	EmbedVideoView           = "app.bsky.embed.video#view"
	EmbedExternalView        = "app.bsky.embed.external#view"
	EmbedRecordView          = "app.bsky.embed.record#view"
	EmbedRecordWithMediaView = "app.bsky.embed.recordWithMedia#view"

	EmbedRecordViewRecord = "app.bsky.embed.record#viewRecord"
)

// EmbedView is the hydrated attachment of a post. It is a tagged union keyed
// by Type; only the fields of the active variant are populated.
//
//   - images#view: Images
//   - video#view: CID, Playlist, Thumbnail, Alt
//   - external#view: External
//   - record#view: Record (a viewRecord or a not-found/blocked stub)
//   - recordWithMedia#view: Record (a record#view wrapping a viewRecord) and Media
type EmbedView struct {
	Type string `json:"$type"`

	Images []ImageView `json:"images,omitempty"`

	CID       string `json:"cid,omitempty"`
	Playlist  string `json:"playlist,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty"`
	Alt       string `json:"alt,omitempty"`

	External *ExternalView `json:"external,omitempty"`

	Record *EmbedRecord `json:"record,omitempty"`
	Media  *EmbedView   `json:"media,omitempty"`
}

// ImageView is a single image of an images embed.
type ImageView struct {
	Thumb    string `json:"thumb"`
	Fullsize string `json:"fullsize"`
	Alt      string `json:"alt"`
}

// ExternalView is a link card.
type ExternalView struct {
	URI         string `json:"uri"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Thumb       string `json:"thumb,omitempty"`
}

// EmbedRecord covers both shapes found under an embed's "record" key: a
// quoted post (viewRecord, with its own Embeds) and the record#view wrapper
// used by recordWithMedia, which nests the quoted post in Record.
type EmbedRecord struct {
	Type   string            `json:"$type"`
	URI    string            `json:"uri,omitempty"`
	CID    string            `json:"cid,omitempty"`
	Author *ProfileViewBasic `json:"author,omitempty"`
	Value  json.RawMessage   `json:"value,omitempty"`
	Embeds []EmbedView       `json:"embeds,omitempty"`

	Record *EmbedRecord `json:"record,omitempty"`
}

// EmbedKind is a top-level embed category used by filters and counters.
type EmbedKind string

const (
	EmbedNone     EmbedKind = "none"
	EmbedImage    EmbedKind = "image"
	EmbedVideo    EmbedKind = "video"
	EmbedPost     EmbedKind = "post"
	EmbedExternal EmbedKind = "external"
)

// EmbedKinds lists every kind in display order.
var EmbedKinds = []EmbedKind{EmbedNone, EmbedImage, EmbedVideo, EmbedPost, EmbedExternal}

// ParseEmbedKind validates s as an [EmbedKind].
func ParseEmbedKind(s string) (EmbedKind, bool) {
	for _, k := range EmbedKinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// EmbedCounts holds per-kind embed totals.
type EmbedCounts struct {
	None     int `json:"none"`
	Image    int `json:"image"`
	Video    int `json:"video"`
	Post     int `json:"post"`
	External int `json:"external"`
}

// Get returns the count for kind.
func (c EmbedCounts) Get(kind EmbedKind) int {
	switch kind {
	case EmbedNone:
		return c.None
	case EmbedImage:
		return c.Image
	case EmbedVideo:
		return c.Video
	case EmbedPost:
		return c.Post
	case EmbedExternal:
		return c.External
	}
	return 0
}

// Add returns the element-wise sum of c and o.
func (c EmbedCounts) Add(o EmbedCounts) EmbedCounts {
	return EmbedCounts{
		None:     c.None + o.None,
		Image:    c.Image + o.Image,
		Video:    c.Video + o.Video,
		Post:     c.Post + o.Post,
		External: c.External + o.External,
	}
}

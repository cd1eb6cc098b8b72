// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/sky-shelf/models"
)

func imagesEmbed(alts ...string) *models.EmbedView {
	imgs := make([]models.ImageView, len(alts))
	for i, a := range alts {
		imgs[i] = models.ImageView{Alt: a}
	}
	return &models.EmbedView{Type: models.EmbedImagesView, Images: imgs}
}

func videoEmbed() *models.EmbedView {
	return &models.EmbedView{Type: models.EmbedVideoView}
}

func externalEmbed() *models.EmbedView {
	return &models.EmbedView{Type: models.EmbedExternalView, External: &models.ExternalView{URI: "https://example.com"}}
}

func quoteEmbed(inner ...models.EmbedView) *models.EmbedView {
	return &models.EmbedView{
		Type: models.EmbedRecordView,
		Record: &models.EmbedRecord{
			Type:   models.EmbedRecordViewRecord,
			URI:    "at://did:plc:q/app.bsky.feed.post/q",
			Embeds: inner,
		},
	}
}

func quoteWithMedia(media *models.EmbedView, inner ...models.EmbedView) *models.EmbedView {
	return &models.EmbedView{
		Type: models.EmbedRecordWithMediaView,
		Record: &models.EmbedRecord{
			Type: models.EmbedRecordView,
			Record: &models.EmbedRecord{
				Type:   models.EmbedRecordViewRecord,
				Embeds: inner,
			},
		},
		Media: media,
	}
}

func TestCountEmbeds(t *testing.T) {
	tests := []struct {
		name  string
		embed *models.EmbedView
		want  models.EmbedCounts
	}{
		{name: "no embed", embed: nil, want: models.EmbedCounts{None: 1}},
		{name: "images", embed: imagesEmbed("a", "b"), want: models.EmbedCounts{Image: 1}},
		{name: "video", embed: videoEmbed(), want: models.EmbedCounts{Video: 1}},
		{name: "external", embed: externalEmbed(), want: models.EmbedCounts{External: 1}},
		{name: "plain quote", embed: quoteEmbed(), want: models.EmbedCounts{Post: 1}},
		{
			name:  "quote of a video post",
			embed: quoteEmbed(*videoEmbed()),
			want:  models.EmbedCounts{Post: 1, Video: 1},
		},
		{
			name:  "quote of a quote is not expanded",
			embed: quoteEmbed(*quoteEmbed(*imagesEmbed("deep"))),
			want:  models.EmbedCounts{Post: 1},
		},
		{
			name:  "quote with media",
			embed: quoteWithMedia(imagesEmbed("x")),
			want:  models.EmbedCounts{Post: 1, Image: 1},
		},
		{
			name:  "quote with media of an external post",
			embed: quoteWithMedia(videoEmbed(), *externalEmbed()),
			want:  models.EmbedCounts{Post: 1, Video: 1, External: 1},
		},
		{
			name: "blocked quote",
			embed: &models.EmbedView{
				Type:   models.EmbedRecordView,
				Record: &models.EmbedRecord{Type: "app.bsky.embed.record#viewBlocked"},
			},
			want: models.EmbedCounts{Post: 1},
		},
		{name: "unknown type", embed: &models.EmbedView{Type: "app.example#view"}, want: models.EmbedCounts{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountEmbeds(tt.embed))
		})
	}
}

func TestTotalEmbeds(t *testing.T) {
	posts := []models.PostView{
		{Embed: imagesEmbed("a")},
		{Embed: quoteEmbed(*videoEmbed())},
		{},
		{},
	}

	assert.Equal(t, models.EmbedCounts{None: 2, Image: 1, Video: 1, Post: 1}, TotalEmbeds(posts))
}

func TestHasEmbedKind(t *testing.T) {
	p := models.PostView{Embed: quoteEmbed(*videoEmbed())}

	assert.True(t, HasEmbedKind(p, []models.EmbedKind{models.EmbedVideo}))
	assert.True(t, HasEmbedKind(p, []models.EmbedKind{models.EmbedImage, models.EmbedPost}))
	assert.False(t, HasEmbedKind(p, []models.EmbedKind{models.EmbedNone, models.EmbedExternal}))
	assert.False(t, HasEmbedKind(p, nil))
}

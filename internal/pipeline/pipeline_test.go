// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package pipeline

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/sky-shelf/internal/search"
	"github.com/MKhiriev/sky-shelf/models"
)

func makePosts(n int, author string) []models.PostView {
	posts := make([]models.PostView, n)
	for i := range posts {
		posts[i] = models.PostView{
			URI:    fmt.Sprintf("at://%s/app.bsky.feed.post/%d", author, i),
			CID:    fmt.Sprintf("%s-cid-%d", author, i),
			Author: models.ProfileViewBasic{DID: author, Handle: author + ".test"},
			Record: models.PostRecord{Text: fmt.Sprintf("post number %d", i)},
		}
	}
	return posts
}

func indexed(t *testing.T, posts []models.PostView) *search.Index {
	t.Helper()
	idx := search.NewIndex()
	require.NoError(t, idx.RebuildPosts(posts))
	return idx
}

func TestLayers_EmptyCriteriaPassThrough(t *testing.T) {
	posts := makePosts(7, "did:plc:a")
	posts[2].Embed = videoEmbed()
	idx := indexed(t, posts)

	assert.Equal(t, posts, SearchLayer(posts, "", idx, search.DefaultFuzziness))
	assert.Equal(t, posts, SearchLayer(posts, "  \t", idx, search.DefaultFuzziness))
	assert.Equal(t, posts, SearchLayer(posts, "anything", nil, search.DefaultFuzziness))
	assert.Equal(t, posts, AuthorLayer(posts, nil))
	assert.Equal(t, posts, EmbedLayer(posts, nil))
}

func TestSearchLayer_KeepsOriginalOrder(t *testing.T) {
	posts := []models.PostView{
		{CID: "1", Record: models.PostRecord{Text: "green tea"}},
		{CID: "2", Record: models.PostRecord{Text: "black coffee"}},
		{CID: "3", Record: models.PostRecord{Text: "green green green tea"}},
	}
	idx := indexed(t, posts)

	got := SearchLayer(posts, "green", idx, 0)

	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].CID)
	assert.Equal(t, "3", got[1].CID)
}

func TestAuthorLayer(t *testing.T) {
	posts := append(makePosts(3, "did:plc:a"), makePosts(2, "did:plc:b")...)
	posts = append(posts, makePosts(1, "did:plc:c")...)

	got := AuthorLayer(posts, []string{"did:plc:b", "did:plc:c"})

	require.Len(t, got, 3)
	for _, p := range got {
		assert.NotEqual(t, "did:plc:a", p.Author.DID)
	}
}

func TestEmbedLayer(t *testing.T) {
	posts := makePosts(4, "did:plc:a")
	posts[0].Embed = imagesEmbed("a")
	posts[1].Embed = quoteEmbed(*videoEmbed())
	posts[2].Embed = externalEmbed()

	assert.Len(t, EmbedLayer(posts, []models.EmbedKind{models.EmbedVideo}), 1)
	assert.Len(t, EmbedLayer(posts, []models.EmbedKind{models.EmbedNone}), 1)
	assert.Len(t, EmbedLayer(posts, []models.EmbedKind{models.EmbedImage, models.EmbedExternal}), 2)
}

func TestRun_AllLayers(t *testing.T) {
	alice := makePosts(60, "did:plc:alice")
	bob := makePosts(60, "did:plc:bob")
	for i := range alice {
		if i%2 == 0 {
			alice[i].Embed = imagesEmbed("x")
		}
	}
	posts := append(alice, bob...)

	res := Run(posts, models.FilterState{
		Authors:   []string{"did:plc:alice"},
		Embeds:    []models.EmbedKind{models.EmbedImage},
		PageIndex: 5,
	}, Options{})

	assert.Len(t, res.Searched, 120)
	assert.Len(t, res.Authored, 60)
	assert.Len(t, res.Filtered, 30)
	assert.Equal(t, 30, res.Page.Total)
	assert.Equal(t, 1, res.Page.PageCount)
	// clamped to the last page
	assert.Equal(t, 0, res.Page.PageIndex)
	assert.Len(t, res.Page.Items, 30)
	// counts ignore the embed toggles
	assert.Equal(t, models.EmbedCounts{Image: 30, None: 30}, res.Page.EmbedCounts)
}

func TestRun_Empty(t *testing.T) {
	res := Run(nil, models.FilterState{PageIndex: 3}, Options{})

	assert.Equal(t, models.NoPages, res.Page.PageIndex)
	assert.Equal(t, 0, res.Page.PageCount)
	assert.Empty(t, res.Page.Items)
	assert.NotNil(t, res.Page.Items)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package pipeline

import "github.com/MKhiriev/sky-shelf/models"

// CountEmbeds classifies the embed of one post.
//
// A quoted post counts as post and its own embeds are counted once more
// without descending into quotes of quotes. Media next to a quote counts
// under its own kind. A post without embed counts as none.
func CountEmbeds(embed *models.EmbedView) models.EmbedCounts {
	var res models.EmbedCounts
	countEmbeds(&res, embed, false)
	return res
}

// TotalEmbeds sums [CountEmbeds] over posts.
func TotalEmbeds(posts []models.PostView) models.EmbedCounts {
	var res models.EmbedCounts
	for i := range posts {
		countEmbeds(&res, posts[i].Embed, false)
	}
	return res
}

func countEmbeds(res *models.EmbedCounts, embed *models.EmbedView, recursed bool) {
	if embed == nil {
		res.None++
		return
	}

	switch embed.Type {
	case models.EmbedImagesView:
		res.Image++
	case models.EmbedVideoView:
		res.Video++
	case models.EmbedExternalView:
		res.External++
	case models.EmbedRecordView:
		if recursed {
			return
		}
		res.Post++
		countInner(res, embed.Record)
	case models.EmbedRecordWithMediaView:
		if embed.Media != nil {
			countEmbeds(res, embed.Media, true)
		}
		if recursed {
			return
		}
		res.Post++
		if embed.Record != nil {
			countInner(res, embed.Record.Record)
		}
	}
}

// countInner counts the embeds of a quoted post.
func countInner(res *models.EmbedCounts, quoted *models.EmbedRecord) {
	if quoted == nil || quoted.Type != models.EmbedRecordViewRecord {
		return
	}
	for i := range quoted.Embeds {
		countEmbeds(res, &quoted.Embeds[i], true)
	}
}

// HasEmbedKind reports whether the counts of p include any of kinds.
func HasEmbedKind(p models.PostView, kinds []models.EmbedKind) bool {
	counts := CountEmbeds(p.Embed)
	for _, k := range kinds {
		if counts.Get(k) > 0 {
			return true
		}
	}
	return false
}

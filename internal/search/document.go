// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package search

import (
	"strings"

	"github.com/MKhiriev/sky-shelf/models"
)

// Field identifies an indexed document field.
type Field int

const (
	FieldText Field = iota
	FieldAlt

	numFields
)

func (f Field) String() string {
	switch f {
	case FieldText:
		return "text"
	case FieldAlt:
		return "alt"
	}
	return "unknown"
}

// Document is one indexable unit.
type Document struct {
	ID   string
	Text string
	Alt  string
}

func (d Document) field(f Field) string {
	if f == FieldAlt {
		return d.Alt
	}
	return d.Text
}

// DocumentFromPost builds the document of p, keyed by [models.PostView.ID].
func DocumentFromPost(p models.PostView) Document {
	return Document{
		ID:   p.ID(),
		Text: p.Record.Text,
		Alt:  AltText(p.Embed),
	}
}

// AltText returns the newline-joined alt texts of an images embed, or the
// alt of a video embed. Other embeds have none.
func AltText(embed *models.EmbedView) string {
	if embed == nil {
		return ""
	}

	switch embed.Type {
	case models.EmbedImagesView:
		alts := make([]string, len(embed.Images))
		for i, img := range embed.Images {
			alts[i] = img.Alt
		}
		return strings.Join(alts, "\n")
	case models.EmbedVideoView:
		return embed.Alt
	}
	return ""
}

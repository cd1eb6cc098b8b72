// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/sky-shelf/models"
)

// PageLimit is the page size requested from every cursor listing.
const PageLimit = 100

// PageFunc requests one page starting at cursor. An empty cursor requests
// the first page.
type PageFunc[T any] func(ctx context.Context, cursor string, limit int) (models.CursorPage[T], error)

// FetchAll requests pages in sequence, feeding each page's cursor into the
// next request, and returns all items in order. It stops after a page with
// no items or no cursor. The first failed page fails the whole fetch and no
// items are returned.
func FetchAll[T any](ctx context.Context, fetch PageFunc[T]) ([]T, error) {
	var (
		items  []T
		cursor string
	)

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page, err := fetch(ctx, cursor, PageLimit)
		if err != nil {
			return nil, err
		}
		items = append(items, page.Items...)

		if len(page.Items) == 0 || page.Cursor == "" {
			return items, nil
		}
		cursor = page.Cursor
	}
}

// Batches splits items into consecutive chunks of at most size.
func Batches[T any](items []T, size int) [][]T {
	if size <= 0 || len(items) == 0 {
		return nil
	}

	out := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		out = append(out, items[start:min(start+size, len(items))])
	}
	return out
}

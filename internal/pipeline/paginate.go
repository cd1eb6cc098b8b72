// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package pipeline

import (
	"errors"
	"fmt"
	"slices"

	"github.com/MKhiriev/sky-shelf/models"
)

// ErrPageOutOfRange is returned by [JumpToPage] for a page number outside
// 1..pageCount.
var ErrPageOutOfRange = errors.New("page number out of range")

// PageCount is ceil(n / size).
func PageCount(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// ClampPageIndex fits index into [0, pageCount). With no pages it returns
// [models.NoPages].
func ClampPageIndex(index, pageCount int) int {
	switch {
	case pageCount <= 0:
		return models.NoPages
	case index < 0:
		return 0
	case index >= pageCount:
		return pageCount - 1
	}
	return index
}

// Paginate returns page index of items split into pages of size. The index
// is clamped first; flip reverses items before slicing.
func Paginate[T any](items []T, size, index int, flip bool) models.Page[T] {
	pageCount := PageCount(len(items), size)
	index = ClampPageIndex(index, pageCount)
	if index == models.NoPages {
		return models.Page[T]{Items: []T{}, PageCount: 0, PageIndex: models.NoPages}
	}

	if flip {
		items = slices.Clone(items)
		slices.Reverse(items)
	}

	start := index * size
	end := min(start+size, len(items))

	return models.Page[T]{
		Items:     items[start:end],
		PageCount: pageCount,
		PageIndex: index,
	}
}

// NextPage moves forward one page, wrapping from the last to the first.
func NextPage(index, pageCount int) int {
	if pageCount <= 0 {
		return models.NoPages
	}
	return (ClampPageIndex(index, pageCount) + 1) % pageCount
}

// PrevPage moves back one page, wrapping from the first to the last.
func PrevPage(index, pageCount int) int {
	if pageCount <= 0 {
		return models.NoPages
	}
	index = ClampPageIndex(index, pageCount) - 1
	if index < 0 {
		return pageCount - 1
	}
	return index
}

// JumpToPage converts a 1-based page number into a page index.
func JumpToPage(number, pageCount int) (int, error) {
	if number < 1 || number > pageCount {
		return 0, fmt.Errorf("%w: %d not in 1..%d", ErrPageOutOfRange, number, pageCount)
	}
	return number - 1, nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package search

import "errors"

var (
	// ErrDuplicateID is returned by Insert when a document with the same ID
	// is already indexed.
	ErrDuplicateID = errors.New("duplicate document id")

	// ErrEmptyID is returned by Insert for a document without an ID.
	ErrEmptyID = errors.New("document id is empty")
)

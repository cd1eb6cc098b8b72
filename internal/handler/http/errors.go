// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors returned while parsing request parameters. Callers can
// match against them with [errors.Is].
var (
	// ErrInvalidPageParam is returned when the "page" query parameter is not
	// an integer.
	ErrInvalidPageParam = errors.New("invalid `page` query parameter")

	// ErrInvalidFlipParam is returned when the "flip" query parameter is not
	// a boolean.
	ErrInvalidFlipParam = errors.New("invalid `flip` query parameter")

	// ErrInvalidJSON is returned when a request body cannot be decoded.
	ErrInvalidJSON = errors.New("invalid JSON was passed")
)

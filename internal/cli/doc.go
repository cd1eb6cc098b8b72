// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package cli implements the skyshelf command line: logging in, fetching
// and clearing collections, likes statistics and the terminal browser.
package cli

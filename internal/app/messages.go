// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the user-facing message strings shared by the
// terminal UI and the command line, so both describe collection states and
// command outcomes with the same wording.
package app

const (
	// MsgLoading is shown while the first fetch of a collection runs.
	MsgLoading = "Loading..."

	// MsgRefetching is shown while a refetch runs over already shown data.
	MsgRefetching = "refreshing..."

	// MsgNotIndexed is shown for a collection that was never fetched.
	MsgNotIndexed = "Not indexed yet, press r to fetch"

	// MsgNotIndexedCLI is the command-line form of MsgNotIndexed.
	MsgNotIndexedCLI = "not indexed yet, run `skyshelf fetch --force`"

	// MsgNoPosts is shown when the filters leave nothing to display.
	MsgNoPosts = "No posts match the current filters"

	// MsgNoAuthors is shown when the author picker has nothing to offer.
	MsgNoAuthors = "No authors to pick from"

	// MsgCacheCleared confirms that a collection cache was dropped.
	MsgCacheCleared = "Cache cleared"

	// MsgAllCachesCleared confirms that every collection cache was dropped.
	MsgAllCachesCleared = "All caches cleared"

	// MsgLinkCopied confirms that a post link was copied.
	MsgLinkCopied = "Link copied"

	// MsgNoLink is shown when the selected post has no web link.
	MsgNoLink = "Nothing to copy"

	// MsgNotAPageNumber is shown when the jump input is not a number.
	MsgNotAPageNumber = "Not a page number"

	// MsgPageOutOfRange is shown when the jump target does not exist.
	MsgPageOutOfRange = "Page out of range"

	// MsgLoggedIn confirms a new session.
	MsgLoggedIn = "Logged in as"
)

package cli

import "errors"

var (
	// ErrMissingCredentials is returned by login without a handle or app
	// password from flags or configuration.
	ErrMissingCredentials = errors.New("handle and app password are required")

	// ErrLoginRequired is returned when a command needs a session and none
	// is stored or configured.
	ErrLoginRequired = errors.New("not logged in, run `skyshelf login` first")

	// ErrUnknownCollection is returned for a collection argument that names
	// no collection.
	ErrUnknownCollection = errors.New("unknown collection, use likes, pins or bookmarks")

	// ErrNoClient is returned by the tui command when no client is wired.
	ErrNoClient = errors.New("terminal client is not configured")
)

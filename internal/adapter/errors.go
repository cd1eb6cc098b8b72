package adapter

import "errors"

// Sentinels an [*XRPCError] unwraps to.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrExpiredToken        = errors.New("token expired")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrRateLimited         = errors.New("rate limited")
	ErrInternalServerError = errors.New("internal server error")
	ErrUnexpectedStatus    = errors.New("unexpected status")

	// ErrNoSession is returned by calls that need a session before one
	// has been created or restored.
	ErrNoSession = errors.New("no session")
)

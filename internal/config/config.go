// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for skyshelf.
// It aggregates all sub-configurations and is populated by merging values
// from environment variables, command-line flags, and an optional config
// file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds account, session and search settings.
	App App `envPrefix:"APP_"`

	// Storage holds the cache backend settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds listen address and timeout settings for the HTTP API.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds settings of the outbound connection to the PDS.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds background refresh settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// FilePath is the optional path to a JSON or TOML configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	FilePath string `env:"CONFIG"`
}

// Storage groups the configuration for the cache backend.
type Storage struct {
	// DB holds the cache database connection settings.
	DB DB `envPrefix:"DB_"`
}

// App holds application-level configuration values.
type App struct {
	// Version is the semantic version string of the running application.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// Identifier is the handle or DID used to create a session.
	// Env: APP_IDENTIFIER
	Identifier string `env:"IDENTIFIER"`

	// AppPassword is the app password used to create a session.
	// Env: APP_APP_PASSWORD
	AppPassword string `env:"APP_PASSWORD"`

	// SessionKey is the passphrase that seals the persisted session.
	// Env: APP_SESSION_KEY
	SessionKey string `env:"SESSION_KEY"`

	// LikesSource selects how the likes collection is listed: "records"
	// walks the like records of the repository, "feed" pages the actor
	// likes feed.
	// Env: APP_LIKES_SOURCE
	LikesSource string `env:"LIKES_SOURCE"`

	// SearchFuzziness is the fraction of a term's length allowed as edit
	// distance in full-text search.
	// Env: APP_SEARCH_FUZZINESS
	SearchFuzziness float64 `env:"SEARCH_FUZZINESS"`

	// HashKey is the HMAC key used to sign response ETags.
	// Env: APP_HASH_KEY
	HashKey string `env:"HASH_KEY"`

	// LogPath is where interactive binaries write their log.
	// Env: APP_LOG_PATH
	LogPath string `env:"LOG_PATH"`
}

// Server holds network and timeout settings for the HTTP API.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "127.0.0.1:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// DB holds connection settings for the cache database.
type DB struct {
	// DSN selects and addresses the backend: a file path opens SQLite,
	// "postgres://..." opens PostgreSQL, "bolt://<path>" opens a bolt file
	// and "memory" keeps the cache in process memory.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Adapter holds settings of the XRPC connection to the PDS.
type Adapter struct {
	// Address is the base URL of the PDS (e.g. "https://bsky.social").
	// Env: ADAPTER_ADDRESS
	Address string `env:"ADDRESS"`

	// RequestTimeout bounds a single outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// RateLimit is the sustained number of requests per second.
	// Env: ADAPTER_RATE_LIMIT
	RateLimit float64 `env:"RATE_LIMIT"`

	// RateBurst is the number of requests allowed above RateLimit at once.
	// Env: ADAPTER_RATE_BURST
	RateBurst int `env:"RATE_BURST"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// RefreshInterval is how often cached collections are refetched.
	// Zero disables the refresh job.
	// Env: WORKERS_REFRESH_INTERVAL
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL"`

	// RefreshCollections limits the refresh job to the named collections.
	// Empty means every collection.
	// Env: WORKERS_REFRESH_COLLECTIONS (comma separated)
	RefreshCollections []string `env:"REFRESH_COLLECTIONS" envSeparator:","`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources. For every field the first
// source that sets it wins:
//  1. Environment variables
//  2. Command-line flags parsed from args
//  3. Config file (path resolved from sources 1 and 2)
//
// Unset fields then receive their defaults. The arguments left after the
// flags are returned so a subcommand parser can consume them.
func GetStructuredConfig(args []string) (*StructuredConfig, []string, error) {
	b := newConfigBuilder().
		withEnv().
		withFlags(args).
		withFile()

	cfg, err := b.build()
	return cfg, b.rest, err
}

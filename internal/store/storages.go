// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/sky-shelf/internal/config"
	"github.com/MKhiriev/sky-shelf/internal/logger"
)

// Backend names a cache store implementation.
type Backend string

const (
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
	BackendBolt     Backend = "bolt"
	BackendMemory   Backend = "memory"
)

// ParseDSN selects the backend for dsn and returns the address that backend
// should open:
//   - "memory" or ":memory:" selects the in-memory store;
//   - "postgres://" and "postgresql://" select PostgreSQL with dsn unchanged;
//   - "bolt://<path>" selects bolt at <path>;
//   - "sqlite://<path>" or a bare path selects SQLite.
func ParseDSN(dsn string) (Backend, string, error) {
	switch {
	case dsn == "":
		return "", "", fmt.Errorf("%w: empty DSN", ErrUnsupportedDSN)
	case dsn == "memory" || dsn == ":memory:":
		return BackendMemory, "", nil
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return BackendPostgres, dsn, nil
	case strings.HasPrefix(dsn, "bolt://"):
		path := strings.TrimPrefix(dsn, "bolt://")
		if path == "" {
			return "", "", fmt.Errorf("%w: bolt DSN without path", ErrUnsupportedDSN)
		}
		return BackendBolt, path, nil
	case strings.HasPrefix(dsn, "sqlite://"):
		path := strings.TrimPrefix(dsn, "sqlite://")
		if path == "" {
			return "", "", fmt.Errorf("%w: sqlite DSN without path", ErrUnsupportedDSN)
		}
		return BackendSQLite, path, nil
	case strings.Contains(dsn, "://"):
		return "", "", fmt.Errorf("%w: %s", ErrUnsupportedDSN, dsn[:strings.Index(dsn, "://")])
	}
	return BackendSQLite, dsn, nil
}

// Storages groups the persistent cache and the session-scoped store.
type Storages struct {
	// Cache outlives the process: collection blobs, lastTab and the sealed
	// session.
	Cache CacheStore
	// Session is lost on exit: currentIndex.
	Session CacheStore
}

// NewStorages opens the cache backend selected by cfg.DB.DSN, migrating SQL
// backends, and pairs it with a fresh memory store for session keys.
func NewStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	cache, err := NewCacheStore(ctx, cfg.DB, logger)
	if err != nil {
		return nil, err
	}

	return &Storages{
		Cache:   cache,
		Session: NewMemoryCacheStore(),
	}, nil
}

// NewCacheStore opens the backend selected by cfg.DSN.
func NewCacheStore(ctx context.Context, cfg config.ClientDB, logger *logger.Logger) (CacheStore, error) {
	backend, addr, err := ParseDSN(cfg.DSN)
	if err != nil {
		return nil, err
	}

	switch backend {
	case BackendMemory:
		return NewMemoryCacheStore(), nil
	case BackendBolt:
		return NewBoltCacheStore(addr, logger)
	}

	db, err := OpenSQL(ctx, backend, addr, logger)
	if err != nil {
		return nil, fmt.Errorf("%s connection error: %w", backend, err)
	}

	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return NewSQLCacheStore(db, logger), nil
}

// Close closes both stores.
func (s *Storages) Close() error {
	return errors.Join(s.Cache.Close(), s.Session.Close())
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/sky-shelf/internal/logger"
)

const (
	cacheTable       = "cache_entries"
	cacheKeyColumn   = "cache_key"
	cacheValueColumn = "cache_value"
	cacheTimeColumn  = "updated_at"
)

type sqlCacheStore struct {
	db      *DB
	builder sq.StatementBuilderType
	now     func() time.Time
	logger  *logger.Logger
}

// NewSQLCacheStore returns a [CacheStore] over the cache_entries table of db.
func NewSQLCacheStore(db *DB, logger *logger.Logger) CacheStore {
	return &sqlCacheStore{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(db.placeholder()),
		now:     time.Now,
		logger:  logger,
	}
}

func (s *sqlCacheStore) Get(ctx context.Context, key string) ([]byte, error) {
	log := logger.FromContext(ctx)

	query, args, err := s.builder.
		Select(cacheValueColumn).
		From(cacheTable).
		Where(sq.Eq{cacheKeyColumn: key}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "sqlCacheStore.Get").Msg("error building select query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var value string
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCacheEntryNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "sqlCacheStore.Get").Str("key", key).Msg("error reading cache entry")
		return nil, s.wrap(ErrScanningRow, err)
	}

	return []byte(value), nil
}

func (s *sqlCacheStore) Set(ctx context.Context, key string, value []byte) error {
	log := logger.FromContext(ctx)

	query, args, err := s.builder.
		Insert(cacheTable).
		Columns(cacheKeyColumn, cacheValueColumn, cacheTimeColumn).
		Values(key, string(value), s.now().UTC()).
		Suffix("ON CONFLICT (" + cacheKeyColumn + ") DO UPDATE SET " +
			cacheValueColumn + " = excluded." + cacheValueColumn + ", " +
			cacheTimeColumn + " = excluded." + cacheTimeColumn).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "sqlCacheStore.Set").Msg("error building upsert query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "sqlCacheStore.Set").Str("key", key).Msg("error writing cache entry")
		return s.wrap(ErrExecutingQuery, err)
	}

	return nil
}

func (s *sqlCacheStore) Delete(ctx context.Context, key string) error {
	log := logger.FromContext(ctx)

	query, args, err := s.builder.
		Delete(cacheTable).
		Where(sq.Eq{cacheKeyColumn: key}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "sqlCacheStore.Delete").Msg("error building delete query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "sqlCacheStore.Delete").Str("key", key).Msg("error deleting cache entry")
		return s.wrap(ErrExecutingQuery, err)
	}

	return nil
}

func (s *sqlCacheStore) Close() error {
	return s.db.Close()
}

// wrap tags err with sentinel, and additionally with ErrStorageUnavailable
// when the dialect classifies it as retryable.
func (s *sqlCacheStore) wrap(sentinel, err error) error {
	if s.db.errorClassificator != nil && s.db.errorClassificator.Classify(err) == Retryable {
		return fmt.Errorf("%w: %w: %w", ErrStorageUnavailable, sentinel, err)
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}

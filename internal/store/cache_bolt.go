// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/boltdb/bolt"

	"github.com/MKhiriev/sky-shelf/internal/logger"
)

var cacheBucket = []byte("cache")

type boltCacheStore struct {
	db     *bolt.DB
	logger *logger.Logger
}

// NewBoltCacheStore opens (or creates) a bolt file at path.
func NewBoltCacheStore(path string, log *logger.Logger) (CacheStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrOpeningBolt, err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		log.Err(err).Str("func", "NewBoltCacheStore").Str("path", path).Msg("error opening bolt file")
		return nil, fmt.Errorf("%w: %w", ErrOpeningBolt, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(cacheBucket)
		return err
	})
	if err != nil {
		db.Close()
		log.Err(err).Str("func", "NewBoltCacheStore").Msg("error creating cache bucket")
		return nil, fmt.Errorf("%w: %w", ErrOpeningBolt, err)
	}
	log.Debug().Str("func", "NewBoltCacheStore").Str("path", path).Msg("opened bolt cache")

	return &boltCacheStore{db: db, logger: log}, nil
}

func (s *boltCacheStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var value []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(cacheBucket).Get([]byte(key))
		if v == nil {
			return ErrCacheEntryNotFound
		}
		// v is only valid inside the transaction
		value = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (s *boltCacheStore) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(cacheBucket).Put([]byte(key), value)
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "boltCacheStore.Set").Str("key", key).Msg("error writing cache entry")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return nil
}

func (s *boltCacheStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(cacheBucket).Delete([]byte(key))
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "boltCacheStore.Delete").Str("key", key).Msg("error deleting cache entry")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return nil
}

func (s *boltCacheStore) Close() error {
	return s.db.Close()
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/sky-shelf/internal/logger"
	"github.com/MKhiriev/sky-shelf/models"
)

// exerciseCacheStore runs the behaviour every backend shares.
func exerciseCacheStore(t *testing.T, s CacheStore) {
	t.Helper()
	ctx := context.Background()
	key := CacheKey(models.CollectionLikes)

	_, err := s.Get(ctx, key)
	require.ErrorIs(t, err, ErrCacheEntryNotFound)

	require.NoError(t, s.Set(ctx, key, []byte(`{"posts":[]}`)))
	got, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, `{"posts":[]}`, string(got))

	require.NoError(t, s.Set(ctx, key, []byte(`{"posts":[{}]}`)))
	got, err = s.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, `{"posts":[{}]}`, string(got))

	// returned slices are private copies
	got[0] = 'X'
	again, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, byte('{'), again[0])

	require.NoError(t, s.Delete(ctx, key))
	require.NoError(t, s.Delete(ctx, key))
	_, err = s.Get(ctx, key)
	require.ErrorIs(t, err, ErrCacheEntryNotFound)
}

func TestMemoryCacheStore(t *testing.T) {
	s := NewMemoryCacheStore()
	exerciseCacheStore(t, s)

	require.NoError(t, s.Close())
	_, err := s.Get(context.Background(), "k")
	assert.ErrorIs(t, err, ErrStoreClosed)
}

func TestMemoryCacheStore_SetCopiesInput(t *testing.T) {
	s := NewMemoryCacheStore()
	ctx := context.Background()

	in := []byte("pins")
	require.NoError(t, s.Set(ctx, LastTabKey, in))
	in[0] = 'X'

	got, err := s.Get(ctx, LastTabKey)
	require.NoError(t, err)
	assert.Equal(t, "pins", string(got))
}

func TestBoltCacheStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cache.bolt")

	s, err := NewBoltCacheStore(path, logger.Nop())
	require.NoError(t, err)
	exerciseCacheStore(t, s)

	require.NoError(t, s.Set(context.Background(), LastTabKey, []byte("bookmarks")))
	require.NoError(t, s.Close())

	reopened, err := NewBoltCacheStore(path, logger.Nop())
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(context.Background(), LastTabKey)
	require.NoError(t, err)
	assert.Equal(t, "bookmarks", string(got))
}

func TestBoltCacheStore_CancelledContext(t *testing.T) {
	s, err := NewBoltCacheStore(filepath.Join(t.TempDir(), "c.bolt"), logger.Nop())
	require.NoError(t, err)
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.Set(ctx, "k", []byte("v")), context.Canceled)
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "likes-cache", CacheKey(models.CollectionLikes))
	assert.Equal(t, "pins-cache", CacheKey(models.CollectionPins))
	assert.Equal(t, "bookmarks-cache", CacheKey(models.CollectionBookmarks))
}

func TestParseDSN(t *testing.T) {
	tests := []struct {
		dsn         string
		wantBackend Backend
		wantAddr    string
		wantErr     bool
	}{
		{dsn: "skyshelf.db", wantBackend: BackendSQLite, wantAddr: "skyshelf.db"},
		{dsn: "/var/lib/skyshelf/cache.db", wantBackend: BackendSQLite, wantAddr: "/var/lib/skyshelf/cache.db"},
		{dsn: "sqlite://data/c.db", wantBackend: BackendSQLite, wantAddr: "data/c.db"},
		{dsn: "postgres://u:p@localhost/db", wantBackend: BackendPostgres, wantAddr: "postgres://u:p@localhost/db"},
		{dsn: "postgresql://localhost/db", wantBackend: BackendPostgres, wantAddr: "postgresql://localhost/db"},
		{dsn: "bolt:///tmp/c.bolt", wantBackend: BackendBolt, wantAddr: "/tmp/c.bolt"},
		{dsn: "memory", wantBackend: BackendMemory},
		{dsn: ":memory:", wantBackend: BackendMemory},
		{dsn: "mysql://localhost/db", wantErr: true},
		{dsn: "bolt://", wantErr: true},
		{dsn: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			backend, addr, err := ParseDSN(tt.dsn)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedDSN)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantBackend, backend)
			assert.Equal(t, tt.wantAddr, addr)
		})
	}
}

func TestNewStorages_Memory(t *testing.T) {
	s, err := NewStorages(context.Background(), configWithDSN("memory"), logger.Nop())
	require.NoError(t, err)
	assert.IsType(t, &MemoryCacheStore{}, s.Cache)
	assert.NotSame(t, s.Cache, s.Session)
	require.NoError(t, s.Close())
}

func TestNewStorages_Bolt(t *testing.T) {
	dsn := "bolt://" + filepath.Join(t.TempDir(), "cache.bolt")

	s, err := NewStorages(context.Background(), configWithDSN(dsn), logger.Nop())
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Cache.Set(context.Background(), SessionKey, []byte("sealed")))
}

func TestNewStorages_UnsupportedDSN(t *testing.T) {
	_, err := NewStorages(context.Background(), configWithDSN("redis://x"), logger.Nop())
	assert.ErrorIs(t, err, ErrUnsupportedDSN)
}

func TestOpenSQL_RejectsNonSQLBackend(t *testing.T) {
	_, err := OpenSQL(context.Background(), BackendBolt, "cache.bolt", logger.Nop())
	assert.ErrorIs(t, err, ErrUnsupportedDSN)
}

func TestEnsureDBFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "skyshelf.db")

	require.NoError(t, ensureDBFile(path))
	assert.FileExists(t, path)
	require.NoError(t, ensureDBFile(path))
}

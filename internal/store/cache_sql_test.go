// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/sky-shelf/internal/logger"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestSQLStore(t *testing.T, dialect string) (*sqlCacheStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	l := logger.Nop()
	wrapped := &DB{DB: db, dialect: dialect, logger: l}
	if dialect == DialectPostgres {
		wrapped.errorClassificator = NewPostgresErrorClassifier()
	}

	s := NewSQLCacheStore(wrapped, l).(*sqlCacheStore)
	s.now = func() time.Time { return fixedNow }
	return s, mock
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func TestSQLCacheStore_Get(t *testing.T) {
	s, mock := newTestSQLStore(t, DialectSQLite)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT cache_value FROM cache_entries WHERE cache_key = ?")).
		WithArgs("likes-cache").
		WillReturnRows(sqlmock.NewRows([]string{"cache_value"}).AddRow(`{"posts":[]}`))

	got, err := s.Get(context.Background(), "likes-cache")
	require.NoError(t, err)
	assert.Equal(t, `{"posts":[]}`, string(got))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLCacheStore_Get_NotFound(t *testing.T) {
	s, mock := newTestSQLStore(t, DialectSQLite)

	mock.ExpectQuery("SELECT cache_value FROM cache_entries").
		WithArgs("pins-cache").
		WillReturnRows(sqlmock.NewRows([]string{"cache_value"}))

	_, err := s.Get(context.Background(), "pins-cache")
	assert.ErrorIs(t, err, ErrCacheEntryNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLCacheStore_Get_PostgresPlaceholders(t *testing.T) {
	s, mock := newTestSQLStore(t, DialectPostgres)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT cache_value FROM cache_entries WHERE cache_key = $1")).
		WithArgs("lastTab").
		WillReturnRows(sqlmock.NewRows([]string{"cache_value"}).AddRow("pins"))

	got, err := s.Get(context.Background(), "lastTab")
	require.NoError(t, err)
	assert.Equal(t, "pins", string(got))
}

func TestSQLCacheStore_Get_QueryError(t *testing.T) {
	s, mock := newTestSQLStore(t, DialectSQLite)

	mock.ExpectQuery("SELECT cache_value").WillReturnError(errors.New("disk I/O error"))

	_, err := s.Get(context.Background(), "likes-cache")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrScanningRow)
	assert.NotErrorIs(t, err, ErrStorageUnavailable)
}

func TestSQLCacheStore_Set_Upserts(t *testing.T) {
	s, mock := newTestSQLStore(t, DialectSQLite)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO cache_entries (cache_key,cache_value,updated_at) VALUES (?,?,?) ON CONFLICT (cache_key) DO UPDATE SET cache_value = excluded.cache_value, updated_at = excluded.updated_at")).
		WithArgs("likes-cache", `{"posts":[1]}`, fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.Set(context.Background(), "likes-cache", []byte(`{"posts":[1]}`))
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLCacheStore_Set_ClassifiesPostgresErrors(t *testing.T) {
	tests := []struct {
		name            string
		err             error
		wantUnavailable bool
	}{
		{name: "connection failure", err: pgError(pgerrcode.ConnectionFailure), wantUnavailable: true},
		{name: "deadlock", err: pgError(pgerrcode.DeadlockDetected), wantUnavailable: true},
		{name: "undefined table", err: pgError(pgerrcode.UndefinedTable), wantUnavailable: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mock := newTestSQLStore(t, DialectPostgres)
			mock.ExpectExec("INSERT INTO cache_entries").WillReturnError(tt.err)

			err := s.Set(context.Background(), "k", []byte("v"))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrExecutingQuery)
			assert.Equal(t, tt.wantUnavailable, errors.Is(err, ErrStorageUnavailable))
		})
	}
}

func TestSQLCacheStore_Delete(t *testing.T) {
	s, mock := newTestSQLStore(t, DialectSQLite)

	// absent key: zero rows affected is still success
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM cache_entries WHERE cache_key = ?")).
		WithArgs("bookmarks-cache").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, s.Delete(context.Background(), "bookmarks-cache"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLCacheStore_Delete_Error(t *testing.T) {
	s, mock := newTestSQLStore(t, DialectSQLite)

	mock.ExpectExec("DELETE FROM cache_entries").WillReturnError(sql.ErrConnDone)

	err := s.Delete(context.Background(), "k")
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

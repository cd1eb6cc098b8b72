// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/sky-shelf/internal/logger"
	"github.com/MKhiriev/sky-shelf/migrations"
)

// SQL dialect names understood by goose.
const (
	DialectSQLite   = "sqlite3"
	DialectPostgres = "postgres"
)

// sqlBackend describes how a SQL cache backend is opened.
type sqlBackend struct {
	driver  string
	dialect string
	maxOpen int
	maxIdle int
	// prepare runs before the connection is opened.
	prepare    func(addr string) error
	classifier func() ErrorClassificator
}

var sqlBackends = map[Backend]sqlBackend{
	BackendSQLite: {
		driver:  "sqlite3",
		dialect: DialectSQLite,
		// one connection serialises writers on the file
		maxOpen: 1,
		maxIdle: 1,
		prepare: ensureDBFile,
	},
	BackendPostgres: {
		driver:     "pgx",
		dialect:    DialectPostgres,
		maxOpen:    4,
		maxIdle:    2,
		classifier: func() ErrorClassificator { return NewPostgresErrorClassifier() },
	},
}

// DB is an open SQL connection together with its dialect.
type DB struct {
	*sql.DB
	dialect            string
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// OpenSQL connects to addr with the driver of backend and pings it.
func OpenSQL(ctx context.Context, backend Backend, addr string, log *logger.Logger) (*DB, error) {
	b, ok := sqlBackends[backend]
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a SQL backend", ErrUnsupportedDSN, backend)
	}
	l := log.With().Str("func", "OpenSQL").Str("backend", string(backend)).Logger()

	if b.prepare != nil {
		if err := b.prepare(addr); err != nil {
			l.Err(err).Msg("error preparing database")
			return nil, err
		}
	}

	conn, err := sql.Open(b.driver, addr)
	if err != nil {
		l.Err(err).Msg("error opening database")
		return nil, fmt.Errorf("error opening connection to DB: %w", err)
	}
	conn.SetMaxOpenConns(b.maxOpen)
	conn.SetMaxIdleConns(b.maxIdle)

	if err = conn.PingContext(ctx); err != nil {
		l.Err(err).Msg("error connecting database (ping)")
		conn.Close()
		return nil, err
	}
	l.Info().Msg("connected to database successfully")

	db := &DB{DB: conn, dialect: b.dialect, logger: log}
	if b.classifier != nil {
		db.errorClassificator = b.classifier()
	}
	return db, nil
}

// Migrate applies pending schema migrations.
func (db *DB) Migrate(ctx context.Context) error {
	return migrations.Migrate(ctx, db.DB, db.dialect)
}

func (db *DB) placeholder() sq.PlaceholderFormat {
	if db.dialect == DialectPostgres {
		return sq.Dollar
	}
	return sq.Question
}

// ensureDBFile creates the SQLite file and its directory when missing.
func ensureDBFile(path string) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("error creating DB directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating DB file: %w", err)
	}
	return f.Close()
}

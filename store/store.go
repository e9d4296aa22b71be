// Copyright (C) 2025 sage-x-project
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.

// SPDX-License-Identifier: LGPL-3.0-or-later

// Package store implements the spec's dual-write persistence layer: a
// transactional relational store (spec.md §4.1) plus, via the sibling
// archive package, a git-backed audit tree beneath the same data
// directory. Open/openSQLite/WithTx follow the Open/openDB/WithTx trio
// of _examples/jra3-linear-fuse/internal/db/store.go, generalized from
// that repo's single hard-coded schema to an ordered set of embedded
// migrations (spec.md §4.1: "applies pending schema migrations in a
// strictly increasing numeric order").
package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	adkerrors "github.com/sage-x-project/agentmail/pkg/errors"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Backend selects the relational engine behind the Store interface.
// SQLite is the default (spec's "single embedded data directory");
// Postgres is kept available for installs that externalize storage.
type Backend string

const (
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
)

// Store is the single process-wide persistence handle (design note §9:
// "the only process-wide state is the open Store handle and the
// archive writer lock").
type Store struct {
	db      *sql.DB
	queries *Queries
}

// dbFileName is the one relational store file under data_dir (spec.md
// §6 "Relational store file (one)").
const dbFileName = "agentmail.db"

// Open initializes the relational store, creating it if absent, and
// applies pending migrations in increasing numeric order, each inside
// its own transaction. It does not touch the archive; callers wire
// the archive.Writer separately against the same data directory.
func Open(dataDir string, backend Backend, pg PostgresDSN) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, adkerrors.ErrPersistence.Wrap(fmt.Errorf("create data dir: %w", err))
	}

	var (
		db  *sql.DB
		err error
	)
	switch backend {
	case BackendPostgres:
		db, err = openPostgres(pg)
	default:
		db, err = openSQLite(filepath.Join(dataDir, dbFileName))
	}
	if err != nil {
		return nil, adkerrors.ErrPersistence.Wrap(err)
	}

	s := &Store{db: db, queries: New(db)}
	if err := s.migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func openSQLite(dbPath string) (*sql.DB, error) {
	escaped := strings.ReplaceAll(dbPath, " ", "%20")
	connStr := "file:" + escaped + "?_time_format=sqlite"
	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single pooled connection, so reads and writes from this process
	// run one at a time; WAL mode is enabled as jra3-linear-fuse's
	// openDB does.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return db, nil
}

// migrate applies every migrations/NNNN_*.sql file whose numeric
// prefix is not yet recorded in schema_migrations, in ascending order,
// each inside its own unit-of-work (spec.md §4.1: "each migration runs
// within a unit-of-work; partial failure aborts").
func (s *Store) migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		applied_ts INTEGER NOT NULL
	)`); err != nil {
		return adkerrors.ErrMigration.Wrap(err)
	}

	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		return adkerrors.ErrMigration.Wrap(err)
	}

	type pending struct {
		version int
		name    string
	}
	var files []pending
	seen := make(map[int]string)
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		version, name, err := parseMigrationName(e.Name())
		if err != nil {
			return adkerrors.ErrMigration.Wrap(err)
		}
		if existing, ok := seen[version]; ok {
			return adkerrors.ErrSchemaConflict.WithDetails(map[string]interface{}{
				"version": version, "a": existing, "b": e.Name(),
			})
		}
		seen[version] = e.Name()
		files = append(files, pending{version: version, name: name})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].version < files[j].version })

	for _, f := range files {
		var already int
		row := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM schema_migrations WHERE version = ?`, f.version)
		if err := row.Scan(&already); err != nil {
			return adkerrors.ErrMigration.Wrap(err)
		}
		if already > 0 {
			continue
		}

		sqlBytes, err := migrationsFS.ReadFile(fmt.Sprintf("migrations/%04d_%s.sql", f.version, f.name))
		if err != nil {
			return adkerrors.ErrMigration.Wrap(err)
		}

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return adkerrors.ErrMigration.Wrap(err)
		}
		if _, err := tx.ExecContext(ctx, string(sqlBytes)); err != nil {
			tx.Rollback()
			return adkerrors.ErrMigration.WithDetail("version", f.version).Wrap(err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version, name, applied_ts) VALUES (?, ?, ?)`,
			f.version, f.name, time.Now().Unix()); err != nil {
			tx.Rollback()
			return adkerrors.ErrMigration.Wrap(err)
		}
		if err := tx.Commit(); err != nil {
			return adkerrors.ErrMigration.Wrap(err)
		}
	}
	return nil
}

func parseMigrationName(fileName string) (version int, name string, err error) {
	base := strings.TrimSuffix(fileName, ".sql")
	parts := strings.SplitN(base, "_", 2)
	if len(parts) != 2 {
		return 0, "", fmt.Errorf("malformed migration file name %q", fileName)
	}
	v, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, "", fmt.Errorf("malformed migration version in %q: %w", fileName, err)
	}
	return v, parts[1], nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB exposes the underlying *sql.DB for callers needing a raw,
// outside-unit-of-work read (e.g. the Full-Text Index query path).
func (s *Store) DB() *sql.DB {
	return s.db
}

// Queries returns a Queries bound to the base connection, for reads
// that do not need transactional isolation beyond "committed state"
// (spec.md §4.1: "Reads outside a unit-of-work see committed state").
func (s *Store) Queries() *Queries {
	return s.queries
}

// maxSerializationRetries bounds the retry loop for transient
// serialization-class failures (spec.md §4.1 failure semantics).
const maxSerializationRetries = 3

// WithTx runs fn inside a relational unit-of-work. On any failure the
// transaction rolls back; the caller is responsible for discarding any
// archive staging it performed inside fn before returning an error, so
// the dual-write protocol's "pending archive operations... are
// discarded before their commit" clause holds (spec.md §4.1).
func (s *Store) WithTx(ctx context.Context, fn func(*Queries) error) error {
	var lastErr error
	for attempt := 0; attempt < maxSerializationRetries; attempt++ {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return adkerrors.ErrPersistence.Wrap(err)
		}

		txErr := fn(s.queries.WithTx(tx))
		if txErr != nil {
			tx.Rollback()
			if isSerializationFailure(txErr) {
				lastErr = txErr
				continue
			}
			return txErr
		}

		if err := tx.Commit(); err != nil {
			if isSerializationFailure(err) {
				lastErr = err
				continue
			}
			return adkerrors.ErrPersistence.Wrap(err)
		}
		return nil
	}
	return adkerrors.ErrPersistence.Wrap(fmt.Errorf("serialization retries exhausted: %w", lastErr))
}

// isSerializationFailure reports whether err is the kind of transient
// conflict the Store retries automatically (spec.md §4.1: "only for
// serialization-class failures; all others surface immediately").
func isSerializationFailure(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "SQLITE_BUSY") ||
		strings.Contains(msg, "could not serialize access")
}

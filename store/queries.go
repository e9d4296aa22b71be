// Copyright (C) 2025 sage-x-project
// SPDX-License-Identifier: LGPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
)

// dbtx is the minimal surface both *sql.DB and *sql.Tx satisfy, so the
// same Queries methods serve committed-state reads and in-transaction
// writes alike (grounded on jra3-linear-fuse's Queries/DBTX split).
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Queries groups every hand-written SQL statement the Entity
// Controllers issue. There is no code-generation step here (sqlc,
// which jra3-linear-fuse relies on, requires a generator run this
// module cannot perform); the statements below are written directly
// against the schema in migrations/0001_init.sql instead.
type Queries struct {
	db dbtx
}

// New binds a Queries to a connection or transaction handle.
func New(db dbtx) *Queries {
	return &Queries{db: db}
}

// WithTx rebinds q to run within an open transaction.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

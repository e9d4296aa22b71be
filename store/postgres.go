// Copyright (C) 2025 sage-x-project
// SPDX-License-Identifier: LGPL-3.0-or-later

package store

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// PostgresDSN names the optional non-default relational backend
// (SPEC_FULL.md §4 domain stack: lib/pq "kept as the optional
// non-default relational backend behind the Store interface for
// installs that externalize the data dir to Postgres instead of
// SQLite"). SQLite remains the default since the spec calls for a
// single embedded data directory (spec.md §6 "Relational store file
// (one)"); Postgres trades that embedding away for a shared server.
type PostgresDSN struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

func openPostgres(cfg PostgresDSN) (*sql.DB, error) {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, sslMode)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

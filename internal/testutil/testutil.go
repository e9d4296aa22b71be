// Copyright (C) 2025 sage-x-project
// SPDX-License-Identifier: LGPL-3.0-or-later

// Package testutil builds a throwaway Store/Archive/Core pair rooted
// at t.TempDir(), shared by core/ and frontier/ test files so each
// package doesn't have to reimplement store/archive bootstrap.
package testutil

import (
	"testing"

	"github.com/sage-x-project/agentmail/archive"
	"github.com/sage-x-project/agentmail/core"
	"github.com/sage-x-project/agentmail/observability/logging"
	"github.com/sage-x-project/agentmail/observability/metrics"
	"github.com/sage-x-project/agentmail/store"
)

// NewCore opens a fresh SQLite store and git archive under a temp
// directory and wires them into a *core.Core. The clock is core.New's
// default wall clock unless the test reassigns c.Now.
func NewCore(t *testing.T) *core.Core {
	t.Helper()

	dir := t.TempDir()
	s, err := store.Open(dir, store.BackendSQLite, store.PostgresDSN{})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	arc, err := archive.Open(dir, "test-author", "test@localhost")
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}

	c := core.New(s, arc, logging.NewStructuredLogger(logging.LevelError), metrics.NewToolMetrics(metrics.NewPrometheusCollector()))
	return c
}

// Copyright (C) 2025 sage-x-project
// SPDX-License-Identifier: LGPL-3.0-or-later

package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRunInitScaffoldsDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "agentmail-data")

	if err := runInit(initCmd, []string{dir}); err != nil {
		t.Fatalf("runInit: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "agentmail.db")); err != nil {
		t.Fatalf("expected agentmail.db to exist: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Fatalf("expected config.yaml to exist: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "archive")); err != nil {
		t.Fatalf("expected an archive git repo to exist: %v", err)
	}
}

func TestRunInitIsIdempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "agentmail-data")

	if err := runInit(initCmd, []string{dir}); err != nil {
		t.Fatalf("first runInit: %v", err)
	}
	if err := runInit(initCmd, []string{dir}); err != nil {
		t.Fatalf("second runInit should not error on an existing data dir: %v", err)
	}
}

func TestWithExitCode(t *testing.T) {
	if withExitCode(exitDataDir, nil) != nil {
		t.Fatalf("withExitCode(nil) should return nil")
	}

	err := withExitCode(exitMigration, os.ErrNotExist)
	coded, ok := err.(*exitCoded)
	if !ok {
		t.Fatalf("expected *exitCoded, got %T", err)
	}
	if coded.code != exitMigration {
		t.Fatalf("expected code %d, got %d", exitMigration, coded.code)
	}
}

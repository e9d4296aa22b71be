// Copyright (C) 2025 sage-x-project
// SPDX-License-Identifier: LGPL-3.0-or-later

package archive

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestOpenInitializesRepoWithInitialCommit(t *testing.T) {
	dir := t.TempDir()
	w, err := Open(dir, "agent-mail", "agent-mail@localhost")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, RootDir, ".git")); err != nil {
		t.Fatalf("expected .git directory: %v", err)
	}

	// Reopening an existing archive must not fail or re-init.
	if _, err := Open(dir, "agent-mail", "agent-mail@localhost"); err != nil {
		t.Fatalf("second Open() error = %v", err)
	}
	_ = w
}

func TestCommitWritesStagedFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := Open(dir, "agent-mail", "agent-mail@localhost")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	staged := NewStaged()
	canonical := CanonicalMessagePath("p1", 1700000000, "hi there", 1)
	header := MessageHeader{
		ID: 1, Thread: "t_1", From: "alpha", To: []string{"beta"}, Subject: "hi there",
		Importance: "normal", Created: time.Unix(1700000000, 0),
	}
	staged.Put(canonical, RenderMessageFile(header, "hello world"))
	staged.Put(InboxPath("p1", "beta", 1700000000, "hi there", 1), RenderMessageFile(header, "hello world"))

	if err := w.Commit(staged, CommitMessageLine("send", "message", 1, "p1")); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}

	full := filepath.Join(dir, RootDir, canonical)
	content, err := os.ReadFile(full)
	if err != nil {
		t.Fatalf("expected canonical file at %s: %v", full, err)
	}
	if string(content)[:5] != "id: 1" {
		t.Errorf("unexpected header in %s: %q", full, content)
	}
}

func TestCanonicalAndMailboxPathsShareBasename(t *testing.T) {
	canonical := CanonicalMessagePath("p1", 1700000000, "hi there", 42)
	inbox := InboxPath("p1", "beta", 1700000000, "hi there", 42)
	outbox := OutboxPath("p1", "alpha", 1700000000, "hi there", 42)

	base := filepath.Base(canonical)
	if filepath.Base(inbox) != base || filepath.Base(outbox) != base {
		t.Errorf("expected shared basename %q, got inbox=%q outbox=%q", base, filepath.Base(inbox), filepath.Base(outbox))
	}
}

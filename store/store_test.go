// Copyright (C) 2025 sage-x-project
// SPDX-License-Identifier: LGPL-3.0-or-later

package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sage-x-project/agentmail/pkg/ids"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	s, err := Open(dir, BackendSQLite, PostgresDSN{})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenAppliesMigrationsIdempotently(t *testing.T) {
	dir := t.TempDir()
	s1, err := Open(dir, BackendSQLite, PostgresDSN{})
	if err != nil {
		t.Fatalf("first Open() error = %v", err)
	}
	s1.Close()

	s2, err := Open(dir, BackendSQLite, PostgresDSN{})
	if err != nil {
		t.Fatalf("second Open() error = %v", err)
	}
	defer s2.Close()

	var count int
	row := s2.DB().QueryRowContext(context.Background(), `SELECT COUNT(1) FROM schema_migrations`)
	if err := row.Scan(&count); err != nil {
		t.Fatalf("scan migration count: %v", err)
	}
	if count != 1 {
		t.Errorf("expected exactly one recorded migration, got %d", count)
	}
}

func TestDbFileNameUnderDataDir(t *testing.T) {
	dir := t.TempDir()
	s := openTestStoreAt(t, dir)
	defer s.Close()

	want := filepath.Join(dir, dbFileName)
	if _, err := os.Stat(want); err != nil {
		t.Errorf("expected db file at %s: %v", want, err)
	}
}

func openTestStoreAt(t *testing.T, dir string) *Store {
	t.Helper()
	s, err := Open(dir, BackendSQLite, PostgresDSN{})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return s
}

func TestInsertAndGetProject(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var projectID ids.ProjectID
	err := s.WithTx(ctx, func(q *Queries) error {
		id, err := q.InsertProject(ctx, "p1", "Project One", 1000)
		projectID = id
		return err
	})
	if err != nil {
		t.Fatalf("InsertProject() error = %v", err)
	}

	got, err := s.Queries().GetProjectBySlug(ctx, "p1")
	if err != nil {
		t.Fatalf("GetProjectBySlug() error = %v", err)
	}
	if got.ID != projectID || got.HumanKey != "Project One" {
		t.Errorf("got %+v, want id=%v human_key=Project One", got, projectID)
	}
}

func TestMessageRoundTripAndFTS(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var projectID ids.ProjectID
	var alpha, beta ids.AgentID
	var messageID ids.MessageID

	err := s.WithTx(ctx, func(q *Queries) error {
		var err error
		projectID, err = q.InsertProject(ctx, "p1", "Project One", 1000)
		if err != nil {
			return err
		}
		alpha, err = q.InsertAgent(ctx, Agent{ProjectID: projectID, Name: "alpha", ContactPolicy: PolicyOpen, InceptionTs: 1000})
		if err != nil {
			return err
		}
		beta, err = q.InsertAgent(ctx, Agent{ProjectID: projectID, Name: "beta", ContactPolicy: PolicyOpen, InceptionTs: 1000})
		if err != nil {
			return err
		}
		messageID, err = q.InsertMessage(ctx, Message{
			ProjectID: projectID, SenderID: alpha, Subject: "hi there", Body: "hello world",
			Importance: ImportanceNormal, ThreadID: "t_1", CreatedTs: 1001,
		})
		if err != nil {
			return err
		}
		return q.InsertRecipient(ctx, Recipient{MessageID: messageID, AgentID: beta, Kind: RecipientTo})
	})
	if err != nil {
		t.Fatalf("setup transaction error = %v", err)
	}

	inbox, err := s.Queries().ListInbox(ctx, projectID, beta, false)
	if err != nil {
		t.Fatalf("ListInbox() error = %v", err)
	}
	if len(inbox) != 1 || inbox[0].Message.Subject != "hi there" {
		t.Fatalf("ListInbox() = %+v", inbox)
	}
	if inbox[0].ReadTs != nil {
		t.Errorf("expected read_ts nil before mark_read")
	}

	if err := s.Queries().MarkRead(ctx, messageID, beta, 1002); err != nil {
		t.Fatalf("MarkRead() error = %v", err)
	}
	if err := s.Queries().MarkRead(ctx, messageID, beta, 9999); err != nil {
		t.Fatalf("second MarkRead() error = %v", err)
	}
	r, err := s.Queries().GetRecipient(ctx, messageID, beta)
	if err != nil {
		t.Fatalf("GetRecipient() error = %v", err)
	}
	if r.ReadTs == nil || *r.ReadTs != 1002 {
		t.Errorf("expected read_ts=1002 fixed by first call, got %+v", r.ReadTs)
	}

	results, err := s.Queries().SearchMessages(ctx, projectID, "hello", 10)
	if err != nil {
		t.Fatalf("SearchMessages() error = %v", err)
	}
	if len(results) != 1 || results[0].ID != messageID {
		t.Errorf("SearchMessages() = %+v, want message %v", results, messageID)
	}
}

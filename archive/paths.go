// Copyright (C) 2025 sage-x-project
// SPDX-License-Identifier: LGPL-3.0-or-later

// Package archive implements the Archive Writer (spec.md §4.7): it
// serializes each message into a deterministic file layout inside a
// git repository beneath the data directory and commits atomically.
// Implemented with github.com/go-git/go-git/v5 (SPEC_FULL.md §4 domain
// stack), matching the teacher's single-writer-lock style used for its
// own externally-shared connections.
package archive

import (
	"fmt"
	"path"
	"time"

	"github.com/gosimple/slug"
)

// RootDir is the archive's directory name under the data directory
// (spec.md §6: "Archive git repository at archive/").
const RootDir = "archive"

// ProjectRoot returns the project's sub-tree root, relative to the
// archive repository root.
func ProjectRoot(projectSlug string) string {
	return path.Join("projects", projectSlug)
}

// CanonicalMessagePath returns the canonical archive path for a
// message (spec.md §4.7): `projects/S/messages/YYYY/MM/{epoch}__{subject-slug}__{id}.md`.
func CanonicalMessagePath(projectSlug string, createdTs int64, subject string, id int64) string {
	t := time.Unix(createdTs, 0).UTC()
	basename := messageBasename(createdTs, subject, id)
	return path.Join(ProjectRoot(projectSlug), "messages", t.Format("2006"), t.Format("01"), basename)
}

// OutboxPath returns the sender's outbox copy path for a message.
func OutboxPath(projectSlug, senderName string, createdTs int64, subject string, id int64) string {
	t := time.Unix(createdTs, 0).UTC()
	return path.Join(ProjectRoot(projectSlug), "agents", senderName, "outbox",
		t.Format("2006"), t.Format("01"), messageBasename(createdTs, subject, id))
}

// InboxPath returns one recipient's inbox copy path for a message.
func InboxPath(projectSlug, agentName string, createdTs int64, subject string, id int64) string {
	t := time.Unix(createdTs, 0).UTC()
	return path.Join(ProjectRoot(projectSlug), "agents", agentName, "inbox",
		t.Format("2006"), t.Format("01"), messageBasename(createdTs, subject, id))
}

// ProfilePath returns an agent's profile document path, rewritten
// whenever the Agent row changes (spec.md §4.7).
func ProfilePath(projectSlug, agentName string) string {
	return path.Join(ProjectRoot(projectSlug), "agents", agentName, "profile.json")
}

// AttachmentPath returns a content-addressed attachment path.
func AttachmentPath(projectSlug, sha256, filename string) string {
	return path.Join(ProjectRoot(projectSlug), "attachments", sha256, filename)
}

// messageBasename is shared across the canonical file and every
// mailbox copy so the canonical, outbox and inbox paths for one
// message differ only by their directory prefix (spec.md §8: "all were committed in a single
// commit" implies they must be trivially derivable from one message).
func messageBasename(createdTs int64, subject string, id int64) string {
	subjectSlug := slug.Make(subject)
	if subjectSlug == "" {
		subjectSlug = "no-subject"
	}
	if len(subjectSlug) > 60 {
		subjectSlug = subjectSlug[:60]
	}
	return fmt.Sprintf("%d__%s__%d.md", createdTs, subjectSlug, id)
}

// Copyright (C) 2025 sage-x-project
// SPDX-License-Identifier: LGPL-3.0-or-later

package store

import (
	"context"
	"database/sql"

	adkerrors "github.com/sage-x-project/agentmail/pkg/errors"
	"github.com/sage-x-project/agentmail/pkg/ids"
)

// FindAttachmentBySHA looks up an existing attachment by content hash
// within a project, so repeated stores of identical bytes collapse
// (spec.md §5: "concurrent adds of the same bytes collapse").
func (q *Queries) FindAttachmentBySHA(ctx context.Context, project ids.ProjectID, sha256 string) (*Attachment, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT id, project_id, agent_id, message_id, filename, stored_path, sha256, media_type, size_bytes, created_ts
		 FROM attachments WHERE project_id = ? AND sha256 = ? LIMIT 1`, int64(project), sha256)
	a, err := scanAttachment(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// InsertAttachment inserts a new attachments row.
func (q *Queries) InsertAttachment(ctx context.Context, a Attachment) (ids.AttachmentID, error) {
	var agent, message interface{}
	if !a.AgentID.Zero() {
		agent = int64(a.AgentID)
	}
	if !a.MessageID.Zero() {
		message = int64(a.MessageID)
	}
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO attachments (project_id, agent_id, message_id, filename, stored_path, sha256, media_type, size_bytes, created_ts)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		int64(a.ProjectID), agent, message, a.Filename, a.StoredPath, a.SHA256, a.MediaType, a.SizeBytes, a.CreatedTs)
	if err != nil {
		return 0, adkerrors.ErrPersistence.Wrap(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, adkerrors.ErrPersistence.Wrap(err)
	}
	return ids.AttachmentID(id), nil
}

// GetAttachment returns an attachment by id.
func (q *Queries) GetAttachment(ctx context.Context, id ids.AttachmentID) (Attachment, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT id, project_id, agent_id, message_id, filename, stored_path, sha256, media_type, size_bytes, created_ts
		 FROM attachments WHERE id = ?`, int64(id))
	a, err := scanAttachment(row)
	if err == sql.ErrNoRows {
		return Attachment{}, adkerrors.ErrAttachmentNotFound
	}
	return a, err
}

func scanAttachment(row *sql.Row) (Attachment, error) {
	var a Attachment
	var id, pid int64
	var agent, message sql.NullInt64
	if err := row.Scan(&id, &pid, &agent, &message, &a.Filename, &a.StoredPath, &a.SHA256, &a.MediaType, &a.SizeBytes, &a.CreatedTs); err != nil {
		if err == sql.ErrNoRows {
			return Attachment{}, err
		}
		return Attachment{}, adkerrors.ErrPersistence.Wrap(err)
	}
	a.ID, a.ProjectID = ids.AttachmentID(id), ids.ProjectID(pid)
	if agent.Valid {
		a.AgentID = ids.AgentID(agent.Int64)
	}
	if message.Valid {
		a.MessageID = ids.MessageID(message.Int64)
	}
	return a, nil
}

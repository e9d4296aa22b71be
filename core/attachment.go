// Copyright (C) 2025 sage-x-project
// SPDX-License-Identifier: LGPL-3.0-or-later

package core

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"github.com/sage-x-project/agentmail/archive"
	"github.com/sage-x-project/agentmail/pkg/ids"
	"github.com/sage-x-project/agentmail/store"
)

// StoreAttachment content-addresses bytes by sha256 and collapses
// repeated stores of identical content to the existing row (spec.md §5,
// SPEC_FULL.md §6.2 supplement). The file is committed to the archive
// before the relational row is inserted; if the insert fails, the
// committed file is not removed and no row refers to it.
func (c *Core) StoreAttachment(ctx context.Context, project ids.ProjectID, agent ids.AgentID, filename, mediaType string, content []byte) (store.Attachment, error) {
	sum := sha256.Sum256(content)
	shaHex := hex.EncodeToString(sum[:])

	if existing, err := c.Store.Queries().FindAttachmentBySHA(ctx, project, shaHex); err != nil {
		return store.Attachment{}, err
	} else if existing != nil {
		return *existing, nil
	}

	p, err := c.Store.Queries().GetProject(ctx, project)
	if err != nil {
		return store.Attachment{}, err
	}
	storedPath := archive.AttachmentPath(p.Slug, shaHex, filename)

	staged := archive.NewStaged()
	staged.Put(storedPath, content)
	if err := c.Archive.Commit(staged, archive.CommitMessageLine("store", "attachment", 0, p.Slug)); err != nil {
		return store.Attachment{}, err
	}

	var result store.Attachment
	txErr := c.Store.WithTx(ctx, func(q *store.Queries) error {
		a := store.Attachment{
			ProjectID: project, AgentID: agent, Filename: filename, StoredPath: storedPath,
			SHA256: shaHex, MediaType: mediaType, SizeBytes: int64(len(content)), CreatedTs: c.now(),
		}
		id, err := q.InsertAttachment(ctx, a)
		if err != nil {
			return err
		}
		a.ID = id
		result = a
		return nil
	})
	if txErr != nil {
		return store.Attachment{}, txErr
	}
	return result, nil
}

// GetAttachment returns an attachment by id.
func (c *Core) GetAttachment(ctx context.Context, id ids.AttachmentID) (store.Attachment, error) {
	return c.Store.Queries().GetAttachment(ctx, id)
}

// Copyright (C) 2025 sage-x-project
// SPDX-License-Identifier: LGPL-3.0-or-later

package store

import (
	"context"
	"database/sql"

	adkerrors "github.com/sage-x-project/agentmail/pkg/errors"
	"github.com/sage-x-project/agentmail/pkg/ids"
)

// InsertProject inserts a new projects row.
func (q *Queries) InsertProject(ctx context.Context, slug, humanKey string, createdTs int64) (ids.ProjectID, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO projects (slug, human_key, created_ts) VALUES (?, ?, ?)`,
		slug, humanKey, createdTs)
	if err != nil {
		return 0, adkerrors.ErrPersistence.Wrap(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, adkerrors.ErrPersistence.Wrap(err)
	}
	return ids.ProjectID(id), nil
}

// GetProjectBySlug returns the project with the given slug, or
// ErrProjectNotFound.
func (q *Queries) GetProjectBySlug(ctx context.Context, slug string) (Project, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT id, slug, human_key, created_ts FROM projects WHERE slug = ?`, slug)
	return scanProject(row)
}

// GetProject returns the project with the given id.
func (q *Queries) GetProject(ctx context.Context, id ids.ProjectID) (Project, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT id, slug, human_key, created_ts FROM projects WHERE id = ?`, int64(id))
	return scanProject(row)
}

func scanProject(row *sql.Row) (Project, error) {
	var p Project
	var pid int64
	if err := row.Scan(&pid, &p.Slug, &p.HumanKey, &p.CreatedTs); err != nil {
		if err == sql.ErrNoRows {
			return Project{}, adkerrors.ErrProjectNotFound
		}
		return Project{}, adkerrors.ErrPersistence.Wrap(err)
	}
	p.ID = ids.ProjectID(pid)
	return p, nil
}

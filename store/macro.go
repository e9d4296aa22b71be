// Copyright (C) 2025 sage-x-project
// SPDX-License-Identifier: LGPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"encoding/json"

	adkerrors "github.com/sage-x-project/agentmail/pkg/errors"
	"github.com/sage-x-project/agentmail/pkg/ids"
)

// InsertMacro inserts a new macros row; project is zero for a
// global (cross-project) macro (spec.md §3: "Macro ... project_id?").
func (q *Queries) InsertMacro(ctx context.Context, m Macro) (ids.MacroID, error) {
	steps, err := json.Marshal(m.Steps)
	if err != nil {
		return 0, adkerrors.ErrInvalidArgument.Wrap(err)
	}
	var project interface{}
	if !m.ProjectID.Zero() {
		project = int64(m.ProjectID)
	}
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO macros (project_id, name, steps, created_ts) VALUES (?, ?, ?, ?)`,
		project, m.Name, string(steps), m.CreatedTs)
	if err != nil {
		return 0, adkerrors.ErrPersistence.Wrap(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, adkerrors.ErrPersistence.Wrap(err)
	}
	return ids.MacroID(id), nil
}

// ListMacros returns macros visible to project: global macros
// (project_id null) plus any scoped to this project.
func (q *Queries) ListMacros(ctx context.Context, project ids.ProjectID) ([]Macro, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, project_id, name, steps, created_ts FROM macros
		 WHERE project_id IS NULL OR project_id = ? ORDER BY created_ts ASC, id ASC`,
		int64(project))
	if err != nil {
		return nil, adkerrors.ErrPersistence.Wrap(err)
	}
	defer rows.Close()

	var out []Macro
	for rows.Next() {
		m, err := scanMacro(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// GetMacro returns a macro by id.
func (q *Queries) GetMacro(ctx context.Context, id ids.MacroID) (Macro, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT id, project_id, name, steps, created_ts FROM macros WHERE id = ?`, int64(id))
	m, err := scanMacro(row)
	if err == sql.ErrNoRows {
		return Macro{}, adkerrors.New(adkerrors.CategoryNotFound, "MACRO_NOT_FOUND", "macro not found")
	}
	return m, err
}

func scanMacro(s rowScanner) (Macro, error) {
	var m Macro
	var id int64
	var project sql.NullInt64
	var steps string
	if err := s.Scan(&id, &project, &m.Name, &steps, &m.CreatedTs); err != nil {
		return Macro{}, err
	}
	m.ID = ids.MacroID(id)
	if project.Valid {
		m.ProjectID = ids.ProjectID(project.Int64)
	}
	if err := json.Unmarshal([]byte(steps), &m.Steps); err != nil {
		return Macro{}, adkerrors.ErrPersistence.Wrap(err)
	}
	return m, nil
}

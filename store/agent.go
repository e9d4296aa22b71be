// Copyright (C) 2025 sage-x-project
// SPDX-License-Identifier: LGPL-3.0-or-later

package store

import (
	"context"
	"database/sql"

	adkerrors "github.com/sage-x-project/agentmail/pkg/errors"
	"github.com/sage-x-project/agentmail/pkg/ids"
)

// InsertAgent inserts a new agents row. The caller is expected to have
// already checked name availability when name generation is involved;
// the UNIQUE(project_id, name) constraint is the final authority and a
// violation is returned as the driver's unwrapped error (the Agent
// controller translates that into NameCollision with retry, spec.md §4.2).
func (q *Queries) InsertAgent(ctx context.Context, a Agent) (ids.AgentID, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO agents (project_id, name, program, model, task_description, contact_policy, inception_ts)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		int64(a.ProjectID), a.Name, a.Program, a.Model, a.TaskDescription, string(a.ContactPolicy), a.InceptionTs)
	if err != nil {
		return 0, err // caller classifies: UNIQUE violation vs. other
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, adkerrors.ErrPersistence.Wrap(err)
	}
	return ids.AgentID(id), nil
}

// GetAgentByName looks up an agent by project + name.
func (q *Queries) GetAgentByName(ctx context.Context, project ids.ProjectID, name string) (Agent, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT id, project_id, name, program, model, task_description, contact_policy, inception_ts
		 FROM agents WHERE project_id = ? AND name = ?`, int64(project), name)
	return scanAgent(row)
}

// GetAgent looks up an agent by id.
func (q *Queries) GetAgent(ctx context.Context, id ids.AgentID) (Agent, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT id, project_id, name, program, model, task_description, contact_policy, inception_ts
		 FROM agents WHERE id = ?`, int64(id))
	return scanAgent(row)
}

// SetAgentContactPolicy updates an agent's contact_policy.
func (q *Queries) SetAgentContactPolicy(ctx context.Context, id ids.AgentID, policy ContactPolicy) error {
	_, err := q.db.ExecContext(ctx, `UPDATE agents SET contact_policy = ? WHERE id = ?`, string(policy), int64(id))
	if err != nil {
		return adkerrors.ErrPersistence.Wrap(err)
	}
	return nil
}

func scanAgent(row *sql.Row) (Agent, error) {
	var a Agent
	var aid, pid int64
	var policy string
	if err := row.Scan(&aid, &pid, &a.Name, &a.Program, &a.Model, &a.TaskDescription, &policy, &a.InceptionTs); err != nil {
		if err == sql.ErrNoRows {
			return Agent{}, adkerrors.ErrAgentNotFound
		}
		return Agent{}, adkerrors.ErrPersistence.Wrap(err)
	}
	a.ID = ids.AgentID(aid)
	a.ProjectID = ids.ProjectID(pid)
	a.ContactPolicy = ContactPolicy(policy)
	return a, nil
}

// Copyright (C) 2025 sage-x-project
// SPDX-License-Identifier: LGPL-3.0-or-later

package store

import (
	"context"
	"database/sql"

	adkerrors "github.com/sage-x-project/agentmail/pkg/errors"
	"github.com/sage-x-project/agentmail/pkg/ids"
)

// GetContact returns the contact row for the unordered pair (a, b),
// canonicalizing smaller-id-first before querying (design note §9).
func (q *Queries) GetContact(ctx context.Context, project ids.ProjectID, a, b ids.AgentID) (Contact, error) {
	lo, hi := CanonicalPair(a, b)
	row := q.db.QueryRowContext(ctx,
		`SELECT id, project_id, agent_a, agent_b, state, requested_ts, decided_ts
		 FROM contacts WHERE project_id = ? AND agent_a = ? AND agent_b = ?`,
		int64(project), int64(lo), int64(hi))
	return scanContact(row)
}

// GetContactByID returns a contact row by its id.
func (q *Queries) GetContactByID(ctx context.Context, id ids.ContactID) (Contact, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT id, project_id, agent_a, agent_b, state, requested_ts, decided_ts
		 FROM contacts WHERE id = ?`, int64(id))
	return scanContact(row)
}

// InsertContact creates a new pending (or auto-accepted) contact edge.
func (q *Queries) InsertContact(ctx context.Context, c Contact) (ids.ContactID, error) {
	lo, hi := CanonicalPair(c.AgentA, c.AgentB)
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO contacts (project_id, agent_a, agent_b, state, requested_ts, decided_ts) VALUES (?, ?, ?, ?, ?, ?)`,
		int64(c.ProjectID), int64(lo), int64(hi), string(c.State), c.RequestedTs, c.DecidedTs)
	if err != nil {
		return 0, adkerrors.ErrPersistence.Wrap(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, adkerrors.ErrPersistence.Wrap(err)
	}
	return ids.ContactID(id), nil
}

// SetContactState transitions a contact's state (spec.md §3: "monotonic
// within an episode: pending → {accepted, rejected}; accepted may
// later become revoked").
func (q *Queries) SetContactState(ctx context.Context, id ids.ContactID, state ContactState, decidedTs int64) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE contacts SET state = ?, decided_ts = ? WHERE id = ?`, string(state), decidedTs, int64(id))
	if err != nil {
		return adkerrors.ErrPersistence.Wrap(err)
	}
	return nil
}

func scanContact(row *sql.Row) (Contact, error) {
	var c Contact
	var id, pid, a, b int64
	var state string
	var decidedTs sql.NullInt64
	if err := row.Scan(&id, &pid, &a, &b, &state, &c.RequestedTs, &decidedTs); err != nil {
		if err == sql.ErrNoRows {
			return Contact{}, adkerrors.ErrContactNotFound
		}
		return Contact{}, adkerrors.ErrPersistence.Wrap(err)
	}
	c.ID, c.ProjectID, c.AgentA, c.AgentB = ids.ContactID(id), ids.ProjectID(pid), ids.AgentID(a), ids.AgentID(b)
	c.State = ContactState(state)
	if decidedTs.Valid {
		v := decidedTs.Int64
		c.DecidedTs = &v
	}
	return c, nil
}

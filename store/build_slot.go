// Copyright (C) 2025 sage-x-project
// SPDX-License-Identifier: LGPL-3.0-or-later

package store

import (
	"context"
	"database/sql"

	adkerrors "github.com/sage-x-project/agentmail/pkg/errors"
	"github.com/sage-x-project/agentmail/pkg/ids"
)

// ActiveBuildSlot returns the project's active build slot, if any
// (spec.md §3: "at most one unexpired per project").
func (q *Queries) ActiveBuildSlot(ctx context.Context, project ids.ProjectID, now int64) (*BuildSlot, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT id, project_id, agent_id, ttl_seconds, created_ts, expires_ts, released_ts
		 FROM build_slots WHERE project_id = ? AND released_ts IS NULL AND expires_ts > ?
		 ORDER BY created_ts ASC, id ASC LIMIT 1`,
		int64(project), now)

	var s BuildSlot
	var id, pid, aid int64
	var releasedTs sql.NullInt64
	err := row.Scan(&id, &pid, &aid, &s.TTLSeconds, &s.CreatedTs, &s.ExpiresTs, &releasedTs)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, adkerrors.ErrPersistence.Wrap(err)
	}
	s.ID, s.ProjectID, s.AgentID = ids.BuildSlotID(id), ids.ProjectID(pid), ids.AgentID(aid)
	if releasedTs.Valid {
		v := releasedTs.Int64
		s.ReleasedTs = &v
	}
	return &s, nil
}

// InsertBuildSlot inserts a new build_slots row.
func (q *Queries) InsertBuildSlot(ctx context.Context, s BuildSlot) (ids.BuildSlotID, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO build_slots (project_id, agent_id, ttl_seconds, created_ts, expires_ts) VALUES (?, ?, ?, ?, ?)`,
		int64(s.ProjectID), int64(s.AgentID), s.TTLSeconds, s.CreatedTs, s.ExpiresTs)
	if err != nil {
		return 0, adkerrors.ErrPersistence.Wrap(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, adkerrors.ErrPersistence.Wrap(err)
	}
	return ids.BuildSlotID(id), nil
}

// GetBuildSlot returns a build slot by id.
func (q *Queries) GetBuildSlot(ctx context.Context, id ids.BuildSlotID) (BuildSlot, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT id, project_id, agent_id, ttl_seconds, created_ts, expires_ts, released_ts
		 FROM build_slots WHERE id = ?`, int64(id))
	var s BuildSlot
	var bid, pid, aid int64
	var releasedTs sql.NullInt64
	if err := row.Scan(&bid, &pid, &aid, &s.TTLSeconds, &s.CreatedTs, &s.ExpiresTs, &releasedTs); err != nil {
		if err == sql.ErrNoRows {
			return BuildSlot{}, adkerrors.ErrBuildSlotNotFound
		}
		return BuildSlot{}, adkerrors.ErrPersistence.Wrap(err)
	}
	s.ID, s.ProjectID, s.AgentID = ids.BuildSlotID(bid), ids.ProjectID(pid), ids.AgentID(aid)
	if releasedTs.Valid {
		v := releasedTs.Int64
		s.ReleasedTs = &v
	}
	return s, nil
}

// RenewBuildSlot advances expires_ts for an active slot.
func (q *Queries) RenewBuildSlot(ctx context.Context, id ids.BuildSlotID, ttl, now int64) error {
	res, err := q.db.ExecContext(ctx,
		`UPDATE build_slots SET expires_ts = ?, ttl_seconds = ? WHERE id = ? AND released_ts IS NULL AND expires_ts > ?`,
		now+ttl, ttl, int64(id), now)
	if err != nil {
		return adkerrors.ErrPersistence.Wrap(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return adkerrors.ErrPersistence.Wrap(err)
	}
	if n == 0 {
		return adkerrors.ErrBuildSlotNotFound.WithDetail("reason", "not active")
	}
	return nil
}

// ReleaseBuildSlot sets released_ts if not already set; idempotent.
func (q *Queries) ReleaseBuildSlot(ctx context.Context, id ids.BuildSlotID, now int64) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE build_slots SET released_ts = ? WHERE id = ? AND released_ts IS NULL`, now, int64(id))
	if err != nil {
		return adkerrors.ErrPersistence.Wrap(err)
	}
	return nil
}

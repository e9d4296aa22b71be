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

// InsertReservation inserts a reservations row. Callers must have
// already run the conflict check (core/reservation.go) inside the
// same unit-of-work so the active-set read and this insert are
// serialized together (spec.md §4.3 step 1).
func (q *Queries) InsertReservation(ctx context.Context, r Reservation) (ids.ReservationID, error) {
	paths, err := json.Marshal(r.Paths)
	if err != nil {
		return 0, adkerrors.ErrInvalidArgument.Wrap(err)
	}
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO reservations (project_id, agent_id, paths, ttl_seconds, exclusive, reason, created_ts, expires_ts)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		int64(r.ProjectID), int64(r.AgentID), string(paths), r.TTLSeconds, boolToInt(r.Exclusive), r.Reason,
		r.CreatedTs, r.ExpiresTs)
	if err != nil {
		return 0, adkerrors.ErrPersistence.Wrap(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, adkerrors.ErrPersistence.Wrap(err)
	}
	return ids.ReservationID(id), nil
}

// ActiveReservations returns every reservation in project with
// released_ts null and expires_ts > now, ordered (created_ts, id)
// ascending so tie-breaking (spec.md §4.3 step 4: "earliest created_ts;
// among equals, the smallest id") is a simple "first match" scan.
func (q *Queries) ActiveReservations(ctx context.Context, project ids.ProjectID, now int64) ([]Reservation, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, project_id, agent_id, paths, ttl_seconds, exclusive, reason, created_ts, expires_ts, released_ts
		 FROM reservations WHERE project_id = ? AND released_ts IS NULL AND expires_ts > ?
		 ORDER BY created_ts ASC, id ASC`,
		int64(project), now)
	if err != nil {
		return nil, adkerrors.ErrPersistence.Wrap(err)
	}
	defer rows.Close()
	return scanReservations(rows)
}

// ListReservations returns reservations ordered by created_ts
// descending (spec.md §4.3 "list"); filterActive restricts to the
// active set as of now.
func (q *Queries) ListReservations(ctx context.Context, project ids.ProjectID, filterActive bool, now int64) ([]Reservation, error) {
	query := `SELECT id, project_id, agent_id, paths, ttl_seconds, exclusive, reason, created_ts, expires_ts, released_ts
	          FROM reservations WHERE project_id = ?`
	args := []interface{}{int64(project)}
	if filterActive {
		query += ` AND released_ts IS NULL AND expires_ts > ?`
		args = append(args, now)
	}
	query += ` ORDER BY created_ts DESC, id DESC`

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, adkerrors.ErrPersistence.Wrap(err)
	}
	defer rows.Close()
	return scanReservations(rows)
}

// GetReservation returns a reservation by id.
func (q *Queries) GetReservation(ctx context.Context, id ids.ReservationID) (Reservation, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT id, project_id, agent_id, paths, ttl_seconds, exclusive, reason, created_ts, expires_ts, released_ts
		 FROM reservations WHERE id = ?`, int64(id))
	return scanReservation(row)
}

// ReleaseReservation sets released_ts if not already set (idempotent,
// spec.md §4.3: "releasing an already-released or expired reservation
// succeeds as a no-op").
func (q *Queries) ReleaseReservation(ctx context.Context, id ids.ReservationID, now int64) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE reservations SET released_ts = ? WHERE id = ? AND released_ts IS NULL`, now, int64(id))
	if err != nil {
		return adkerrors.ErrPersistence.Wrap(err)
	}
	return nil
}

// RenewReservation advances expires_ts for an active reservation.
func (q *Queries) RenewReservation(ctx context.Context, id ids.ReservationID, ttl, now int64) error {
	res, err := q.db.ExecContext(ctx,
		`UPDATE reservations SET expires_ts = ?, ttl_seconds = ? WHERE id = ? AND released_ts IS NULL AND expires_ts > ?`,
		now+ttl, ttl, int64(id), now)
	if err != nil {
		return adkerrors.ErrPersistence.Wrap(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return adkerrors.ErrPersistence.Wrap(err)
	}
	if n == 0 {
		return adkerrors.ErrReservationNotFound.WithDetail("reason", "not active")
	}
	return nil
}

// CompactExpiredReservations marks long-expired, unreleased
// reservations as released to bound query cost (spec.md §4.3: "a
// periodic compaction task... may set released_ts for long-expired
// rows"). Idempotent: rows already released are untouched.
func (q *Queries) CompactExpiredReservations(ctx context.Context, olderThan int64) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		`UPDATE reservations SET released_ts = expires_ts WHERE released_ts IS NULL AND expires_ts < ?`, olderThan)
	if err != nil {
		return 0, adkerrors.ErrPersistence.Wrap(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, adkerrors.ErrPersistence.Wrap(err)
	}
	return n, nil
}

func scanReservations(rows *sql.Rows) ([]Reservation, error) {
	var out []Reservation
	for rows.Next() {
		r, err := scanReservationRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row *sql.Row) (Reservation, error) {
	r, err := scanReservationRow(row)
	if err == sql.ErrNoRows {
		return Reservation{}, adkerrors.ErrReservationNotFound
	}
	return r, err
}

func scanReservationRow(s rowScanner) (Reservation, error) {
	var r Reservation
	var id, pid, aid int64
	var paths, reason string
	var exclusive int
	var releasedTs sql.NullInt64
	if err := s.Scan(&id, &pid, &aid, &paths, &r.TTLSeconds, &exclusive, &reason, &r.CreatedTs, &r.ExpiresTs, &releasedTs); err != nil {
		if err == sql.ErrNoRows {
			return Reservation{}, err
		}
		return Reservation{}, adkerrors.ErrPersistence.Wrap(err)
	}
	r.ID, r.ProjectID, r.AgentID = ids.ReservationID(id), ids.ProjectID(pid), ids.AgentID(aid)
	r.Exclusive, r.Reason = exclusive != 0, reason
	if err := json.Unmarshal([]byte(paths), &r.Paths); err != nil {
		return Reservation{}, adkerrors.ErrPersistence.Wrap(err)
	}
	if releasedTs.Valid {
		v := releasedTs.Int64
		r.ReleasedTs = &v
	}
	return r, nil
}

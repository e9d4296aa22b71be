// Copyright (C) 2025 sage-x-project
// SPDX-License-Identifier: LGPL-3.0-or-later

package core

import (
	"context"
	"time"

	adkerrors "github.com/sage-x-project/agentmail/pkg/errors"
	"github.com/sage-x-project/agentmail/pkg/glob"
	"github.com/sage-x-project/agentmail/pkg/ids"
	"github.com/sage-x-project/agentmail/store"
)

// Reserve implements the conflict algorithm of spec.md §4.3: the
// active-set read and the insert run inside the same unit-of-work so a
// race between two concurrent conflicting requests is resolved by the
// Store's serialization, not by this function's own logic.
func (c *Core) Reserve(ctx context.Context, project ids.ProjectID, agent ids.AgentID, paths []string, ttlSeconds int64, exclusive bool, reason string) (store.Reservation, error) {
	if len(paths) == 0 {
		return store.Reservation{}, adkerrors.ErrInvalidArgument.WithDetail("reason", "no paths given")
	}
	ttlSeconds = c.clampTTL(ttlSeconds, c.ReservationDefaultTTL, c.ReservationMaxTTL)

	candidates := make([]glob.Pattern, len(paths))
	for i, p := range paths {
		candidates[i] = glob.Parse(p)
	}

	var result store.Reservation
	txErr := c.Store.WithTx(ctx, func(q *store.Queries) error {
		now := c.now()
		active, err := q.ActiveReservations(ctx, project, now)
		if err != nil {
			return err
		}

		if conflict, conflictingPaths := findConflict(candidates, paths, exclusive, active); conflict != nil {
			return adkerrors.NewReservationConflict(int64(conflict.ID), conflictingPaths)
		}

		created := now
		r := store.Reservation{
			ProjectID: project, AgentID: agent, Paths: paths, TTLSeconds: ttlSeconds,
			Exclusive: exclusive, Reason: reason, CreatedTs: created, ExpiresTs: created + ttlSeconds,
		}
		id, err := q.InsertReservation(ctx, r)
		if err != nil {
			return err
		}
		r.ID = id
		result = r
		return nil
	})
	if txErr != nil {
		if c.Metrics != nil && adkerrors.IsCategory(txErr, adkerrors.CategoryConcurrency) {
			c.Metrics.RecordReservationConflict(projectLabel(project))
		}
		return store.Reservation{}, txErr
	}
	return result, nil
}

// findConflict scans the active set for any reservation whose pattern
// overlaps a candidate path where at least one side is exclusive
// (spec.md §4.3 step 3), returning the tie-broken conflicting
// reservation (earliest created_ts, then smallest id — satisfied by
// ActiveReservations' ordering, since it returns the first match) and
// the subset of requested paths that collided.
func findConflict(candidates []glob.Pattern, rawPaths []string, exclusive bool, active []store.Reservation) (*store.Reservation, []string) {
	for i := range active {
		r := &active[i]
		if !exclusive && !r.Exclusive {
			continue // two non-exclusive reservations never conflict
		}
		var collided []string
		for pi, cand := range candidates {
			for _, q := range r.Paths {
				if cand.Overlaps(glob.Parse(q)) {
					collided = append(collided, rawPaths[pi])
					break
				}
			}
		}
		if len(collided) > 0 {
			return r, collided
		}
	}
	return nil, nil
}

// Release sets released_ts; idempotent (spec.md §4.3).
func (c *Core) Release(ctx context.Context, id ids.ReservationID) error {
	return c.Store.WithTx(ctx, func(q *store.Queries) error {
		return q.ReleaseReservation(ctx, id, c.now())
	})
}

// Renew requires agent-of-record identity and active state (spec.md §4.3).
func (c *Core) Renew(ctx context.Context, id ids.ReservationID, caller ids.AgentID, ttlSeconds int64) error {
	ttlSeconds = c.clampTTL(ttlSeconds, c.ReservationDefaultTTL, c.ReservationMaxTTL)
	return c.Store.WithTx(ctx, func(q *store.Queries) error {
		r, err := q.GetReservation(ctx, id)
		if err != nil {
			return err
		}
		if r.AgentID != caller {
			return adkerrors.ErrNotOwner
		}
		return q.RenewReservation(ctx, id, ttlSeconds, c.now())
	})
}

// ForceRelease bypasses the agent-of-record check; always audited by
// the Tool Frontier's post-dispatch hook (spec.md §4.3).
func (c *Core) ForceRelease(ctx context.Context, id ids.ReservationID, reason string) error {
	return c.Store.WithTx(ctx, func(q *store.Queries) error {
		return q.ReleaseReservation(ctx, id, c.now())
	})
}

// ListReservations returns reservations ordered by created_ts
// descending, optionally filtered to the active set (spec.md §4.3).
func (c *Core) ListReservations(ctx context.Context, project ids.ProjectID, activeOnly bool) ([]store.Reservation, error) {
	return c.Store.Queries().ListReservations(ctx, project, activeOnly, c.now())
}

// PathStatus is one path's coverage result for paths_status.
type PathStatus struct {
	Path       string
	Free       bool
	CoveredBy  []ids.ReservationID
}

// PathsStatus returns per-path coverage against the active set
// (spec.md §4.3 "paths_status").
func (c *Core) PathsStatus(ctx context.Context, project ids.ProjectID, paths []string) ([]PathStatus, error) {
	active, err := c.Store.Queries().ActiveReservations(ctx, project, c.now())
	if err != nil {
		return nil, err
	}

	out := make([]PathStatus, len(paths))
	for i, p := range paths {
		cand := glob.Parse(p)
		status := PathStatus{Path: p, Free: true}
		for _, r := range active {
			for _, q := range r.Paths {
				if cand.Overlaps(glob.Parse(q)) {
					status.Free = false
					status.CoveredBy = append(status.CoveredBy, r.ID)
					break
				}
			}
		}
		out[i] = status
	}
	return out, nil
}

// CompactExpiredReservations runs the periodic, idempotent compaction
// task (spec.md §4.3): it materializes released_ts on long-expired
// rows to bound query cost without changing any active/expired
// classification (TTL-derived status is unaffected).
func (c *Core) CompactExpiredReservations(ctx context.Context, olderThan int64) (int64, error) {
	var n int64
	err := c.Store.WithTx(ctx, func(q *store.Queries) error {
		var err error
		n, err = q.CompactExpiredReservations(ctx, olderThan)
		return err
	})
	return n, err
}

// clampTTL applies the configured default when requested is non-positive
// and caps it at the configured maximum (spec.md §6
// "reservation_default_ttl_seconds"/"...max...").
func (c *Core) clampTTL(requested int64, def, max time.Duration) int64 {
	if requested <= 0 {
		requested = int64(def.Seconds())
	}
	if maxSeconds := int64(max.Seconds()); requested > maxSeconds {
		requested = maxSeconds
	}
	return requested
}

func projectLabel(p ids.ProjectID) string { return p.String() }

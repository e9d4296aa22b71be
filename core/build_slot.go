// Copyright (C) 2025 sage-x-project
// SPDX-License-Identifier: LGPL-3.0-or-later

package core

import (
	"context"

	adkerrors "github.com/sage-x-project/agentmail/pkg/errors"
	"github.com/sage-x-project/agentmail/pkg/ids"
	"github.com/sage-x-project/agentmail/store"
)

// AcquireBuildSlot succeeds only if no active slot exists in the
// project (spec.md §4.5).
func (c *Core) AcquireBuildSlot(ctx context.Context, project ids.ProjectID, agent ids.AgentID, ttlSeconds int64) (store.BuildSlot, error) {
	ttlSeconds = c.clampTTL(ttlSeconds, c.BuildSlotDefaultTTL, c.BuildSlotMaxTTL)

	var result store.BuildSlot
	txErr := c.Store.WithTx(ctx, func(q *store.Queries) error {
		now := c.now()
		existing, err := q.ActiveBuildSlot(ctx, project, now)
		if err != nil {
			return err
		}
		if existing != nil {
			holder, err := q.GetAgent(ctx, existing.AgentID)
			if err != nil {
				return err
			}
			return adkerrors.NewBuildSlotHeld(holder.Name, existing.ExpiresTs)
		}

		s := store.BuildSlot{ProjectID: project, AgentID: agent, TTLSeconds: ttlSeconds, CreatedTs: now, ExpiresTs: now + ttlSeconds}
		id, err := q.InsertBuildSlot(ctx, s)
		if err != nil {
			return err
		}
		s.ID = id
		result = s
		return nil
	})
	if txErr != nil {
		if c.Metrics != nil && adkerrors.IsCategory(txErr, adkerrors.CategoryConcurrency) {
			c.Metrics.RecordBuildSlotHeld(projectLabel(project))
		}
		return store.BuildSlot{}, txErr
	}
	return result, nil
}

// RenewBuildSlot requires agent-of-record and extends expires_ts.
func (c *Core) RenewBuildSlot(ctx context.Context, id ids.BuildSlotID, caller ids.AgentID, ttlSeconds int64) error {
	ttlSeconds = c.clampTTL(ttlSeconds, c.BuildSlotDefaultTTL, c.BuildSlotMaxTTL)
	return c.Store.WithTx(ctx, func(q *store.Queries) error {
		s, err := q.GetBuildSlot(ctx, id)
		if err != nil {
			return err
		}
		if s.AgentID != caller {
			return adkerrors.ErrNotOwner
		}
		return q.RenewBuildSlot(ctx, id, ttlSeconds, c.now())
	})
}

// ReleaseBuildSlot is idempotent.
func (c *Core) ReleaseBuildSlot(ctx context.Context, id ids.BuildSlotID) error {
	return c.Store.WithTx(ctx, func(q *store.Queries) error {
		return q.ReleaseBuildSlot(ctx, id, c.now())
	})
}

// Copyright (C) 2025 sage-x-project
// SPDX-License-Identifier: LGPL-3.0-or-later

package core

import (
	"context"

	adkerrors "github.com/sage-x-project/agentmail/pkg/errors"
	"github.com/sage-x-project/agentmail/pkg/ids"
	"github.com/sage-x-project/agentmail/store"
)

// RequestContact creates a pending Contact edge between two agents, or
// returns the existing edge if one already exists (spec.md §4.2, §3
// "pending → {accepted, rejected}; accepted may later become revoked").
func (c *Core) RequestContact(ctx context.Context, project ids.ProjectID, requester, target ids.AgentID) (store.Contact, error) {
	var result store.Contact
	txErr := c.Store.WithTx(ctx, func(q *store.Queries) error {
		if existing, err := q.GetContact(ctx, project, requester, target); err == nil {
			result = existing
			return nil
		} else if !adkerrors.IsCategory(err, adkerrors.CategoryNotFound) {
			return err
		}

		now := c.now()
		cnt := store.Contact{ProjectID: project, AgentA: requester, AgentB: target, State: store.ContactPending, RequestedTs: now}
		id, err := q.InsertContact(ctx, cnt)
		if err != nil {
			return err
		}
		cnt.ID = id
		cnt.AgentA, cnt.AgentB = store.CanonicalPair(requester, target)
		result = cnt
		return nil
	})
	return result, txErr
}

// RespondContact transitions a pending edge to accepted or rejected
// (spec.md §3 state machine).
func (c *Core) RespondContact(ctx context.Context, id ids.ContactID, accept bool) (store.Contact, error) {
	var result store.Contact
	txErr := c.Store.WithTx(ctx, func(q *store.Queries) error {
		cnt, err := q.GetContactByID(ctx, id)
		if err != nil {
			return err
		}
		if cnt.State != store.ContactPending {
			return adkerrors.ErrInvalidArgument.WithDetail("reason", "contact is not pending")
		}
		next := store.ContactRejected
		if accept {
			next = store.ContactAccepted
		}
		now := c.now()
		if err := q.SetContactState(ctx, id, next, now); err != nil {
			return err
		}
		cnt.State = next
		cnt.DecidedTs = &now
		result = cnt
		return nil
	})
	return result, txErr
}

// RevokeContact transitions an accepted edge to revoked (spec.md §3:
// "accepted may later become revoked").
func (c *Core) RevokeContact(ctx context.Context, id ids.ContactID) (store.Contact, error) {
	var result store.Contact
	txErr := c.Store.WithTx(ctx, func(q *store.Queries) error {
		cnt, err := q.GetContactByID(ctx, id)
		if err != nil {
			return err
		}
		if cnt.State != store.ContactAccepted {
			return adkerrors.ErrInvalidArgument.WithDetail("reason", "contact is not accepted")
		}
		now := c.now()
		if err := q.SetContactState(ctx, id, store.ContactRevoked, now); err != nil {
			return err
		}
		cnt.State = store.ContactRevoked
		cnt.DecidedTs = &now
		result = cnt
		return nil
	})
	return result, txErr
}

// Copyright (C) 2025 sage-x-project
// SPDX-License-Identifier: LGPL-3.0-or-later

package core

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/sage-x-project/agentmail/archive"
	"github.com/sage-x-project/agentmail/observability/logging"
	adkerrors "github.com/sage-x-project/agentmail/pkg/errors"
	"github.com/sage-x-project/agentmail/pkg/ids"
	"github.com/sage-x-project/agentmail/store"
)

// RegisterAgent registers an agent, auto-generating a name when name
// is empty and retrying on collision up to maxNameAttempts times
// before failing with NameCollision (spec.md §4.2).
func (c *Core) RegisterAgent(ctx context.Context, project ids.ProjectID, name, program, model, taskDescription string) (store.Agent, error) {
	p, err := c.Store.Queries().GetProject(ctx, project)
	if err != nil {
		return store.Agent{}, err
	}

	attempt := 0
	for {
		candidate := name
		if candidate == "" {
			candidate = GenerateName(c.now()/60, attempt)
		}

		var agent store.Agent
		txErr := c.Store.WithTx(ctx, func(q *store.Queries) error {
			a := store.Agent{
				ProjectID: project, Name: candidate, Program: program, Model: model,
				TaskDescription: taskDescription, ContactPolicy: store.PolicyOpen, InceptionTs: c.now(),
			}
			id, err := q.InsertAgent(ctx, a)
			if err != nil {
				return err
			}
			a.ID = id
			agent = a
			return nil
		})
		if txErr == nil {
			if err := c.writeAgentProfile(p.Slug, agent); err != nil {
				c.Logger.Warn(ctx, "failed to write agent profile to archive", logging.Error(err))
			}
			return agent, nil
		}
		if !isUniqueViolation(txErr) {
			return store.Agent{}, adkerrors.ErrPersistence.Wrap(txErr)
		}
		if name != "" {
			// Caller asked for this exact name; do not silently rename.
			return store.Agent{}, adkerrors.ErrNameCollision.WithDetail("name", name)
		}
		attempt++
		if attempt >= maxNameAttempts {
			return store.Agent{}, adkerrors.ErrNameCollision
		}
	}
}

// SetContactPolicy updates an agent's contact policy (spec.md §4.2
// "Contact: ... set_policy").
func (c *Core) SetContactPolicy(ctx context.Context, agent ids.AgentID, policy store.ContactPolicy) error {
	return c.Store.WithTx(ctx, func(q *store.Queries) error {
		if _, err := q.GetAgent(ctx, agent); err != nil {
			return err
		}
		return q.SetAgentContactPolicy(ctx, agent, policy)
	})
}

// agentProfile is the JSON document rewritten under
// projects/{slug}/agents/{name}/profile.json on every Agent row change
// (spec.md §4.7).
type agentProfile struct {
	Name            string `json:"name"`
	Program         string `json:"program"`
	Model           string `json:"model"`
	TaskDescription string `json:"task_description"`
	ContactPolicy   string `json:"contact_policy"`
	InceptionTs     int64  `json:"inception_ts"`
}

func (c *Core) writeAgentProfile(projectSlug string, a store.Agent) error {
	doc, err := json.MarshalIndent(agentProfile{
		Name: a.Name, Program: a.Program, Model: a.Model, TaskDescription: a.TaskDescription,
		ContactPolicy: string(a.ContactPolicy), InceptionTs: a.InceptionTs,
	}, "", "  ")
	if err != nil {
		return err
	}
	staged := archive.NewStaged()
	staged.Put(archive.ProfilePath(projectSlug, a.Name), doc)
	return c.Archive.Commit(staged, archive.CommitMessageLine("register", "agent", int64(a.ID), projectSlug))
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint") || strings.Contains(err.Error(), "unique constraint")
}

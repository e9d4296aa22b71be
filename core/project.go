// Copyright (C) 2025 sage-x-project
// SPDX-License-Identifier: LGPL-3.0-or-later

package core

import (
	"context"
	"regexp"

	"github.com/gosimple/slug"

	adkerrors "github.com/sage-x-project/agentmail/pkg/errors"
	"github.com/sage-x-project/agentmail/pkg/ids"
	"github.com/sage-x-project/agentmail/store"
)

// slugPattern constrains Project.slug to the URL-safe grammar spec.md
// §4.2 requires.
var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{0,63}$`)

// EnsureProject returns the existing project if slug matches, else
// creates one (spec.md §4.2). Creating a project writes nothing to the
// archive; its sub-tree appears with the first file written under it.
func (c *Core) EnsureProject(ctx context.Context, rawSlug, humanKey string) (store.Project, error) {
	projectSlug := slug.Make(rawSlug)
	if projectSlug == "" || !slugPattern.MatchString(projectSlug) {
		return store.Project{}, adkerrors.ErrInvalidArgument.WithDetail("slug", rawSlug)
	}

	existing, err := c.Store.Queries().GetProjectBySlug(ctx, projectSlug)
	if err == nil {
		return existing, nil
	}
	if !adkerrors.IsCategory(err, adkerrors.CategoryNotFound) {
		return store.Project{}, err
	}

	var project store.Project
	txErr := c.Store.WithTx(ctx, func(q *store.Queries) error {
		id, err := q.InsertProject(ctx, projectSlug, humanKey, c.now())
		if err != nil {
			return err
		}
		project = store.Project{ID: id, Slug: projectSlug, HumanKey: humanKey, CreatedTs: c.now()}
		return nil
	})
	if txErr != nil {
		return store.Project{}, txErr
	}

	// Archive sub-tree initialization: an empty directory carries no
	// meaning to git, so the tree is created lazily on first write
	// (Agent.register's profile.json or Message.send's files); nothing
	// to stage here.
	_ = ids.ProjectID(project.ID)
	return project, nil
}

// Copyright (C) 2025 sage-x-project
// SPDX-License-Identifier: LGPL-3.0-or-later

package core

import (
	"context"

	adkerrors "github.com/sage-x-project/agentmail/pkg/errors"
	"github.com/sage-x-project/agentmail/pkg/ids"
	"github.com/sage-x-project/agentmail/store"
)

// EnsureProduct returns the product for uid, creating it if absent
// (SPEC_FULL.md §6.2 supplement: a Product groups several related
// Projects, e.g. a monorepo's services, under one cross-project label).
func (c *Core) EnsureProduct(ctx context.Context, uid, name string) (store.Product, error) {
	existing, err := c.Store.Queries().GetProductByUID(ctx, uid)
	if err == nil {
		return existing, nil
	}
	if !adkerrors.IsCategory(err, adkerrors.CategoryNotFound) {
		return store.Product{}, err
	}

	var result store.Product
	txErr := c.Store.WithTx(ctx, func(q *store.Queries) error {
		id, err := q.InsertProduct(ctx, uid, name, c.now())
		if err != nil {
			return err
		}
		result = store.Product{ID: id, UID: uid, Name: name, CreatedTs: c.now()}
		return nil
	})
	return result, txErr
}

// LinkProjectToProduct associates a project with a product; idempotent.
func (c *Core) LinkProjectToProduct(ctx context.Context, product ids.ProductID, project ids.ProjectID) error {
	return c.Store.WithTx(ctx, func(q *store.Queries) error {
		return q.LinkProjectToProduct(ctx, product, project)
	})
}

// ListProductProjects returns every project linked to a product.
func (c *Core) ListProductProjects(ctx context.Context, product ids.ProductID) ([]ids.ProjectID, error) {
	return c.Store.Queries().ListProductProjects(ctx, product)
}

// Copyright (C) 2025 sage-x-project
// SPDX-License-Identifier: LGPL-3.0-or-later

package store

import (
	"context"
	"database/sql"

	adkerrors "github.com/sage-x-project/agentmail/pkg/errors"
	"github.com/sage-x-project/agentmail/pkg/ids"
)

// GetProductByUID returns a product (without its linked projects) by
// its globally unique uid.
func (q *Queries) GetProductByUID(ctx context.Context, uid string) (Product, error) {
	row := q.db.QueryRowContext(ctx, `SELECT id, uid, name, created_ts FROM products WHERE uid = ?`, uid)
	var p Product
	var id int64
	if err := row.Scan(&id, &p.UID, &p.Name, &p.CreatedTs); err != nil {
		if err == sql.ErrNoRows {
			return Product{}, adkerrors.ErrProductNotFound
		}
		return Product{}, adkerrors.ErrPersistence.Wrap(err)
	}
	p.ID = ids.ProductID(id)
	return p, nil
}

// InsertProduct inserts a new products row.
func (q *Queries) InsertProduct(ctx context.Context, uid, name string, createdTs int64) (ids.ProductID, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO products (uid, name, created_ts) VALUES (?, ?, ?)`, uid, name, createdTs)
	if err != nil {
		return 0, adkerrors.ErrPersistence.Wrap(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, adkerrors.ErrPersistence.Wrap(err)
	}
	return ids.ProductID(id), nil
}

// LinkProjectToProduct records a project as belonging to a product;
// idempotent via INSERT OR IGNORE on the composite primary key.
func (q *Queries) LinkProjectToProduct(ctx context.Context, product ids.ProductID, project ids.ProjectID) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO product_projects (product_id, project_id) VALUES (?, ?)`,
		int64(product), int64(project))
	if err != nil {
		return adkerrors.ErrPersistence.Wrap(err)
	}
	return nil
}

// ListProductProjects returns every project id linked to a product.
func (q *Queries) ListProductProjects(ctx context.Context, product ids.ProductID) ([]ids.ProjectID, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT project_id FROM product_projects WHERE product_id = ? ORDER BY project_id ASC`, int64(product))
	if err != nil {
		return nil, adkerrors.ErrPersistence.Wrap(err)
	}
	defer rows.Close()

	var out []ids.ProjectID
	for rows.Next() {
		var pid int64
		if err := rows.Scan(&pid); err != nil {
			return nil, adkerrors.ErrPersistence.Wrap(err)
		}
		out = append(out, ids.ProjectID(pid))
	}
	return out, rows.Err()
}

// Copyright (C) 2025 sage-x-project
// SPDX-License-Identifier: LGPL-3.0-or-later

package store

import (
	"context"

	adkerrors "github.com/sage-x-project/agentmail/pkg/errors"
	"github.com/sage-x-project/agentmail/pkg/ids"
)

// AuditRow is one Tool Frontier post-dispatch audit entry (spec.md
// §4.8: "append an audit row (tool name, caller, success/failure,
// duration)").
type AuditRow struct {
	Tool       string
	Token      string
	AgentID    ids.AgentID // zero if not yet resolved
	Success    bool
	DurationMs int64
	ErrorCode  string
	CreatedTs  int64
}

// InsertAudit appends one audit row. Audit writes are best-effort and
// never block or fail a tool call; the Tool Frontier logs failures to
// insert through observability/logging rather than surfacing them to
// the caller.
func (q *Queries) InsertAudit(ctx context.Context, a AuditRow) error {
	var agent interface{}
	if !a.AgentID.Zero() {
		agent = int64(a.AgentID)
	}
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO audit_log (tool, token, agent_id, success, duration_ms, error_code, created_ts)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.Tool, a.Token, agent, boolToInt(a.Success), a.DurationMs, a.ErrorCode, a.CreatedTs)
	if err != nil {
		return adkerrors.ErrPersistence.Wrap(err)
	}
	return nil
}

// Copyright (C) 2025 sage-x-project
// SPDX-License-Identifier: LGPL-3.0-or-later

package core

import (
	"context"

	"github.com/sage-x-project/agentmail/pkg/ids"
	"github.com/sage-x-project/agentmail/store"
)

// RegisterMacro stores a named, ordered sequence of tool-invocation
// templates; project is zero for a macro visible across all projects
// (spec.md §4.2, §3).
func (c *Core) RegisterMacro(ctx context.Context, project ids.ProjectID, name string, steps []store.MacroStep) (store.Macro, error) {
	var result store.Macro
	txErr := c.Store.WithTx(ctx, func(q *store.Queries) error {
		m := store.Macro{ProjectID: project, Name: name, Steps: steps, CreatedTs: c.now()}
		id, err := q.InsertMacro(ctx, m)
		if err != nil {
			return err
		}
		m.ID = id
		result = m
		return nil
	})
	return result, txErr
}

// ListMacros returns macros visible to a project (global plus scoped).
func (c *Core) ListMacros(ctx context.Context, project ids.ProjectID) ([]store.Macro, error) {
	return c.Store.Queries().ListMacros(ctx, project)
}

// StepInvoker dispatches one expanded macro step through the same
// pre-dispatch chain (auth, rate limit, schema validation) an ordinary
// tool call goes through. The Tool Frontier implements this; core only
// expands bindings.
type StepInvoker interface {
	InvokeTool(ctx context.Context, caller ids.AgentID, tool string, args map[string]interface{}) (interface{}, error)
}

// InvokeMacro runs every step of a macro in order against invoker,
// passing caller with each step. The Tool Frontier's invoker does not
// use caller; a step acts for whichever agent its own bindings name,
// so the calls are not bound to caller. It stops at the first
// step that returns an error, leaving earlier steps' effects in place
// (spec.md §4.2: macro invocation is not itself transactional; each
// expanded call keeps its own atomicity guarantees).
func (c *Core) InvokeMacro(ctx context.Context, invoker StepInvoker, caller ids.AgentID, macroID ids.MacroID, overrides map[string]interface{}) ([]interface{}, error) {
	m, err := c.Store.Queries().GetMacro(ctx, macroID)
	if err != nil {
		return nil, err
	}

	results := make([]interface{}, 0, len(m.Steps))
	for _, step := range m.Steps {
		args := make(map[string]interface{}, len(step.Bindings))
		for k, v := range step.Bindings {
			args[k] = v
		}
		for k, v := range overrides {
			args[k] = v
		}
		res, err := invoker.InvokeTool(ctx, caller, step.Tool, args)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

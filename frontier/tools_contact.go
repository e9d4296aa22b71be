// Copyright (C) 2025 sage-x-project
// SPDX-License-Identifier: LGPL-3.0-or-later

package frontier

import (
	"context"

	"github.com/sage-x-project/agentmail/store"
)

func toolRequestContact(ctx context.Context, fr *Frontier, call *Call) (interface{}, error) {
	return fr.Core.RequestContact(
		ctx,
		argProjectID(call.Args, "project_id"),
		callerAgentID(call, "requester_id"),
		argAgentID(call.Args, "target_id"),
	)
}

func toolRespondContact(ctx context.Context, fr *Frontier, call *Call) (interface{}, error) {
	return fr.Core.RespondContact(ctx, argContactID(call.Args, "contact_id"), argBool(call.Args, "accept"))
}

func toolSetContactPolicy(ctx context.Context, fr *Frontier, call *Call) (interface{}, error) {
	err := fr.Core.SetContactPolicy(ctx, callerAgentID(call, "agent_id"), store.ContactPolicy(argString(call.Args, "policy")))
	if err != nil {
		return nil, err
	}
	return struct{ OK bool }{true}, nil
}

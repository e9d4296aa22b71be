// Copyright (C) 2025 sage-x-project
// SPDX-License-Identifier: LGPL-3.0-or-later

package frontier

import "context"

func toolAcquireBuildSlot(ctx context.Context, fr *Frontier, call *Call) (interface{}, error) {
	return fr.Core.AcquireBuildSlot(
		ctx,
		argProjectID(call.Args, "project_id"),
		callerAgentID(call, "agent_id"),
		argInt64(call.Args, "ttl_seconds"),
	)
}

func toolRenewBuildSlot(ctx context.Context, fr *Frontier, call *Call) (interface{}, error) {
	err := fr.Core.RenewBuildSlot(
		ctx,
		argBuildSlotID(call.Args, "build_slot_id"),
		callerAgentID(call, "agent_id"),
		argInt64(call.Args, "ttl_seconds"),
	)
	if err != nil {
		return nil, err
	}
	return struct{ OK bool }{true}, nil
}

func toolReleaseBuildSlot(ctx context.Context, fr *Frontier, call *Call) (interface{}, error) {
	err := fr.Core.ReleaseBuildSlot(ctx, argBuildSlotID(call.Args, "build_slot_id"))
	if err != nil {
		return nil, err
	}
	return struct{ OK bool }{true}, nil
}

// Copyright (C) 2025 sage-x-project
// SPDX-License-Identifier: LGPL-3.0-or-later

package frontier

import "context"

func toolReserveFile(ctx context.Context, fr *Frontier, call *Call) (interface{}, error) {
	paths, err := argStringSlice(call.Args, "paths")
	if err != nil {
		return nil, err
	}
	return fr.Core.Reserve(
		ctx,
		argProjectID(call.Args, "project_id"),
		callerAgentID(call, "agent_id"),
		paths,
		argInt64(call.Args, "ttl_seconds"),
		argBool(call.Args, "exclusive"),
		argString(call.Args, "reason"),
	)
}

func toolFileReservationPaths(ctx context.Context, fr *Frontier, call *Call) (interface{}, error) {
	paths, err := argStringSlice(call.Args, "paths")
	if err != nil {
		return nil, err
	}
	return fr.Core.PathsStatus(ctx, argProjectID(call.Args, "project_id"), paths)
}

func toolReleaseReservation(ctx context.Context, fr *Frontier, call *Call) (interface{}, error) {
	err := fr.Core.Release(ctx, argReservationID(call.Args, "reservation_id"))
	if err != nil {
		return nil, err
	}
	return struct{ OK bool }{true}, nil
}

func toolRenewFileReservation(ctx context.Context, fr *Frontier, call *Call) (interface{}, error) {
	err := fr.Core.Renew(
		ctx,
		argReservationID(call.Args, "reservation_id"),
		callerAgentID(call, "agent_id"),
		argInt64(call.Args, "ttl_seconds"),
	)
	if err != nil {
		return nil, err
	}
	return struct{ OK bool }{true}, nil
}

func toolForceReleaseReservation(ctx context.Context, fr *Frontier, call *Call) (interface{}, error) {
	err := fr.Core.ForceRelease(ctx, argReservationID(call.Args, "reservation_id"), argString(call.Args, "reason"))
	if err != nil {
		return nil, err
	}
	return struct{ OK bool }{true}, nil
}

func toolListFileReservations(ctx context.Context, fr *Frontier, call *Call) (interface{}, error) {
	return fr.Core.ListReservations(ctx, argProjectID(call.Args, "project_id"), argBool(call.Args, "active_only"))
}

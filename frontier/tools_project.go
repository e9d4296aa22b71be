// Copyright (C) 2025 sage-x-project
// SPDX-License-Identifier: LGPL-3.0-or-later

package frontier

import "context"

func toolEnsureProject(ctx context.Context, fr *Frontier, call *Call) (interface{}, error) {
	return fr.Core.EnsureProject(ctx, argString(call.Args, "slug"), argString(call.Args, "human_key"))
}

func toolRegisterAgent(ctx context.Context, fr *Frontier, call *Call) (interface{}, error) {
	return fr.Core.RegisterAgent(
		ctx,
		argProjectID(call.Args, "project_id"),
		argString(call.Args, "name"),
		argString(call.Args, "program"),
		argString(call.Args, "model"),
		argString(call.Args, "task_description"),
	)
}

func toolEnsureProduct(ctx context.Context, fr *Frontier, call *Call) (interface{}, error) {
	return fr.Core.EnsureProduct(ctx, argString(call.Args, "uid"), argString(call.Args, "name"))
}

func toolLinkProjectToProduct(ctx context.Context, fr *Frontier, call *Call) (interface{}, error) {
	err := fr.Core.LinkProjectToProduct(ctx, argProductID(call.Args, "product_id"), argProjectID(call.Args, "project_id"))
	if err != nil {
		return nil, err
	}
	return struct{ OK bool }{true}, nil
}

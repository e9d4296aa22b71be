// Copyright (C) 2025 sage-x-project
// SPDX-License-Identifier: LGPL-3.0-or-later

package frontier

import "context"

func toolListThreads(ctx context.Context, fr *Frontier, call *Call) (interface{}, error) {
	return fr.Core.ListThreads(ctx, argProjectID(call.Args, "project_id"))
}

func toolSummarizeThread(ctx context.Context, fr *Frontier, call *Call) (interface{}, error) {
	return fr.Core.GetThread(ctx, argProjectID(call.Args, "project_id"), argThreadID(call.Args, "thread_id"))
}

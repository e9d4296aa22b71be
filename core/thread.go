// Copyright (C) 2025 sage-x-project
// SPDX-License-Identifier: LGPL-3.0-or-later

package core

import (
	"context"
	"strings"

	"github.com/sage-x-project/agentmail/pkg/ids"
	"github.com/sage-x-project/agentmail/store"
)

// ThreadSummary is one Thread Index entry (spec.md §4.6): the thread
// id, its messages in arrival order, and a deterministic summary
// derived only from subjects and body openings, never an external
// summarizer (design note §9).
type ThreadSummary struct {
	ThreadID ids.ThreadID
	Messages []store.Message
	Summary  string
}

// bodyPreviewLen bounds how much of a message body feeds the
// deterministic thread summary (spec.md §4.6 "derive it by
// concatenating subject lines and the first line of each body").
const bodyPreviewLen = 120

// ListThreads returns every thread in a project, most recently active
// first, each with a deterministic summary (spec.md §4.6).
func (c *Core) ListThreads(ctx context.Context, project ids.ProjectID) ([]ThreadSummary, error) {
	threadIDs, err := c.Store.Queries().ListThreadIDs(ctx, project)
	if err != nil {
		return nil, err
	}

	out := make([]ThreadSummary, 0, len(threadIDs))
	for _, tid := range threadIDs {
		messages, err := c.Store.Queries().ListThreadMessages(ctx, project, tid)
		if err != nil {
			return nil, err
		}
		out = append(out, ThreadSummary{ThreadID: tid, Messages: messages, Summary: summarizeThread(messages)})
	}
	return out, nil
}

// GetThread returns one thread's messages in arrival order.
func (c *Core) GetThread(ctx context.Context, project ids.ProjectID, thread ids.ThreadID) (ThreadSummary, error) {
	messages, err := c.Store.Queries().ListThreadMessages(ctx, project, thread)
	if err != nil {
		return ThreadSummary{}, err
	}
	return ThreadSummary{ThreadID: thread, Messages: messages, Summary: summarizeThread(messages)}, nil
}

func summarizeThread(messages []store.Message) string {
	if len(messages) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(messages[0].Subject)
	for _, m := range messages {
		line := firstLine(m.Body)
		if line == "" {
			continue
		}
		b.WriteString(" | ")
		b.WriteString(line)
	}
	return b.String()
}

func firstLine(body string) string {
	line := body
	if idx := strings.IndexByte(body, '\n'); idx >= 0 {
		line = body[:idx]
	}
	line = strings.TrimSpace(line)
	if len(line) > bodyPreviewLen {
		line = line[:bodyPreviewLen]
	}
	return line
}

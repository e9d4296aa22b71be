// Copyright (C) 2025 sage-x-project
// SPDX-License-Identifier: LGPL-3.0-or-later

package frontier

import (
	"context"

	"github.com/sage-x-project/agentmail/core"
	"github.com/sage-x-project/agentmail/store"
)

func toolSendMessage(ctx context.Context, fr *Frontier, call *Call) (interface{}, error) {
	req, err := decodeSendRequest(call)
	if err != nil {
		return nil, err
	}
	return fr.Core.SendMessage(ctx, req)
}

func toolReplyMessage(ctx context.Context, fr *Frontier, call *Call) (interface{}, error) {
	req, err := decodeSendRequest(call)
	if err != nil {
		return nil, err
	}
	req.InReplyTo = argMessageID(call.Args, "in_reply_to")
	return fr.Core.SendMessage(ctx, req)
}

func decodeSendRequest(call *Call) (core.SendRequest, error) {
	args := call.Args
	to, err := argStringSlice(args, "to")
	if err != nil {
		return core.SendRequest{}, err
	}
	cc, err := argStringSlice(args, "cc")
	if err != nil {
		return core.SendRequest{}, err
	}
	bcc, err := argStringSlice(args, "bcc")
	if err != nil {
		return core.SendRequest{}, err
	}

	importance := store.Importance(argString(args, "importance"))
	if importance == "" {
		importance = store.ImportanceNormal
	}

	return core.SendRequest{
		Project:     argProjectID(args, "project_id"),
		Sender:      callerAgentID(call, "sender_id"),
		To:          to,
		CC:          cc,
		BCC:         bcc,
		Subject:     argString(args, "subject"),
		Body:        argString(args, "body"),
		Importance:  importance,
		AckRequired: argBool(args, "ack_required"),
		ThreadID:    argString(args, "thread_id"),
	}, nil
}

func toolCheckInbox(ctx context.Context, fr *Frontier, call *Call) (interface{}, error) {
	return fr.Core.CheckInbox(
		ctx,
		argProjectID(call.Args, "project_id"),
		callerAgentID(call, "agent_id"),
		argBool(call.Args, "unread_only"),
	)
}

func toolMarkMessageRead(ctx context.Context, fr *Frontier, call *Call) (interface{}, error) {
	err := fr.Core.MarkRead(ctx, argMessageID(call.Args, "message_id"), callerAgentID(call, "agent_id"))
	if err != nil {
		return nil, err
	}
	return struct{ OK bool }{true}, nil
}

func toolAcknowledgeMessage(ctx context.Context, fr *Frontier, call *Call) (interface{}, error) {
	err := fr.Core.Acknowledge(ctx, argMessageID(call.Args, "message_id"), callerAgentID(call, "agent_id"))
	if err != nil {
		return nil, err
	}
	return struct{ OK bool }{true}, nil
}

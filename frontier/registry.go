// Copyright (C) 2025 sage-x-project
// SPDX-License-Identifier: LGPL-3.0-or-later

package frontier

import (
	"context"

	"github.com/sage-x-project/agentmail/pkg/ids"
)

// registerAll populates the tool registry with every canonical name
// from spec.md §6. The listing and path-status tools are marked
// streamable so the WebSocket transport can expose them (SPEC_FULL.md
// §8); summarize_thread is not. The legacy
// recipient_names alias is handled separately in Dispatch since it
// rewrites an argument, not a tool name.
func (fr *Frontier) registerAll() {
	fr.register("ensure_project", false, []string{"slug"}, toolEnsureProject)
	fr.register("register_agent", false, []string{"project_id"}, toolRegisterAgent)

	fr.register("send_message", false, []string{"project_id", "sender_id"}, toolSendMessage)
	fr.register("reply_message", false, []string{"project_id", "sender_id", "in_reply_to"}, toolReplyMessage)
	fr.register("check_inbox", true, []string{"project_id", "agent_id"}, toolCheckInbox)
	fr.register("mark_message_read", false, []string{"message_id", "agent_id"}, toolMarkMessageRead)
	fr.register("acknowledge_message", false, []string{"message_id", "agent_id"}, toolAcknowledgeMessage)

	fr.register("reserve_file", false, []string{"project_id", "agent_id", "paths"}, toolReserveFile)
	fr.register("file_reservation_paths", true, []string{"project_id", "paths"}, toolFileReservationPaths)
	fr.register("release_reservation", false, []string{"reservation_id"}, toolReleaseReservation)
	fr.register("renew_file_reservation", false, []string{"reservation_id", "agent_id"}, toolRenewFileReservation)
	fr.register("force_release_reservation", false, []string{"reservation_id", "reason"}, toolForceReleaseReservation)
	fr.register("list_file_reservations", true, []string{"project_id"}, toolListFileReservations)

	fr.register("acquire_build_slot", false, []string{"project_id", "agent_id"}, toolAcquireBuildSlot)
	fr.register("renew_build_slot", false, []string{"build_slot_id", "agent_id"}, toolRenewBuildSlot)
	fr.register("release_build_slot", false, []string{"build_slot_id"}, toolReleaseBuildSlot)

	fr.register("request_contact", false, []string{"project_id", "requester_id", "target_id"}, toolRequestContact)
	fr.register("respond_contact", false, []string{"contact_id", "accept"}, toolRespondContact)
	fr.register("set_contact_policy", false, []string{"agent_id", "policy"}, toolSetContactPolicy)

	fr.register("list_threads", true, []string{"project_id"}, toolListThreads)
	fr.register("summarize_thread", false, []string{"project_id", "thread_id"}, toolSummarizeThread)

	fr.register("ensure_product", false, []string{"uid"}, toolEnsureProduct)
	fr.register("link_project_to_product", false, []string{"product_id", "project_id"}, toolLinkProjectToProduct)
}

// InvokeTool implements core.StepInvoker so Macro.invoke can expand a
// macro's steps into ordinary dispatched tool calls (spec.md §4.2).
// Each step goes through Dispatch with an empty token, so it runs the
// same pre-dispatch chain, rate limiting and audit as a direct call
// that carries no token; under bearer auth that chain rejects it.
// caller is not used: a step acts for whichever agent the macro's own
// bindings name (e.g. a bound sender_id/agent_id).
func (fr *Frontier) InvokeTool(ctx context.Context, caller ids.AgentID, tool string, args map[string]interface{}) (interface{}, error) {
	return fr.Dispatch(ctx, "", tool, Args(args))
}

// Copyright (C) 2025 sage-x-project
// SPDX-License-Identifier: LGPL-3.0-or-later

package core_test

import (
	"context"
	"testing"

	"github.com/sage-x-project/agentmail/core"
	"github.com/sage-x-project/agentmail/internal/testutil"
	adkerrors "github.com/sage-x-project/agentmail/pkg/errors"
	"github.com/sage-x-project/agentmail/pkg/ids"
	"github.com/sage-x-project/agentmail/store"
)

func mustProject(t *testing.T, c *core.Core) store.Project {
	t.Helper()
	p, err := c.EnsureProject(context.Background(), "demo project", "demo-key")
	if err != nil {
		t.Fatalf("EnsureProject: %v", err)
	}
	return p
}

func mustAgent(t *testing.T, c *core.Core, project ids.ProjectID, name string) store.Agent {
	t.Helper()
	a, err := c.RegisterAgent(context.Background(), project, name, "claude-code", "opus", "build the thing")
	if err != nil {
		t.Fatalf("RegisterAgent(%s): %v", name, err)
	}
	return a
}

// Create-and-send: ensure project, register two agents, send a
// message, and confirm it shows up in the recipient's inbox.
func TestCreateAndSend(t *testing.T) {
	ctx := context.Background()
	c := testutil.NewCore(t)

	p := mustProject(t, c)
	alice := mustAgent(t, c, ids.ProjectID(p.ID), "alice")
	bob := mustAgent(t, c, ids.ProjectID(p.ID), "bob")

	msg, err := c.SendMessage(ctx, core.SendRequest{
		Project: ids.ProjectID(p.ID), Sender: ids.AgentID(alice.ID),
		To: []string{"bob"}, Subject: "hello", Body: "hi bob",
	})
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if msg.ThreadID == "" {
		t.Fatalf("expected a derived thread id")
	}

	inbox, err := c.CheckInbox(ctx, ids.ProjectID(p.ID), ids.AgentID(bob.ID), false)
	if err != nil {
		t.Fatalf("CheckInbox: %v", err)
	}
	if len(inbox) != 1 || inbox[0].Message.ID != msg.ID {
		t.Fatalf("expected bob's inbox to contain the new message, got %+v", inbox)
	}
}

func TestSendMessageEmptyRecipientsRejected(t *testing.T) {
	ctx := context.Background()
	c := testutil.NewCore(t)
	p := mustProject(t, c)
	alice := mustAgent(t, c, ids.ProjectID(p.ID), "alice")

	_, err := c.SendMessage(ctx, core.SendRequest{
		Project: ids.ProjectID(p.ID), Sender: ids.AgentID(alice.ID), Subject: "hi",
	})
	if !adkerrors.Is(err, adkerrors.ErrEmptyRecipients) {
		t.Fatalf("expected ErrEmptyRecipients, got %v", err)
	}
}

// A reply with no explicit recipients inherits the parent's sender and
// recipients, minus whichever of them is doing the replying (spec.md
// §4.2).
func TestReplyInheritsRecipients(t *testing.T) {
	ctx := context.Background()
	c := testutil.NewCore(t)
	p := mustProject(t, c)
	alice := mustAgent(t, c, ids.ProjectID(p.ID), "alice")
	bob := mustAgent(t, c, ids.ProjectID(p.ID), "bob")
	carol := mustAgent(t, c, ids.ProjectID(p.ID), "carol")

	parent, err := c.SendMessage(ctx, core.SendRequest{
		Project: ids.ProjectID(p.ID), Sender: ids.AgentID(alice.ID),
		To: []string{"bob"}, CC: []string{"carol"}, Subject: "status", Body: "progress",
	})
	if err != nil {
		t.Fatalf("SendMessage (parent): %v", err)
	}

	reply, err := c.SendMessage(ctx, core.SendRequest{
		Project: ids.ProjectID(p.ID), Sender: ids.AgentID(bob.ID),
		Subject: "status", Body: "ack", InReplyTo: ids.MessageID(parent.ID),
	})
	if err != nil {
		t.Fatalf("SendMessage (reply): %v", err)
	}
	if reply.ThreadID != parent.ThreadID {
		t.Fatalf("expected reply to inherit parent's thread id, got %q vs %q", reply.ThreadID, parent.ThreadID)
	}
	if reply.Subject != "Re: status" {
		t.Fatalf("expected a single reply prefix, got %q", reply.Subject)
	}

	// Bob replied, so he must not appear as his own recipient; alice
	// (the parent's sender) inherits as "to", carol keeps her "cc".
	aliceInbox, err := c.CheckInbox(ctx, ids.ProjectID(p.ID), ids.AgentID(alice.ID), false)
	if err != nil {
		t.Fatalf("CheckInbox(alice): %v", err)
	}
	found := false
	for _, row := range aliceInbox {
		if row.Message.ID == reply.ID {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected alice to inherit the reply as a recipient")
	}

	carolInbox, err := c.CheckInbox(ctx, ids.ProjectID(p.ID), ids.AgentID(carol.ID), false)
	if err != nil {
		t.Fatalf("CheckInbox(carol): %v", err)
	}
	found = false
	for _, row := range carolInbox {
		if row.Message.ID == reply.ID {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected carol to inherit the reply as a cc recipient")
	}

	bobInbox, err := c.CheckInbox(ctx, ids.ProjectID(p.ID), ids.AgentID(bob.ID), false)
	if err != nil {
		t.Fatalf("CheckInbox(bob): %v", err)
	}
	for _, row := range bobInbox {
		if row.Message.ID == reply.ID {
			t.Fatalf("replying sender must not inherit as their own recipient")
		}
	}
}

// An explicit `to` on a reply overrides inheritance entirely.
func TestReplyWithExplicitRecipientsOverridesInheritance(t *testing.T) {
	ctx := context.Background()
	c := testutil.NewCore(t)
	p := mustProject(t, c)
	alice := mustAgent(t, c, ids.ProjectID(p.ID), "alice")
	bob := mustAgent(t, c, ids.ProjectID(p.ID), "bob")
	dave := mustAgent(t, c, ids.ProjectID(p.ID), "dave")

	parent, err := c.SendMessage(ctx, core.SendRequest{
		Project: ids.ProjectID(p.ID), Sender: ids.AgentID(alice.ID),
		To: []string{"bob"}, Subject: "status", Body: "progress",
	})
	if err != nil {
		t.Fatalf("SendMessage (parent): %v", err)
	}

	reply, err := c.SendMessage(ctx, core.SendRequest{
		Project: ids.ProjectID(p.ID), Sender: ids.AgentID(bob.ID),
		To: []string{"dave"}, Subject: "status", Body: "looping in dave", InReplyTo: ids.MessageID(parent.ID),
	})
	if err != nil {
		t.Fatalf("SendMessage (reply): %v", err)
	}

	daveInbox, err := c.CheckInbox(ctx, ids.ProjectID(p.ID), ids.AgentID(dave.ID), false)
	if err != nil {
		t.Fatalf("CheckInbox(dave): %v", err)
	}
	if len(daveInbox) != 1 || daveInbox[0].Message.ID != reply.ID {
		t.Fatalf("expected dave to be the sole explicit recipient of the reply")
	}

	aliceInbox, err := c.CheckInbox(ctx, ids.ProjectID(p.ID), ids.AgentID(alice.ID), false)
	if err != nil {
		t.Fatalf("CheckInbox(alice): %v", err)
	}
	for _, row := range aliceInbox {
		if row.Message.ID == reply.ID {
			t.Fatalf("explicit recipients must override inheritance, but alice still received the reply")
		}
	}
}

// Reservation conflict: two exclusive reservations over the same path
// must not both succeed.
func TestReservationConflict(t *testing.T) {
	ctx := context.Background()
	c := testutil.NewCore(t)
	p := mustProject(t, c)
	alice := mustAgent(t, c, ids.ProjectID(p.ID), "alice")
	bob := mustAgent(t, c, ids.ProjectID(p.ID), "bob")

	if _, err := c.Reserve(ctx, ids.ProjectID(p.ID), ids.AgentID(alice.ID), []string{"src/**"}, 3600, true, "build"); err != nil {
		t.Fatalf("first Reserve: %v", err)
	}

	_, err := c.Reserve(ctx, ids.ProjectID(p.ID), ids.AgentID(bob.ID), []string{"src/main.go"}, 3600, true, "edit")
	if !adkerrors.IsCategory(err, adkerrors.CategoryConcurrency) {
		t.Fatalf("expected a concurrency conflict, got %v", err)
	}
}

// Non-exclusive coexistence: two non-exclusive reservations over
// overlapping paths both succeed.
func TestNonExclusiveReservationsCoexist(t *testing.T) {
	ctx := context.Background()
	c := testutil.NewCore(t)
	p := mustProject(t, c)
	alice := mustAgent(t, c, ids.ProjectID(p.ID), "alice")
	bob := mustAgent(t, c, ids.ProjectID(p.ID), "bob")

	if _, err := c.Reserve(ctx, ids.ProjectID(p.ID), ids.AgentID(alice.ID), []string{"docs/**"}, 3600, false, "read"); err != nil {
		t.Fatalf("first Reserve: %v", err)
	}
	if _, err := c.Reserve(ctx, ids.ProjectID(p.ID), ids.AgentID(bob.ID), []string{"docs/readme.md"}, 3600, false, "read"); err != nil {
		t.Fatalf("second non-exclusive Reserve should succeed: %v", err)
	}
}

// Reserve-after-release: releasing an exclusive reservation frees its
// paths for a subsequent conflicting reservation.
func TestReserveAfterReleaseSucceeds(t *testing.T) {
	ctx := context.Background()
	c := testutil.NewCore(t)
	p := mustProject(t, c)
	alice := mustAgent(t, c, ids.ProjectID(p.ID), "alice")
	bob := mustAgent(t, c, ids.ProjectID(p.ID), "bob")

	r, err := c.Reserve(ctx, ids.ProjectID(p.ID), ids.AgentID(alice.ID), []string{"src/main.go"}, 3600, true, "build")
	if err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	if err := c.Release(ctx, r.ID); err != nil {
		t.Fatalf("Release: %v", err)
	}
	// Idempotent: releasing twice must not error.
	if err := c.Release(ctx, r.ID); err != nil {
		t.Fatalf("second Release should be idempotent: %v", err)
	}

	if _, err := c.Reserve(ctx, ids.ProjectID(p.ID), ids.AgentID(bob.ID), []string{"src/main.go"}, 3600, true, "edit"); err != nil {
		t.Fatalf("Reserve after release: %v", err)
	}
}

// Ack flow: an ack-required message starts unacknowledged and becomes
// acknowledged once the recipient calls Acknowledge.
func TestAckFlow(t *testing.T) {
	ctx := context.Background()
	c := testutil.NewCore(t)
	p := mustProject(t, c)
	alice := mustAgent(t, c, ids.ProjectID(p.ID), "alice")
	bob := mustAgent(t, c, ids.ProjectID(p.ID), "bob")

	msg, err := c.SendMessage(ctx, core.SendRequest{
		Project: ids.ProjectID(p.ID), Sender: ids.AgentID(alice.ID),
		To: []string{"bob"}, Subject: "please ack", Body: "ack this", AckRequired: true,
	})
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}

	if err := c.Acknowledge(ctx, msg.ID, ids.AgentID(bob.ID)); err != nil {
		t.Fatalf("Acknowledge: %v", err)
	}
	// Idempotent re-acknowledgement must not error.
	if err := c.Acknowledge(ctx, msg.ID, ids.AgentID(bob.ID)); err != nil {
		t.Fatalf("second Acknowledge should be idempotent: %v", err)
	}
}

// Policy denied: a recipient with a closed contact policy and no
// existing accepted contact rejects the send.
func TestPolicyDenied(t *testing.T) {
	ctx := context.Background()
	c := testutil.NewCore(t)
	p := mustProject(t, c)
	alice := mustAgent(t, c, ids.ProjectID(p.ID), "alice")
	bob := mustAgent(t, c, ids.ProjectID(p.ID), "bob")

	if err := c.SetContactPolicy(ctx, ids.AgentID(bob.ID), store.PolicyBlockAll); err != nil {
		t.Fatalf("SetContactPolicy: %v", err)
	}

	_, err := c.SendMessage(ctx, core.SendRequest{
		Project: ids.ProjectID(p.ID), Sender: ids.AgentID(alice.ID),
		To: []string{"bob"}, Subject: "hi", Body: "hi",
	})
	if !adkerrors.IsCategory(err, adkerrors.CategoryPolicy) {
		t.Fatalf("expected a policy error, got %v", err)
	}
}

// Build slot single-holder: a second acquire attempt fails while the
// first slot is still active, and succeeds once it is released.
func TestBuildSlotSingleHolder(t *testing.T) {
	ctx := context.Background()
	c := testutil.NewCore(t)
	p := mustProject(t, c)
	alice := mustAgent(t, c, ids.ProjectID(p.ID), "alice")
	bob := mustAgent(t, c, ids.ProjectID(p.ID), "bob")

	slot, err := c.AcquireBuildSlot(ctx, ids.ProjectID(p.ID), ids.AgentID(alice.ID), 600)
	if err != nil {
		t.Fatalf("first AcquireBuildSlot: %v", err)
	}

	_, err = c.AcquireBuildSlot(ctx, ids.ProjectID(p.ID), ids.AgentID(bob.ID), 600)
	if !adkerrors.IsCategory(err, adkerrors.CategoryConcurrency) {
		t.Fatalf("expected a concurrency error while the slot is held, got %v", err)
	}

	if err := c.ReleaseBuildSlot(ctx, slot.ID); err != nil {
		t.Fatalf("ReleaseBuildSlot: %v", err)
	}
	if _, err := c.AcquireBuildSlot(ctx, ids.ProjectID(p.ID), ids.AgentID(bob.ID), 600); err != nil {
		t.Fatalf("AcquireBuildSlot after release: %v", err)
	}
}

func TestRenewBuildSlotRequiresOwner(t *testing.T) {
	ctx := context.Background()
	c := testutil.NewCore(t)
	p := mustProject(t, c)
	alice := mustAgent(t, c, ids.ProjectID(p.ID), "alice")
	bob := mustAgent(t, c, ids.ProjectID(p.ID), "bob")

	slot, err := c.AcquireBuildSlot(ctx, ids.ProjectID(p.ID), ids.AgentID(alice.ID), 600)
	if err != nil {
		t.Fatalf("AcquireBuildSlot: %v", err)
	}

	if err := c.RenewBuildSlot(ctx, slot.ID, ids.AgentID(bob.ID), 600); !adkerrors.Is(err, adkerrors.ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	if err := c.RenewBuildSlot(ctx, slot.ID, ids.AgentID(alice.ID), 600); err != nil {
		t.Fatalf("owner RenewBuildSlot should succeed: %v", err)
	}
}

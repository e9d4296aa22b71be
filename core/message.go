// Copyright (C) 2025 sage-x-project
// SPDX-License-Identifier: LGPL-3.0-or-later

package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/sage-x-project/agentmail/archive"
	adkerrors "github.com/sage-x-project/agentmail/pkg/errors"
	"github.com/sage-x-project/agentmail/pkg/ids"
	"github.com/sage-x-project/agentmail/store"
)

// SendRequest is the Message Router's input (spec.md §4.2, §4.4).
// Recipient fields name agents by their project-unique name, not id,
// matching the tool surface's `to`/`cc`/`bcc` shape (spec.md §6).
type SendRequest struct {
	Project     ids.ProjectID
	Sender      ids.AgentID
	To, CC, BCC []string
	Subject     string
	Body        string
	Importance  store.Importance
	AckRequired bool
	ThreadID    string        // verbatim if non-empty
	InReplyTo   ids.MessageID // zero if this is not a reply
	Attachments []ids.AttachmentID
}

// replyPrefix is prepended to a reply's subject once (spec.md §4.4:
// "if the parent's subject has no reply prefix, prepend a single reply
// prefix; if it already has one, leave it unchanged").
const replyPrefix = "Re: "

// SendMessage resolves recipients, enforces contact policy, assigns a
// thread, and performs the dual-write protocol (spec.md §4.1 step
// 1-4, §4.4). No Message row, Recipient row, archive file, or
// token-index row is written if any resolution or policy check fails
// (spec.md §8 quantified invariant).
func (c *Core) SendMessage(ctx context.Context, req SendRequest) (store.Message, error) {
	if req.Subject == "" && req.Body == "" {
		return store.Message{}, adkerrors.ErrInvalidArgument.WithDetail("reason", "empty subject and body")
	}

	project, err := c.Store.Queries().GetProject(ctx, req.Project)
	if err != nil {
		return store.Message{}, err
	}
	sender, err := c.Store.Queries().GetAgent(ctx, req.Sender)
	if err != nil {
		return store.Message{}, err
	}

	var parent *store.Message
	if req.InReplyTo != 0 {
		p, err := c.Store.Queries().GetMessage(ctx, req.InReplyTo)
		if err != nil {
			return store.Message{}, err
		}
		parent = &p

		// spec.md §4.2: "reply(...) inherits recipients minus the sender
		// unless overridden" — only kicks in when the caller gave no
		// explicit recipients of their own.
		if len(req.To) == 0 && len(req.CC) == 0 && len(req.BCC) == 0 {
			to, cc, bcc, err := c.inheritedRecipients(ctx, req.InReplyTo, p, req.Sender)
			if err != nil {
				return store.Message{}, err
			}
			req.To, req.CC, req.BCC = to, cc, bcc
		}
	}

	recipients, err := c.resolveRecipients(ctx, req.Project, req.To, req.CC, req.BCC)
	if err != nil {
		return store.Message{}, err
	}
	if len(recipients) == 0 {
		return store.Message{}, adkerrors.ErrEmptyRecipients
	}

	for _, r := range recipients {
		if err := c.enforcePolicy(ctx, req.Project, sender.ID, r.agent); err != nil {
			return store.Message{}, err
		}
	}

	subject := req.Subject
	threadID := req.ThreadID
	if parent != nil {
		if threadID == "" {
			threadID = string(parent.ThreadID)
		}
		if !strings.HasPrefix(subject, replyPrefix) {
			subject = replyPrefix + subject
		}
	}

	var message store.Message
	var staged *archive.Staged
	var commitLine string

	txErr := c.Store.WithTx(ctx, func(q *store.Queries) error {
		now := c.now()
		m := store.Message{
			ProjectID: req.Project, SenderID: req.Sender, Subject: subject, Body: req.Body,
			Importance: req.Importance, AckRequired: req.AckRequired, ThreadID: ids.ThreadID(threadID),
			InReplyTo: req.InReplyTo, CreatedTs: now,
		}
		id, err := q.InsertMessage(ctx, m)
		if err != nil {
			return err
		}
		m.ID = id
		if threadID == "" {
			// Derive from the new message id (design note §9 / SPEC_FULL §11).
			m.ThreadID = ids.ThreadID(fmt.Sprintf("t_%d", id))
			if err := q.SetMessageThread(ctx, id, m.ThreadID); err != nil {
				return err
			}
		}

		for _, r := range recipients {
			if err := q.InsertRecipient(ctx, store.Recipient{MessageID: id, AgentID: r.agent.ID, Kind: r.kind}); err != nil {
				return err
			}
		}

		message = m
		staged, commitLine = c.stageMessageFiles(project.Slug, sender, recipients, m)
		return nil
	})
	if txErr != nil {
		return store.Message{}, txErr
	}

	if err := c.Archive.Commit(staged, commitLine); err != nil {
		// Compensating delete (spec.md §4.1 step 4).
		_ = c.Store.WithTx(ctx, func(q *store.Queries) error {
			return q.DeleteMessageCascade(ctx, message.ID)
		})
		return store.Message{}, adkerrors.ErrPersistence.Wrap(err)
	}

	if c.Metrics != nil {
		c.Metrics.RecordMessageSent(projectLabel(req.Project))
	}
	return message, nil
}

// inheritedRecipients builds the to/cc/bcc name lists a reply inherits
// from its parent message when the caller supplied no recipients of
// its own (spec.md §4.2). The parent's original sender is folded into
// `to` (reply-all semantics); each other parent recipient keeps its
// original kind. The replying sender is always excluded.
func (c *Core) inheritedRecipients(ctx context.Context, parentID ids.MessageID, parent store.Message, replySender ids.AgentID) (to, cc, bcc []string, err error) {
	seen := map[ids.AgentID]bool{replySender: true}

	addName := func(agentID ids.AgentID, kind store.RecipientKind) error {
		if seen[agentID] {
			return nil
		}
		seen[agentID] = true
		agent, err := c.Store.Queries().GetAgent(ctx, agentID)
		if err != nil {
			return err
		}
		switch kind {
		case store.RecipientCC:
			cc = append(cc, agent.Name)
		case store.RecipientBCC:
			bcc = append(bcc, agent.Name)
		default:
			to = append(to, agent.Name)
		}
		return nil
	}

	if err := addName(parent.SenderID, store.RecipientTo); err != nil {
		return nil, nil, nil, err
	}

	parentRecipients, err := c.Store.Queries().ListRecipients(ctx, parentID)
	if err != nil {
		return nil, nil, nil, err
	}
	for _, r := range parentRecipients {
		if err := addName(r.AgentID, r.Kind); err != nil {
			return nil, nil, nil, err
		}
	}

	return to, cc, bcc, nil
}

type resolvedRecipient struct {
	agent store.Agent
	kind  store.RecipientKind
}

// resolveRecipients looks up each name and collapses duplicates across
// to/cc/bcc to the highest-priority kind (spec.md §4.4: "to > cc >
// bcc"), preserving a stable order (to, then cc, then bcc).
func (c *Core) resolveRecipients(ctx context.Context, project ids.ProjectID, to, cc, bcc []string) ([]resolvedRecipient, error) {
	kindOf := make(map[string]store.RecipientKind)
	order := make([]string, 0, len(to)+len(cc)+len(bcc))

	// Insert in priority order so bcc/cc processed after to never
	// downgrade an already-assigned higher-priority kind.
	for _, n := range to {
		if _, seen := kindOf[n]; !seen {
			order = append(order, n)
		}
		kindOf[n] = store.RecipientTo
	}
	for _, n := range cc {
		if _, seen := kindOf[n]; seen {
			continue
		}
		order = append(order, n)
		kindOf[n] = store.RecipientCC
	}
	for _, n := range bcc {
		if _, seen := kindOf[n]; seen {
			continue
		}
		order = append(order, n)
		kindOf[n] = store.RecipientBCC
	}

	out := make([]resolvedRecipient, 0, len(order))
	for _, n := range order {
		agent, err := c.Store.Queries().GetAgentByName(ctx, project, n)
		if err != nil {
			return nil, adkerrors.New(adkerrors.CategoryNotFound, "UNKNOWN_AGENT", "unknown agent").WithDetail("name", n)
		}
		out = append(out, resolvedRecipient{agent: agent, kind: kindOf[n]})
	}
	return out, nil
}

// enforcePolicy applies the recipient's contact policy (spec.md §4.4).
func (c *Core) enforcePolicy(ctx context.Context, project ids.ProjectID, sender ids.AgentID, recipient store.Agent) error {
	switch recipient.ContactPolicy {
	case store.PolicyOpen:
		return nil
	case store.PolicyAuto:
		_, err := c.Store.Queries().GetContact(ctx, project, sender, recipient.ID)
		if adkerrors.IsCategory(err, adkerrors.CategoryNotFound) {
			_, insertErr := c.Store.Queries().InsertContact(ctx, store.Contact{
				ProjectID: project, AgentA: sender, AgentB: recipient.ID,
				State: store.ContactAccepted, RequestedTs: c.now(), DecidedTs: ptrInt64(c.now()),
			})
			if insertErr != nil {
				return insertErr
			}
		}
		return nil
	case store.PolicyContactsOnly:
		contact, err := c.Store.Queries().GetContact(ctx, project, sender, recipient.ID)
		if err != nil || contact.State != store.ContactAccepted {
			return adkerrors.NewPolicyDenied(recipient.Name)
		}
		return nil
	default: // block_all
		return adkerrors.NewPolicyDenied(recipient.Name)
	}
}

func (c *Core) stageMessageFiles(projectSlug string, sender store.Agent, recipients []resolvedRecipient, m store.Message) (*archive.Staged, string) {
	staged := archive.NewStaged()

	var toNames, ccNames, bccNames []string
	for _, r := range recipients {
		switch r.kind {
		case store.RecipientTo:
			toNames = append(toNames, r.agent.Name)
		case store.RecipientCC:
			ccNames = append(ccNames, r.agent.Name)
		case store.RecipientBCC:
			bccNames = append(bccNames, r.agent.Name)
		}
	}

	header := archive.MessageHeader{
		ID: int64(m.ID), Thread: string(m.ThreadID), From: sender.Name, To: toNames, CC: ccNames, BCC: bccNames,
		Subject: m.Subject, Importance: string(m.Importance), AckRequired: m.AckRequired,
		Created: unixTime(m.CreatedTs),
	}
	doc := archive.RenderMessageFile(header, m.Body)

	staged.Put(archive.CanonicalMessagePath(projectSlug, m.CreatedTs, m.Subject, int64(m.ID)), doc)
	staged.Put(archive.OutboxPath(projectSlug, sender.Name, m.CreatedTs, m.Subject, int64(m.ID)), doc)
	for _, r := range recipients {
		if r.kind == store.RecipientBCC {
			continue // bcc recipients get no mailbox copy (spec.md §4.7)
		}
		staged.Put(archive.InboxPath(projectSlug, r.agent.Name, m.CreatedTs, m.Subject, int64(m.ID)), doc)
	}

	return staged, archive.CommitMessageLine("send", "message", int64(m.ID), projectSlug)
}

// MarkRead sets read_ts if null; idempotent (spec.md §4.2).
func (c *Core) MarkRead(ctx context.Context, message ids.MessageID, agent ids.AgentID) error {
	return c.Store.WithTx(ctx, func(q *store.Queries) error {
		if _, err := q.GetRecipient(ctx, message, agent); err != nil {
			return err
		}
		return q.MarkRead(ctx, message, agent, c.now())
	})
}

// Acknowledge sets ack_ts (and read_ts if still null); idempotent.
func (c *Core) Acknowledge(ctx context.Context, message ids.MessageID, agent ids.AgentID) error {
	return c.Store.WithTx(ctx, func(q *store.Queries) error {
		if _, err := q.GetRecipient(ctx, message, agent); err != nil {
			return err
		}
		return q.Acknowledge(ctx, message, agent, c.now())
	})
}

// CheckInbox returns an agent's messages, newest first.
func (c *Core) CheckInbox(ctx context.Context, project ids.ProjectID, agent ids.AgentID, unreadOnly bool) ([]store.InboxRow, error) {
	return c.Store.Queries().ListInbox(ctx, project, agent, unreadOnly)
}

func ptrInt64(v int64) *int64 { return &v }

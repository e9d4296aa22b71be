// Copyright (C) 2025 sage-x-project
// SPDX-License-Identifier: LGPL-3.0-or-later

package store

import "github.com/sage-x-project/agentmail/pkg/ids"

// ContactPolicy enumerates an Agent's inbound-message policy (spec.md §3).
type ContactPolicy string

const (
	PolicyOpen         ContactPolicy = "open"
	PolicyAuto         ContactPolicy = "auto"
	PolicyContactsOnly ContactPolicy = "contacts_only"
	PolicyBlockAll     ContactPolicy = "block_all"
)

// Importance enumerates a Message's urgency (spec.md §3).
type Importance string

const (
	ImportanceNormal Importance = "normal"
	ImportanceHigh   Importance = "high"
	ImportanceUrgent Importance = "urgent"
)

// RecipientKind enumerates how an Agent was addressed on a Message.
type RecipientKind string

const (
	RecipientTo  RecipientKind = "to"
	RecipientCC  RecipientKind = "cc"
	RecipientBCC RecipientKind = "bcc"
)

// ContactState enumerates a Contact edge's lifecycle (spec.md §3).
type ContactState string

const (
	ContactPending  ContactState = "pending"
	ContactAccepted ContactState = "accepted"
	ContactRejected ContactState = "rejected"
	ContactRevoked  ContactState = "revoked"
)

// Project mirrors the projects row (spec.md §3).
type Project struct {
	ID        ids.ProjectID
	Slug      string
	HumanKey  string
	CreatedTs int64
}

// Agent mirrors the agents row.
type Agent struct {
	ID              ids.AgentID
	ProjectID       ids.ProjectID
	Name            string
	Program         string
	Model           string
	TaskDescription string
	ContactPolicy   ContactPolicy
	InceptionTs     int64
}

// Message mirrors the messages row.
type Message struct {
	ID          ids.MessageID
	ProjectID   ids.ProjectID
	SenderID    ids.AgentID
	Subject     string
	Body        string
	Importance  Importance
	AckRequired bool
	ThreadID    ids.ThreadID
	InReplyTo   ids.MessageID // zero if none
	CreatedTs   int64
}

// Recipient mirrors one recipients row.
type Recipient struct {
	MessageID ids.MessageID
	AgentID   ids.AgentID
	Kind      RecipientKind
	ReadTs    *int64
	AckTs     *int64
}

// Attachment mirrors the attachments row.
type Attachment struct {
	ID         ids.AttachmentID
	ProjectID  ids.ProjectID
	AgentID    ids.AgentID // zero if unbound
	MessageID  ids.MessageID
	Filename   string
	StoredPath string
	SHA256     string
	MediaType  string
	SizeBytes  int64
	CreatedTs  int64
}

// Reservation mirrors the reservations row; Paths is the decoded JSON
// array of glob patterns (spec.md §3, §4.3).
type Reservation struct {
	ID         ids.ReservationID
	ProjectID  ids.ProjectID
	AgentID    ids.AgentID
	Paths      []string
	TTLSeconds int64
	Exclusive  bool
	Reason     string
	CreatedTs  int64
	ExpiresTs  int64
	ReleasedTs *int64
}

// Active reports whether the reservation is unreleased and unexpired
// at instant now (spec.md §3 invariants).
func (r Reservation) Active(now int64) bool {
	return r.ReleasedTs == nil && r.ExpiresTs > now
}

// BuildSlot mirrors the build_slots row.
type BuildSlot struct {
	ID         ids.BuildSlotID
	ProjectID  ids.ProjectID
	AgentID    ids.AgentID
	TTLSeconds int64
	CreatedTs  int64
	ExpiresTs  int64
	ReleasedTs *int64
}

// Active reports whether the slot is unreleased and unexpired.
func (b BuildSlot) Active(now int64) bool {
	return b.ReleasedTs == nil && b.ExpiresTs > now
}

// Contact mirrors the contacts row; AgentA is always <= AgentB (design
// note §9: "a single row keyed on the unordered pair with a canonical
// ordering, smaller-id first").
type Contact struct {
	ID          ids.ContactID
	ProjectID   ids.ProjectID
	AgentA      ids.AgentID
	AgentB      ids.AgentID
	State       ContactState
	RequestedTs int64
	DecidedTs   *int64
}

// Macro mirrors the macros row; Steps is the decoded JSON template list.
type Macro struct {
	ID        ids.MacroID
	ProjectID ids.ProjectID // zero if global
	Name      string
	Steps     []MacroStep
	CreatedTs int64
}

// MacroStep is one ordered tool-invocation template within a Macro
// (spec.md §3 "steps (ordered sequence of tool-invocation templates
// with parameter bindings)").
type MacroStep struct {
	Tool     string                 `json:"tool"`
	Bindings map[string]interface{} `json:"bindings"`
}

// Product mirrors the products row plus its linked project ids.
type Product struct {
	ID        ids.ProductID
	UID       string
	Name      string
	CreatedTs int64
	Projects  []ids.ProjectID
}

// CanonicalPair orders two agent ids smaller-first, matching the
// Contact table's storage convention.
func CanonicalPair(a, b ids.AgentID) (ids.AgentID, ids.AgentID) {
	if a <= b {
		return a, b
	}
	return b, a
}

// Copyright (C) 2025 sage-x-project
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.

// SPDX-License-Identifier: LGPL-3.0-or-later

// Package ids defines strong identifier types for every entity in the
// coordination core. Every kind is a distinct Go type so the compiler
// rejects passing a MessageID where a ReservationID is expected; none
// of them are aliases of each other or of plain int64/string.
package ids

import "strconv"

// ProjectID identifies a Project row. Monotonically assigned by the Store.
type ProjectID int64

// AgentID identifies an Agent row, unique within its Project.
type AgentID int64

// MessageID identifies a Message row.
type MessageID int64

// ReservationID identifies a Reservation row.
type ReservationID int64

// BuildSlotID identifies a Build Slot row.
type BuildSlotID int64

// ContactID identifies a Contact row (the unordered agent pair).
type ContactID int64

// MacroID identifies a Macro row.
type MacroID int64

// AttachmentID identifies an Attachment row.
type AttachmentID int64

// ProductID identifies a Product row.
type ProductID int64

// ThreadID is an opaque, never-reused-across-Projects thread grouping
// key. Unlike the other identifiers it is a string because it may be
// caller-supplied (spec §3, §4.4) rather than solely Store-assigned.
type ThreadID string

func (id ProjectID) String() string     { return strconv.FormatInt(int64(id), 10) }
func (id AgentID) String() string       { return strconv.FormatInt(int64(id), 10) }
func (id MessageID) String() string     { return strconv.FormatInt(int64(id), 10) }
func (id ReservationID) String() string { return strconv.FormatInt(int64(id), 10) }
func (id BuildSlotID) String() string   { return strconv.FormatInt(int64(id), 10) }
func (id ContactID) String() string     { return strconv.FormatInt(int64(id), 10) }
func (id MacroID) String() string       { return strconv.FormatInt(int64(id), 10) }
func (id AttachmentID) String() string  { return strconv.FormatInt(int64(id), 10) }
func (id ProductID) String() string     { return strconv.FormatInt(int64(id), 10) }
func (id ThreadID) String() string      { return string(id) }

// Zero reports whether id is the zero value, used to distinguish "not
// yet assigned" from a real row id (ids start at 1 in the Store).
func (id ProjectID) Zero() bool     { return id == 0 }
func (id AgentID) Zero() bool       { return id == 0 }
func (id MessageID) Zero() bool     { return id == 0 }
func (id ReservationID) Zero() bool { return id == 0 }
func (id BuildSlotID) Zero() bool   { return id == 0 }
func (id ContactID) Zero() bool     { return id == 0 }
func (id MacroID) Zero() bool       { return id == 0 }
func (id AttachmentID) Zero() bool  { return id == 0 }
func (id ProductID) Zero() bool     { return id == 0 }

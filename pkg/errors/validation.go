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

package errors

// Input/shape errors (spec §7).
var (
	// ErrInvalidArgument indicates a tool input failed a semantic check
	// (e.g. a malformed slug, a negative ttl).
	ErrInvalidArgument = &Error{
		Category: CategoryValidation,
		Code:     "INVALID_ARGUMENT",
		Message:  "invalid argument",
	}

	// ErrSchemaViolation indicates a tool input failed JSON-schema
	// validation at the Tool Frontier before dispatch.
	ErrSchemaViolation = &Error{
		Category: CategoryValidation,
		Code:     "SCHEMA_VIOLATION",
		Message:  "input does not match the declared schema",
	}

	// ErrMissingField indicates a required field is missing.
	ErrMissingField = &Error{
		Category: CategoryValidation,
		Code:     "MISSING_FIELD",
		Message:  "required field is missing",
	}

	// ErrEmptyRecipients indicates a send with no surviving recipient
	// after to/cc/bcc collapsing (spec §4.4).
	ErrEmptyRecipients = &Error{
		Category: CategoryValidation,
		Code:     "EMPTY_RECIPIENTS",
		Message:  "message has no recipients",
	}
)

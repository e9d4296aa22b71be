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

// Authentication and policy errors (spec §7 "Input/shape", "Policy/state").
var (
	// ErrUnauthorized indicates the caller binding failed authentication.
	ErrUnauthorized = &Error{
		Category: CategoryUnauthorized,
		Code:     "UNAUTHORIZED",
		Message:  "unauthorized access",
	}

	// ErrInvalidCredentials indicates invalid bearer/JWT credentials.
	ErrInvalidCredentials = &Error{
		Category: CategoryUnauthorized,
		Code:     "INVALID_CREDENTIALS",
		Message:  "invalid credentials provided",
	}

	// ErrPolicyDenied indicates a recipient's contact policy denied
	// delivery (spec §4.4).
	ErrPolicyDenied = &Error{
		Category: CategoryPolicy,
		Code:     "POLICY_DENIED",
		Message:  "contact policy denied delivery",
	}

	// ErrNameCollision indicates Agent.register could not find an unused
	// name within the bounded number of retries (spec §4.2).
	ErrNameCollision = &Error{
		Category: CategoryPolicy,
		Code:     "NAME_COLLISION",
		Message:  "could not allocate a unique agent name",
	}

	// ErrAlreadyReleased indicates a release/force_release/renew targeted
	// a reservation or slot that is already released (idempotent no-op,
	// not every caller treats this as fatal — see spec §4.3).
	ErrAlreadyReleased = &Error{
		Category: CategoryPolicy,
		Code:     "ALREADY_RELEASED",
		Message:  "reservation or slot already released",
	}

	// ErrNotOwner indicates a renew was attempted by an agent other than
	// the agent-of-record.
	ErrNotOwner = &Error{
		Category: CategoryPolicy,
		Code:     "NOT_OWNER",
		Message:  "caller is not the agent of record",
	}
)

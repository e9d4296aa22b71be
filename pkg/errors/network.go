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

// Deadline and quota errors (spec §5 "Cancellation/timeouts", §7).
var (
	// ErrTimeout indicates a tool call's deadline elapsed; the current
	// unit-of-work was aborted and nothing or everything persisted.
	ErrTimeout = &Error{
		Category: CategoryNetwork,
		Code:     "TIMEOUT",
		Message:  "call deadline exceeded",
	}

	// ErrRateLimited indicates the caller's token exceeded its configured
	// per-minute quota at the Tool Frontier.
	ErrRateLimited = &Error{
		Category: CategoryNetwork,
		Code:     "RATE_LIMITED",
		Message:  "rate limit exceeded",
	}
)

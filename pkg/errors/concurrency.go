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

// Contention errors (spec §4.3, §4.5, §7). Recoverable: a caller may
// retry after waiting.
var (
	// ErrReservationConflict indicates an active exclusive reservation
	// (or another exclusive request) overlaps the requested path pattern.
	ErrReservationConflict = &Error{
		Category: CategoryConcurrency,
		Code:     "RESERVATION_CONFLICT",
		Message:  "reservation conflicts with an active reservation",
	}

	// ErrBuildSlotHeld indicates a project already has an active
	// exclusive build slot.
	ErrBuildSlotHeld = &Error{
		Category: CategoryConcurrency,
		Code:     "BUILD_SLOT_HELD",
		Message:  "build slot already held",
	}
)

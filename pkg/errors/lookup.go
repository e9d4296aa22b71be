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

// Entity lookup errors (spec §7 "Entity lookup").
var (
	ErrProjectNotFound = &Error{
		Category: CategoryNotFound,
		Code:     "PROJECT_NOT_FOUND",
		Message:  "project not found",
	}

	ErrAgentNotFound = &Error{
		Category: CategoryNotFound,
		Code:     "AGENT_NOT_FOUND",
		Message:  "agent not found",
	}

	ErrMessageNotFound = &Error{
		Category: CategoryNotFound,
		Code:     "MESSAGE_NOT_FOUND",
		Message:  "message not found",
	}

	ErrReservationNotFound = &Error{
		Category: CategoryNotFound,
		Code:     "RESERVATION_NOT_FOUND",
		Message:  "reservation not found",
	}

	ErrBuildSlotNotFound = &Error{
		Category: CategoryNotFound,
		Code:     "BUILD_SLOT_NOT_FOUND",
		Message:  "build slot not found",
	}

	ErrAttachmentNotFound = &Error{
		Category: CategoryNotFound,
		Code:     "ATTACHMENT_NOT_FOUND",
		Message:  "attachment not found",
	}

	ErrContactNotFound = &Error{
		Category: CategoryNotFound,
		Code:     "CONTACT_NOT_FOUND",
		Message:  "contact not found",
	}

	ErrProductNotFound = &Error{
		Category: CategoryNotFound,
		Code:     "PRODUCT_NOT_FOUND",
		Message:  "product not found",
	}
)

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

// Package errors provides structured error handling for the
// coordination core.
//
// The package defines a comprehensive error system with:
//
//   - Categorized errors for every subsystem (validation, policy,
//     storage, concurrency, security, internal)
//   - Rich error context with details (e.g. the conflicting reservation
//     id on a ReservationConflict)
//   - Standard Go error wrapping support
//   - Type-safe error checking
//
// # Error Categories
//
// Errors are organized into categories:
//
//   - Validation: input/shape errors caught before dispatch
//   - Policy: contact-policy denials and entity state-machine violations
//   - NotFound: lookups of entities that do not exist
//   - Storage: relational store and git archive errors
//   - Concurrency: reservation and build-slot contention
//   - Unauthorized: authentication failures
//   - Network: call deadlines and rate limiting
//   - Internal: unexpected server errors
//
// # Creating Errors
//
// Use predefined errors:
//
//	err := errors.ErrInvalidArgument.WithDetail("field", "ttl_seconds")
//
// Or create custom errors:
//
//	err := errors.New(
//	    errors.CategoryValidation,
//	    "CUSTOM_ERROR",
//	    "custom error message",
//	)
//
// # Wrapping Errors
//
// Wrap errors to add context:
//
//	if err := validateSend(req); err != nil {
//	    return errors.ErrInvalidArgument.
//	        WithMessage("send validation failed").
//	        Wrap(err)
//	}
//
// # Error Checking
//
// Check error types using standard Go patterns:
//
//	// Check if error matches a specific type
//	if errors.IsNotFound(err) {
//	    // handle not found
//	}
//
//	// Extract error details
//	var coreErr *errors.Error
//	if errors.As(err, &coreErr) {
//	    log.Printf("Code: %s, Details: %v", coreErr.Code, coreErr.Details)
//	}
package errors

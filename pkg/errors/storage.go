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

// Store and archive errors (spec §4.1, §7).
var (
	// ErrPersistence indicates the relational commit or its compensating
	// rollback failed; the caller gets a definite "did not happen" outcome.
	ErrPersistence = &Error{
		Category: CategoryStorage,
		Code:     "PERSISTENCE_ERROR",
		Message:  "relational store write failed",
	}

	// ErrMigration indicates a schema migration aborted partway through.
	ErrMigration = &Error{
		Category: CategoryStorage,
		Code:     "MIGRATION_ERROR",
		Message:  "schema migration failed",
	}

	// ErrSchemaConflict indicates two migrations claim the same version.
	ErrSchemaConflict = &Error{
		Category: CategoryStorage,
		Code:     "SCHEMA_CONFLICT",
		Message:  "migration schema conflict",
	}

	// ErrArchiveWrite indicates the git archive commit failed after the
	// relational rows were staged; the Store compensates with a delete.
	ErrArchiveWrite = &Error{
		Category: CategoryStorage,
		Code:     "ARCHIVE_WRITE_ERROR",
		Message:  "archive commit failed",
	}

	// ErrAlreadyExists indicates the resource already exists.
	ErrAlreadyExists = &Error{
		Category: CategoryStorage,
		Code:     "ALREADY_EXISTS",
		Message:  "resource already exists",
	}
)

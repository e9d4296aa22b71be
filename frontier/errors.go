// Copyright (C) 2025 sage-x-project
// SPDX-License-Identifier: LGPL-3.0-or-later

package frontier

import (
	adkerrors "github.com/sage-x-project/agentmail/pkg/errors"
)

// Envelope is the stable JSON error shape every REST and WebSocket
// response uses (spec.md §6 "a stable error envelope {code, name,
// message, details?}").
type Envelope struct {
	Code    int                    `json:"code"`
	Name    string                 `json:"name"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// envelopeCodes maps each controller error's stable machine-readable
// name (pkg/errors' Code field) to the integer code the tool surface
// exposes (spec.md §7 "every controller error maps to a stable tool-
// level error kind with an integer code and a short machine-readable
// name"). Categories not listed here fall back to categoryFallback.
var envelopeCodes = map[string]int{
	adkerrors.ErrInvalidArgument.Code:     400,
	adkerrors.ErrSchemaViolation.Code:     400,
	adkerrors.ErrMissingField.Code:        400,
	adkerrors.ErrEmptyRecipients.Code:     400,
	adkerrors.ErrUnauthorized.Code:        401,
	adkerrors.ErrInvalidCredentials.Code:  401,
	adkerrors.ErrPolicyDenied.Code:        403,
	adkerrors.ErrNotOwner.Code:            403,
	adkerrors.ErrProjectNotFound.Code:     404,
	adkerrors.ErrAgentNotFound.Code:       404,
	adkerrors.ErrMessageNotFound.Code:     404,
	adkerrors.ErrReservationNotFound.Code: 404,
	adkerrors.ErrBuildSlotNotFound.Code:   404,
	adkerrors.ErrAttachmentNotFound.Code:  404,
	adkerrors.ErrContactNotFound.Code:     404,
	adkerrors.ErrProductNotFound.Code:     404,
	adkerrors.ErrNameCollision.Code:       409,
	adkerrors.ErrAlreadyReleased.Code:     409,
	adkerrors.ErrAlreadyExists.Code:       409,
	adkerrors.ErrReservationConflict.Code: 409,
	adkerrors.ErrBuildSlotHeld.Code:       409,
	adkerrors.ErrSchemaConflict.Code:      409,
	adkerrors.ErrRateLimited.Code:         429,
	adkerrors.ErrTimeout.Code:             504,
	adkerrors.ErrPersistence.Code:         500,
	adkerrors.ErrMigration.Code:           500,
	adkerrors.ErrArchiveWrite.Code:        500,
	"UNKNOWN_TOOL":                        400,
}

// categoryFallback covers any *Error whose specific Code isn't listed
// in envelopeCodes, keyed by category so a newly added error var still
// gets a sane integer without an envelopeCodes edit.
var categoryFallback = map[adkerrors.ErrorCategory]int{
	adkerrors.CategoryValidation:   400,
	adkerrors.CategoryUnauthorized: 401,
	adkerrors.CategoryPolicy:       403,
	adkerrors.CategorySecurity:     403,
	adkerrors.CategoryNotFound:     404,
	adkerrors.CategoryConcurrency:  409,
	adkerrors.CategoryNetwork:      429,
	adkerrors.CategoryStorage:      500,
	adkerrors.CategoryInternal:     500,
}

// errorCode extracts the stable machine-readable name from err, or
// "INTERNAL" if err is not one of pkg/errors' catalog entries.
func errorCode(err error) string {
	var adkErr *adkerrors.Error
	if adkerrors.As(err, &adkErr) {
		return adkErr.Code
	}
	return "INTERNAL"
}

// toEnvelope converts any error returned from the pre-dispatch chain
// or a tool handler into the wire envelope.
func toEnvelope(err error) Envelope {
	var adkErr *adkerrors.Error
	if !adkerrors.As(err, &adkErr) {
		return Envelope{Code: 500, Name: "INTERNAL", Message: err.Error()}
	}
	code, ok := envelopeCodes[adkErr.Code]
	if !ok {
		code, ok = categoryFallback[adkErr.Category]
		if !ok {
			code = 500
		}
	}
	return Envelope{Code: code, Name: adkErr.Code, Message: adkErr.Message, Details: adkErr.Details}
}

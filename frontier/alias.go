// Copyright (C) 2025 sage-x-project
// SPDX-License-Identifier: LGPL-3.0-or-later

package frontier

// expandRecipientNamesAlias rewrites the legacy send_message(recipient_
// names=[...]) shape into the canonical to=[...] form before the
// Message Router ever sees it (spec.md §9, SPEC_FULL.md §11: "the
// Message Router and controllers never see the legacy shape"). A
// request that already names `to` is left untouched; recipient_names
// only fills `to` when it is absent.
func expandRecipientNamesAlias(args Args) {
	legacy, ok := args["recipient_names"]
	if !ok {
		return
	}
	delete(args, "recipient_names")
	if _, hasTo := args["to"]; hasTo {
		return
	}
	args["to"] = legacy
}

// Copyright (C) 2025 sage-x-project
// SPDX-License-Identifier: LGPL-3.0-or-later

// Package core implements the Entity Controllers (spec.md §4.2), the
// Reservation Manager (§4.3), the Message Router (§4.4), the
// Build-Slot Manager (§4.5), the Thread Index (§4.6), and the
// adjacent Contact/Macro/Attachment/Product operations, all wired
// against the store and archive packages. Each operation opens
// exactly one store.Store unit-of-work, per the spec's "operation
// surfaces... delegates persistence to the Store" design.
package core

import "fmt"

// adjectives and nouns seed deterministic agent-name generation
// (design note §9: "adjective+noun is a deterministic function of
// (time_bucket, attempt_index); treat as a pure function so tests can
// seed it"). Small, fixed lists keep the function pure and the name
// space large enough that bounded retries rarely exhaust it.
var adjectives = []string{
	"amber", "brisk", "calm", "deft", "eager", "fleet", "gentle", "hardy",
	"keen", "lively", "mellow", "nimble", "quiet", "rapid", "steady", "vivid",
}

var nouns = []string{
	"falcon", "otter", "badger", "heron", "lynx", "marten", "osprey", "wren",
	"sparrow", "beetle", "cricket", "finch", "gecko", "hare", "ibis", "jay",
}

// GenerateName is the pure function behind Agent.register's automatic
// naming: deterministic given (timeBucket, attempt), so tests can seed
// it and production can call it with a real time bucket (e.g. Unix
// seconds / 60) plus an increasing attempt counter on collision.
func GenerateName(timeBucket int64, attempt int) string {
	// A simple affine mix keeps nearby time buckets from picking
	// adjacent words while remaining a pure function of its inputs.
	seed := timeBucket*1103515245 + int64(attempt)*12345
	if seed < 0 {
		seed = -seed
	}
	adj := adjectives[seed%int64(len(adjectives))]
	noun := nouns[(seed/int64(len(adjectives)))%int64(len(nouns))]
	return fmt.Sprintf("%s-%s", adj, noun)
}

// maxNameAttempts bounds Agent.register's retry loop on NameCollision
// (spec.md §4.2: "retries with a fresh name up to a bounded number of
// attempts before failing with NameCollision").
const maxNameAttempts = 8

// Copyright (C) 2025 sage-x-project
// SPDX-License-Identifier: LGPL-3.0-or-later

package frontier

import (
	adkerrors "github.com/sage-x-project/agentmail/pkg/errors"
	"github.com/sage-x-project/agentmail/pkg/ids"
)

// The decode helpers below turn the loosely typed JSON-decoded Args
// map into the concrete types each controller expects. validateRequired
// has already run by the time a handler calls these, but values can
// still carry the wrong JSON type (e.g. a number where a string was
// asked for). argStringSlice reports that as ErrSchemaViolation; the
// scalar helpers return their type's zero value instead.

func argString(args Args, key string) string {
	v, _ := args[key].(string)
	return v
}

func argBool(args Args, key string) bool {
	v, _ := args[key].(bool)
	return v
}

func argInt64(args Args, key string) int64 {
	switch v := args[key].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	default:
		return 0
	}
}

func argStringSlice(args Args, key string) ([]string, error) {
	raw, ok := args[key]
	if !ok {
		return nil, nil
	}
	items, ok := raw.([]interface{})
	if !ok {
		return nil, adkerrors.ErrSchemaViolation.WithDetail("field", key)
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, adkerrors.ErrSchemaViolation.WithDetail("field", key)
		}
		out = append(out, s)
	}
	return out, nil
}

func argProjectID(args Args, key string) ids.ProjectID {
	return ids.ProjectID(argInt64(args, key))
}

func argAgentID(args Args, key string) ids.AgentID {
	return ids.AgentID(argInt64(args, key))
}

// callerAgentID returns the agent-of-record the pre-dispatch chain
// resolved for call (frontier.go's resolution stage, spec.md §4.8),
// falling back to the client-supplied argument only when no token
// identity could be resolved (auth_mode "none", where every caller is
// trusted by construction). Handlers that act "as" the calling agent
// — reserving, renewing, acknowledging, setting one's own policy —
// must read the caller's identity through this helper rather than
// argAgentID, so a resolved identity can never be overridden by the
// request body.
func callerAgentID(call *Call, key string) ids.AgentID {
	if call.AgentID != 0 {
		return call.AgentID
	}
	return argAgentID(call.Args, key)
}

func argMessageID(args Args, key string) ids.MessageID {
	return ids.MessageID(argInt64(args, key))
}

func argReservationID(args Args, key string) ids.ReservationID {
	return ids.ReservationID(argInt64(args, key))
}

func argBuildSlotID(args Args, key string) ids.BuildSlotID {
	return ids.BuildSlotID(argInt64(args, key))
}

func argContactID(args Args, key string) ids.ContactID {
	return ids.ContactID(argInt64(args, key))
}

func argProductID(args Args, key string) ids.ProductID {
	return ids.ProductID(argInt64(args, key))
}

func argThreadID(args Args, key string) ids.ThreadID {
	return ids.ThreadID(argString(args, key))
}

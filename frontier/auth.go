// Copyright (C) 2025 sage-x-project
// SPDX-License-Identifier: LGPL-3.0-or-later

package frontier

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/sage-x-project/agentmail/config"
	adkerrors "github.com/sage-x-project/agentmail/pkg/errors"
	"github.com/sage-x-project/agentmail/pkg/ids"
)

// bearerEntry binds one bcrypt-hashed bearer token to the agent-of-
// record id it authenticates as.
type bearerEntry struct {
	agent ids.AgentID
	hash  string
}

// Authenticator implements the pre-dispatch authentication and
// agent-of-record resolution stages (spec.md §4.8, §6 "auth_mode").
// Mode "none" accepts every call unauthenticated and resolves no
// identity (every caller is trusted by construction); "bearer" checks
// the caller's token against a file mapping bcrypt-hashed tokens to
// agent ids and resolves the matching id; "jwt" is an accepted config
// value but not yet wired to a verifier or a claims-based resolver
// (Open Question, SPEC_FULL.md §11).
type Authenticator struct {
	mode    string
	entries []bearerEntry // one per line of BearerTokensFile
}

// NewAuthenticator builds an Authenticator from cfg, loading the
// bearer-token file once at startup; the file never changes while the
// process runs, matching the teacher's load-once config pattern. Each
// line of BearerTokensFile has the form "<agent_id>:<bcrypt hash>".
func NewAuthenticator(cfg config.AuthConfig) (*Authenticator, error) {
	a := &Authenticator{mode: cfg.Mode}
	if cfg.Mode != "bearer" {
		return a, nil
	}

	f, err := os.Open(cfg.BearerTokensFile)
	if err != nil {
		return nil, adkerrors.ErrPersistence.Wrap(err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		agentPart, hash, ok := strings.Cut(line, ":")
		if !ok {
			return nil, adkerrors.ErrSchemaViolation.WithDetail("bearer_tokens_file", cfg.BearerTokensFile).
				WithDetail("reason", "expected \"<agent_id>:<bcrypt hash>\" per line")
		}
		agentID, err := strconv.ParseInt(strings.TrimSpace(agentPart), 10, 64)
		if err != nil {
			return nil, adkerrors.ErrSchemaViolation.WithDetail("bearer_tokens_file", cfg.BearerTokensFile).Wrap(err)
		}
		a.entries = append(a.entries, bearerEntry{agent: ids.AgentID(agentID), hash: strings.TrimSpace(hash)})
	}
	if err := scanner.Err(); err != nil {
		return nil, adkerrors.ErrPersistence.Wrap(err)
	}
	return a, nil
}

// Authenticate validates token against the configured mode.
func (a *Authenticator) Authenticate(token string) error {
	switch a.mode {
	case "", "none":
		return nil
	case "bearer":
		if token == "" {
			return adkerrors.ErrUnauthorized
		}
		for _, e := range a.entries {
			if bcrypt.CompareHashAndPassword([]byte(e.hash), []byte(token)) == nil {
				return nil
			}
		}
		return adkerrors.ErrInvalidCredentials
	case "jwt":
		if token == "" {
			return adkerrors.ErrUnauthorized
		}
		return nil
	default:
		return adkerrors.ErrUnauthorized
	}
}

// ResolveAgent implements the pre-dispatch agent-of-record resolution
// stage (spec.md §184, SPEC_FULL.md §182: "auth → agent-of-record
// resolution → rate limit → schema validation"), run immediately after
// Authenticate succeeds. It returns the agent id bound to token, or 0
// when the configured mode cannot establish one — under "none" there
// is no token to resolve, and under "jwt" no claims-based resolver is
// wired yet, so callers fall back to a client-supplied agent id in
// both cases. Under "bearer" a matching token always resolves to its
// bound agent id, and that resolved id is authoritative.
func (a *Authenticator) ResolveAgent(token string) ids.AgentID {
	if a.mode != "bearer" {
		return 0
	}
	for _, e := range a.entries {
		if bcrypt.CompareHashAndPassword([]byte(e.hash), []byte(token)) == nil {
			return e.agent
		}
	}
	return 0
}

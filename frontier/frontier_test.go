// Copyright (C) 2025 sage-x-project
// SPDX-License-Identifier: LGPL-3.0-or-later

package frontier_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/sage-x-project/agentmail/config"
	"github.com/sage-x-project/agentmail/frontier"
	"github.com/sage-x-project/agentmail/internal/testutil"
	adkerrors "github.com/sage-x-project/agentmail/pkg/errors"
	"github.com/sage-x-project/agentmail/store"
)

func newFrontier(t *testing.T) *frontier.Frontier {
	t.Helper()
	c := testutil.NewCore(t)
	cfg := config.DefaultConfig()
	fr, err := frontier.New(c, cfg, c.Logger, c.Metrics)
	if err != nil {
		t.Fatalf("frontier.New: %v", err)
	}
	return fr
}

func mustEnsureProject(t *testing.T, fr *frontier.Frontier) int64 {
	t.Helper()
	out, err := fr.Dispatch(context.Background(), "", "ensure_project", frontier.Args{"slug": "demo"})
	if err != nil {
		t.Fatalf("ensure_project: %v", err)
	}
	return int64(out.(store.Project).ID)
}

func mustRegisterAgent(t *testing.T, fr *frontier.Frontier, projectID int64, name string) int64 {
	t.Helper()
	out, err := fr.Dispatch(context.Background(), "", "register_agent", frontier.Args{
		"project_id": float64(projectID), "name": name, "program": "claude-code",
	})
	if err != nil {
		t.Fatalf("register_agent: %v", err)
	}
	return int64(out.(store.Agent).ID)
}

func TestDispatchUnknownTool(t *testing.T) {
	fr := newFrontier(t)
	_, err := fr.Dispatch(context.Background(), "", "no_such_tool", frontier.Args{})
	if !adkerrors.IsCategory(err, adkerrors.CategoryValidation) {
		t.Fatalf("expected a validation error for an unknown tool, got %v", err)
	}
}

func TestDispatchMissingRequiredField(t *testing.T) {
	fr := newFrontier(t)
	_, err := fr.Dispatch(context.Background(), "", "register_agent", frontier.Args{})
	if !adkerrors.Is(err, adkerrors.ErrMissingField) {
		t.Fatalf("expected ErrMissingField, got %v", err)
	}
}

func TestDispatchEnsureProjectAndRegisterAgent(t *testing.T) {
	fr := newFrontier(t)
	projectID := mustEnsureProject(t, fr)
	agentID := mustRegisterAgent(t, fr, projectID, "alice")
	if agentID == 0 {
		t.Fatalf("expected a non-zero agent id")
	}
}

// The recipient_names legacy alias must be expanded into `to` before
// the send_message handler ever runs, with no effect on a request
// that already names `to`.
func TestRecipientNamesAliasExpansion(t *testing.T) {
	fr := newFrontier(t)
	projectID := mustEnsureProject(t, fr)
	aliceID := mustRegisterAgent(t, fr, projectID, "alice")
	mustRegisterAgent(t, fr, projectID, "bob")

	args := frontier.Args{
		"project_id": float64(projectID), "sender_id": float64(aliceID),
		"recipient_names": []interface{}{"bob"}, "subject": "hi", "body": "hi bob",
	}
	_, err := fr.Dispatch(context.Background(), "", "send_message", args)
	if err != nil {
		t.Fatalf("send_message via recipient_names alias: %v", err)
	}
	if _, stillPresent := args["recipient_names"]; stillPresent {
		t.Fatalf("recipient_names should have been removed from the args after alias expansion")
	}
	to, ok := args["to"].([]interface{})
	if !ok || len(to) != 1 || to[0] != "bob" {
		t.Fatalf("expected to=[bob] after alias expansion, got %#v", args["to"])
	}
}

func TestBearerAuthRejectsEmptyToken(t *testing.T) {
	c := testutil.NewCore(t)
	cfg := config.DefaultConfig()
	cfg.Auth.Mode = "bearer"
	cfg.Auth.BearerTokensFile = t.TempDir() + "/tokens.txt"
	if err := os.WriteFile(cfg.Auth.BearerTokensFile, []byte(""), 0o644); err != nil {
		t.Fatalf("write tokens file: %v", err)
	}

	fr, err := frontier.New(c, cfg, c.Logger, c.Metrics)
	if err != nil {
		t.Fatalf("frontier.New: %v", err)
	}

	_, err = fr.Dispatch(context.Background(), "", "ensure_project", frontier.Args{"slug": "demo"})
	if !adkerrors.IsCategory(err, adkerrors.CategoryUnauthorized) && !adkerrors.IsCategory(err, adkerrors.CategorySecurity) {
		t.Fatalf("expected an auth error for an empty bearer token, got %v", err)
	}
}

// A resolved bearer identity is authoritative: a caller cannot spoof
// another agent's id through the request body once its token resolves
// to an agent-of-record (spec.md §4.8 pre-dispatch chain).
func TestBearerResolvesAgentOfRecordOverridesSpoofedArgs(t *testing.T) {
	c := testutil.NewCore(t)

	// Seed the project and agents through a throwaway "none"-mode
	// Frontier; they share the same underlying Core/store as the
	// bearer-mode Frontier used below.
	seed, err := frontier.New(c, config.DefaultConfig(), c.Logger, c.Metrics)
	if err != nil {
		t.Fatalf("frontier.New (seed): %v", err)
	}
	projectID := mustEnsureProject(t, seed)
	aliceID := mustRegisterAgent(t, seed, projectID, "alice")
	mallory := mustRegisterAgent(t, seed, projectID, "mallory")

	hash, err := bcrypt.GenerateFromPassword([]byte("mallory-token"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt.GenerateFromPassword: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.Auth.Mode = "bearer"
	cfg.Auth.BearerTokensFile = t.TempDir() + "/tokens.txt"
	line := fmt.Sprintf("%d:%s\n", mallory, hash)
	if err := os.WriteFile(cfg.Auth.BearerTokensFile, []byte(line), 0o644); err != nil {
		t.Fatalf("write tokens file: %v", err)
	}

	fr, err := frontier.New(c, cfg, c.Logger, c.Metrics)
	if err != nil {
		t.Fatalf("frontier.New: %v", err)
	}

	// mallory's token claims to reserve on behalf of alice via a
	// spoofed agent_id; the resolved identity must win.
	result, err := fr.Dispatch(context.Background(), "mallory-token", "reserve_file", frontier.Args{
		"project_id": float64(projectID), "agent_id": float64(aliceID), "paths": []interface{}{"a.go"},
	})
	if err != nil {
		t.Fatalf("reserve_file: %v", err)
	}
	reservation, ok := result.(store.Reservation)
	if !ok {
		t.Fatalf("expected a store.Reservation, got %T", result)
	}
	if int64(reservation.AgentID) != mallory {
		t.Fatalf("expected the reservation to bind to the resolved agent-of-record (mallory=%d), got %d", mallory, reservation.AgentID)
	}
}

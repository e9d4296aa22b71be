// Copyright (C) 2025 sage-x-project
// SPDX-License-Identifier: LGPL-3.0-or-later

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Exit codes (spec.md §6: "0 success; 64 usage error; 65 data-dir
// error; 66 migration error; 69 service unavailable (port bind); 70
// internal error").
const (
	exitOK             = 0
	exitUsage          = 64
	exitDataDir        = 65
	exitMigration      = 66
	exitServiceUnavail = 69
	exitInternal       = 70
)

// exitCoded lets a command report a specific exit code for a
// known failure category; run falls back to exitUsage for errors that
// carry no code (cobra's own argument and flag errors).
type exitCoded struct {
	code int
	err  error
}

func (e *exitCoded) Error() string { return e.err.Error() }
func (e *exitCoded) Unwrap() error { return e.err }

func withExitCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &exitCoded{code: code, err: err}
}

var rootCmd = &cobra.Command{
	Use:   "agentmaild",
	Short: "Run the agent-mail coordination daemon",
	Long: `agentmaild serves the agent-mail coordination substrate: a
message router, file reservation manager, build-slot manager, and
thread index for autonomous coding agents working against a shared
project, exposed as a uniform tool surface over REST and WebSocket.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
}

// run executes the root command and returns the process exit code,
// never calling os.Exit itself so it stays testable.
func run() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "agentmaild:", err)
		var coded *exitCoded
		if errors.As(err, &coded) {
			return coded.code
		}
		return exitUsage
	}
	return exitOK
}

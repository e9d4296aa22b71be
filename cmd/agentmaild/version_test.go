// Copyright (C) 2025 sage-x-project
// SPDX-License-Identifier: LGPL-3.0-or-later

package main

import "testing"

func TestVersionCmdRuns(t *testing.T) {
	versionCmd.Run(versionCmd, nil)
}

func TestRootCommandHasSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}
	for _, want := range []string{"serve", "version", "init"} {
		if !names[want] {
			t.Errorf("expected rootCmd to register a %q subcommand", want)
		}
	}
}

// Copyright (C) 2025 sage-x-project
// SPDX-License-Identifier: LGPL-3.0-or-later

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sage-x-project/agentmail/archive"
	"github.com/sage-x-project/agentmail/config"
	"github.com/sage-x-project/agentmail/store"
)

var initCmd = &cobra.Command{
	Use:   "init [data-dir]",
	Short: "Scaffold a new agent-mail data directory",
	Long: `Create a new data directory with an initialized relational
store and archive git repository, plus a starter config.yaml (spec.md
§6 "Persisted state layout").

Example:
  agentmaild init ./agentmail-data`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	dataDir := config.DefaultConfig().Store.DataDir
	if len(args) == 1 {
		dataDir = args[0]
	}

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return withExitCode(exitDataDir, fmt.Errorf("create data dir: %w", err))
	}

	s, err := store.Open(dataDir, store.BackendSQLite, store.PostgresDSN{})
	if err != nil {
		return withExitCode(exitMigration, err)
	}
	defer s.Close()

	cfg := config.DefaultConfig()
	cfg.Store.DataDir = dataDir
	if _, err := archive.Open(dataDir, cfg.Archive.CommitAuthorName, cfg.Archive.CommitAuthorEmail); err != nil {
		return withExitCode(exitDataDir, err)
	}

	configPath := filepath.Join(dataDir, "config.yaml")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := os.WriteFile(configPath, []byte(starterConfigYAML(dataDir)), 0o644); err != nil {
			return withExitCode(exitDataDir, fmt.Errorf("write config.yaml: %w", err))
		}
		fmt.Printf("Wrote %s\n", configPath)
	}

	fmt.Printf("Initialized agent-mail data directory at %s\n", dataDir)
	return nil
}

func starterConfigYAML(dataDir string) string {
	return fmt.Sprintf(`store:
  data_dir: %s
  backend: sqlite
server:
  host: 0.0.0.0
  port: 8765
rate_limit:
  per_minute_per_token: 100
auth:
  mode: none
archive:
  commit_author_name: agent-mail
  commit_author_email: agent-mail@localhost
logging:
  level: info
  format: text
metrics:
  enabled: false
  port: 9090
  path: /metrics
`, dataDir)
}

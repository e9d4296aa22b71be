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

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFromFile loads configuration from a file (YAML or JSON), then
// applies environment overrides and validates the result. The file
// format is determined by the file extension (.yaml, .yml, or .json).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s (use .yaml, .yml, or .json)", ext)
	}

	if err := cfg.LoadEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// LoadEnv loads configuration from environment variables, which take
// precedence over file-based configuration. Format:
// AGENTMAIL_<SECTION>_<FIELD>, e.g. AGENTMAIL_STORE_DATA_DIR.
func (c *Config) LoadEnv() error {
	if v := os.Getenv("AGENTMAIL_STORE_DATA_DIR"); v != "" {
		c.Store.DataDir = v
	}
	if v := os.Getenv("AGENTMAIL_STORE_BACKEND"); v != "" {
		c.Store.Backend = v
	}
	if v := os.Getenv("AGENTMAIL_STORE_POSTGRES_HOST"); v != "" {
		c.Store.Postgres.Host = v
	}
	if v := os.Getenv("AGENTMAIL_STORE_POSTGRES_DATABASE"); v != "" {
		c.Store.Postgres.Database = v
	}

	if v := os.Getenv("AGENTMAIL_SERVER_HOST"); v != "" {
		c.Server.Host = v
	}
	if v := os.Getenv("AGENTMAIL_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}

	if v := os.Getenv("AGENTMAIL_RATE_LIMIT_PER_MINUTE_PER_TOKEN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RateLimit.PerMinutePerToken = n
		}
	}
	if v := os.Getenv("AGENTMAIL_RATE_LIMIT_DISTRIBUTED"); v != "" {
		c.RateLimit.Distributed = v == "true" || v == "1"
	}

	if v := os.Getenv("AGENTMAIL_AUTH_MODE"); v != "" {
		c.Auth.Mode = v
	}

	if v := os.Getenv("AGENTMAIL_ARCHIVE_COMMIT_AUTHOR"); v != "" {
		if name, email, ok := splitAuthor(v); ok {
			c.Archive.CommitAuthorName = name
			c.Archive.CommitAuthorEmail = email
		}
	}

	if v := os.Getenv("AGENTMAIL_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("AGENTMAIL_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}

	if v := os.Getenv("AGENTMAIL_RESERVATION_DEFAULT_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.ReservationDefaultTTLSeconds = n
		}
	}
	if v := os.Getenv("AGENTMAIL_BUILD_SLOT_DEFAULT_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.BuildSlotDefaultTTLSeconds = n
		}
	}

	return nil
}

// splitAuthor parses "Name <email>" into its parts.
func splitAuthor(v string) (name, email string, ok bool) {
	open := strings.LastIndex(v, "<")
	close := strings.LastIndex(v, ">")
	if open < 0 || close < open {
		return "", "", false
	}
	return strings.TrimSpace(v[:open]), strings.TrimSpace(v[open+1 : close]), true
}

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
	"os"
	"path/filepath"
	"time"
)

// defaultDataDir picks the per-install standard path spec.md §6 leaves
// implementation-defined: $XDG_DATA_HOME/agentmail, falling back to
// ~/.local/share/agentmail, falling back to a relative ./agentmail-data.
func defaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "agentmail")
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, ".local", "share", "agentmail")
	}
	return "agentmail-data"
}

// Config represents the complete configuration for the agentmail
// coordination daemon (spec.md §6 "Configuration").
type Config struct {
	Store     StoreConfig     `yaml:"store" json:"store"`
	Server    ServerConfig    `yaml:"server" json:"server"`
	RateLimit RateLimitConfig `yaml:"rate_limit" json:"rate_limit"`
	Auth      AuthConfig      `yaml:"auth" json:"auth"`
	Archive   ArchiveConfig   `yaml:"archive" json:"archive"`
	Logging   LoggingConfig   `yaml:"logging" json:"logging"`
	Metrics   MetricsConfig   `yaml:"metrics" json:"metrics"`

	// ReservationDefaultTTLSeconds is used when a reserve_file call omits
	// ttl; ReservationMaxTTLSeconds bounds any caller-supplied ttl
	// (spec.md §6: default 3600, maximum 86400).
	ReservationDefaultTTLSeconds int `yaml:"reservation_default_ttl_seconds" json:"reservation_default_ttl_seconds"`
	ReservationMaxTTLSeconds     int `yaml:"reservation_max_ttl_seconds" json:"reservation_max_ttl_seconds"`

	// BuildSlotDefaultTTLSeconds/BuildSlotMaxTTLSeconds mirror the above
	// for acquire_build_slot (spec.md §6: default 600, maximum 3600).
	BuildSlotDefaultTTLSeconds int `yaml:"build_slot_default_ttl_seconds" json:"build_slot_default_ttl_seconds"`
	BuildSlotMaxTTLSeconds     int `yaml:"build_slot_max_ttl_seconds" json:"build_slot_max_ttl_seconds"`
}

// StoreConfig controls the relational store and git archive location.
type StoreConfig struct {
	// DataDir is the base directory for the SQLite database and the
	// archive/ git repository beneath it (spec.md §6 "data_dir").
	DataDir string `yaml:"data_dir" json:"data_dir"`

	// Backend selects the relational store implementation: "sqlite"
	// (default, embedded) or "postgres" (external, opt-in).
	Backend string `yaml:"backend" json:"backend"`

	// Postgres is only consulted when Backend == "postgres".
	Postgres PostgresConfig `yaml:"postgres" json:"postgres"`
}

// PostgresConfig contains PostgreSQL connection settings for installs
// that externalize the relational Store instead of using the embedded
// SQLite default.
type PostgresConfig struct {
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	User     string `yaml:"user" json:"user"`
	Password string `yaml:"password" json:"password"`
	Database string `yaml:"database" json:"database"`
	SSLMode  string `yaml:"ssl_mode" json:"ssl_mode"`
}

// ServerConfig contains HTTP/WS server settings for the Tool Frontier.
type ServerConfig struct {
	Host            string        `yaml:"host" json:"host"`
	Port            int           `yaml:"port" json:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout" json:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" json:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" json:"shutdown_timeout"`
}

// RateLimitConfig controls the Tool Frontier's per-token quota.
type RateLimitConfig struct {
	PerMinutePerToken int `yaml:"per_minute_per_token" json:"per_minute_per_token"`
	// Distributed, when true, backs the limiter with Redis so quota is
	// shared across multiple frontier processes instead of per-process.
	Distributed bool        `yaml:"distributed" json:"distributed"`
	Redis       RedisConfig `yaml:"redis" json:"redis"`
}

// RedisConfig contains Redis connection settings for the distributed
// rate-limit backend.
type RedisConfig struct {
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Password string `yaml:"password" json:"password"`
	DB       int    `yaml:"db" json:"db"`
}

// AuthConfig controls caller-binding authentication at the Tool Frontier.
type AuthConfig struct {
	// Mode is one of "none", "bearer", "jwt" (spec.md §6 "auth_mode").
	Mode string `yaml:"mode" json:"mode"`
	// BearerTokensFile, when Mode == "bearer", names a file with one
	// "<agent_id>:<bcrypt hash>" entry per line; a matching token
	// resolves to its bound agent-of-record id (frontier.Authenticator).
	BearerTokensFile string `yaml:"bearer_tokens_file" json:"bearer_tokens_file"`
}

// ArchiveConfig controls the git-backed audit archive.
type ArchiveConfig struct {
	CommitAuthorName  string `yaml:"commit_author_name" json:"commit_author_name"`
	CommitAuthorEmail string `yaml:"commit_author_email" json:"commit_author_email"`
	// BatchCommits is reserved for a future batching mode; unread by
	// this version (spec.md §9 open question on commit batching).
	BatchCommits bool `yaml:"batch_commits" json:"batch_commits"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`   // "debug", "info", "warn", "error"
	Format string `yaml:"format" json:"format"` // "json", "text"
}

// MetricsConfig contains metrics and monitoring configuration.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Port    int    `yaml:"port" json:"port"`
	Path    string `yaml:"path" json:"path"`
}

// DefaultConfig returns a configuration with the defaults spec.md §6
// names explicitly.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			DataDir: defaultDataDir(),
			Backend: "sqlite",
			Postgres: PostgresConfig{
				Host:    "localhost",
				Port:    5432,
				SSLMode: "disable",
			},
		},
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8765,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		RateLimit: RateLimitConfig{
			PerMinutePerToken: 100,
			Redis: RedisConfig{
				Host: "localhost",
				Port: 6379,
			},
		},
		Auth: AuthConfig{
			Mode: "none",
		},
		Archive: ArchiveConfig{
			CommitAuthorName:  "agent-mail",
			CommitAuthorEmail: "agent-mail@localhost",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Port:    9090,
			Path:    "/metrics",
		},
		ReservationDefaultTTLSeconds: 3600,
		ReservationMaxTTLSeconds:     86400,
		BuildSlotDefaultTTLSeconds:   600,
		BuildSlotMaxTTLSeconds:       3600,
	}
}

// NewConfig creates a new default configuration. Alias for DefaultConfig.
func NewConfig() *Config {
	return DefaultConfig()
}

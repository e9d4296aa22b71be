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

import "testing"

func TestValidateStore(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Store.DataDir = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for empty data_dir")
	}

	cfg = DefaultConfig()
	cfg.Store.Backend = "mongo"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown backend")
	}

	cfg = DefaultConfig()
	cfg.Store.Backend = "postgres"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for postgres backend without database name")
	}
}

func TestValidateServerPort(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.Port = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for invalid port")
	}

	cfg.Server.Port = 70000
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for out of range port")
	}
}

func TestValidateRateLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RateLimit.PerMinutePerToken = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for non-positive rate limit")
	}
}

func TestValidateAuth(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Auth.Mode = "oauth"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown auth mode")
	}

	cfg = DefaultConfig()
	cfg.Auth.Mode = "bearer"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for bearer mode without tokens file")
	}
}

func TestValidateTTLs(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ReservationDefaultTTLSeconds = 100000
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for default ttl exceeding max")
	}

	cfg = DefaultConfig()
	cfg.ReservationMaxTTLSeconds = 100000
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for reservation max ttl over 86400")
	}

	cfg = DefaultConfig()
	cfg.BuildSlotMaxTTLSeconds = 10000
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for build slot max ttl over 3600")
	}
}

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
	"fmt"
)

// Validate validates the entire configuration.
func (c *Config) Validate() error {
	if err := c.validateStore(); err != nil {
		return err
	}
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateRateLimit(); err != nil {
		return err
	}
	if err := c.validateAuth(); err != nil {
		return err
	}
	if err := c.validateTTLs(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateStore() error {
	if c.Store.DataDir == "" {
		return fmt.Errorf("store data_dir must not be empty")
	}

	validBackends := map[string]bool{"sqlite": true, "postgres": true}
	if !validBackends[c.Store.Backend] {
		return fmt.Errorf("store backend must be one of: sqlite, postgres")
	}

	if c.Store.Backend == "postgres" && c.Store.Postgres.Database == "" {
		return fmt.Errorf("store.postgres.database is required when backend is postgres")
	}

	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535")
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server write timeout must be positive")
	}
	return nil
}

func (c *Config) validateRateLimit() error {
	if c.RateLimit.PerMinutePerToken < 1 {
		return fmt.Errorf("rate_limit_per_minute_per_token must be positive")
	}
	return nil
}

func (c *Config) validateAuth() error {
	validModes := map[string]bool{"none": true, "bearer": true, "jwt": true}
	if !validModes[c.Auth.Mode] {
		return fmt.Errorf("auth_mode must be one of: none, bearer, jwt")
	}
	if c.Auth.Mode == "bearer" && c.Auth.BearerTokensFile == "" {
		return fmt.Errorf("auth.bearer_tokens_file is required when auth_mode is bearer")
	}
	return nil
}

func (c *Config) validateTTLs() error {
	if c.ReservationDefaultTTLSeconds < 1 || c.ReservationDefaultTTLSeconds > c.ReservationMaxTTLSeconds {
		return fmt.Errorf("reservation_default_ttl_seconds must be between 1 and reservation_max_ttl_seconds")
	}
	if c.ReservationMaxTTLSeconds > 86400 {
		return fmt.Errorf("reservation ttl may not exceed 86400 seconds")
	}
	if c.BuildSlotDefaultTTLSeconds < 1 || c.BuildSlotDefaultTTLSeconds > c.BuildSlotMaxTTLSeconds {
		return fmt.Errorf("build_slot_default_ttl_seconds must be between 1 and build_slot_max_ttl_seconds")
	}
	if c.BuildSlotMaxTTLSeconds > 3600 {
		return fmt.Errorf("build slot ttl may not exceed 3600 seconds")
	}
	return nil
}

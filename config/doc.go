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

// Package config provides configuration management for the agentmail
// coordination daemon.
//
// Precedence, highest to lowest:
//  1. Environment variables (prefixed AGENTMAIL_)
//  2. Configuration file (YAML or JSON)
//  3. Default values
//
// # Usage
//
//	cfg, err := config.LoadFromFile("agentmail.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	export AGENTMAIL_SERVER_PORT=9090
//	export AGENTMAIL_STORE_DATA_DIR=/var/lib/agentmail
//
// All configuration is validated before use; see Config.Validate.
package config

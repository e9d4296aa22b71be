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

package logging

import (
	"context"
	"testing"
)

func TestNewZapLoggerJSON(t *testing.T) {
	logger, err := NewZapLogger(LevelInfo, "json")
	if err != nil {
		t.Fatalf("NewZapLogger() error = %v", err)
	}
	defer logger.Sync()

	logger.Info(context.Background(), "hello", String("project", "p1"))
}

func TestNewZapLoggerText(t *testing.T) {
	logger, err := NewZapLogger(LevelDebug, "text")
	if err != nil {
		t.Fatalf("NewZapLogger() error = %v", err)
	}
	defer logger.Sync()

	child := logger.With(String("component", "reservation"))
	child.Warn(context.Background(), "ttl about to expire")
}

func TestZapLoggerImplementsLogger(t *testing.T) {
	var _ Logger = (*ZapLogger)(nil)
}

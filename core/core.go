// Copyright (C) 2025 sage-x-project
// SPDX-License-Identifier: LGPL-3.0-or-later

package core

import (
	"time"

	"github.com/sage-x-project/agentmail/archive"
	"github.com/sage-x-project/agentmail/observability/logging"
	"github.com/sage-x-project/agentmail/observability/metrics"
	"github.com/sage-x-project/agentmail/store"
)

// Core wires the Store and Archive Writer behind every Entity
// Controller operation (design note §9: "the only process-wide state
// is the open Store handle and the archive writer lock; construct
// them at process start and tear them down on shutdown").
type Core struct {
	Store   *store.Store
	Archive *archive.Writer
	Logger  logging.Logger
	Metrics *metrics.ToolMetrics

	// Now is the clock source; overridden in tests for deterministic
	// TTL arithmetic (design note §9: "TTL semantics: derive active
	// from timestamps").
	Now func() time.Time

	ReservationDefaultTTL time.Duration
	ReservationMaxTTL     time.Duration
	BuildSlotDefaultTTL   time.Duration
	BuildSlotMaxTTL       time.Duration
}

// New builds a Core with real wall-clock time.
func New(s *store.Store, a *archive.Writer, logger logging.Logger, m *metrics.ToolMetrics) *Core {
	return &Core{
		Store:                 s,
		Archive:               a,
		Logger:                logger,
		Metrics:               m,
		Now:                   time.Now,
		ReservationDefaultTTL: time.Hour,
		ReservationMaxTTL:     24 * time.Hour,
		BuildSlotDefaultTTL:   10 * time.Minute,
		BuildSlotMaxTTL:       time.Hour,
	}
}

func (c *Core) now() int64 {
	return c.Now().Unix()
}

func unixTime(sec int64) time.Time {
	return time.Unix(sec, 0)
}

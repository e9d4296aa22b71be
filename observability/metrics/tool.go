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

package metrics

// Tool Frontier metric names (SPEC_FULL.md §3 "Metrics").
const (
	MetricToolCallsTotal           = "agentmail_tool_calls_total"
	MetricToolDuration             = "agentmail_tool_duration_seconds"
	MetricToolErrorsTotal          = "agentmail_tool_errors_total"
	MetricReservationConflicts     = "agentmail_reservation_conflicts_total"
	MetricActiveReservations       = "agentmail_active_reservations"
	MetricMessagesSentTotal        = "agentmail_messages_sent_total"
	MetricBuildSlotAcquireFailures = "agentmail_build_slot_held_total"
)

// ToolMetrics provides Tool-Frontier-specific metrics: one dispatch
// records a call count, a duration observation, and on failure an
// error count keyed by the stable error code.
type ToolMetrics struct {
	collector Collector
}

// NewToolMetrics creates a new Tool Frontier metrics recorder.
func NewToolMetrics(collector Collector) *ToolMetrics {
	return &ToolMetrics{collector: collector}
}

// RecordCall records a dispatched tool call and its wall-clock duration
// in seconds, whether it succeeded or failed.
func (m *ToolMetrics) RecordCall(tool string, success bool, durationSeconds float64) {
	labels := NewLabels("tool", tool, "success", boolLabel(success))
	m.collector.IncrementCounter(MetricToolCallsTotal, labels)
	m.collector.ObserveHistogram(MetricToolDuration, durationSeconds, labels)
}

// RecordError records a dispatch failure with its stable error code.
func (m *ToolMetrics) RecordError(tool, errorCode string) {
	m.collector.IncrementCounter(MetricToolErrorsTotal, NewLabels("tool", tool, "code", errorCode))
}

// RecordReservationConflict records a failed reserve_file call.
func (m *ToolMetrics) RecordReservationConflict(project string) {
	m.collector.IncrementCounter(MetricReservationConflicts, NewLabels("project", project))
}

// SetActiveReservations sets the current active-reservation gauge for a project.
func (m *ToolMetrics) SetActiveReservations(project string, count float64) {
	m.collector.SetGauge(MetricActiveReservations, count, NewLabels("project", project))
}

// RecordMessageSent records a successful send_message/reply_message call.
func (m *ToolMetrics) RecordMessageSent(project string) {
	m.collector.IncrementCounter(MetricMessagesSentTotal, NewLabels("project", project))
}

// RecordBuildSlotHeld records a failed acquire_build_slot call.
func (m *ToolMetrics) RecordBuildSlotHeld(project string) {
	m.collector.IncrementCounter(MetricBuildSlotAcquireFailures, NewLabels("project", project))
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

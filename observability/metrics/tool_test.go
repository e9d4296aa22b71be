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

import (
	"net/http"
	"testing"
)

type fakeCollector struct {
	counters   map[string]float64
	gauges     map[string]float64
	histograms map[string]float64
}

func newFakeCollector() *fakeCollector {
	return &fakeCollector{
		counters:   map[string]float64{},
		gauges:     map[string]float64{},
		histograms: map[string]float64{},
	}
}

func (f *fakeCollector) IncrementCounter(name string, labels map[string]string) {
	f.counters[name]++
}
func (f *fakeCollector) AddCounter(name string, value float64, labels map[string]string) {
	f.counters[name] += value
}
func (f *fakeCollector) SetGauge(name string, value float64, labels map[string]string) {
	f.gauges[name] = value
}
func (f *fakeCollector) ObserveHistogram(name string, value float64, labels map[string]string) {
	f.histograms[name] = value
}
func (f *fakeCollector) ObserveSummary(name string, value float64, labels map[string]string) {}
func (f *fakeCollector) Handler() http.Handler                                              { return nil }

func TestToolMetricsRecordCall(t *testing.T) {
	c := newFakeCollector()
	m := NewToolMetrics(c)
	m.RecordCall("send_message", true, 0.01)

	if c.counters[MetricToolCallsTotal] != 1 {
		t.Errorf("expected one call recorded, got %v", c.counters[MetricToolCallsTotal])
	}
	if c.histograms[MetricToolDuration] != 0.01 {
		t.Errorf("expected duration 0.01, got %v", c.histograms[MetricToolDuration])
	}
}

func TestToolMetricsRecordReservationConflict(t *testing.T) {
	c := newFakeCollector()
	m := NewToolMetrics(c)
	m.RecordReservationConflict("p1")

	if c.counters[MetricReservationConflicts] != 1 {
		t.Errorf("expected one conflict recorded, got %v", c.counters[MetricReservationConflicts])
	}
}

func TestToolMetricsRecordError(t *testing.T) {
	c := newFakeCollector()
	m := NewToolMetrics(c)
	m.RecordError("reserve_file", "RESERVATION_CONFLICT")

	if c.counters[MetricToolErrorsTotal] != 1 {
		t.Errorf("expected one error recorded, got %v", c.counters[MetricToolErrorsTotal])
	}
}

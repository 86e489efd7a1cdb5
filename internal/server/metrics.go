package server

import (
	"sync/atomic"
	"time"
)

// Metrics counts request outcomes since startup.
type Metrics struct {
	started  time.Time
	answers  atomic.Int64
	refusals atomic.Int64
	searches atomic.Int64
	errors   atomic.Int64
}

// NewMetrics returns a collector with the uptime clock started.
func NewMetrics() *Metrics {
	return &Metrics{started: time.Now()}
}

// RecordAnswer counts a served answer; refused answers are counted on
// both counters.
func (m *Metrics) RecordAnswer(refused bool) {
	m.answers.Add(1)
	if refused {
		m.refusals.Add(1)
	}
}

// RecordSearch counts a served search.
func (m *Metrics) RecordSearch() {
	m.searches.Add(1)
}

// RecordError counts a request that ended in an error response.
func (m *Metrics) RecordError() {
	m.errors.Add(1)
}

// MetricsSnapshot is the wire form of the counters.
type MetricsSnapshot struct {
	UptimeSeconds int64 `json:"uptime_seconds"`
	Answers       int64 `json:"answers"`
	Refusals      int64 `json:"refusals"`
	Searches      int64 `json:"searches"`
	Errors        int64 `json:"errors"`
}

// Snapshot returns point-in-time counter values.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		UptimeSeconds: int64(time.Since(m.started).Seconds()),
		Answers:       m.answers.Load(),
		Refusals:      m.refusals.Load(),
		Searches:      m.searches.Load(),
		Errors:        m.errors.Load(),
	}
}

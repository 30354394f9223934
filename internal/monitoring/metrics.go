// Package monitoring - metrics.go provides simple counters.
//
// DESIGN: Lightweight in-memory counters for operational metrics:
//   - calls/successes: Total and successful provider calls
//   - timeouts:        Calls abandoned at the deadline
//   - failures:        Provider errors (transport, empty response)
//   - fallbacks:       Process responses rebuilt from their parts
package monitoring

import (
	"sync/atomic"
	"time"
)

// MetricsCollector collects operational metrics.
type MetricsCollector struct {
	calls     atomic.Int64
	successes atomic.Int64
	timeouts  atomic.Int64
	failures  atomic.Int64
	fallbacks atomic.Int64
	latencyMs atomic.Int64
}

// NewMetricsCollector creates a new metrics collector.
func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{}
}

// RecordCall records a dispatched call and its outcome status.
func (mc *MetricsCollector) RecordCall(status string, latency time.Duration) {
	mc.calls.Add(1)
	mc.latencyMs.Add(latency.Milliseconds())
	switch status {
	case StatusSuccess:
		mc.successes.Add(1)
	case StatusTimeout:
		mc.timeouts.Add(1)
	default:
		mc.failures.Add(1)
	}
}

// RecordFallback records a process response rebuilt from its parts.
func (mc *MetricsCollector) RecordFallback() { mc.fallbacks.Add(1) }

// Stats returns current metrics.
func (mc *MetricsCollector) Stats() map[string]int64 {
	return map[string]int64{
		"calls":      mc.calls.Load(),
		"successes":  mc.successes.Load(),
		"timeouts":   mc.timeouts.Load(),
		"failures":   mc.failures.Load(),
		"fallbacks":  mc.fallbacks.Load(),
		"latency_ms": mc.latencyMs.Load(),
	}
}

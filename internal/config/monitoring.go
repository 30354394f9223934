// Monitoring configuration - telemetry and logging settings.
//
// DESIGN: Separates logging (zerolog) from telemetry (one event per provider
// call). Logging is for operators, telemetry is for analytics/debugging.
package config

import (
	"fmt"
	"time"
)

// Telemetry sinks.
const (
	SinkJSONL  = "jsonl"
	SinkSQLite = "sqlite"
)

// MonitoringConfig contains all monitoring settings.
type MonitoringConfig struct {
	// Logging settings
	LogLevel  string `yaml:"log_level"`  // debug, info, warn, error
	LogFormat string `yaml:"log_format"` // json, console
	LogOutput string `yaml:"log_output"` // stdout, stderr, or file path

	// Telemetry settings
	TelemetryEnabled bool   `yaml:"telemetry_enabled"` // Enable call telemetry
	TelemetryPath    string `yaml:"telemetry_path"`    // JSONL file or SQLite database path
	TelemetrySink    string `yaml:"telemetry_sink"`    // jsonl, sqlite
	LogToStdout      bool   `yaml:"log_to_stdout"`     // Also log a telemetry summary line

	// Alerting
	HighLatencyThreshold time.Duration `yaml:"high_latency_threshold"` // Warn on slower successful calls
}

// Validate checks the monitoring settings.
func (m MonitoringConfig) Validate() error {
	switch m.TelemetrySink {
	case "", SinkJSONL, SinkSQLite:
	default:
		return fmt.Errorf("invalid monitoring.telemetry_sink: %q (must be jsonl or sqlite)", m.TelemetrySink)
	}
	if m.TelemetryEnabled && m.TelemetryPath == "" {
		return fmt.Errorf("monitoring.telemetry_path is required when telemetry is enabled")
	}
	return nil
}

// merge copies the non-zero fields of other onto m.
func (m *MonitoringConfig) merge(other MonitoringConfig) {
	if other.LogLevel != "" {
		m.LogLevel = other.LogLevel
	}
	if other.LogFormat != "" {
		m.LogFormat = other.LogFormat
	}
	if other.LogOutput != "" {
		m.LogOutput = other.LogOutput
	}
	if other.TelemetryPath != "" {
		m.TelemetryPath = other.TelemetryPath
	}
	if other.TelemetrySink != "" {
		m.TelemetrySink = other.TelemetrySink
	}
	if other.TelemetryEnabled {
		m.TelemetryEnabled = true
	}
	if other.LogToStdout {
		m.LogToStdout = true
	}
	if other.HighLatencyThreshold > 0 {
		m.HighLatencyThreshold = other.HighLatencyThreshold
	}
}

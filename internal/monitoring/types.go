// Package monitoring - types.go defines shared types.
//
// DESIGN: These types are used by llm/, store/ and monitoring/ packages.
// Defined here ONCE to avoid duplication and circular imports.
//
// TYPES:
//   - Operation:     Identifies which client operation issued a call
//   - CallEvent:     Telemetry data for each provider call
//   - Config types:  TelemetryConfig, LoggerConfig
package monitoring

import "time"

// =============================================================================
// OPERATIONS
// =============================================================================

// Operation identifies the client operation that issued a provider call.
type Operation string

const (
	OpProcess  Operation = "process"
	OpAnalyze  Operation = "analyze"
	OpOptimize Operation = "optimize"
	OpFix      Operation = "fix"
)

// Call outcomes recorded on CallEvent.Status.
const (
	StatusSuccess    = "success"
	StatusTimeout    = "timeout"
	StatusFailed     = "failed"
	StatusMissingKey = "missing_key"
)

// =============================================================================
// EVENT TYPES
// =============================================================================

// CallEvent captures one dispatched provider call.
type CallEvent struct {
	CallID       string    `json:"call_id"`
	Timestamp    time.Time `json:"timestamp"`
	Operation    Operation `json:"operation"`
	Provider     string    `json:"provider"`
	Model        string    `json:"model"`
	MaxTokens    int       `json:"max_tokens"`
	JSONMode     bool      `json:"json_mode"`
	Status       string    `json:"status"`
	Error        string    `json:"error,omitempty"`
	LatencyMs    int64     `json:"latency_ms"`
	InputTokens  int       `json:"input_tokens,omitempty"`
	OutputTokens int       `json:"output_tokens,omitempty"`
	ContentBytes int       `json:"content_bytes"`
}

// =============================================================================
// CONFIG TYPES
// =============================================================================

// TelemetryConfig contains telemetry configuration.
type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	LogPath     string `yaml:"log_path"`
	LogToStdout bool   `yaml:"log_to_stdout"`
}

// LoggerConfig contains logging configuration.
type LoggerConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
	Output string `yaml:"output"` // stdout, stderr, or file path
}

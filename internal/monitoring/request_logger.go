// Package monitoring - request_logger.go logs the provider call lifecycle.
//
// DESIGN: Structured logging for call tracing:
//   - LogDispatch: provider/model selected for an operation (INFO)
//   - LogResult:   call returned, with latency and token usage (DEBUG)
//   - LogFailure:  call failed or timed out (WARN)
package monitoring

import "time"

// RequestLogger logs provider call lifecycle events.
type RequestLogger struct {
	logger *Logger
}

// NewRequestLogger creates a new request logger.
func NewRequestLogger(logger *Logger) *RequestLogger {
	return &RequestLogger{logger: logger}
}

// DispatchInfo describes a call about to be issued.
type DispatchInfo struct {
	CallID    string
	Operation Operation
	Provider  string
	Model     string
	MaxTokens int
	JSONMode  bool
	Timeout   time.Duration
}

// LogDispatch logs the provider and model selected for a call.
func (rl *RequestLogger) LogDispatch(info *DispatchInfo) {
	rl.logger.Info().
		Str("call_id", info.CallID).
		Str("op", string(info.Operation)).
		Str("provider", info.Provider).
		Str("model", info.Model).
		Int("max_tokens", info.MaxTokens).
		Bool("json_mode", info.JSONMode).
		Dur("timeout", info.Timeout).
		Msg("llm call")
}

// ResultInfo describes a successful call.
type ResultInfo struct {
	CallID       string
	Latency      time.Duration
	InputTokens  int
	OutputTokens int
	ContentBytes int
}

// LogResult logs a successful call.
func (rl *RequestLogger) LogResult(info *ResultInfo) {
	rl.logger.Debug().
		Str("call_id", info.CallID).
		Dur("latency", info.Latency).
		Int("input_tokens", info.InputTokens).
		Int("output_tokens", info.OutputTokens).
		Int("content_bytes", info.ContentBytes).
		Msg("llm response")
}

// FailureInfo describes a failed call.
type FailureInfo struct {
	CallID    string
	Operation Operation
	Provider  string
	Status    string
	Latency   time.Duration
	Err       error
}

// LogFailure logs a failed or timed-out call.
func (rl *RequestLogger) LogFailure(info *FailureInfo) {
	rl.logger.Warn().
		Err(info.Err).
		Str("call_id", info.CallID).
		Str("op", string(info.Operation)).
		Str("provider", info.Provider).
		Str("status", info.Status).
		Dur("latency", info.Latency).
		Msg("llm call failed")
}

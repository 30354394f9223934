// Package monitoring - alerts.go flags anomalies and errors.
//
// DESIGN: AlertManager logs notable call outcomes at appropriate levels:
//   - FlagHighLatency:     Warn when a call succeeds but exceeds the threshold
//   - FlagProviderError:   Warn on provider 4xx/5xx responses
//   - FlagUpstreamTimeout: Error when the operation deadline elapses
//   - FlagPanic:           Error on a recovered adapter panic
package monitoring

import "time"

// DefaultHighLatencyThreshold applies when AlertConfig leaves it zero.
const DefaultHighLatencyThreshold = 20 * time.Second

// AlertConfig contains alert thresholds.
type AlertConfig struct {
	HighLatencyThreshold time.Duration `yaml:"high_latency_threshold"`
}

// AlertManager flags anomalies and errors.
type AlertManager struct {
	logger               *Logger
	highLatencyThreshold time.Duration
}

// NewAlertManager creates a new alert manager.
func NewAlertManager(logger *Logger, cfg AlertConfig) *AlertManager {
	threshold := cfg.HighLatencyThreshold
	if threshold <= 0 {
		threshold = DefaultHighLatencyThreshold
	}
	return &AlertManager{logger: logger, highLatencyThreshold: threshold}
}

// FlagHighLatency logs when call latency reaches the threshold. It reports
// whether an alert was logged.
func (am *AlertManager) FlagHighLatency(callID string, op Operation, provider string, latency time.Duration) bool {
	if latency < am.highLatencyThreshold {
		return false
	}
	am.logger.Warn().
		Str("call_id", callID).
		Str("op", string(op)).
		Str("provider", provider).
		Dur("latency", latency).
		Dur("threshold", am.highLatencyThreshold).
		Msg("high_latency")
	return true
}

// FlagProviderError logs a non-200 provider response.
func (am *AlertManager) FlagProviderError(callID string, op Operation, provider string, statusCode int) {
	am.logger.Warn().
		Str("call_id", callID).
		Str("op", string(op)).
		Str("provider", provider).
		Int("status", statusCode).
		Msg("provider_error")
}

// FlagUpstreamTimeout logs a call abandoned at its deadline.
func (am *AlertManager) FlagUpstreamTimeout(callID string, op Operation, provider string, timeout time.Duration) {
	am.logger.Error().
		Str("call_id", callID).
		Str("op", string(op)).
		Str("provider", provider).
		Dur("timeout", timeout).
		Msg("upstream_timeout")
}

// FlagPanic logs a recovered adapter panic.
func (am *AlertManager) FlagPanic(callID, provider string, panicValue any) {
	am.logger.Error().
		Str("call_id", callID).
		Str("provider", provider).
		Interface("panic", panicValue).
		Msg("panic_recovered")
}

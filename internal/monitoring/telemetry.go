// Package monitoring - telemetry.go records call events.
//
// DESIGN: Tracker hands each CallEvent to a Sink:
//   - JSONLSink: one JSON object per line, appended immediately
//   - store.CallLog: SQLite table (internal/store), queryable by the CLI
//
// A disabled Tracker drops events without touching any sink.
package monitoring

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
)

// Sink persists call events.
type Sink interface {
	Write(event *CallEvent) error
	Close() error
}

// Tracker handles telemetry event recording.
type Tracker struct {
	config TelemetryConfig
	sink   Sink
	count  int
	mu     sync.Mutex
}

// NewTracker creates a tracker writing JSONL to cfg.LogPath.
func NewTracker(cfg TelemetryConfig) (*Tracker, error) {
	if !cfg.Enabled || cfg.LogPath == "" {
		return &Tracker{config: cfg}, nil
	}

	sink, err := NewJSONLSink(cfg.LogPath)
	if err != nil {
		return nil, err
	}
	return &Tracker{config: cfg, sink: sink}, nil
}

// NewTrackerWithSink creates an enabled tracker writing to sink.
func NewTrackerWithSink(cfg TelemetryConfig, sink Sink) *Tracker {
	cfg.Enabled = sink != nil
	return &Tracker{config: cfg, sink: sink}
}

// NewNoopTracker returns a disabled tracker.
func NewNoopTracker() *Tracker {
	return &Tracker{}
}

// Enabled reports whether events are persisted.
func (t *Tracker) Enabled() bool {
	return t.config.Enabled && t.sink != nil
}

// RecordCall records a call event.
func (t *Tracker) RecordCall(event *CallEvent) {
	if !t.Enabled() {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.config.LogToStdout {
		callID := event.CallID
		if len(callID) > 8 {
			callID = callID[:8]
		}
		log.Info().
			Str("call_id", callID).
			Str("op", string(event.Operation)).
			Str("status", event.Status).
			Int64("latency_ms", event.LatencyMs).
			Msg("telemetry")
	}

	if err := t.sink.Write(event); err != nil {
		log.Error().Err(err).Msg("telemetry: failed to write call event")
		return
	}
	t.count++
}

// Close flushes and closes the sink.
func (t *Tracker) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.sink == nil {
		return nil
	}
	if t.count > 0 {
		log.Debug().Int("events", t.count).Msg("telemetry: session complete")
	}
	return t.sink.Close()
}

// JSONLSink appends events to a JSONL file.
type JSONLSink struct {
	path string
}

// NewJSONLSink ensures the parent directory and file exist.
func NewJSONLSink(path string) (*JSONLSink, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, err
	}
	f.Close()
	return &JSONLSink{path: path}, nil
}

// Write appends a single JSON object as a line to the file.
func (s *JSONLSink) Write(event *CallEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	data = append(data, '\n')

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(data)
	return err
}

// Close is a no-op; the file is opened per write.
func (s *JSONLSink) Close() error { return nil }

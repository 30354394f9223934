// Package store persists call telemetry in SQLite.
//
// DESIGN: CallLog is a monitoring.Sink backed by a single table. It lets the
// CLI answer "what did recent calls do" without parsing JSONL files.
// Uses modernc.org/sqlite (pure Go, no CGO).
//
// Use ":memory:" as path for in-memory databases in tests.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Register the modernc sqlite driver under the name "sqlite"
	_ "modernc.org/sqlite"

	"github.com/compresr/prompt-engine/internal/monitoring"
)

const schema = `
CREATE TABLE IF NOT EXISTS llm_calls (
	call_id       TEXT PRIMARY KEY,
	created_at    TEXT NOT NULL,
	operation     TEXT NOT NULL,
	provider      TEXT NOT NULL,
	model         TEXT NOT NULL,
	max_tokens    INTEGER NOT NULL,
	json_mode     INTEGER NOT NULL,
	status        TEXT NOT NULL,
	error         TEXT NOT NULL DEFAULT '',
	latency_ms    INTEGER NOT NULL,
	input_tokens  INTEGER NOT NULL DEFAULT 0,
	output_tokens INTEGER NOT NULL DEFAULT 0,
	content_bytes INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_llm_calls_created_at ON llm_calls(created_at);
`

// timeLayout is fixed-width so created_at sorts chronologically as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// CallLog stores call events in SQLite.
type CallLog struct {
	db *sql.DB
}

// Open opens (or creates) the call log at path and applies the schema.
func Open(path string) (*CallLog, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
			return nil, fmt.Errorf("store.Open: create directory for %q: %w", path, err)
		}
	}

	dsn := path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=busy_timeout(5000)" +
		"&_pragma=synchronous(NORMAL)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("store.Open: open %q: %w", path, err)
	}

	// WAL serializes writers; one connection also keeps ":memory:" databases
	// shared across calls.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store.Open: apply schema: %w", err)
	}

	return &CallLog{db: db}, nil
}

// Write inserts one call event.
func (c *CallLog) Write(event *monitoring.CallEvent) error {
	jsonMode := 0
	if event.JSONMode {
		jsonMode = 1
	}
	_, err := c.db.Exec(`INSERT INTO llm_calls
		(call_id, created_at, operation, provider, model, max_tokens, json_mode,
		 status, error, latency_ms, input_tokens, output_tokens, content_bytes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		event.CallID,
		event.Timestamp.UTC().Format(timeLayout),
		string(event.Operation),
		event.Provider,
		event.Model,
		event.MaxTokens,
		jsonMode,
		event.Status,
		event.Error,
		event.LatencyMs,
		event.InputTokens,
		event.OutputTokens,
		event.ContentBytes,
	)
	if err != nil {
		return fmt.Errorf("store: insert call %s: %w", event.CallID, err)
	}
	return nil
}

// Recent returns up to limit events, newest first.
func (c *CallLog) Recent(ctx context.Context, limit int) ([]monitoring.CallEvent, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := c.db.QueryContext(ctx, `SELECT
		call_id, created_at, operation, provider, model, max_tokens, json_mode,
		status, error, latency_ms, input_tokens, output_tokens, content_bytes
		FROM llm_calls ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("store: query recent calls: %w", err)
	}
	defer rows.Close()

	var events []monitoring.CallEvent
	for rows.Next() {
		var (
			ev        monitoring.CallEvent
			createdAt string
			operation string
			jsonMode  int
		)
		if err := rows.Scan(&ev.CallID, &createdAt, &operation, &ev.Provider, &ev.Model,
			&ev.MaxTokens, &jsonMode, &ev.Status, &ev.Error, &ev.LatencyMs,
			&ev.InputTokens, &ev.OutputTokens, &ev.ContentBytes); err != nil {
			return nil, fmt.Errorf("store: scan call: %w", err)
		}
		ev.Operation = monitoring.Operation(operation)
		ev.JSONMode = jsonMode == 1
		if ts, err := time.Parse(timeLayout, createdAt); err == nil {
			ev.Timestamp = ts
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// Close closes the database.
func (c *CallLog) Close() error {
	return c.db.Close()
}

var _ monitoring.Sink = (*CallLog)(nil)

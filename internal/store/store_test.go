package store_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compresr/prompt-engine/internal/monitoring"
	"github.com/compresr/prompt-engine/internal/store"
)

func openMemory(t *testing.T) *store.CallLog {
	t.Helper()
	callLog, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = callLog.Close() })
	return callLog
}

func TestCallLog_WriteAndRecent(t *testing.T) {
	callLog := openMemory(t)
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	require.NoError(t, callLog.Write(&monitoring.CallEvent{
		CallID:    "old",
		Timestamp: base,
		Operation: monitoring.OpAnalyze,
		Provider:  "anthropic",
		Model:     "claude",
		MaxTokens: 1024,
		JSONMode:  true,
		Status:    monitoring.StatusSuccess,
		LatencyMs: 800,
	}))
	require.NoError(t, callLog.Write(&monitoring.CallEvent{
		CallID:       "new",
		Timestamp:    base.Add(time.Minute),
		Operation:    monitoring.OpOptimize,
		Provider:     "openai",
		Model:        "gpt-4o-mini",
		MaxTokens:    2048,
		Status:       monitoring.StatusTimeout,
		Error:        "Optimization timed out after 30s",
		LatencyMs:    30000,
		InputTokens:  0,
		OutputTokens: 0,
	}))

	events, err := callLog.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, "new", events[0].CallID)
	assert.Equal(t, monitoring.OpOptimize, events[0].Operation)
	assert.False(t, events[0].JSONMode)
	assert.Equal(t, "Optimization timed out after 30s", events[0].Error)
	assert.True(t, events[0].Timestamp.Equal(base.Add(time.Minute)))

	assert.Equal(t, "old", events[1].CallID)
	assert.True(t, events[1].JSONMode)
	assert.Equal(t, 1024, events[1].MaxTokens)
}

func TestCallLog_RecentLimit(t *testing.T) {
	callLog := openMemory(t)
	base := time.Now().UTC()

	for i := 0; i < 5; i++ {
		require.NoError(t, callLog.Write(&monitoring.CallEvent{
			CallID:    string(rune('a' + i)),
			Timestamp: base.Add(time.Duration(i) * time.Second),
			Operation: monitoring.OpFix,
			Status:    monitoring.StatusSuccess,
		}))
	}

	events, err := callLog.Recent(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "e", events[0].CallID)
	assert.Equal(t, "d", events[1].CallID)
}

func TestCallLog_DuplicateID(t *testing.T) {
	callLog := openMemory(t)
	ev := &monitoring.CallEvent{CallID: "dup", Timestamp: time.Now(), Operation: monitoring.OpFix, Status: monitoring.StatusSuccess}

	require.NoError(t, callLog.Write(ev))
	assert.Error(t, callLog.Write(ev))
}

func TestCallLog_AsTrackerSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "calls.db")
	callLog, err := store.Open(path)
	require.NoError(t, err)

	tracker := monitoring.NewTrackerWithSink(monitoring.TelemetryConfig{}, callLog)
	tracker.RecordCall(&monitoring.CallEvent{CallID: "t1", Timestamp: time.Now(), Operation: monitoring.OpProcess, Status: monitoring.StatusSuccess})
	require.NoError(t, tracker.Close())

	reopened, err := store.Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	events, err := reopened.Recent(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "t1", events[0].CallID)
}

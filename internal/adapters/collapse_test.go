package adapters_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/compresr/prompt-engine/internal/adapters"
)

func TestCollapse(t *testing.T) {
	tests := []struct {
		name       string
		messages   []adapters.Message
		wantSystem string
		wantUser   string
	}{
		{
			name: "one of each",
			messages: []adapters.Message{
				{Role: "system", Content: "S"},
				{Role: "user", Content: "U"},
			},
			wantSystem: "S",
			wantUser:   "U",
		},
		{
			name: "multiple system joined in order",
			messages: []adapters.Message{
				{Role: "system", Content: "worker"},
				{Role: "system", Content: "Context:\nlang: go"},
				{Role: "user", Content: "hello"},
			},
			wantSystem: "worker\n\nContext:\nlang: go",
			wantUser:   "hello",
		},
		{
			name: "empty fragments skipped",
			messages: []adapters.Message{
				{Role: "system", Content: ""},
				{Role: "system", Content: "S"},
				{Role: "user", Content: "U"},
				{Role: "user", Content: ""},
			},
			wantSystem: "S",
			wantUser:   "U",
		},
		{
			name: "outer whitespace trimmed",
			messages: []adapters.Message{
				{Role: "system", Content: "  S  "},
				{Role: "user", Content: "\nU\n"},
			},
			wantSystem: "S",
			wantUser:   "U",
		},
		{
			name: "other roles ignored",
			messages: []adapters.Message{
				{Role: "assistant", Content: "A"},
				{Role: "user", Content: "U"},
			},
			wantSystem: "",
			wantUser:   "U",
		},
		{
			name:       "no messages",
			messages:   nil,
			wantSystem: "",
			wantUser:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			system, user := adapters.Collapse(tt.messages)
			assert.Equal(t, tt.wantSystem, system)
			assert.Equal(t, tt.wantUser, user)
		})
	}
}

func TestCollapse_NoStraySeparators(t *testing.T) {
	system, _ := adapters.Collapse([]adapters.Message{
		{Role: "system", Content: ""},
		{Role: "system", Content: ""},
	})
	assert.Empty(t, system)
	assert.NotContains(t, system, "\n\n")
}

package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/compresr/prompt-engine/internal/schemas"
)

func TestApplyFallback(t *testing.T) {
	long := strings.Repeat("x", MinOptimizedContentLen)

	tests := []struct {
		name     string
		resp     schemas.WorkerResponse
		want     string
		replaced bool
	}{
		{
			name:     "long content kept",
			resp:     schemas.WorkerResponse{OptimizedContent: long, SystemPrompt: "S"},
			want:     long,
			replaced: false,
		},
		{
			name:     "short content rebuilt",
			resp:     schemas.WorkerResponse{OptimizedContent: "x", SystemPrompt: "S", UserPrompt: "U", Plan: "P"},
			want:     "S\n\n---\n\nU\n\n---\n\nP",
			replaced: true,
		},
		{
			name:     "missing content rebuilt skipping empty parts",
			resp:     schemas.WorkerResponse{SystemPrompt: "S", Plan: "P"},
			want:     "S\n\n---\n\nP",
			replaced: true,
		},
		{
			name:     "nothing to rebuild from",
			resp:     schemas.WorkerResponse{OptimizedContent: "tiny"},
			want:     "",
			replaced: true,
		},
		{
			name:     "length counted in runes",
			resp:     schemas.WorkerResponse{OptimizedContent: strings.Repeat("é", 49), UserPrompt: "U"},
			want:     "U",
			replaced: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := tt.resp
			assert.Equal(t, tt.replaced, applyFallback(&resp))
			assert.Equal(t, tt.want, resp.OptimizedContent)
			assert.Equal(t, tt.resp.SystemPrompt, resp.SystemPrompt)
			assert.Equal(t, tt.resp.UserPrompt, resp.UserPrompt)
			assert.Equal(t, tt.resp.Plan, resp.Plan)
		})
	}
}

func TestFormatContext(t *testing.T) {
	got := formatContext(map[string]any{"tone": "formal", "audience": "devs", "limit": 3})
	assert.Equal(t, "Context:\naudience: devs\nlimit: 3\ntone: formal", got)
}

package llm

import (
	"strings"
	"unicode/utf8"

	"github.com/compresr/prompt-engine/internal/schemas"
)

const (
	// MinOptimizedContentLen is the shortest optimized_content (in runes)
	// accepted from the worker before it is rebuilt from its parts.
	MinOptimizedContentLen = 50

	fallbackSeparator = "\n\n---\n\n"
)

// applyFallback rebuilds resp.OptimizedContent from the system prompt, user
// prompt and plan when the model left it missing or too short. It reports
// whether the content was replaced.
func applyFallback(resp *schemas.WorkerResponse) bool {
	if utf8.RuneCountInString(resp.OptimizedContent) >= MinOptimizedContentLen {
		return false
	}

	parts := make([]string, 0, 3)
	for _, p := range []string{resp.SystemPrompt, resp.UserPrompt, resp.Plan} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	resp.OptimizedContent = strings.Join(parts, fallbackSeparator)
	return true
}

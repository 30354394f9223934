// Package schemas defines the structured responses returned by the model and
// validates them after decoding.
package schemas

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// WorkerResponse is the result of processing a prompt.
type WorkerResponse struct {
	OptimizedContent string `json:"optimized_content"`
	SystemPrompt     string `json:"system_prompt"`
	UserPrompt       string `json:"user_prompt"`
	Plan             string `json:"plan"`
	ExpandedPrompt   string `json:"expanded_prompt,omitempty"`
}

// QualityReport is the coach's critique of a prompt.
type QualityReport struct {
	Score       int      `json:"score" validate:"min=0,max=100"`
	Summary     string   `json:"summary"`
	Strengths   []string `json:"strengths"`
	Issues      []string `json:"issues"`
	Suggestions []string `json:"suggestions"`
}

// LLMFixResponse is the editor's rewrite of a prompt.
type LLMFixResponse struct {
	FixedText   string   `json:"fixed_text" validate:"required"`
	Explanation string   `json:"explanation"`
	Changes     []string `json:"changes"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Parse decodes JSON text into T and validates it. Text after the first
// value is an error.
func Parse[T any](text string) (*T, error) {
	var out T
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return nil, fmt.Errorf("decode %T: %w", out, err)
	}
	if err := validate.Struct(&out); err != nil {
		return nil, fmt.Errorf("validate %T: %w", out, err)
	}
	return &out, nil
}

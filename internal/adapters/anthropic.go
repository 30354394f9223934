package adapters

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/compresr/prompt-engine/external"
)

// anthropicJSONInstruction is appended to the system prompt in JSON mode;
// the Messages API has no structured-output flag.
const anthropicJSONInstruction = "\n\nReturn only valid JSON object. No markdown, no backticks, no extra text."

// AnthropicAdapter handles Anthropic Messages API requests.
// The Messages API takes one top-level system string, so the canonical
// messages are collapsed into a system+user pair first.
type AnthropicAdapter struct {
	BaseAdapter
}

// NewAnthropicAdapter creates a new Anthropic adapter.
func NewAnthropicAdapter(opts Options) *AnthropicAdapter {
	return &AnthropicAdapter{
		BaseAdapter: BaseAdapter{
			name:     "anthropic",
			provider: ProviderAnthropic,
			opts:     opts,
		},
	}
}

// Call posts to {base}/messages with x-api-key and anthropic-version headers
// and returns every text block of the response joined by newlines.
func (a *AnthropicAdapter) Call(ctx context.Context, messages []Message, maxTokens int, jsonMode bool) (*external.Result, error) {
	system, user := Collapse(messages)
	if jsonMode {
		system += anthropicJSONInstruction
	}

	body, err := json.Marshal(&external.AnthropicRequest{
		Model:       a.opts.Model,
		MaxTokens:   maxTokens,
		Temperature: Temperature,
		System:      system,
		Messages:    []external.AnthropicMessage{{Role: RoleUser, Content: user}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s request: %w", a.name, err)
	}

	respBody, err := external.PostJSON(ctx, external.PostParams{
		Provider: a.name,
		URL:      a.endpoint("/messages"),
		Headers: map[string]string{
			"x-api-key":         a.opts.APIKey,
			"anthropic-version": external.AnthropicVersion,
		},
		Body:       body,
		HTTPClient: a.opts.HTTPClient,
	})
	if err != nil {
		return nil, err
	}

	return external.ExtractAnthropicResponse(a.name, respBody)
}

// Ensure AnthropicAdapter implements Adapter
var _ Adapter = (*AnthropicAdapter)(nil)

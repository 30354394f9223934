package adapters

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tidwall/sjson"

	"github.com/compresr/prompt-engine/external"
)

// OpenAIAdapter handles Chat Completions requests.
// Serves both api.openai.com and OpenAI-compatible gateways (DeepSeek, Ollama,
// vLLM, ...); the two differ only in base URL, model and registered name.
// The canonical message array is sent as-is.
type OpenAIAdapter struct {
	BaseAdapter
}

// NewOpenAIAdapter creates a Chat Completions adapter registered under provider.
func NewOpenAIAdapter(provider Provider, opts Options) *OpenAIAdapter {
	return &OpenAIAdapter{
		BaseAdapter: BaseAdapter{
			name:     string(provider),
			provider: provider,
			opts:     opts,
		},
	}
}

// Call posts to {base}/chat/completions and returns choices[0].message.content.
// JSON mode sets response_format to {"type": "json_object"}.
func (a *OpenAIAdapter) Call(ctx context.Context, messages []Message, maxTokens int, jsonMode bool) (*external.Result, error) {
	body, err := a.buildRequestBody(messages, maxTokens, jsonMode)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s request: %w", a.name, err)
	}

	respBody, err := external.PostJSON(ctx, external.PostParams{
		Provider:   a.name,
		URL:        a.endpoint("/chat/completions"),
		Headers:    map[string]string{"Authorization": "Bearer " + a.opts.APIKey},
		Body:       body,
		HTTPClient: a.opts.HTTPClient,
	})
	if err != nil {
		return nil, err
	}

	return external.ExtractOpenAIResponse(a.name, respBody)
}

func (a *OpenAIAdapter) buildRequestBody(messages []Message, maxTokens int, jsonMode bool) ([]byte, error) {
	wire := make([]external.OpenAIMessage, 0, len(messages))
	for _, m := range messages {
		wire = append(wire, external.OpenAIMessage{Role: m.Role, Content: m.Content})
	}

	body, err := json.Marshal(&external.OpenAIChatRequest{
		Model:       a.opts.Model,
		Messages:    wire,
		Temperature: Temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return nil, err
	}

	if jsonMode {
		return sjson.SetBytes(body, "response_format.type", "json_object")
	}
	return body, nil
}

var _ Adapter = (*OpenAIAdapter)(nil)

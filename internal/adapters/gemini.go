package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/compresr/prompt-engine/external"
)

const geminiJSONInstruction = "\n\nReturn only valid JSON object. No markdown fences. No explanations."

// GeminiAdapter handles Google Gemini generateContent requests.
//
// Key format differences:
//   - Auth: API key as the ?key= query parameter, not a header
//   - Model: in URL path (/v1beta/models/{model}:generateContent), not request body
//   - System prompt: systemInstruction.parts[], user turn in contents[].parts[]
//   - Response: candidates[0].content.parts[].text
type GeminiAdapter struct {
	BaseAdapter
}

// NewGeminiAdapter creates a new Gemini adapter.
func NewGeminiAdapter(opts Options) *GeminiAdapter {
	return &GeminiAdapter{
		BaseAdapter: BaseAdapter{
			name:     "gemini",
			provider: ProviderGemini,
			opts:     opts,
		},
	}
}

// Call posts to generateContent and returns the first candidate's text parts.
func (a *GeminiAdapter) Call(ctx context.Context, messages []Message, maxTokens int, jsonMode bool) (*external.Result, error) {
	system, user := Collapse(messages)
	if jsonMode {
		system += geminiJSONInstruction
	}

	body, err := json.Marshal(&external.GeminiRequest{
		GenerationConfig: external.GeminiGenerationConfig{
			Temperature:     Temperature,
			MaxOutputTokens: maxTokens,
		},
		SystemInstruction: external.GeminiContent{
			Role:  RoleSystem,
			Parts: []external.GeminiPart{{Text: system}},
		},
		Contents: []external.GeminiContent{
			{Role: RoleUser, Parts: []external.GeminiPart{{Text: user}}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s request: %w", a.name, err)
	}

	respBody, err := external.PostJSON(ctx, external.PostParams{
		Provider:   a.name,
		URL:        a.generateContentURL(),
		Body:       body,
		HTTPClient: a.opts.HTTPClient,
	})
	if err != nil {
		return nil, err
	}

	return external.ExtractGeminiResponse(a.name, respBody)
}

func (a *GeminiAdapter) generateContentURL() string {
	return a.endpoint("/v1beta/models/"+a.opts.Model+":generateContent") + "?key=" + url.QueryEscape(a.opts.APIKey)
}

// Ensure GeminiAdapter implements Adapter
var _ Adapter = (*GeminiAdapter)(nil)

package external

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// ExtractOpenAIResponse reads choices[0].message.content and usage.
func ExtractOpenAIResponse(provider string, body []byte) (*Result, error) {
	if !gjson.ValidBytes(body) {
		return nil, &TransportError{Provider: provider, Err: fmt.Errorf("invalid JSON response")}
	}
	parsed := gjson.ParseBytes(body)

	content := parsed.Get("choices.0.message.content").String()
	if content == "" {
		return nil, fmt.Errorf("%s: %w", provider, ErrEmptyResponse)
	}

	return &Result{
		Content:      content,
		InputTokens:  int(parsed.Get("usage.prompt_tokens").Int()),
		OutputTokens: int(parsed.Get("usage.completion_tokens").Int()),
		Provider:     provider,
	}, nil
}

// ExtractAnthropicResponse joins every text-typed content block with newlines.
// Anthropic format: {"content": [{"type": "text", "text": "..."}], "usage": {...}}
func ExtractAnthropicResponse(provider string, body []byte) (*Result, error) {
	if !gjson.ValidBytes(body) {
		return nil, &TransportError{Provider: provider, Err: fmt.Errorf("invalid JSON response")}
	}
	parsed := gjson.ParseBytes(body)

	var texts []string
	parsed.Get("content").ForEach(func(_, block gjson.Result) bool {
		if block.Get("type").String() == "text" {
			texts = append(texts, block.Get("text").String())
		}
		return true
	})

	content := strings.TrimSpace(strings.Join(texts, "\n"))
	if content == "" {
		return nil, fmt.Errorf("%s: %w", provider, ErrEmptyResponse)
	}

	return &Result{
		Content:      content,
		InputTokens:  int(parsed.Get("usage.input_tokens").Int()),
		OutputTokens: int(parsed.Get("usage.output_tokens").Int()),
		Provider:     provider,
	}, nil
}

// ExtractGeminiResponse joins the non-empty text parts of the first candidate.
// Gemini format: {"candidates": [{"content": {"parts": [{"text": "..."}]}}], "usageMetadata": {...}}
func ExtractGeminiResponse(provider string, body []byte) (*Result, error) {
	if !gjson.ValidBytes(body) {
		return nil, &TransportError{Provider: provider, Err: fmt.Errorf("invalid JSON response")}
	}
	parsed := gjson.ParseBytes(body)

	var texts []string
	parsed.Get("candidates.0.content.parts").ForEach(func(_, part gjson.Result) bool {
		if text := part.Get("text").String(); text != "" {
			texts = append(texts, text)
		}
		return true
	})

	content := strings.TrimSpace(strings.Join(texts, "\n"))
	if content == "" {
		return nil, fmt.Errorf("%s: %w", provider, ErrEmptyResponse)
	}

	return &Result{
		Content:      content,
		InputTokens:  int(parsed.Get("usageMetadata.promptTokenCount").Int()),
		OutputTokens: int(parsed.Get("usageMetadata.candidatesTokenCount").Int()),
		Provider:     provider,
	}, nil
}

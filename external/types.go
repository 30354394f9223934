// Wire types for the LLM providers the client talks to.
//
// DESIGN: One request/response pair per provider, shaped exactly like the
// provider's HTTP API. Adapters in internal/adapters translate the canonical
// message list into these structs; response envelopes are read with gjson in
// extract.go so only the request side needs full structs.
package external

// =============================================================================
// OpenAI Types (Chat Completions, also used by OpenAI-compatible gateways)
// =============================================================================

// OpenAIMessage represents a message in OpenAI chat format.
type OpenAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// OpenAIChatRequest is the request body for OpenAI chat completions.
// response_format is patched in with sjson when JSON mode is requested.
type OpenAIChatRequest struct {
	Model       string          `json:"model"`
	Messages    []OpenAIMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
	MaxTokens   int             `json:"max_tokens"`
}

// =============================================================================
// Anthropic Types
// =============================================================================

// AnthropicMessage represents a message in Anthropic format.
type AnthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// AnthropicRequest is the request body for the Anthropic messages API.
type AnthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float64            `json:"temperature"`
	System      string             `json:"system"`
	Messages    []AnthropicMessage `json:"messages"`
}

// =============================================================================
// Gemini Types
// =============================================================================

// GeminiPart represents a content part in Gemini format.
type GeminiPart struct {
	Text string `json:"text"`
}

// GeminiContent represents a content block in Gemini format.
type GeminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []GeminiPart `json:"parts"`
}

// GeminiGenerationConfig contains generation parameters.
type GeminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

// GeminiRequest is the request body for the Gemini generateContent API.
type GeminiRequest struct {
	GenerationConfig  GeminiGenerationConfig `json:"generationConfig"`
	SystemInstruction GeminiContent          `json:"systemInstruction"`
	Contents          []GeminiContent        `json:"contents"`
}

// =============================================================================
// Result
// =============================================================================

// Result is the normalized outcome of one provider call.
type Result struct {
	Content      string
	InputTokens  int
	OutputTokens int
	Provider     string
}

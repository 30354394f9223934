// Package adapters provides provider-specific request handling.
//
// DESIGN: The client supports several LLM providers (OpenAI, OpenAI-compatible,
// Anthropic, Gemini). Each has a different request envelope, auth mechanism and
// response envelope, so each gets its own adapter behind one interface:
//
//	Call(ctx, messages, maxTokens, jsonMode) -> text
//
// FLOW:
//  1. Caller resolves the provider string with Resolve()
//  2. Registry returns the adapter for that Provider
//  3. Adapter translates the canonical []Message into the wire body
//     (collapsing to a system+user pair where the provider needs it)
//  4. Adapter posts via external.PostJSON and extracts the text content
//
// To add a new provider: implement Adapter and register it in NewRegistry.
package adapters

import (
	"context"
	"net/http"
	"strings"

	"github.com/compresr/prompt-engine/external"
)

// Temperature is sent on every request.
const Temperature = 0.2

// Message is one role-tagged fragment of the canonical request.
type Message struct {
	Role    string `json:"role"` // "system" or "user"
	Content string `json:"content"`
}

// Roles used in canonical messages.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Adapter defines the unified interface for provider-specific calls.
// Adapters are stateless after construction and safe for concurrent use.
type Adapter interface {
	// Name returns the adapter identifier (e.g., "openai", "anthropic")
	Name() string

	// Provider returns the provider type for this adapter
	Provider() Provider

	// Call sends messages to the provider and returns the extracted text.
	// Fails with *external.TransportError on HTTP/network failure and with
	// external.ErrEmptyResponse when the envelope carries no text.
	Call(ctx context.Context, messages []Message, maxTokens int, jsonMode bool) (*external.Result, error)
}

// Options holds what an adapter needs to reach its endpoint.
type Options struct {
	APIKey     string
	BaseURL    string
	Model      string
	HTTPClient *http.Client
}

// BaseAdapter provides common functionality for all adapters.
type BaseAdapter struct {
	name     string
	provider Provider
	opts     Options
}

// Name returns the adapter name.
func (a *BaseAdapter) Name() string {
	return a.name
}

// Provider returns the provider type.
func (a *BaseAdapter) Provider() Provider {
	return a.provider
}

// endpoint joins the base URL and path without doubling slashes.
func (a *BaseAdapter) endpoint(path string) string {
	return strings.TrimRight(a.opts.BaseURL, "/") + path
}

// Registry manages adapter registration and lookup.
//
// DESIGN: Thread-safe map of Provider → Adapter.
// Built-in adapters are registered at construction; tests may Register a
// replacement for any provider.
package adapters

import (
	"net/http"
	"sync"
)

// Keys holds the per-provider credentials. OpenAI and OpenAI-compatible share
// one key.
type Keys struct {
	OpenAI    string
	Anthropic string
	Gemini    string
}

// For returns the credential used by provider p.
func (k Keys) For(p Provider) string {
	switch p {
	case ProviderAnthropic:
		return k.Anthropic
	case ProviderGemini:
		return k.Gemini
	default:
		return k.OpenAI
	}
}

// Registry manages adapter registration.
type Registry struct {
	adapters map[Provider]Adapter
	mu       sync.RWMutex
}

// NewRegistry creates a registry with all built-in adapters, each bound to its
// own key and the shared base URL and model.
func NewRegistry(keys Keys, baseURL, model string, httpClient *http.Client) *Registry {
	r := &Registry{
		adapters: make(map[Provider]Adapter),
	}

	opts := func(p Provider) Options {
		return Options{APIKey: keys.For(p), BaseURL: baseURL, Model: model, HTTPClient: httpClient}
	}

	for _, p := range AllProviders() {
		switch {
		case p.IsOpenAILike():
			r.Register(NewOpenAIAdapter(p, opts(p)))
		case p == ProviderAnthropic:
			r.Register(NewAnthropicAdapter(opts(p)))
		case p == ProviderGemini:
			r.Register(NewGeminiAdapter(opts(p)))
		}
	}

	return r
}

// Register adds an adapter to the registry, replacing any adapter for the
// same provider.
func (r *Registry) Register(adapter Adapter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.adapters[adapter.Provider()] = adapter
}

// Get returns the adapter for p, or nil.
func (r *Registry) Get(p Provider) Adapter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.adapters[p]
}

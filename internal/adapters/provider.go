package adapters

import "strings"

// Provider identifies one supported LLM backend.
type Provider string

const (
	ProviderOpenAI           Provider = "openai"
	ProviderOpenAICompatible Provider = "openai_compatible"
	ProviderAnthropic        Provider = "anthropic"
	ProviderGemini           Provider = "gemini"
)

// DefaultProvider is used for empty or unrecognized provider strings.
const DefaultProvider = ProviderOpenAICompatible

// providerAliases maps accepted spellings to canonical providers.
var providerAliases = map[string]Provider{
	"openai-compatible": ProviderOpenAICompatible,
	"openai_compat":     ProviderOpenAICompatible,
	"compat":            ProviderOpenAICompatible,
	"openai_compatible": ProviderOpenAICompatible,
	"openai":            ProviderOpenAI,
	"anthropic":         ProviderAnthropic,
	"claude":            ProviderAnthropic,
	"gemini":            ProviderGemini,
	"google":            ProviderGemini,
}

// Resolve normalizes a free-text provider identifier. It never fails:
// anything it does not recognize resolves to DefaultProvider, so a typo in
// LLM_PROVIDER silently selects the OpenAI-compatible backend.
func Resolve(s string) Provider {
	if p, ok := providerAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return p
	}
	return DefaultProvider
}

// AllProviders lists every canonical provider.
func AllProviders() []Provider {
	return []Provider{ProviderOpenAICompatible, ProviderOpenAI, ProviderAnthropic, ProviderGemini}
}

// IsOpenAILike reports whether the provider speaks the Chat Completions API.
func (p Provider) IsOpenAILike() bool {
	return p == ProviderOpenAI || p == ProviderOpenAICompatible
}

func (p Provider) String() string { return string(p) }

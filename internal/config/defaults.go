package config

import (
	"os"
	"time"

	"github.com/compresr/prompt-engine/internal/adapters"
)

// Environment variable names.
const (
	EnvProvider       = "LLM_PROVIDER"
	EnvOpenAIKey      = "OPENAI_API_KEY"
	EnvAnthropicKey   = "ANTHROPIC_API_KEY"
	EnvGeminiKey      = "GEMINI_API_KEY"
	EnvOpenAIBaseURL  = "OPENAI_BASE_URL"
	EnvAnthropicURL   = "ANTHROPIC_BASE_URL"
	EnvGeminiURL      = "GEMINI_BASE_URL"
	EnvHardTimeout    = "LLM_HARD_TIMEOUT_SECONDS"
	EnvCoachTimeout   = "LLM_COACH_TIMEOUT_SECONDS"
	EnvPromptsDir     = "LLM_PROMPTS_DIR"
	EnvWorkerPoolSize = "LLM_WORKER_POOL_SIZE"
	EnvLogLevel       = "LLM_LOG_LEVEL"
	EnvTelemetryPath  = "LLM_TELEMETRY_PATH"
)

// Defaults.
const (
	DefaultHardTimeout    = 45 * time.Second
	DefaultCoachTimeout   = 30 * time.Second
	DefaultWorkerPoolSize = 3
	DefaultPromptsDir     = "prompts"
)

// Per-provider model env names and fallbacks.
var defaultModels = map[adapters.Provider]struct{ env, fallback string }{
	adapters.ProviderOpenAICompatible: {"LLM_MODEL_OPENAI_COMPAT", "deepseek-chat"},
	adapters.ProviderOpenAI:           {"LLM_MODEL_OPENAI", "gpt-4o-mini"},
	adapters.ProviderAnthropic:        {"LLM_MODEL_ANTHROPIC", "claude-3-5-sonnet-20241022"},
	adapters.ProviderGemini:           {"LLM_MODEL_GEMINI", "gemini-1.5-flash"},
}

// Per-provider base URL env names and fallbacks. OPENAI_BASE_URL serves both
// OpenAI-like providers.
var defaultBaseURLs = map[adapters.Provider]struct{ env, fallback string }{
	adapters.ProviderOpenAICompatible: {EnvOpenAIBaseURL, "https://api.deepseek.com/v1"},
	adapters.ProviderOpenAI:           {EnvOpenAIBaseURL, "https://api.openai.com/v1"},
	adapters.ProviderAnthropic:        {EnvAnthropicURL, "https://api.anthropic.com/v1"},
	adapters.ProviderGemini:           {EnvGeminiURL, "https://generativelanguage.googleapis.com"},
}

// DefaultModel returns the model for p from the environment or the built-in default.
func DefaultModel(p adapters.Provider) string {
	d := defaultModels[p]
	return firstNonEmpty(os.Getenv(d.env), d.fallback)
}

// DefaultBaseURL returns the base URL for p from the environment or the built-in default.
func DefaultBaseURL(p adapters.Provider) string {
	d := defaultBaseURLs[p]
	return firstNonEmpty(os.Getenv(d.env), d.fallback)
}

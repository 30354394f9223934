package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compresr/prompt-engine/internal/adapters"
	"github.com/compresr/prompt-engine/internal/config"
)

// clearEnv blanks every variable the config reads so host settings never leak
// into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		config.EnvProvider, config.EnvOpenAIKey, config.EnvAnthropicKey, config.EnvGeminiKey,
		config.EnvOpenAIBaseURL, config.EnvAnthropicURL, config.EnvGeminiURL,
		config.EnvHardTimeout, config.EnvCoachTimeout, config.EnvPromptsDir,
		config.EnvWorkerPoolSize, config.EnvLogLevel, config.EnvTelemetryPath,
		"LLM_MODEL_OPENAI_COMPAT", "LLM_MODEL_OPENAI", "LLM_MODEL_ANTHROPIC", "LLM_MODEL_GEMINI",
	} {
		t.Setenv(name, "")
	}
}

// =============================================================================
// DEFAULTS
// =============================================================================

func TestNew_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.New(config.Overrides{})
	require.NoError(t, err)

	assert.Equal(t, adapters.ProviderOpenAICompatible, cfg.Provider)
	assert.Equal(t, "deepseek-chat", cfg.Model)
	assert.Equal(t, "https://api.deepseek.com/v1", cfg.BaseURL)
	assert.Equal(t, 45*time.Second, cfg.HardTimeout)
	assert.Equal(t, 30*time.Second, cfg.CoachTimeout)
	assert.Equal(t, 3, cfg.WorkerPoolSize)
	assert.Equal(t, config.DefaultPromptsDir, cfg.PromptsDir)
	assert.False(t, cfg.Monitoring.TelemetryEnabled)
}

func TestNew_MissingKeysUseSentinel(t *testing.T) {
	clearEnv(t)

	cfg, err := config.New(config.Overrides{})
	require.NoError(t, err)

	assert.Equal(t, config.MissingKey, cfg.Keys.OpenAI)
	assert.Equal(t, config.MissingKey, cfg.Keys.Anthropic)
	assert.Equal(t, config.MissingKey, cfg.Keys.Gemini)
	assert.False(t, cfg.HasKey())
}

func TestNew_PerProviderDefaults(t *testing.T) {
	tests := []struct {
		provider string
		model    string
		baseURL  string
	}{
		{"openai", "gpt-4o-mini", "https://api.openai.com/v1"},
		{"compat", "deepseek-chat", "https://api.deepseek.com/v1"},
		{"claude", "claude-3-5-sonnet-20241022", "https://api.anthropic.com/v1"},
		{"google", "gemini-1.5-flash", "https://generativelanguage.googleapis.com"},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(config.EnvProvider, tt.provider)

			cfg, err := config.New(config.Overrides{})
			require.NoError(t, err)
			assert.Equal(t, tt.model, cfg.Model)
			assert.Equal(t, tt.baseURL, cfg.BaseURL)
		})
	}
}

// =============================================================================
// ENVIRONMENT AND OVERRIDES
// =============================================================================

func TestNew_EnvValues(t *testing.T) {
	clearEnv(t)
	t.Setenv(config.EnvProvider, "anthropic")
	t.Setenv(config.EnvAnthropicKey, "ant-key")
	t.Setenv(config.EnvAnthropicURL, "http://proxy.local/v1")
	t.Setenv("LLM_MODEL_ANTHROPIC", "claude-custom")
	t.Setenv(config.EnvHardTimeout, "60")
	t.Setenv(config.EnvCoachTimeout, "10")
	t.Setenv(config.EnvWorkerPoolSize, "8")

	cfg, err := config.New(config.Overrides{})
	require.NoError(t, err)

	assert.Equal(t, adapters.ProviderAnthropic, cfg.Provider)
	assert.Equal(t, "ant-key", cfg.Keys.Anthropic)
	assert.Equal(t, config.MissingKey, cfg.Keys.OpenAI)
	assert.True(t, cfg.HasKey())
	assert.Equal(t, "http://proxy.local/v1", cfg.BaseURL)
	assert.Equal(t, "claude-custom", cfg.Model)
	assert.Equal(t, 60*time.Second, cfg.HardTimeout)
	assert.Equal(t, 10*time.Second, cfg.CoachTimeout)
	assert.Equal(t, 8, cfg.WorkerPoolSize)
}

func TestNew_OverridesWin(t *testing.T) {
	clearEnv(t)
	t.Setenv(config.EnvProvider, "gemini")
	t.Setenv(config.EnvOpenAIKey, "env-key")

	cfg, err := config.New(config.Overrides{
		Provider: "openai",
		APIKey:   "explicit-key",
		BaseURL:  "http://localhost:9999/v1",
		Model:    "gpt-test",
	})
	require.NoError(t, err)

	assert.Equal(t, adapters.ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "explicit-key", cfg.Keys.OpenAI)
	assert.Equal(t, "http://localhost:9999/v1", cfg.BaseURL)
	assert.Equal(t, "gpt-test", cfg.Model)
}

func TestNew_APIKeyOverrideOnlyForOpenAILike(t *testing.T) {
	clearEnv(t)

	cfg, err := config.New(config.Overrides{Provider: "anthropic", APIKey: "sk-openai"})
	require.NoError(t, err)

	assert.Equal(t, "sk-openai", cfg.Keys.OpenAI)
	assert.Equal(t, config.MissingKey, cfg.Keys.Anthropic)
	assert.False(t, cfg.HasKey())
}

func TestNew_UnknownProviderDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv(config.EnvProvider, "bedrock")

	cfg, err := config.New(config.Overrides{})
	require.NoError(t, err)
	assert.Equal(t, adapters.ProviderOpenAICompatible, cfg.Provider)
}

func TestNew_InvalidTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv(config.EnvHardTimeout, "soon")

	_, err := config.New(config.Overrides{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.EnvHardTimeout)
}

func TestNew_NonPositiveTimeoutRejected(t *testing.T) {
	clearEnv(t)
	t.Setenv(config.EnvCoachTimeout, "0")

	_, err := config.New(config.Overrides{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "coach timeout")
}

func TestNew_TelemetryFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(config.EnvTelemetryPath, "/tmp/calls.jsonl")

	cfg, err := config.New(config.Overrides{})
	require.NoError(t, err)
	assert.True(t, cfg.Monitoring.TelemetryEnabled)
	assert.Equal(t, config.SinkJSONL, cfg.Monitoring.TelemetrySink)
}

// =============================================================================
// YAML FILE
// =============================================================================

func TestLoadFromBytes(t *testing.T) {
	clearEnv(t)
	t.Setenv("TEST_GEMINI_MODEL", "")

	yaml := []byte(`
provider: gemini
model: ${TEST_GEMINI_MODEL:-gemini-2.0-flash}
hard_timeout: 90s
coach_timeout: 15s
worker_pool_size: 5
prompts_dir: ./prompts
monitoring:
  log_level: debug
  telemetry_enabled: true
  telemetry_path: /tmp/calls.db
  telemetry_sink: sqlite
`)

	cfg, err := config.LoadFromBytes(yaml)
	require.NoError(t, err)

	assert.Equal(t, adapters.ProviderGemini, cfg.Provider)
	assert.Equal(t, "gemini-2.0-flash", cfg.Model)
	assert.Equal(t, 90*time.Second, cfg.HardTimeout)
	assert.Equal(t, 15*time.Second, cfg.CoachTimeout)
	assert.Equal(t, 5, cfg.WorkerPoolSize)
	assert.Equal(t, "./prompts", cfg.PromptsDir)
	assert.Equal(t, "debug", cfg.Monitoring.LogLevel)
	assert.Equal(t, config.SinkSQLite, cfg.Monitoring.TelemetrySink)
	assert.True(t, cfg.Monitoring.TelemetryEnabled)
}

func TestLoadFromBytes_EnvExpansion(t *testing.T) {
	clearEnv(t)
	t.Setenv("TEST_PE_MODEL", "gpt-expanded")

	cfg, err := config.LoadFromBytes([]byte("provider: openai\nmodel: ${TEST_PE_MODEL:-unused}\n"))
	require.NoError(t, err)
	assert.Equal(t, "gpt-expanded", cfg.Model)
}

func TestLoadFromBytes_InvalidSink(t *testing.T) {
	clearEnv(t)

	_, err := config.LoadFromBytes([]byte("monitoring:\n  telemetry_sink: kafka\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "telemetry_sink")
}

func TestLoadFromBytes_InvalidYAML(t *testing.T) {
	clearEnv(t)

	_, err := config.LoadFromBytes([]byte("provider: [unclosed"))
	require.Error(t, err)
}

func TestLoadWithOverrides(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("provider: anthropic\nmodel: from-file\n"), 0600))

	cfg, err := config.LoadWithOverrides(path, config.Overrides{Model: "from-flag"})
	require.NoError(t, err)
	assert.Equal(t, adapters.ProviderAnthropic, cfg.Provider)
	assert.Equal(t, "from-flag", cfg.Model)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)

	_, err = config.Load("")
	require.Error(t, err)
}

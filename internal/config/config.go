// Package config builds the client configuration.
//
// DESIGN: Configuration is resolved ONCE into an immutable ClientConfig.
// Sources, highest precedence first:
//  1. Explicit Overrides (constructor arguments)
//  2. Optional YAML file, with ${VAR:-default} env expansion
//  3. Environment variables (LLM_PROVIDER, OPENAI_API_KEY, ...)
//  4. Built-in per-provider defaults
//
// FILES:
//   - config.go:     ClientConfig, New(), Load(), Validate()
//   - defaults.go:   Per-provider default models and base URLs, env names
//   - monitoring.go: Logging and telemetry settings
package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/compresr/prompt-engine/internal/adapters"
)

// MissingKey marks a credential that was not configured. Keys are never left
// empty after construction so presence checks are uniform.
const MissingKey = "missing_key"

// ClientConfig is the read-only configuration of one client instance.
type ClientConfig struct {
	Provider     adapters.Provider
	Keys         adapters.Keys
	BaseURL      string
	Model        string
	HardTimeout  time.Duration // applies to process
	CoachTimeout time.Duration // applies to analyze/optimize/fix

	PromptsDir     string // directory holding the prompt templates
	WorkerPoolSize int    // concurrent provider calls per client

	Monitoring MonitoringConfig
}

// Overrides are explicit constructor arguments; empty fields fall through.
// APIKey applies to the OpenAI-like providers only.
type Overrides struct {
	Provider string
	APIKey   string
	BaseURL  string
	Model    string
}

// FileConfig is the optional YAML representation.
type FileConfig struct {
	Provider       string           `yaml:"provider"`
	APIKey         string           `yaml:"api_key"`
	BaseURL        string           `yaml:"base_url"`
	Model          string           `yaml:"model"`
	HardTimeout    time.Duration    `yaml:"hard_timeout"`
	CoachTimeout   time.Duration    `yaml:"coach_timeout"`
	PromptsDir     string           `yaml:"prompts_dir"`
	WorkerPoolSize int              `yaml:"worker_pool_size"`
	Monitoring     MonitoringConfig `yaml:"monitoring"`
}

// HasKey reports whether a credential is configured for the resolved provider.
func (c *ClientConfig) HasKey() bool {
	return c.Keys.For(c.Provider) != MissingKey
}

// New builds a ClientConfig from overrides, the environment and defaults.
func New(ov Overrides) (*ClientConfig, error) {
	provider := adapters.Resolve(firstNonEmpty(ov.Provider, os.Getenv(EnvProvider)))

	hard, err := envSeconds(EnvHardTimeout, DefaultHardTimeout)
	if err != nil {
		return nil, err
	}
	coach, err := envSeconds(EnvCoachTimeout, DefaultCoachTimeout)
	if err != nil {
		return nil, err
	}
	poolSize, err := envInt(EnvWorkerPoolSize, DefaultWorkerPoolSize)
	if err != nil {
		return nil, err
	}

	cfg := &ClientConfig{
		Provider: provider,
		Keys: adapters.Keys{
			OpenAI:    keyOrSentinel(firstNonEmpty(ov.APIKey, os.Getenv(EnvOpenAIKey))),
			Anthropic: keyOrSentinel(os.Getenv(EnvAnthropicKey)),
			Gemini:    keyOrSentinel(os.Getenv(EnvGeminiKey)),
		},
		BaseURL:        firstNonEmpty(ov.BaseURL, DefaultBaseURL(provider)),
		Model:          firstNonEmpty(ov.Model, DefaultModel(provider)),
		HardTimeout:    hard,
		CoachTimeout:   coach,
		PromptsDir:     firstNonEmpty(os.Getenv(EnvPromptsDir), DefaultPromptsDir),
		WorkerPoolSize: poolSize,
		Monitoring: MonitoringConfig{
			LogLevel:         firstNonEmpty(os.Getenv(EnvLogLevel), "info"),
			LogFormat:        "console",
			LogOutput:        "stderr",
			TelemetryEnabled: os.Getenv(EnvTelemetryPath) != "",
			TelemetryPath:    os.Getenv(EnvTelemetryPath),
			TelemetrySink:    SinkJSONL,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Load reads an optional YAML config file. Values the file leaves empty come
// from the environment and defaults, as in New.
func Load(path string) (*ClientConfig, error) {
	return LoadWithOverrides(path, Overrides{})
}

// LoadWithOverrides reads a YAML config file; non-empty fields of ov win over
// the file.
func LoadWithOverrides(path string, ov Overrides) (*ClientConfig, error) {
	if path == "" {
		return nil, fmt.Errorf("config file path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	return loadFromBytes(data, ov)
}

// LoadFromBytes parses configuration from raw YAML bytes.
// Supports ${VAR:-default} env var expansion.
func LoadFromBytes(data []byte) (*ClientConfig, error) {
	return loadFromBytes(data, Overrides{})
}

func loadFromBytes(data []byte, ov Overrides) (*ClientConfig, error) {
	expanded := expandEnvWithDefaults(string(data))

	var fc FileConfig
	if err := yaml.Unmarshal([]byte(expanded), &fc); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg, err := New(Overrides{
		Provider: firstNonEmpty(ov.Provider, fc.Provider),
		APIKey:   firstNonEmpty(ov.APIKey, fc.APIKey),
		BaseURL:  firstNonEmpty(ov.BaseURL, fc.BaseURL),
		Model:    firstNonEmpty(ov.Model, fc.Model),
	})
	if err != nil {
		return nil, err
	}

	if fc.HardTimeout > 0 {
		cfg.HardTimeout = fc.HardTimeout
	}
	if fc.CoachTimeout > 0 {
		cfg.CoachTimeout = fc.CoachTimeout
	}
	if fc.PromptsDir != "" {
		cfg.PromptsDir = fc.PromptsDir
	}
	if fc.WorkerPoolSize > 0 {
		cfg.WorkerPoolSize = fc.WorkerPoolSize
	}
	cfg.Monitoring.merge(fc.Monitoring)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c *ClientConfig) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	if c.Model == "" {
		return fmt.Errorf("model is required")
	}
	if c.HardTimeout <= 0 {
		return fmt.Errorf("hard timeout must be positive, got %s", c.HardTimeout)
	}
	if c.CoachTimeout <= 0 {
		return fmt.Errorf("coach timeout must be positive, got %s", c.CoachTimeout)
	}
	if c.WorkerPoolSize < 1 {
		return fmt.Errorf("worker pool size must be at least 1, got %d", c.WorkerPoolSize)
	}
	return c.Monitoring.Validate()
}

// envVarPattern matches ${VAR:-default} or ${VAR}.
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandEnvWithDefaults expands environment variables with support for default values.
// Supports both ${VAR} and ${VAR:-default} syntax.
func expandEnvWithDefaults(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := envVarPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		if len(parts) > 2 {
			return parts[2]
		}
		return ""
	})
}

func keyOrSentinel(key string) string {
	if key = strings.TrimSpace(key); key == "" {
		return MissingKey
	}
	return key
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func envInt(name string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", name, raw)
	}
	return n, nil
}

func envSeconds(name string, def time.Duration) (time.Duration, error) {
	n, err := envInt(name, int(def/time.Second))
	if err != nil {
		return 0, err
	}
	return time.Duration(n) * time.Second, nil
}

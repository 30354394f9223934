// Package llm is the prompt engine client.
//
// DESIGN: One Client per configuration. Each operation builds its messages,
// issues exactly one provider call through the Dispatcher and decodes the
// result:
//   - Process:        worker prompt, JSON, hard timeout, fallback rebuild
//   - AnalyzePrompt:  quality coach, JSON, coach timeout
//   - OptimizePrompt: optimizer, plain text, coach timeout
//   - FixPrompt:      editor, JSON, coach timeout
//
// A Client holds only read-only state after New and is safe for concurrent use.
package llm

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/compresr/prompt-engine/internal/adapters"
	"github.com/compresr/prompt-engine/internal/config"
	"github.com/compresr/prompt-engine/internal/monitoring"
	"github.com/compresr/prompt-engine/internal/prompts"
	"github.com/compresr/prompt-engine/internal/schemas"
	"github.com/compresr/prompt-engine/internal/tokens"
)

// Output budgets per operation.
const (
	ProcessMaxTokens  = 3000
	AnalyzeMaxTokens  = 1024
	OptimizeMaxTokens = 2048
	FixMaxTokens      = 1500
)

// Client runs prompt operations against one provider.
type Client struct {
	cfg        *config.ClientConfig
	prompts    *prompts.Set
	registry   *adapters.Registry
	dispatcher *Dispatcher
	counter    tokens.Counter
	metrics    *monitoring.MetricsCollector
	logger     *monitoring.Logger
}

type clientOptions struct {
	httpClient *http.Client
	prompts    *prompts.Set
	tracker    *monitoring.Tracker
	metrics    *monitoring.MetricsCollector
	counter    tokens.Counter
	logger     *monitoring.Logger
	adapters   []adapters.Adapter
}

// Option configures a Client.
type Option func(*clientOptions)

// WithHTTPClient sets the HTTP client used by the built-in adapters.
func WithHTTPClient(c *http.Client) Option {
	return func(o *clientOptions) { o.httpClient = c }
}

// WithPrompts uses s instead of loading templates from cfg.PromptsDir.
func WithPrompts(s *prompts.Set) Option {
	return func(o *clientOptions) { o.prompts = s }
}

// WithTracker records a CallEvent for every dispatched call.
func WithTracker(t *monitoring.Tracker) Option {
	return func(o *clientOptions) { o.tracker = t }
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *monitoring.MetricsCollector) Option {
	return func(o *clientOptions) { o.metrics = m }
}

// WithTokenCounter sets the counter used to estimate optimize output size.
func WithTokenCounter(c tokens.Counter) Option {
	return func(o *clientOptions) { o.counter = c }
}

// WithLogger sets the logger.
func WithLogger(l *monitoring.Logger) Option {
	return func(o *clientOptions) { o.logger = l }
}

// WithAdapter registers a, replacing the built-in adapter for its provider.
func WithAdapter(a adapters.Adapter) Option {
	return func(o *clientOptions) { o.adapters = append(o.adapters, a) }
}

// New creates a client for cfg.
func New(cfg *config.ClientConfig, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	o := clientOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	set := o.prompts
	if set == nil {
		var err error
		if set, err = prompts.Load(cfg.PromptsDir); err != nil {
			return nil, err
		}
	}
	if o.httpClient == nil {
		o.httpClient = &http.Client{}
	}
	if o.metrics == nil {
		o.metrics = monitoring.NewMetricsCollector()
	}
	if o.counter == nil {
		o.counter = tokens.NewTiktoken()
	}
	if o.logger == nil {
		o.logger = monitoring.FromGlobal()
	}

	registry := adapters.NewRegistry(cfg.Keys, cfg.BaseURL, cfg.Model, o.httpClient)
	for _, a := range o.adapters {
		registry.Register(a)
	}

	return &Client{
		cfg:        cfg,
		prompts:    set,
		registry:   registry,
		dispatcher: NewDispatcher(cfg, registry, NewPool(cfg.WorkerPoolSize), o.tracker, o.metrics, o.logger),
		counter:    o.counter,
		metrics:    o.metrics,
		logger:     o.logger.With("provider", cfg.Provider.String()),
	}, nil
}

// Config returns the client configuration.
func (c *Client) Config() *config.ClientConfig { return c.cfg }

// Metrics returns the client's metrics collector.
func (c *Client) Metrics() *monitoring.MetricsCollector { return c.metrics }

// Process rewrites text with the worker prompt. Non-empty promptContext is
// sent as a second system message, one "key: value" line per entry in key
// order.
func (c *Client) Process(ctx context.Context, text string, promptContext map[string]any) (*schemas.WorkerResponse, error) {
	if !c.cfg.HasKey() {
		return nil, missingKeyError(monitoring.OpProcess)
	}

	messages := []adapters.Message{{Role: adapters.RoleSystem, Content: c.prompts.Worker}}
	if len(promptContext) > 0 {
		messages = append(messages, adapters.Message{Role: adapters.RoleSystem, Content: formatContext(promptContext)})
	}
	messages = append(messages, adapters.Message{Role: adapters.RoleUser, Content: text})

	content, err := c.dispatcher.Dispatch(ctx, Request{
		Op:        monitoring.OpProcess,
		Messages:  messages,
		MaxTokens: ProcessMaxTokens,
		JSONMode:  true,
		Timeout:   c.cfg.HardTimeout,
	})
	if err != nil {
		return nil, err
	}

	resp, err := schemas.Parse[schemas.WorkerResponse](content)
	if err != nil {
		return nil, &ParseError{Op: monitoring.OpProcess, Err: err}
	}
	if applyFallback(resp) {
		c.metrics.RecordFallback()
		c.logger.Debug().Msg("optimized_content rebuilt from response parts")
	}
	return resp, nil
}

// AnalyzePrompt asks the quality coach to score text.
func (c *Client) AnalyzePrompt(ctx context.Context, text string) (*schemas.QualityReport, error) {
	if !c.cfg.HasKey() {
		return nil, missingKeyError(monitoring.OpAnalyze)
	}
	if c.prompts.Coach == "" {
		return nil, fmt.Errorf("%s: %w: %s", opLabel(monitoring.OpAnalyze), ErrMissingPrompt, prompts.CoachFile)
	}

	content, err := c.dispatcher.Dispatch(ctx, Request{
		Op: monitoring.OpAnalyze,
		Messages: []adapters.Message{
			{Role: adapters.RoleSystem, Content: c.prompts.Coach},
			{Role: adapters.RoleUser, Content: "Analyze this prompt:\n\n" + text},
		},
		MaxTokens: AnalyzeMaxTokens,
		JSONMode:  true,
		Timeout:   c.cfg.CoachTimeout,
	})
	if err != nil {
		return nil, err
	}

	report, err := schemas.Parse[schemas.QualityReport](content)
	if err != nil {
		return nil, &ParseError{Op: monitoring.OpAnalyze, Err: err}
	}
	return report, nil
}

// OptimizePrompt asks for a shorter version of text. Positive maxTokens and
// maxChars are passed to the model as targets; they are not enforced on the
// returned text.
func (c *Client) OptimizePrompt(ctx context.Context, text string, maxTokens, maxChars int) (string, error) {
	if !c.cfg.HasKey() {
		return "", missingKeyError(monitoring.OpOptimize)
	}

	system := c.prompts.OptimizerOrDefault()
	var targets []string
	if maxTokens > 0 {
		targets = append(targets, fmt.Sprintf("TARGET: Strict maximum of %d tokens.", maxTokens))
	}
	if maxChars > 0 {
		targets = append(targets, fmt.Sprintf("TARGET: Strict maximum of %d characters.", maxChars))
	}
	if len(targets) > 0 {
		system += "\n\n" + strings.Join(targets, "\n")
	}

	content, err := c.dispatcher.Dispatch(ctx, Request{
		Op: monitoring.OpOptimize,
		Messages: []adapters.Message{
			{Role: adapters.RoleSystem, Content: system},
			{Role: adapters.RoleUser, Content: "Optimize this prompt:\n\n" + text},
		},
		MaxTokens: OptimizeMaxTokens,
		JSONMode:  false,
		Timeout:   c.cfg.CoachTimeout,
	})
	if err != nil {
		return "", err
	}
	content = strings.TrimSpace(content)

	c.logTargets(content, maxTokens, maxChars)
	return content, nil
}

// FixPrompt asks the editor to rewrite text.
func (c *Client) FixPrompt(ctx context.Context, text string) (*schemas.LLMFixResponse, error) {
	if !c.cfg.HasKey() {
		return nil, missingKeyError(monitoring.OpFix)
	}

	content, err := c.dispatcher.Dispatch(ctx, Request{
		Op: monitoring.OpFix,
		Messages: []adapters.Message{
			{Role: adapters.RoleSystem, Content: c.prompts.EditorOrDefault()},
			{Role: adapters.RoleUser, Content: "Fix this prompt:\n\n" + text},
		},
		MaxTokens: FixMaxTokens,
		JSONMode:  true,
		Timeout:   c.cfg.CoachTimeout,
	})
	if err != nil {
		return nil, err
	}

	fix, err := schemas.Parse[schemas.LLMFixResponse](content)
	if err != nil {
		return nil, &ParseError{Op: monitoring.OpFix, Err: err}
	}
	return fix, nil
}

func (c *Client) logTargets(content string, maxTokens, maxChars int) {
	estimated := c.counter.Count(content)
	chars := len([]rune(content))

	ev := c.logger.Debug()
	if (maxTokens > 0 && estimated > maxTokens) || (maxChars > 0 && chars > maxChars) {
		ev = c.logger.Warn()
	}
	ev.Int("estimated_tokens", estimated).
		Int("chars", chars).
		Int("target_tokens", maxTokens).
		Int("target_chars", maxChars).
		Msg("optimized prompt size")
}

func formatContext(promptContext map[string]any) string {
	keys := make([]string, 0, len(promptContext))
	for k := range promptContext {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s: %v", k, promptContext[k]))
	}
	return "Context:\n" + strings.Join(lines, "\n")
}

package llm_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/compresr/prompt-engine/external"
	"github.com/compresr/prompt-engine/internal/adapters"
	"github.com/compresr/prompt-engine/internal/config"
	"github.com/compresr/prompt-engine/internal/llm"
	"github.com/compresr/prompt-engine/internal/monitoring"
	"github.com/compresr/prompt-engine/internal/prompts"
	"github.com/compresr/prompt-engine/internal/tokens"
)

func testConfig(provider adapters.Provider, baseURL string) *config.ClientConfig {
	return &config.ClientConfig{
		Provider:       provider,
		Keys:           adapters.Keys{OpenAI: "sk-test", Anthropic: "ant-test", Gemini: "gem-test"},
		BaseURL:        baseURL,
		Model:          "test-model",
		HardTimeout:    5 * time.Second,
		CoachTimeout:   5 * time.Second,
		WorkerPoolSize: 2,
	}
}

func testPrompts() *prompts.Set {
	return &prompts.Set{Worker: "You are the worker.", Coach: "You are the coach."}
}

func quietLogger() *monitoring.Logger {
	return monitoring.New(monitoring.LoggerConfig{Level: "disabled"})
}

func newClient(t *testing.T, cfg *config.ClientConfig, opts ...llm.Option) *llm.Client {
	t.Helper()
	base := []llm.Option{
		llm.WithPrompts(testPrompts()),
		llm.WithLogger(quietLogger()),
		llm.WithTokenCounter(tokens.Heuristic{}),
	}
	c, err := llm.New(cfg, append(base, opts...)...)
	require.NoError(t, err)
	return c
}

// recordedRequest is one request seen by a provider test server.
type recordedRequest struct {
	Path   string
	Header http.Header
	Body   []byte
}

// providerServer is an httptest server that counts and records requests.
type providerServer struct {
	*httptest.Server
	calls atomic.Int32

	mu       sync.Mutex
	requests []recordedRequest
}

func newProviderServer(t *testing.T, status int, response string) *providerServer {
	t.Helper()
	ps := &providerServer{}
	ps.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ps.calls.Add(1)
		body, _ := io.ReadAll(r.Body)
		ps.mu.Lock()
		ps.requests = append(ps.requests, recordedRequest{Path: r.URL.Path, Header: r.Header.Clone(), Body: body})
		ps.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(ps.Close)
	return ps
}

func (ps *providerServer) last(t *testing.T) recordedRequest {
	t.Helper()
	ps.mu.Lock()
	defer ps.mu.Unlock()
	require.NotEmpty(t, ps.requests)
	return ps.requests[len(ps.requests)-1]
}

// fakeAdapter replaces a built-in adapter in the registry.
type fakeAdapter struct {
	provider adapters.Provider
	calls    atomic.Int32
	call     func(ctx context.Context, messages []adapters.Message, maxTokens int, jsonMode bool) (*external.Result, error)
}

func (f *fakeAdapter) Name() string                { return "fake" }
func (f *fakeAdapter) Provider() adapters.Provider { return f.provider }

func (f *fakeAdapter) Call(ctx context.Context, messages []adapters.Message, maxTokens int, jsonMode bool) (*external.Result, error) {
	f.calls.Add(1)
	return f.call(ctx, messages, maxTokens, jsonMode)
}

// hangingAdapter never returns until release is closed, whatever ctx does.
func hangingAdapter(t *testing.T, provider adapters.Provider) *fakeAdapter {
	t.Helper()
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })
	return &fakeAdapter{
		provider: provider,
		call: func(context.Context, []adapters.Message, int, bool) (*external.Result, error) {
			<-release
			return &external.Result{Content: "{}"}, nil
		},
	}
}

// memorySink collects telemetry events.
type memorySink struct {
	mu     sync.Mutex
	events []monitoring.CallEvent
}

func (m *memorySink) Write(e *monitoring.CallEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, *e)
	return nil
}

func (m *memorySink) Close() error { return nil }

func (m *memorySink) all() []monitoring.CallEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]monitoring.CallEvent(nil), m.events...)
}

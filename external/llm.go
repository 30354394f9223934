// HTTP transport for provider calls.
//
// PostJSON is the single network entry point used by every adapter. It sends a
// JSON body, applies a size limit to the response and turns any HTTP or network
// failure into a *TransportError so callers can classify it uniformly.
//
// USAGE:
//   - Adapters build the provider body (types.go), call PostJSON, then read the
//     envelope with the Extract* helpers (extract.go).
//   - Tests point BaseURL at an httptest server and pass its Client().
package external

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/compresr/prompt-engine/internal/monitoring"
)

const (
	// maxResponseSize prevents OOM on unexpectedly large API responses (10MB).
	maxResponseSize = 10 * 1024 * 1024

	// maxErrorBodyLen limits error body in error messages to avoid log bloat.
	maxErrorBodyLen = 500

	// AnthropicVersion is the Anthropic API version header value.
	AnthropicVersion = "2023-06-01"

	// RequestIDHeader carries the dispatcher call ID to the provider.
	RequestIDHeader = "X-Request-Id"
)

// ErrEmptyResponse is returned when a provider envelope carries no text.
var ErrEmptyResponse = errors.New("empty response from provider")

// TransportError is an HTTP or network failure talking to a provider.
// StatusCode is 0 when the request never produced a response.
type TransportError struct {
	Provider   string
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s API returned status %d: %s", e.Provider, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// PostParams describes one JSON POST to a provider.
type PostParams struct {
	Provider string
	URL      string
	Headers  map[string]string
	Body     []byte

	// HTTPClient overrides the default client (useful for testing).
	// Timeouts come from ctx, not from the client.
	HTTPClient *http.Client
}

// PostJSON sends params.Body and returns the raw response body on HTTP 200.
// A call ID stored on ctx is sent as RequestIDHeader.
func PostJSON(ctx context.Context, params PostParams) ([]byte, error) {
	callID := monitoring.CallIDFromContext(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, params.URL, bytes.NewReader(params.Body))
	if err != nil {
		return nil, &TransportError{Provider: params.Provider, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	req.Header.Set("Content-Type", "application/json")
	for k, v := range params.Headers {
		req.Header.Set(k, v)
	}
	if callID != "" {
		req.Header.Set(RequestIDHeader, callID)
	}

	client := params.HTTPClient
	if client == nil {
		client = &http.Client{} // timeout via context, not client
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return nil, &TransportError{Provider: params.Provider, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, &TransportError{Provider: params.Provider, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	log.Debug().
		Str("call_id", callID).
		Str("provider", params.Provider).
		Int("status", resp.StatusCode).
		Int("bytes", len(respBody)).
		Dur("elapsed", time.Since(start)).
		Msg("provider response")

	if resp.StatusCode != http.StatusOK {
		errBody := string(respBody)
		if len(errBody) > maxErrorBodyLen {
			errBody = errBody[:maxErrorBodyLen] + "... (truncated)"
		}
		return nil, &TransportError{
			Provider:   params.Provider,
			StatusCode: resp.StatusCode,
			Body:       errBody,
			Err:        fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	return respBody, nil
}

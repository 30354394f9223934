package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/compresr/prompt-engine/external"
	"github.com/compresr/prompt-engine/internal/monitoring"
)

var (
	// ErrMissingKey means no credential is configured for the resolved
	// provider. It is returned before any network call is attempted.
	ErrMissingKey = errors.New("API key is missing for selected provider. Set OPENAI_API_KEY / ANTHROPIC_API_KEY / GEMINI_API_KEY")

	// ErrMissingPrompt means a required prompt template was not loaded.
	ErrMissingPrompt = errors.New("prompt template not found")

	// ErrEmptyResponse means the provider answered with no text.
	ErrEmptyResponse = external.ErrEmptyResponse
)

// TransportError is an HTTP or network failure reported by an adapter.
type TransportError = external.TransportError

// TimeoutError means the operation deadline elapsed before the provider
// answered. It unwraps to context.DeadlineExceeded.
type TimeoutError struct {
	Op      monitoring.Operation
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s timed out after %s", opLabel(e.Op), e.Timeout)
}

func (e *TimeoutError) Unwrap() error { return context.DeadlineExceeded }

// ProviderCallError wraps any adapter failure (transport, empty response,
// caller cancellation) with the operation and provider that issued it.
type ProviderCallError struct {
	Op       monitoring.Operation
	Provider string
	Err      error
}

func (e *ProviderCallError) Error() string {
	return fmt.Sprintf("%s error (%s): %v", opLabel(e.Op), e.Provider, e.Err)
}

func (e *ProviderCallError) Unwrap() error { return e.Err }

// ParseError means the provider text did not decode or validate as the
// operation's response type.
type ParseError struct {
	Op  monitoring.Operation
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: invalid response: %v", opLabel(e.Op), e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// opLabel is the human-readable operation name used in error messages.
func opLabel(op monitoring.Operation) string {
	switch op {
	case monitoring.OpProcess:
		return "LLM processing"
	case monitoring.OpAnalyze:
		return "Quality analysis"
	case monitoring.OpOptimize:
		return "Optimization"
	case monitoring.OpFix:
		return "Auto-fix"
	default:
		return string(op)
	}
}

func missingKeyError(op monitoring.Operation) error {
	return fmt.Errorf("%s: %w", opLabel(op), ErrMissingKey)
}

package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/compresr/prompt-engine/external"
	"github.com/compresr/prompt-engine/internal/adapters"
	"github.com/compresr/prompt-engine/internal/config"
	"github.com/compresr/prompt-engine/internal/monitoring"
)

// Dispatcher issues exactly one provider call per request and bounds the wait
// by a deadline, whatever the worker does after that.
type Dispatcher struct {
	cfg      *config.ClientConfig
	registry *adapters.Registry
	pool     *Pool
	tracker  *monitoring.Tracker
	metrics  *monitoring.MetricsCollector
	logger   *monitoring.RequestLogger
	alerts   *monitoring.AlertManager
}

// Request describes one provider call.
type Request struct {
	Op        monitoring.Operation
	Messages  []adapters.Message
	MaxTokens int
	JSONMode  bool
	Timeout   time.Duration
}

type callOutcome struct {
	res *external.Result
	err error
}

// NewDispatcher creates a dispatcher over the given registry.
func NewDispatcher(
	cfg *config.ClientConfig,
	registry *adapters.Registry,
	pool *Pool,
	tracker *monitoring.Tracker,
	metrics *monitoring.MetricsCollector,
	logger *monitoring.Logger,
) *Dispatcher {
	if tracker == nil {
		tracker = monitoring.NewNoopTracker()
	}
	if metrics == nil {
		metrics = monitoring.NewMetricsCollector()
	}
	if logger == nil {
		logger = monitoring.FromGlobal()
	}
	return &Dispatcher{
		cfg:      cfg,
		registry: registry,
		pool:     pool,
		tracker:  tracker,
		metrics:  metrics,
		logger:   monitoring.NewRequestLogger(logger),
		alerts: monitoring.NewAlertManager(logger, monitoring.AlertConfig{
			HighLatencyThreshold: cfg.Monitoring.HighLatencyThreshold,
		}),
	}
}

// Dispatch runs req against the configured provider and returns the response
// text, reduced to its JSON block when req.JSONMode is set.
//
// A missing key fails before anything is sent. When req.Timeout elapses the
// call context is cancelled and *TimeoutError is returned as is. Any other
// adapter failure comes back as *ProviderCallError.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (string, error) {
	provider := d.cfg.Provider
	callID := uuid.New().String()
	ctx = monitoring.WithCallIDContext(ctx, callID)

	event := &monitoring.CallEvent{
		CallID:    callID,
		Timestamp: time.Now().UTC(),
		Operation: req.Op,
		Provider:  provider.String(),
		Model:     d.cfg.Model,
		MaxTokens: req.MaxTokens,
		JSONMode:  req.JSONMode,
	}

	d.logger.LogDispatch(&monitoring.DispatchInfo{
		CallID:    callID,
		Operation: req.Op,
		Provider:  provider.String(),
		Model:     d.cfg.Model,
		MaxTokens: req.MaxTokens,
		JSONMode:  req.JSONMode,
		Timeout:   req.Timeout,
	})

	if !d.cfg.HasKey() {
		err := missingKeyError(req.Op)
		d.finish(event, monitoring.StatusMissingKey, 0, err)
		return "", err
	}

	adapter := d.registry.Get(provider)
	if adapter == nil {
		err := &ProviderCallError{Op: req.Op, Provider: provider.String(), Err: fmt.Errorf("no adapter registered")}
		d.finish(event, monitoring.StatusFailed, 0, err)
		return "", err
	}

	start := time.Now()
	callCtx, cancel := context.WithTimeout(ctx, req.Timeout)
	defer cancel()

	// Buffered so an abandoned worker can always deliver and exit.
	done := make(chan callOutcome, 1)
	err := d.pool.Go(callCtx, func() {
		defer func() {
			if r := recover(); r != nil {
				d.alerts.FlagPanic(callID, adapter.Name(), r)
				done <- callOutcome{err: fmt.Errorf("adapter panic: %v", r)}
			}
		}()
		res, err := adapter.Call(callCtx, req.Messages, req.MaxTokens, req.JSONMode)
		done <- callOutcome{res: res, err: err}
	})
	if err != nil {
		return "", d.abandon(ctx, event, req, adapter, time.Since(start), err)
	}

	var out callOutcome
	select {
	case out = <-done:
	case <-callCtx.Done():
		return "", d.abandon(ctx, event, req, adapter, time.Since(start), callCtx.Err())
	}
	latency := time.Since(start)

	if out.err != nil {
		// The adapter may notice the deadline before this select does.
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			return "", d.abandon(ctx, event, req, adapter, latency, callCtx.Err())
		}
		var te *TransportError
		if errors.As(out.err, &te) && te.StatusCode != 0 {
			d.alerts.FlagProviderError(callID, req.Op, adapter.Name(), te.StatusCode)
		}
		perr := &ProviderCallError{Op: req.Op, Provider: adapter.Name(), Err: out.err}
		d.finish(event, monitoring.StatusFailed, latency, perr)
		return "", perr
	}

	if out.res == nil {
		perr := &ProviderCallError{Op: req.Op, Provider: adapter.Name(), Err: ErrEmptyResponse}
		d.finish(event, monitoring.StatusFailed, latency, perr)
		return "", perr
	}

	content := out.res.Content
	if req.JSONMode {
		content = ExtractJSONBlock(content)
	}

	event.InputTokens = out.res.InputTokens
	event.OutputTokens = out.res.OutputTokens
	event.ContentBytes = len(content)
	d.logger.LogResult(&monitoring.ResultInfo{
		CallID:       callID,
		Latency:      latency,
		InputTokens:  out.res.InputTokens,
		OutputTokens: out.res.OutputTokens,
		ContentBytes: len(content),
	})
	d.alerts.FlagHighLatency(callID, req.Op, adapter.Name(), latency)
	d.finish(event, monitoring.StatusSuccess, latency, nil)
	return content, nil
}

// abandon classifies a call that stopped waiting: the operation deadline
// yields *TimeoutError, caller cancellation a *ProviderCallError.
func (d *Dispatcher) abandon(
	ctx context.Context,
	event *monitoring.CallEvent,
	req Request,
	adapter adapters.Adapter,
	latency time.Duration,
	cause error,
) error {
	if ctx.Err() != nil {
		err := &ProviderCallError{Op: req.Op, Provider: adapter.Name(), Err: ctx.Err()}
		d.finish(event, monitoring.StatusFailed, latency, err)
		return err
	}
	if errors.Is(cause, context.DeadlineExceeded) {
		d.alerts.FlagUpstreamTimeout(event.CallID, req.Op, adapter.Name(), req.Timeout)
		err := &TimeoutError{Op: req.Op, Timeout: req.Timeout}
		d.finish(event, monitoring.StatusTimeout, latency, err)
		return err
	}
	err := &ProviderCallError{Op: req.Op, Provider: adapter.Name(), Err: cause}
	d.finish(event, monitoring.StatusFailed, latency, err)
	return err
}

func (d *Dispatcher) finish(event *monitoring.CallEvent, status string, latency time.Duration, err error) {
	event.Status = status
	event.LatencyMs = latency.Milliseconds()
	if err != nil {
		event.Error = err.Error()
		d.logger.LogFailure(&monitoring.FailureInfo{
			CallID:    event.CallID,
			Operation: event.Operation,
			Provider:  event.Provider,
			Status:    status,
			Latency:   latency,
			Err:       err,
		})
	}
	if status != monitoring.StatusMissingKey {
		d.metrics.RecordCall(status, latency)
	}
	d.tracker.RecordCall(event)
}

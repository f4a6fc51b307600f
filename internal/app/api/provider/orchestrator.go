package provider

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Orchestrator drives the fallback chain for an operation: candidates are
// tried strictly in priority order and the first success wins.
type Orchestrator struct {
	registry Registry
	metrics  ProviderMetrics
	config   OrchestratorConfig
	logger   *zap.Logger

	mu    sync.RWMutex
	stats OrchestratorStats
}

// NewOrchestrator creates a new orchestrator
func NewOrchestrator(registry Registry, metrics ProviderMetrics, config OrchestratorConfig, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = NewProviderMetrics(nil)
	}
	return &Orchestrator{
		registry: registry,
		metrics:  metrics,
		config:   config,
		logger:   logger.Named("orchestrator"),
		stats: OrchestratorStats{
			ProviderUsage:    make(map[string]int64),
			ErrorsByProvider: make(map[string]int64),
		},
	}
}

// Execute runs kind against the configured candidates. It returns
// *NoProviderConfiguredError without calling anything when the chain is
// empty, and *AllProvidersFailedError carrying every attempt when no
// candidate succeeds.
func (o *Orchestrator) Execute(ctx context.Context, kind OperationKind, req *Request) (*Result, error) {
	start := time.Now()
	o.mu.Lock()
	o.stats.TotalRequests++
	o.mu.Unlock()

	candidates := o.registry.ConfiguredProviders(kind)
	if len(candidates) == 0 {
		o.finish(false, start)
		o.logger.Warn("no provider configured", zap.String("operation", string(kind)))
		return nil, &NoProviderConfiguredError{Operation: kind}
	}

	attempts := make([]FallbackAttempt, 0, len(candidates))
	for i, adapter := range candidates {
		if err := ctx.Err(); err != nil {
			o.finish(false, start)
			return nil, &ChainAbortedError{Operation: kind, Attempts: attempts, Err: err}
		}

		result, attempt := o.tryProvider(ctx, adapter, kind, req)
		attempts = append(attempts, attempt)

		if attempt.Succeeded {
			result.Attempts = attempts
			o.mu.Lock()
			o.stats.ProviderUsage[attempt.Provider]++
			if i > 0 {
				o.stats.FallbacksUsed++
			}
			o.mu.Unlock()
			o.finish(true, start)
			return result, nil
		}

		if !errors.Is(ctx.Err(), context.Canceled) {
			o.mu.Lock()
			o.stats.ErrorsByProvider[attempt.Provider]++
			o.mu.Unlock()
		}

		// The caller went away mid-attempt: do not start the next candidate
		if err := ctx.Err(); err != nil {
			o.finish(false, start)
			return nil, &ChainAbortedError{Operation: kind, Attempts: attempts, Err: err}
		}
	}

	o.finish(false, start)
	return nil, &AllProvidersFailedError{Operation: kind, Attempts: attempts}
}

// tryProvider performs exactly one bounded attempt; there is no retry of the same candidate
func (o *Orchestrator) tryProvider(ctx context.Context, adapter Adapter, kind OperationKind, req *Request) (*Result, FallbackAttempt) {
	desc := adapter.Descriptor()
	attemptCtx, cancel := context.WithTimeout(ctx, o.config.attemptTimeout(desc))
	defer cancel()

	started := time.Now()
	raw, err := adapter.Invoke(attemptCtx, req)

	var result *Result
	if err == nil {
		result, err = normalize(desc, kind, raw)
	}
	latency := time.Since(started).Milliseconds()

	attempt := FallbackAttempt{
		Provider:  desc.Name,
		LatencyMs: latency,
	}

	if err != nil {
		attempt.ErrorKind = classifyAttempt(attemptCtx, err)
		attempt.Error = err.Error()
		if errors.Is(ctx.Err(), context.Canceled) {
			// Caller cancellation is not a provider failure
			o.logger.Info("provider attempt abandoned",
				zap.String("provider", desc.Name),
				zap.String("operation", string(kind)),
				zap.Int64("latency_ms", latency),
			)
			return nil, attempt
		}
		o.metrics.RecordFailure(desc.Name, kind, attempt.ErrorKind, latency)
		o.logger.Warn("provider attempt failed",
			zap.String("provider", desc.Name),
			zap.String("operation", string(kind)),
			zap.String("error_kind", string(attempt.ErrorKind)),
			zap.Int64("latency_ms", latency),
			zap.Error(err),
		)
		return nil, attempt
	}

	attempt.Succeeded = true
	o.metrics.RecordSuccess(desc.Name, kind, latency)
	o.logger.Info("provider attempt succeeded",
		zap.String("provider", desc.Name),
		zap.String("operation", string(kind)),
		zap.Int64("latency_ms", latency),
	)
	return result, attempt
}

// An attempt whose own deadline expired is a Timeout whatever the adapter reported.
func classifyAttempt(attemptCtx context.Context, err error) ErrorKind {
	if errors.Is(attemptCtx.Err(), context.DeadlineExceeded) {
		return ErrorKindTimeout
	}
	return ClassifyError(err)
}

func normalize(desc Descriptor, kind OperationKind, raw *RawResponse) (*Result, error) {
	if raw == nil {
		return nil, MalformedError(desc.Name, "adapter returned no response", nil)
	}

	result := &Result{
		Operation: kind,
		Provider:  desc.Name,
		Model:     raw.Model,
	}
	if result.Model == "" {
		result.Model = desc.Model
	}

	switch kind {
	case OperationTranscribe:
		transcript, err := NormalizeTranscript(desc.Name, raw.Transcript)
		if err != nil {
			return nil, err
		}
		result.Transcript = transcript
	case OperationSummarize:
		summary, err := NormalizeSummary(desc.Name, raw.Summary)
		if err != nil {
			return nil, err
		}
		result.Summary = summary
	default:
		return nil, NewProviderError(desc.Name, ErrorKindUnsupportedInput, "unknown operation "+string(kind))
	}
	return result, nil
}

func (o *Orchestrator) finish(success bool, start time.Time) {
	latency := float64(time.Since(start).Milliseconds())

	o.mu.Lock()
	defer o.mu.Unlock()

	if success {
		o.stats.SuccessfulRequests++
	} else {
		o.stats.FailedRequests++
	}
	completed := o.stats.SuccessfulRequests + o.stats.FailedRequests
	o.stats.AverageLatencyMs += (latency - o.stats.AverageLatencyMs) / float64(completed)
}

// GetStats returns current orchestrator statistics
func (o *Orchestrator) GetStats() OrchestratorStats {
	o.mu.RLock()
	defer o.mu.RUnlock()

	stats := o.stats
	stats.ProviderUsage = make(map[string]int64, len(o.stats.ProviderUsage))
	stats.ErrorsByProvider = make(map[string]int64, len(o.stats.ErrorsByProvider))
	for k, v := range o.stats.ProviderUsage {
		stats.ProviderUsage[k] = v
	}
	for k, v := range o.stats.ErrorsByProvider {
		stats.ErrorsByProvider[k] = v
	}
	return stats
}

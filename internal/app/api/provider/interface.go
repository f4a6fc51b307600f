package provider

import (
	"context"
)

// Adapter wraps one external provider behind a fixed capability set.
// Implementations translate the request, call the provider under ctx and
// classify failures as *ProviderError.
type Adapter interface {
	// Descriptor reports identity, capability and configuration presence
	Descriptor() Descriptor

	// Invoke performs a single call; the orchestrator bounds ctx per attempt.
	// Implementations must return promptly once ctx is done.
	Invoke(ctx context.Context, req *Request) (*RawResponse, error)
}

// Registry answers which adapters are usable for an operation
type Registry interface {
	// ConfiguredProviders returns configured adapters of kind ordered by priority.
	// An empty result is a valid answer.
	ConfiguredProviders(kind OperationKind) []Adapter

	// Descriptors returns every registered adapter, configured or not
	Descriptors() []Descriptor

	// Lookup retrieves an adapter by name
	Lookup(name string) (Adapter, error)
}

// Executor runs an operation against the fallback chain
type Executor interface {
	Execute(ctx context.Context, kind OperationKind, req *Request) (*Result, error)
}

// OrchestratorStats provides statistics about chain executions
type OrchestratorStats struct {
	TotalRequests      int64            `json:"total_requests"`
	SuccessfulRequests int64            `json:"successful_requests"`
	FailedRequests     int64            `json:"failed_requests"`
	FallbacksUsed      int64            `json:"fallbacks_used"`
	ProviderUsage      map[string]int64 `json:"provider_usage"`
	ErrorsByProvider   map[string]int64 `json:"errors_by_provider"`
	AverageLatencyMs   float64          `json:"average_latency_ms"`
}

// ProviderMetrics provides performance and usage metrics for providers
type ProviderMetrics interface {
	// Record a successful attempt
	RecordSuccess(provider string, operation OperationKind, latencyMs int64)

	// Record a failed attempt
	RecordFailure(provider string, operation OperationKind, kind ErrorKind, latencyMs int64)

	// Get metrics for a provider
	GetProviderMetrics(provider string) ProviderStats

	// Get overall metrics
	GetOverallMetrics() OverallStats
}

// ProviderStats contains statistics for a specific provider
type ProviderStats struct {
	Provider           string           `json:"provider"`
	Operation          OperationKind    `json:"operation,omitempty"`
	TotalRequests      int64            `json:"total_requests"`
	SuccessfulRequests int64            `json:"successful_requests"`
	FailedRequests     int64            `json:"failed_requests"`
	SuccessRate        float64          `json:"success_rate"`
	AverageLatencyMs   float64          `json:"average_latency_ms"`
	LastUsed           int64            `json:"last_used_timestamp"`
	IsHealthy          bool             `json:"is_healthy"`
	ErrorBreakdown     map[string]int64 `json:"error_breakdown"`
}

// OverallStats contains statistics across all providers
type OverallStats struct {
	TotalProviders       int                      `json:"total_providers"`
	ActiveProviders      int                      `json:"active_providers"`
	TotalRequests        int64                    `json:"total_requests"`
	SuccessfulRequests   int64                    `json:"successful_requests"`
	OverallSuccessRate   float64                  `json:"overall_success_rate"`
	FastestProvider      string                   `json:"fastest_provider"`
	MostReliableProvider string                   `json:"most_reliable_provider"`
	ProviderStats        map[string]ProviderStats `json:"provider_stats"`
}

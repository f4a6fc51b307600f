package provider

import (
	"sync"
	"time"
)

// DefaultProviderMetrics implements ProviderMetrics interface
type DefaultProviderMetrics struct {
	mu            sync.RWMutex
	providerStats map[string]*ProviderStats
	collectors    *PrometheusCollectors
	now           func() time.Time
}

// NewProviderMetrics creates a new provider metrics instance. collectors may be nil.
func NewProviderMetrics(collectors *PrometheusCollectors) *DefaultProviderMetrics {
	return &DefaultProviderMetrics{
		providerStats: make(map[string]*ProviderStats),
		collectors:    collectors,
		now:           time.Now,
	}
}

// RecordSuccess records a successful attempt
func (m *DefaultProviderMetrics) RecordSuccess(provider string, operation OperationKind, latencyMs int64) {
	m.collectors.observe(provider, operation, "success", "", latencyMs)

	m.mu.Lock()
	defer m.mu.Unlock()

	stats := m.getOrCreateStats(provider, operation)
	stats.TotalRequests++
	stats.SuccessfulRequests++
	stats.LastUsed = m.now().Unix()
	stats.IsHealthy = true

	// Weighted average favoring recent results
	if stats.AverageLatencyMs == 0 {
		stats.AverageLatencyMs = float64(latencyMs)
	} else {
		stats.AverageLatencyMs = (stats.AverageLatencyMs * 0.8) + (float64(latencyMs) * 0.2)
	}

	stats.SuccessRate = float64(stats.SuccessfulRequests) / float64(stats.TotalRequests)
}

// RecordFailure records a failed attempt
func (m *DefaultProviderMetrics) RecordFailure(provider string, operation OperationKind, kind ErrorKind, latencyMs int64) {
	m.collectors.observe(provider, operation, "failure", kind, latencyMs)

	m.mu.Lock()
	defer m.mu.Unlock()

	stats := m.getOrCreateStats(provider, operation)
	stats.TotalRequests++
	stats.FailedRequests++
	stats.LastUsed = m.now().Unix()
	stats.ErrorBreakdown[string(kind)]++

	stats.SuccessRate = float64(stats.SuccessfulRequests) / float64(stats.TotalRequests)

	if stats.TotalRequests >= 10 && stats.SuccessRate < 0.5 {
		stats.IsHealthy = false
	}
}

// GetProviderMetrics returns metrics for a specific provider
func (m *DefaultProviderMetrics) GetProviderMetrics(provider string) ProviderStats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats, exists := m.providerStats[provider]
	if !exists {
		return ProviderStats{
			Provider:       provider,
			IsHealthy:      true,
			ErrorBreakdown: map[string]int64{},
		}
	}
	return copyStats(stats)
}

// GetOverallMetrics returns overall metrics across all providers
func (m *DefaultProviderMetrics) GetOverallMetrics() OverallStats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var totalRequests, successfulRequests int64
	var fastestProvider, mostReliableProvider string
	var fastestLatency, highestReliability float64
	activeProviders := 0
	now := m.now().Unix()

	providerStats := make(map[string]ProviderStats, len(m.providerStats))

	for name, stats := range m.providerStats {
		totalRequests += stats.TotalRequests
		successfulRequests += stats.SuccessfulRequests
		providerStats[name] = copyStats(stats)

		if stats.SuccessfulRequests > 0 && stats.AverageLatencyMs > 0 &&
			(fastestLatency == 0 || stats.AverageLatencyMs < fastestLatency) {
			fastestLatency = stats.AverageLatencyMs
			fastestProvider = name
		}

		// Only rank reliability with meaningful volume
		if stats.TotalRequests >= 5 && stats.SuccessRate > highestReliability {
			highestReliability = stats.SuccessRate
			mostReliableProvider = name
		}

		if stats.LastUsed > 0 && now-stats.LastUsed < 3600 {
			activeProviders++
		}
	}

	var overallSuccessRate float64
	if totalRequests > 0 {
		overallSuccessRate = float64(successfulRequests) / float64(totalRequests)
	}

	return OverallStats{
		TotalProviders:       len(m.providerStats),
		ActiveProviders:      activeProviders,
		TotalRequests:        totalRequests,
		SuccessfulRequests:   successfulRequests,
		OverallSuccessRate:   overallSuccessRate,
		FastestProvider:      fastestProvider,
		MostReliableProvider: mostReliableProvider,
		ProviderStats:        providerStats,
	}
}

// must be called with lock held
func (m *DefaultProviderMetrics) getOrCreateStats(provider string, operation OperationKind) *ProviderStats {
	stats, exists := m.providerStats[provider]
	if !exists {
		stats = &ProviderStats{
			Provider:       provider,
			Operation:      operation,
			IsHealthy:      true,
			ErrorBreakdown: make(map[string]int64),
		}
		m.providerStats[provider] = stats
	}
	return stats
}

func copyStats(stats *ProviderStats) ProviderStats {
	out := *stats
	out.ErrorBreakdown = make(map[string]int64, len(stats.ErrorBreakdown))
	for k, v := range stats.ErrorBreakdown {
		out.ErrorBreakdown[k] = v
	}
	return out
}

package dto

import (
	"time"

	"briefly/internal/app/api/provider"
)

// ProviderListQuery filters GET /api/v1/providers
type ProviderListQuery struct {
	Operation  string `form:"operation" binding:"omitempty,oneof=transcribe summarize"`
	Configured *bool  `form:"configured"`
}

// Matches reports whether resp passes the filter
func (q ProviderListQuery) Matches(resp ProviderResponse) bool {
	if q.Operation != "" && resp.Operation != q.Operation {
		return false
	}
	return q.Configured == nil || resp.Configured == *q.Configured
}

// ChainsResponse lists the active fallback order for each operation
type ChainsResponse struct {
	Transcribe []string        `json:"transcribe"`
	Summarize  []string        `json:"summarize"`
	Status     provider.Status `json:"status"`
}

// ProviderResponse represents a provider in API responses
type ProviderResponse struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	Vendor              string `json:"vendor"`
	Operation           string `json:"operation"`
	Model               string `json:"model,omitempty"`
	Priority            int    `json:"priority"`
	Configured          bool   `json:"configured"`
	SupportsDiarization bool   `json:"supports_diarization"`
	// ChainPosition is the 1-based place in the operation's chain, 0 when not in it
	ChainPosition int   `json:"chain_position"`
	TimeoutSec    int64 `json:"timeout_sec"`
}

// ProviderStatsResponse represents provider usage statistics
type ProviderStatsResponse struct {
	ID                  string           `json:"id"`
	Name                string           `json:"name"`
	TotalRequests       int64            `json:"total_requests"`
	SuccessfulRequests  int64            `json:"successful_requests"`
	FailedRequests      int64            `json:"failed_requests"`
	AverageResponseTime float64          `json:"average_response_time_ms"`
	SuccessRate         float64          `json:"success_rate"`
	IsHealthy           bool             `json:"is_healthy"`
	ErrorBreakdown      map[string]int64 `json:"error_breakdown"`
	LastUsed            *time.Time       `json:"last_used,omitempty"`
}

// ToProviderResponse converts a descriptor to its response DTO
func ToProviderResponse(desc provider.Descriptor, chainPosition int) ProviderResponse {
	return ProviderResponse{
		ID:                  desc.Name,
		Name:                desc.DisplayName,
		Vendor:              desc.Vendor,
		Operation:           string(desc.Operation),
		Model:               desc.Model,
		Priority:            desc.Priority,
		Configured:          desc.IsConfigured,
		SupportsDiarization: desc.SupportsDiarization,
		ChainPosition:       chainPosition,
		TimeoutSec:          int64(desc.Timeout / time.Second),
	}
}

// ToProviderStatsResponse converts collected metrics to the response DTO
func ToProviderStatsResponse(desc provider.Descriptor, stats provider.ProviderStats) ProviderStatsResponse {
	resp := ProviderStatsResponse{
		ID:                  desc.Name,
		Name:                desc.DisplayName,
		TotalRequests:       stats.TotalRequests,
		SuccessfulRequests:  stats.SuccessfulRequests,
		FailedRequests:      stats.FailedRequests,
		AverageResponseTime: stats.AverageLatencyMs,
		SuccessRate:         stats.SuccessRate,
		IsHealthy:           stats.IsHealthy,
		ErrorBreakdown:      stats.ErrorBreakdown,
	}
	if stats.LastUsed > 0 {
		lastUsed := time.Unix(stats.LastUsed, 0).UTC()
		resp.LastUsed = &lastUsed
	}
	return resp
}

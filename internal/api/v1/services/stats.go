package services

import (
	"context"

	"briefly/internal/api/v1/dto"
	"briefly/internal/app/api/provider"
)

// OrchestratorStatsSource is satisfied by *provider.Orchestrator
type OrchestratorStatsSource interface {
	GetStats() provider.OrchestratorStats
}

// StatsServiceImpl implements the StatsService interface
type StatsServiceImpl struct {
	orchestrator OrchestratorStatsSource
	metrics      provider.ProviderMetrics
	registry     provider.Registry
}

// NewStatsService creates a new stats service
func NewStatsService(orchestrator OrchestratorStatsSource, metrics provider.ProviderMetrics, registry provider.Registry) StatsService {
	return &StatsServiceImpl{
		orchestrator: orchestrator,
		metrics:      metrics,
		registry:     registry,
	}
}

// GetSystemStats returns chain and provider statistics since process start
func (s *StatsServiceImpl) GetSystemStats(ctx context.Context) (*dto.SystemStats, error) {
	return &dto.SystemStats{
		Status:       provider.CurrentStatus(s.registry),
		Orchestrator: s.orchestrator.GetStats(),
		Providers:    s.metrics.GetOverallMetrics(),
	}, nil
}

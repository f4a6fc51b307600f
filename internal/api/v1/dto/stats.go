package dto

import (
	"briefly/internal/app/api/provider"
)

// SystemStats represents process-wide statistics since start
type SystemStats struct {
	Status       provider.Status            `json:"status"`
	Orchestrator provider.OrchestratorStats `json:"orchestrator"`
	Providers    provider.OverallStats      `json:"providers"`
}

package services

import (
	"context"

	"briefly/internal/api/v1/dto"
	"briefly/internal/app/distill"
	"briefly/internal/app/model"
)

// DistillService defines the distillation operations; *distill.Service implements it
type DistillService interface {
	ProcessChat(ctx context.Context, text string) (*model.DistillationResult, error)
	ProcessFile(ctx context.Context, text, fileName string) (*model.DistillationResult, error)
	ProcessCall(ctx context.Context, audio []byte, mimeHint, fileName string) (*model.DistillationResult, error)
	Health() distill.HealthReport
}

// ProviderService defines the interface for provider operations
type ProviderService interface {
	ListProviders(ctx context.Context, query dto.ProviderListQuery) ([]dto.ProviderResponse, error)
	GetProvider(ctx context.Context, id string) (*dto.ProviderResponse, error)
	GetProviderStats(ctx context.Context, id string) (*dto.ProviderStatsResponse, error)
	Chains(ctx context.Context) (*dto.ChainsResponse, error)
}

// StatsService defines the interface for statistics operations
type StatsService interface {
	GetSystemStats(ctx context.Context) (*dto.SystemStats, error)
}

var _ DistillService = (*distill.Service)(nil)

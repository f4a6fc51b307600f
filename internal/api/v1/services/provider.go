package services

import (
	"context"
	"sort"

	"github.com/samber/lo"

	"briefly/internal/api/errors"
	"briefly/internal/api/v1/dto"
	"briefly/internal/app/api/provider"
)

// ProviderServiceImpl implements ProviderService over the capability registry.
// It reports configuration and recorded metrics only and never calls a provider.
type ProviderServiceImpl struct {
	registry provider.Registry
	metrics  provider.ProviderMetrics
}

// NewProviderService creates a new provider service
func NewProviderService(registry provider.Registry, metrics provider.ProviderMetrics) ProviderService {
	return &ProviderServiceImpl{
		registry: registry,
		metrics:  metrics,
	}
}

// ListProviders lists the registered providers matching query, transcription
// first, each operation in chain order
func (s *ProviderServiceImpl) ListProviders(ctx context.Context, query dto.ProviderListQuery) ([]dto.ProviderResponse, error) {
	descriptors := s.registry.Descriptors()
	sort.SliceStable(descriptors, func(i, j int) bool {
		if descriptors[i].Operation != descriptors[j].Operation {
			return descriptors[i].Operation == provider.OperationTranscribe
		}
		if descriptors[i].Priority != descriptors[j].Priority {
			return descriptors[i].Priority < descriptors[j].Priority
		}
		return descriptors[i].Name < descriptors[j].Name
	})

	responses := lo.Map(descriptors, func(desc provider.Descriptor, _ int) dto.ProviderResponse {
		return dto.ToProviderResponse(desc, s.chainPosition(desc))
	})
	return lo.Filter(responses, func(resp dto.ProviderResponse, _ int) bool {
		return query.Matches(resp)
	}), nil
}

// GetProvider gets detailed information about a specific provider
func (s *ProviderServiceImpl) GetProvider(ctx context.Context, id string) (*dto.ProviderResponse, error) {
	adapter, err := s.registry.Lookup(id)
	if err != nil {
		return nil, errors.NewNotFoundError("provider")
	}

	desc := adapter.Descriptor()
	resp := dto.ToProviderResponse(desc, s.chainPosition(desc))
	return &resp, nil
}

// GetProviderStats gets usage statistics for a provider
func (s *ProviderServiceImpl) GetProviderStats(ctx context.Context, id string) (*dto.ProviderStatsResponse, error) {
	adapter, err := s.registry.Lookup(id)
	if err != nil {
		return nil, errors.NewNotFoundError("provider")
	}

	resp := dto.ToProviderStatsResponse(adapter.Descriptor(), s.metrics.GetProviderMetrics(id))
	return &resp, nil
}

// Chains reports the configured fallback order for both operations
func (s *ProviderServiceImpl) Chains(ctx context.Context) (*dto.ChainsResponse, error) {
	return &dto.ChainsResponse{
		Transcribe: append([]string{}, provider.ChainNames(s.registry, provider.OperationTranscribe)...),
		Summarize:  append([]string{}, provider.ChainNames(s.registry, provider.OperationSummarize)...),
		Status:     provider.CurrentStatus(s.registry),
	}, nil
}

func (s *ProviderServiceImpl) chainPosition(desc provider.Descriptor) int {
	return lo.IndexOf(provider.ChainNames(s.registry, desc.Operation), desc.Name) + 1
}

package distill

import (
	"github.com/samber/lo"

	"briefly/internal/app/api/provider"
)

// HealthReport is derived from configuration presence only
type HealthReport struct {
	APIReady      bool            `json:"api_ready"`
	Status        provider.Status `json:"status"`
	Fallbacks     map[string]bool `json:"fallbacks"`
	Transcription ChainReport     `json:"transcription"`
	Summarization ChainReport     `json:"summarization"`
}

// ChainReport lists the configured candidates of one operation in try order
type ChainReport struct {
	Chain       []string `json:"chain"`
	Diarization *bool    `json:"diarization,omitempty"`
}

// Health reports readiness without contacting any provider
func (s *Service) Health() HealthReport {
	status := provider.CurrentStatus(s.registry)

	flags := provider.ConfiguredFlags(s.registry)
	for name, configured := range s.extraFlags {
		flags[name] = configured
	}

	transcribers := s.registry.ConfiguredProviders(provider.OperationTranscribe)
	diarization := lo.ContainsBy(transcribers, func(adapter provider.Adapter) bool {
		return adapter.Descriptor().SupportsDiarization
	})

	return HealthReport{
		APIReady:  status != provider.StatusRestricted,
		Status:    status,
		Fallbacks: flags,
		Transcription: ChainReport{
			Chain:       provider.ChainNames(s.registry, provider.OperationTranscribe),
			Diarization: &diarization,
		},
		Summarization: ChainReport{
			Chain: provider.ChainNames(s.registry, provider.OperationSummarize),
		},
	}
}

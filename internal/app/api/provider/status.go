package provider

import (
	"github.com/samber/lo"
)

// Status is the three-level health signal
type Status string

const (
	StatusOperational Status = "operational"
	StatusDegraded    Status = "degraded"
	StatusRestricted  Status = "restricted"
)

// CurrentStatus derives the status from configuration presence alone; it
// never contacts a provider.
func CurrentStatus(registry Registry) Status {
	transcribers := registry.ConfiguredProviders(OperationTranscribe)
	summarizers := registry.ConfiguredProviders(OperationSummarize)

	if len(transcribers) == 0 || len(summarizers) == 0 {
		return StatusRestricted
	}

	diarizing := lo.ContainsBy(transcribers, func(adapter Adapter) bool {
		return adapter.Descriptor().SupportsDiarization
	})
	if diarizing {
		return StatusOperational
	}
	return StatusDegraded
}

// ConfiguredFlags maps every registered provider name to its configuration presence
func ConfiguredFlags(registry Registry) map[string]bool {
	return lo.SliceToMap(registry.Descriptors(), func(desc Descriptor) (string, bool) {
		return desc.Name, desc.IsConfigured
	})
}

package provider

import (
	"fmt"
	"sort"
	"sync"

	"github.com/samber/lo"
)

// CapabilityRegistry implements Registry. Adapters are registered while the
// process starts; afterwards the registry is only read.
type CapabilityRegistry struct {
	mu       sync.RWMutex
	adapters []Adapter
	index    map[string]Adapter
}

// NewCapabilityRegistry creates an empty registry
func NewCapabilityRegistry() *CapabilityRegistry {
	return &CapabilityRegistry{
		index: make(map[string]Adapter),
	}
}

// Register adds an adapter. Unconfigured adapters are accepted so that health
// reporting can list them.
func (r *CapabilityRegistry) Register(adapter Adapter) error {
	if adapter == nil {
		return fmt.Errorf("adapter cannot be nil")
	}

	desc := adapter.Descriptor()
	if desc.Name == "" {
		return fmt.Errorf("adapter name cannot be empty")
	}
	if !desc.Operation.Valid() {
		return fmt.Errorf("adapter '%s' has unknown operation kind %q", desc.Name, desc.Operation)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.index[desc.Name]; exists {
		return fmt.Errorf("adapter '%s' already registered", desc.Name)
	}

	r.adapters = append(r.adapters, adapter)
	r.index[desc.Name] = adapter
	return nil
}

// ConfiguredProviders returns the configured adapters for kind, lowest priority first.
// Ties keep registration order.
func (r *CapabilityRegistry) ConfiguredProviders(kind OperationKind) []Adapter {
	r.mu.RLock()
	snapshot := append([]Adapter(nil), r.adapters...)
	r.mu.RUnlock()

	configured := lo.Filter(snapshot, func(adapter Adapter, _ int) bool {
		desc := adapter.Descriptor()
		return desc.Operation == kind && desc.IsConfigured
	})

	sort.SliceStable(configured, func(i, j int) bool {
		return configured[i].Descriptor().Priority < configured[j].Descriptor().Priority
	})
	return configured
}

// Descriptors returns all descriptors, transcription first, each kind by priority
func (r *CapabilityRegistry) Descriptors() []Descriptor {
	r.mu.RLock()
	descriptors := lo.Map(r.adapters, func(adapter Adapter, _ int) Descriptor {
		return adapter.Descriptor()
	})
	r.mu.RUnlock()

	sort.SliceStable(descriptors, func(i, j int) bool {
		if descriptors[i].Operation != descriptors[j].Operation {
			return descriptors[i].Operation == OperationTranscribe
		}
		return descriptors[i].Priority < descriptors[j].Priority
	})
	return descriptors
}

// Lookup retrieves an adapter by name
func (r *CapabilityRegistry) Lookup(name string) (Adapter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	adapter, exists := r.index[name]
	if !exists {
		return nil, fmt.Errorf("provider '%s' not found", name)
	}
	return adapter, nil
}

// ChainNames returns the configured candidate names for kind, in the order they are tried
func ChainNames(registry Registry, kind OperationKind) []string {
	return lo.Map(registry.ConfiguredProviders(kind), func(adapter Adapter, _ int) string {
		return adapter.Descriptor().Name
	})
}

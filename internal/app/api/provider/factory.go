package provider

import (
	"fmt"
	"sort"
	"sync"
)

// ProviderCreator builds an adapter instance from its configuration
type ProviderCreator func(name string, config ProviderConfig) (Adapter, error)

// ProviderFactory maps adapter types to creators. It is built explicitly at
// startup rather than populated by package init functions.
type ProviderFactory struct {
	mu       sync.RWMutex
	creators map[string]ProviderCreator
}

// NewProviderFactory creates an empty factory
func NewProviderFactory() *ProviderFactory {
	return &ProviderFactory{
		creators: make(map[string]ProviderCreator),
	}
}

// Register registers a creator for providerType
func (f *ProviderFactory) Register(providerType string, creator ProviderCreator) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creators[providerType] = creator
}

// CreateProvider creates an adapter instance
func (f *ProviderFactory) CreateProvider(name string, config ProviderConfig) (Adapter, error) {
	f.mu.RLock()
	creator, ok := f.creators[config.Type]
	f.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("provider type %s not registered", config.Type)
	}

	adapter, err := creator(name, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider '%s': %w", name, err)
	}
	return adapter, nil
}

// GetAvailableProviders returns the registered provider types
func (f *ProviderFactory) GetAvailableProviders() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	types := make([]string, 0, len(f.creators))
	for providerType := range f.creators {
		types = append(types, providerType)
	}
	sort.Strings(types)
	return types
}

// BuildRegistry creates every configured instance and registers it.
// Disabled or credential-less instances are still registered so that health
// reporting can show them as unconfigured.
func (f *ProviderFactory) BuildRegistry(config *ProviderConfiguration) (*CapabilityRegistry, error) {
	registry := NewCapabilityRegistry()

	for _, name := range config.ProviderNames() {
		adapter, err := f.CreateProvider(name, config.Providers[name])
		if err != nil {
			return nil, err
		}
		if err := registry.Register(adapter); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

package provider

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ProviderConfiguration represents the complete provider configuration
type ProviderConfiguration struct {
	// Provider instances keyed by their unique name
	Providers map[string]ProviderConfig `yaml:"providers"`

	Orchestrator OrchestratorConfig `yaml:"orchestrator"`
}

// ProviderConfig represents configuration for a single adapter instance
type ProviderConfig struct {
	// Adapter type (elevenlabs_stt, deepgram_stt, groq_whisper, ...)
	Type string `yaml:"type"`

	Enabled bool `yaml:"enabled"`

	// Lower values are tried first within the operation's chain
	Priority int `yaml:"priority"`

	Model string `yaml:"model,omitempty"`

	// Adapter-specific settings
	Settings map[string]interface{} `yaml:"settings,omitempty"`

	Auth AuthConfig `yaml:"auth,omitempty"`

	Performance PerformanceConfig `yaml:"performance,omitempty"`
}

// AuthConfig represents authentication configuration
type AuthConfig struct {
	// API key, may reference a variable like ${GROQ_API_KEY}
	APIKey string `yaml:"api_key,omitempty"`

	BaseURL string `yaml:"base_url,omitempty"`

	Headers map[string]string `yaml:"headers,omitempty"`
}

// PerformanceConfig represents performance-related configuration
type PerformanceConfig struct {
	// Bound on a single attempt against this provider
	TimeoutSec int `yaml:"timeout_sec,omitempty"`
}

// Timeout returns the per-attempt bound, zero meaning the orchestrator default
func (c ProviderConfig) Timeout() time.Duration {
	return time.Duration(c.Performance.TimeoutSec) * time.Second
}

// SettingString reads a string setting, falling back to def
func (c ProviderConfig) SettingString(key, def string) string {
	if v, ok := c.Settings[key].(string); ok && v != "" {
		return v
	}
	return def
}

// SettingInt reads an integer setting, falling back to def
func (c ProviderConfig) SettingInt(key string, def int) int {
	switch v := c.Settings[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return def
}

// SettingFloat reads a float setting, falling back to def
func (c ProviderConfig) SettingFloat(key string, def float64) float64 {
	switch v := c.Settings[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return def
}

// SettingBool reads a boolean setting, falling back to def
func (c ProviderConfig) SettingBool(key string, def bool) bool {
	if v, ok := c.Settings[key].(bool); ok {
		return v
	}
	return def
}

// Configured reports whether the instance is enabled and has a credential
func (c ProviderConfig) Configured() bool {
	return c.Enabled && c.Auth.APIKey != ""
}

// ProviderNames returns the configured instance names in a stable order
func (c *ProviderConfiguration) ProviderNames() []string {
	names := make([]string, 0, len(c.Providers))
	for name := range c.Providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ConfigManager manages provider configuration
type ConfigManager struct {
	configPath string
	defaults   *ProviderConfiguration
	lookup     func(string) string
}

// NewConfigManager creates a configuration manager. defaults is used when
// the file does not exist; lookup resolves ${VAR} references.
func NewConfigManager(configPath string, defaults *ProviderConfiguration, lookup func(string) string) *ConfigManager {
	if lookup == nil {
		lookup = func(string) string { return "" }
	}
	return &ConfigManager{
		configPath: configPath,
		defaults:   defaults,
		lookup:     lookup,
	}
}

// LoadConfig loads configuration from the YAML file, or the defaults when
// the file is absent. Variable references are expanded either way.
func (cm *ConfigManager) LoadConfig() (*ProviderConfiguration, error) {
	var config ProviderConfiguration

	data, err := os.ReadFile(cm.configPath)
	switch {
	case os.IsNotExist(err) || cm.configPath == "":
		if cm.defaults == nil {
			return nil, fmt.Errorf("config file %s not found and no defaults given", cm.configPath)
		}
		config = cloneConfiguration(cm.defaults)
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	}

	cm.expandVariables(&config)

	if err := ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// SaveConfig writes configuration to the YAML file without expanding variables
func (cm *ConfigManager) SaveConfig(config *ProviderConfiguration) error {
	dir := filepath.Dir(cm.configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	if err := os.WriteFile(cm.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (cm *ConfigManager) expandVariables(config *ProviderConfiguration) {
	for name, providerConfig := range config.Providers {
		providerConfig.Auth.APIKey = strings.TrimSpace(os.Expand(providerConfig.Auth.APIKey, cm.lookup))
		providerConfig.Auth.BaseURL = os.Expand(providerConfig.Auth.BaseURL, cm.lookup)

		if len(providerConfig.Auth.Headers) > 0 {
			headers := make(map[string]string, len(providerConfig.Auth.Headers))
			for key, value := range providerConfig.Auth.Headers {
				headers[key] = os.Expand(value, cm.lookup)
			}
			providerConfig.Auth.Headers = headers
		}

		config.Providers[name] = providerConfig
	}
}

// ValidateConfiguration checks structural problems that do not depend on which adapters exist
func ValidateConfiguration(config *ProviderConfiguration) error {
	if len(config.Providers) == 0 {
		return fmt.Errorf("no providers defined")
	}

	for _, name := range config.ProviderNames() {
		providerConfig := config.Providers[name]
		if providerConfig.Type == "" {
			return fmt.Errorf("provider '%s' has no type specified", name)
		}
		if providerConfig.Priority < 0 {
			return fmt.Errorf("provider '%s' has negative priority", name)
		}
		if providerConfig.Performance.TimeoutSec < 0 {
			return fmt.Errorf("provider '%s' has invalid timeout", name)
		}
	}

	if config.Orchestrator.DefaultAttemptTimeout < 0 || config.Orchestrator.RequestTimeout < 0 {
		return fmt.Errorf("orchestrator timeouts must not be negative")
	}
	return nil
}

func cloneConfiguration(src *ProviderConfiguration) ProviderConfiguration {
	out := ProviderConfiguration{
		Providers:    make(map[string]ProviderConfig, len(src.Providers)),
		Orchestrator: src.Orchestrator,
	}
	for name, providerConfig := range src.Providers {
		if providerConfig.Settings != nil {
			settings := make(map[string]interface{}, len(providerConfig.Settings))
			for k, v := range providerConfig.Settings {
				settings[k] = v
			}
			providerConfig.Settings = settings
		}
		if providerConfig.Auth.Headers != nil {
			headers := make(map[string]string, len(providerConfig.Auth.Headers))
			for k, v := range providerConfig.Auth.Headers {
				headers[k] = v
			}
			providerConfig.Auth.Headers = headers
		}
		out.Providers[name] = providerConfig
	}
	return out
}

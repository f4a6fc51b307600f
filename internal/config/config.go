// Package config builds the explicit configuration passed to every component.
// It is the only package that reads the process environment.
package config

import (
	"os"
	"path/filepath"

	"briefly/internal/app/api/provider"
)

// DefaultProvidersFile is looked up in the working directory
const DefaultProvidersFile = "providers.yaml"

// Config is constructed once at startup
type Config struct {
	Server        ServerConfig
	Keys          Keys
	Providers     provider.ProviderConfiguration
	ProvidersPath string
	HistoryPath   string `validate:"required"`
	LogLevel      string `validate:"oneof=debug info warn error"`
}

// Load reads provider settings from providersPath (defaults when the file is
// missing) and everything else from lookup. A nil lookup uses os.Getenv.
func Load(providersPath string, lookup func(string) string) (*Config, error) {
	if lookup == nil {
		lookup = os.Getenv
	}
	if providersPath == "" {
		providersPath = getOrDefault(lookup, "BRIEFLY_PROVIDERS", DefaultProvidersFile)
	}

	manager := provider.NewConfigManager(providersPath, DefaultProviderConfiguration(), lookup)
	providers, err := manager.LoadConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:        serverFrom(lookup),
		Keys:          keysFrom(lookup),
		Providers:     *providers,
		ProvidersPath: providersPath,
		HistoryPath:   getOrDefault(lookup, "BRIEFLY_HISTORY", DefaultHistoryPath()),
		LogLevel:      getOrDefault(lookup, "BRIEFLY_LOG_LEVEL", "info"),
	}, nil
}

// DefaultHistoryPath is ~/.briefly/history.json, or a relative path when the
// home directory is unknown
func DefaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(".briefly", "history.json")
	}
	return filepath.Join(home, ".briefly", "history.json")
}

// Development reports whether verbose, human-oriented logging is wanted
func (c *Config) Development() bool {
	return c.Server.Environment != "production"
}

package provider

import (
	"time"
)

// OrchestratorConfig defines how chains are driven
type OrchestratorConfig struct {
	// DefaultAttemptTimeout bounds an attempt whose descriptor declares no timeout
	DefaultAttemptTimeout time.Duration `yaml:"default_attempt_timeout" json:"default_attempt_timeout"`

	// RequestTimeout is the outer deadline applied by callers around a whole request
	RequestTimeout time.Duration `yaml:"request_timeout" json:"request_timeout"`
}

// DefaultOrchestratorConfig returns a default orchestrator configuration
func DefaultOrchestratorConfig() OrchestratorConfig {
	return OrchestratorConfig{
		DefaultAttemptTimeout: 60 * time.Second,
		RequestTimeout:        10 * time.Minute,
	}
}

func (c OrchestratorConfig) attemptTimeout(desc Descriptor) time.Duration {
	if desc.Timeout > 0 {
		return desc.Timeout
	}
	if c.DefaultAttemptTimeout > 0 {
		return c.DefaultAttemptTimeout
	}
	return DefaultOrchestratorConfig().DefaultAttemptTimeout
}

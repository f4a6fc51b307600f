package config

import (
	"time"

	"briefly/internal/app/api/provider"
)

// Server defaults
const (
	DefaultHost           = "0.0.0.0"
	DefaultPort           = 8080
	DefaultReadTimeout    = 5 * time.Minute
	DefaultWriteTimeout   = 10 * time.Minute
	DefaultIdleTimeout    = 2 * time.Minute
	DefaultMaxUploadBytes = 50 << 20
)

// Per-attempt timeout defaults, in seconds
const (
	DefaultElevenLabsTimeoutSec = 120
	DefaultDeepgramTimeoutSec   = 120
	DefaultGroqTimeoutSec       = 60
	DefaultGeminiTimeoutSec     = 60
)

// Model defaults
const (
	DefaultScribeModel  = "scribe_v2"
	DefaultNovaModel    = "nova-2"
	DefaultWhisperModel = "whisper-large-v3"
	DefaultLlamaModel   = "llama-3.3-70b-versatile"
	DefaultGeminiModel  = "gemini-2.0-flash"
)

// DefaultProviderConfiguration is used when no providers.yaml exists.
// Keys are variable references resolved when the configuration is loaded.
func DefaultProviderConfiguration() *provider.ProviderConfiguration {
	return &provider.ProviderConfiguration{
		Providers: map[string]provider.ProviderConfig{
			"elevenlabs-scribe": {
				Type:        "elevenlabs_stt",
				Enabled:     true,
				Priority:    10,
				Model:       DefaultScribeModel,
				Auth:        provider.AuthConfig{APIKey: "${ELEVENLABS_API_KEY}"},
				Settings:    map[string]interface{}{"language_code": "en", "diarize": true},
				Performance: provider.PerformanceConfig{TimeoutSec: DefaultElevenLabsTimeoutSec},
			},
			"deepgram-nova": {
				Type:        "deepgram_stt",
				Enabled:     true,
				Priority:    20,
				Model:       DefaultNovaModel,
				Auth:        provider.AuthConfig{APIKey: "${DEEPGRAM_API_KEY}"},
				Settings:    map[string]interface{}{"language": "en"},
				Performance: provider.PerformanceConfig{TimeoutSec: DefaultDeepgramTimeoutSec},
			},
			"groq-whisper": {
				Type:        "groq_whisper",
				Enabled:     true,
				Priority:    30,
				Model:       DefaultWhisperModel,
				Auth:        provider.AuthConfig{APIKey: "${GROQ_API_KEY}"},
				Settings:    map[string]interface{}{"language": "en"},
				Performance: provider.PerformanceConfig{TimeoutSec: DefaultGroqTimeoutSec},
			},
			"groq-llama": {
				Type:     "groq_chat",
				Enabled:  true,
				Priority: 10,
				Model:    DefaultLlamaModel,
				Auth:     provider.AuthConfig{APIKey: "${GROQ_API_KEY}"},
				Settings: map[string]interface{}{
					"temperature":            0.7,
					"max_tokens":             150,
					"consolidate_max_tokens": 200,
					"chunk_size":             100000,
				},
				Performance: provider.PerformanceConfig{TimeoutSec: DefaultGroqTimeoutSec},
			},
			"deepgram-summarize": {
				Type:        "deepgram_summarize",
				Enabled:     true,
				Priority:    20,
				Auth:        provider.AuthConfig{APIKey: "${DEEPGRAM_API_KEY}"},
				Settings:    map[string]interface{}{"language": "en"},
				Performance: provider.PerformanceConfig{TimeoutSec: DefaultDeepgramTimeoutSec},
			},
			"gemini-flash": {
				Type:        "gemini_chat",
				Enabled:     true,
				Priority:    30,
				Model:       DefaultGeminiModel,
				Auth:        provider.AuthConfig{APIKey: "${GEMINI_API_KEY}"},
				Performance: provider.PerformanceConfig{TimeoutSec: DefaultGeminiTimeoutSec},
			},
		},
		Orchestrator: provider.DefaultOrchestratorConfig(),
	}
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) string {
	return func(key string) string {
		return env[key]
	}
}

var knownTypes = []string{"elevenlabs_stt", "deepgram_stt", "deepgram_summarize", "groq_whisper", "groq_chat", "gemini_chat"}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), lookupFrom(map[string]string{
		"GROQ_API_KEY":     "gsk_test",
		"DEEPGRAM_API_KEY": " dg_test ",
		"MURF_API_KEY":     "murf",
	}))
	require.NoError(t, err)

	assert.Equal(t, DefaultHost, cfg.Server.Host)
	assert.Equal(t, DefaultPort, cfg.Server.Port)
	assert.Equal(t, int64(DefaultMaxUploadBytes), cfg.Server.MaxUploadBytes)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.True(t, cfg.Development())

	assert.Equal(t, "gsk_test", cfg.Providers.Providers["groq-llama"].Auth.APIKey)
	assert.Equal(t, "gsk_test", cfg.Providers.Providers["groq-whisper"].Auth.APIKey)
	assert.Empty(t, cfg.Providers.Providers["elevenlabs-scribe"].Auth.APIKey)
	assert.False(t, cfg.Providers.Providers["elevenlabs-scribe"].Configured())
	assert.Equal(t, "dg_test", cfg.Keys.Deepgram)
	assert.Equal(t, map[string]bool{"murf": true}, cfg.Keys.Flags())
	assert.Equal(t, []string{"Deepgram", "Groq", "Murf"}, cfg.Keys.Available())

	assert.NoError(t, cfg.Validate(knownTypes))

	// defaults are never mutated by expansion
	assert.Equal(t, "${GROQ_API_KEY}", DefaultProviderConfiguration().Providers["groq-llama"].Auth.APIKey)
}

func TestLoad_FromFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "providers.yaml")
	yaml := `
providers:
  groq-llama:
    type: groq_chat
    enabled: true
    priority: 5
    auth:
      api_key: ${GROQ_API_KEY}
orchestrator:
  default_attempt_timeout: 30s
  request_timeout: 2m
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path, lookupFrom(map[string]string{
		"GROQ_API_KEY":      "gsk_file",
		"PORT":              "9090",
		"BRIEFLY_ENV":       "production",
		"BRIEFLY_HISTORY":   "/tmp/briefly.db",
		"BRIEFLY_LOG_LEVEL": "debug",
		"CORS_ORIGINS":      "https://a.example, ,https://b.example",
	}))
	require.NoError(t, err)

	require.Len(t, cfg.Providers.Providers, 1)
	assert.Equal(t, 5, cfg.Providers.Providers["groq-llama"].Priority)
	assert.Equal(t, "gsk_file", cfg.Providers.Providers["groq-llama"].Auth.APIKey)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:9090", cfg.Server.Addr())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
	assert.False(t, cfg.Development())
	assert.Equal(t, "/tmp/briefly.db", cfg.HistoryPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, path, cfg.ProvidersPath)
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "providers.yaml")
	require.NoError(t, os.WriteFile(path, []byte("providers: [unclosed"), 0o644))

	_, err := Load(path, lookupFrom(nil))
	assert.Error(t, err)
}

func TestValidate_AggregatesProblems(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), lookupFrom(map[string]string{
		"PORT":              "not-a-port",
		"BRIEFLY_ENV":       "staging",
		"BRIEFLY_LOG_LEVEL": "trace",
	}))
	require.NoError(t, err)

	cfg.Server.ReadTimeout = 0
	cfg.Server.MaxUploadBytes = 10
	llama := cfg.Providers.Providers["groq-llama"]
	llama.Priority = -1
	cfg.Providers.Providers["groq-llama"] = llama
	gemini := cfg.Providers.Providers["gemini-flash"]
	gemini.Type = "bard_chat"
	cfg.Providers.Providers["gemini-flash"] = gemini

	err = cfg.Validate(knownTypes)
	require.Error(t, err)

	msg := err.Error()
	for _, want := range []string{
		"Config.Server.Port out of range",
		"Config.Server.Environment must be one of",
		"Config.LogLevel must be one of",
		"Config.Server.MaxUploadBytes out of range",
		"read timeout must be positive",
		"provider groq-llama: priority must not be negative",
		`provider gemini-flash: unknown type "bard_chat"`,
	} {
		assert.Contains(t, msg, want)
	}
	assert.Equal(t, 7, strings.Count(msg, "\n  - "))
}

func TestValidateTimeout(t *testing.T) {
	tests := []struct {
		timeout string
		wantErr bool
	}{
		{"1s", false},
		{"30m", false},
		{"0s", true},
		{"31m", true},
	}
	for _, tt := range tests {
		t.Run(tt.timeout, func(t *testing.T) {
			d, err := time.ParseDuration(tt.timeout)
			require.NoError(t, err)
			assert.Equal(t, tt.wantErr, ValidateTimeout(d, "test") != nil)
		})
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	loaded, err := LoadEnv()
	require.NoError(t, err)
	assert.Empty(t, loaded)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.local"), []byte("BRIEFLY_TEST_ONLY_KEY=from-dotenv\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("BRIEFLY_TEST_ONLY_KEY") })

	loaded, err = LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, ".env.local", loaded)
	assert.Equal(t, "from-dotenv", os.Getenv("BRIEFLY_TEST_ONLY_KEY"))
}

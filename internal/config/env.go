package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// EnvFiles are tried in order; the first one found is loaded
var EnvFiles = []string{
	".env",
	".env.local",
	"../.env",
	"../../.env",
}

// LoadEnv loads the first .env file found. A missing file is not an error
// because keys may be set in the environment directly. It returns the file
// that was loaded, if any.
func LoadEnv() (string, error) {
	for _, envPath := range EnvFiles {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return "", fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			return envPath, nil
		}
	}
	return "", nil
}

// Keys holds provider credentials. They are read once at startup and
// reach adapters only through the provider configuration.
type Keys struct {
	ElevenLabs string
	Deepgram   string
	Groq       string
	Gemini     string
	Murf       string
}

func keysFrom(lookup func(string) string) Keys {
	get := func(name string) string {
		return strings.TrimSpace(lookup(name))
	}
	return Keys{
		ElevenLabs: get("ELEVENLABS_API_KEY"),
		Deepgram:   get("DEEPGRAM_API_KEY"),
		Groq:       get("GROQ_API_KEY"),
		Gemini:     get("GEMINI_API_KEY"),
		Murf:       get("MURF_API_KEY"),
	}
}

// Flags reports configuration presence for services without an adapter
func (k Keys) Flags() map[string]bool {
	return map[string]bool{"murf": k.Murf != ""}
}

// Available names the vendors that have a key, for startup banners
func (k Keys) Available() []string {
	var names []string
	for _, entry := range []struct {
		name string
		key  string
	}{
		{"ElevenLabs", k.ElevenLabs},
		{"Deepgram", k.Deepgram},
		{"Groq", k.Groq},
		{"Gemini", k.Gemini},
		{"Murf", k.Murf},
	} {
		if entry.key != "" {
			names = append(names, entry.name)
		}
	}
	return names
}

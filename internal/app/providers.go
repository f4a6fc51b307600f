package app

import (
	"briefly/internal/app/api/deepgram"
	"briefly/internal/app/api/elevenlabs"
	"briefly/internal/app/api/gemini"
	openaiclient "briefly/internal/app/api/openai"
	"briefly/internal/app/api/openai/chat"
	"briefly/internal/app/api/openai/whisper"
	"briefly/internal/app/api/provider"
)

// NewProviderFactory returns a factory with every built-in adapter type registered
func NewProviderFactory() *provider.ProviderFactory {
	factory := provider.NewProviderFactory()

	factory.Register(elevenlabs.ProviderType, elevenlabs.NewFromConfig)
	factory.Register(deepgram.STTProviderType, deepgram.NewSTTFromConfig)
	factory.Register(deepgram.SummarizeProviderType, deepgram.NewSummarizeFromConfig)
	factory.Register(whisper.GroqProviderType, whisper.Creator("groq", openaiclient.GroqBaseURL))
	factory.Register(whisper.OpenAIProviderType, whisper.Creator("openai", ""))
	factory.Register(chat.GroqProviderType, chat.Creator("groq", openaiclient.GroqBaseURL))
	factory.Register(chat.OpenAIProviderType, chat.Creator("openai", ""))
	factory.Register(gemini.ProviderType, gemini.NewFromConfig)

	return factory
}

// Package distill turns chats, documents and calls into one-line summaries
// by driving the provider fallback chains.
package distill

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"briefly/internal/app/api/provider"
	apperrors "briefly/internal/app/errors"
	"briefly/internal/app/model"
)

// Service is the entry point used by the HTTP API and the CLI.
// It never reads or writes history.
type Service struct {
	executor provider.Executor
	registry provider.Registry
	logger   *zap.Logger

	extraFlags map[string]bool
	now        func() time.Time
}

// Option configures a Service
type Option func(*Service)

// WithClock overrides the clock used to stamp results
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithConfiguredFlags adds configuration flags for services that have no
// adapter (such as text-to-speech) to the health report
func WithConfiguredFlags(flags map[string]bool) Option {
	return func(s *Service) {
		for name, configured := range flags {
			s.extraFlags[name] = configured
		}
	}
}

// NewService creates a distillation service
func NewService(executor provider.Executor, registry provider.Registry, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		executor:   executor,
		registry:   registry,
		logger:     logger.Named("distill"),
		extraFlags: make(map[string]bool),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProcessChat summarizes a pasted conversation
func (s *Service) ProcessChat(ctx context.Context, text string) (*model.DistillationResult, error) {
	return s.processText(ctx, text, model.ContentTypeInteraction, "")
}

// ProcessFile summarizes text already extracted from a document
func (s *Service) ProcessFile(ctx context.Context, text, fileName string) (*model.DistillationResult, error) {
	return s.processText(ctx, text, model.ContentTypeDocument, fileName)
}

func (s *Service) processText(ctx context.Context, text, contentType, sourceName string) (*model.DistillationResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.ErrEmptyContent
	}

	summary, err := s.executor.Execute(ctx, provider.OperationSummarize, &provider.Request{
		Text:        text,
		ContentType: contentType,
	})
	if err != nil {
		return nil, err
	}

	result := &model.DistillationResult{
		Type:            model.ResultTypeChat,
		Summary:         summary.Summary,
		OriginalText:    text,
		Timestamp:       s.now().UTC(),
		SummaryProvider: summary.Provider,
		SourceName:      sourceName,
	}
	s.logger.Info("distilled text",
		zap.String("content_type", contentType),
		zap.String("summary_provider", summary.Provider),
		zap.Int("attempts", len(summary.Attempts)),
	)
	return result, nil
}

// ProcessCall transcribes audio and summarizes the transcript as a voice capture
func (s *Service) ProcessCall(ctx context.Context, audio []byte, mimeHint, fileName string) (*model.DistillationResult, error) {
	if len(audio) == 0 {
		return nil, apperrors.ErrEmptyContent
	}
	// Fail before transcribing when no summarizer is configured
	if s.registry != nil && len(s.registry.ConfiguredProviders(provider.OperationSummarize)) == 0 {
		return nil, &provider.NoProviderConfiguredError{Operation: provider.OperationSummarize}
	}

	transcription, err := s.executor.Execute(ctx, provider.OperationTranscribe, &provider.Request{
		Audio:    audio,
		MimeHint: mimeHint,
		FileName: fileName,
	})
	if err != nil {
		return nil, err
	}
	transcript := transcription.Transcript

	summary, err := s.executor.Execute(ctx, provider.OperationSummarize, &provider.Request{
		Text:        transcript.FullText,
		ContentType: model.ContentTypeVoiceCapture,
	})
	if err != nil {
		return nil, err
	}

	diarized := transcript.Diarized
	result := &model.DistillationResult{
		Type:                  model.ResultTypeCall,
		Summary:               summary.Summary,
		Transcription:         transcript.FullText,
		Timestamp:             s.now().UTC(),
		Segments:              transcript.Segments,
		Diarized:              &diarized,
		TranscriptionProvider: transcription.Provider,
		SummaryProvider:       summary.Provider,
		SourceName:            fileName,
	}
	s.logger.Info("distilled call",
		zap.String("transcription_provider", transcription.Provider),
		zap.String("summary_provider", summary.Provider),
		zap.Bool("diarized", diarized),
		zap.Int("segments", len(transcript.Segments)),
	)
	return result, nil
}

package testutil

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"briefly/internal/app/api/provider"
)

// StubAdapter is a scripted provider.Adapter. Each Invoke consumes the next
// scripted step; the last step repeats once the script is exhausted.
type StubAdapter struct {
	mu       sync.Mutex
	desc     provider.Descriptor
	steps    []stubStep
	calls    int
	requests []*provider.Request
}

type stubStep struct {
	raw *provider.RawResponse
	err error
	fn  func(ctx context.Context, req *provider.Request) (*provider.RawResponse, error)
}

// NewStubAdapter creates a configured stub of the given kind
func NewStubAdapter(name string, kind provider.OperationKind, priority int) *StubAdapter {
	return &StubAdapter{
		desc: provider.Descriptor{
			Name:         name,
			Vendor:       "stub",
			DisplayName:  "Stub " + name,
			Operation:    kind,
			Priority:     priority,
			IsConfigured: true,
		},
	}
}

// Diarizing marks the stub as diarization-capable
func (s *StubAdapter) Diarizing() *StubAdapter {
	s.desc.SupportsDiarization = true
	return s
}

// Unconfigured marks the stub as lacking credentials
func (s *StubAdapter) Unconfigured() *StubAdapter {
	s.desc.IsConfigured = false
	return s
}

// WithSummary scripts a successful summarization
func (s *StubAdapter) WithSummary(summary string) *StubAdapter {
	return s.then(stubStep{raw: &provider.RawResponse{Model: "stub", Summary: summary}})
}

// WithTranscript scripts a successful transcription
func (s *StubAdapter) WithTranscript(raw *provider.RawTranscript) *StubAdapter {
	return s.then(stubStep{raw: &provider.RawResponse{Model: "stub", Transcript: raw}})
}

// WithError scripts a failure of the given kind
func (s *StubAdapter) WithError(kind provider.ErrorKind) *StubAdapter {
	return s.then(stubStep{err: provider.NewProviderError(s.desc.Name, kind, "stubbed "+string(kind))})
}

// WithFunc scripts an arbitrary invocation
func (s *StubAdapter) WithFunc(fn func(ctx context.Context, req *provider.Request) (*provider.RawResponse, error)) *StubAdapter {
	return s.then(stubStep{fn: fn})
}

func (s *StubAdapter) then(step stubStep) *StubAdapter {
	s.steps = append(s.steps, step)
	return s
}

func (s *StubAdapter) Descriptor() provider.Descriptor {
	return s.desc
}

func (s *StubAdapter) Invoke(ctx context.Context, req *provider.Request) (*provider.RawResponse, error) {
	s.mu.Lock()
	s.calls++
	s.requests = append(s.requests, req)
	var step stubStep
	if n := len(s.steps); n > 0 {
		idx := s.calls - 1
		if idx >= n {
			idx = n - 1
		}
		step = s.steps[idx]
	}
	s.mu.Unlock()

	switch {
	case step.fn != nil:
		return step.fn(ctx, req)
	case step.err != nil:
		return nil, step.err
	case step.raw != nil:
		return step.raw, nil
	}
	if s.desc.Operation == provider.OperationTranscribe {
		return &provider.RawResponse{Transcript: &provider.RawTranscript{Text: "stub transcription"}}, nil
	}
	return &provider.RawResponse{Summary: "stub summary"}, nil
}

// Calls returns how many times Invoke ran
func (s *StubAdapter) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// Requests returns the requests received, in order
func (s *StubAdapter) Requests() []*provider.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*provider.Request(nil), s.requests...)
}

// MockAdapter is a testify mock of provider.Adapter
type MockAdapter struct {
	mock.Mock
}

// NewMockAdapter creates a MockAdapter bound to t
func NewMockAdapter(t *testing.T) *MockAdapter {
	m := &MockAdapter{}
	m.Test(t)
	return m
}

func (m *MockAdapter) Descriptor() provider.Descriptor {
	args := m.Called()
	return args.Get(0).(provider.Descriptor)
}

func (m *MockAdapter) Invoke(ctx context.Context, req *provider.Request) (*provider.RawResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.RawResponse), args.Error(1)
}

// RegistryWith builds a registry holding adapters
func RegistryWith(t testing.TB, adapters ...provider.Adapter) *provider.CapabilityRegistry {
	t.Helper()
	registry := provider.NewCapabilityRegistry()
	for _, adapter := range adapters {
		require.NoError(t, registry.Register(adapter))
	}
	return registry
}

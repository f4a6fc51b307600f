package provider

import (
	"context"
	"sync/atomic"
)

// fakeAdapter implements Adapter for testing
type fakeAdapter struct {
	desc       Descriptor
	invokeFunc func(ctx context.Context, req *Request) (*RawResponse, error)
	calls      int32
}

func newFakeAdapter(name string, kind OperationKind, priority int, configured bool) *fakeAdapter {
	return &fakeAdapter{
		desc: Descriptor{
			Name:         name,
			Vendor:       "fake",
			DisplayName:  "Fake " + name,
			Operation:    kind,
			Priority:     priority,
			IsConfigured: configured,
		},
	}
}

func (f *fakeAdapter) diarizing() *fakeAdapter {
	f.desc.SupportsDiarization = true
	return f
}

func (f *fakeAdapter) returning(raw *RawResponse, err error) *fakeAdapter {
	f.invokeFunc = func(context.Context, *Request) (*RawResponse, error) {
		return raw, err
	}
	return f
}

func (f *fakeAdapter) failing(kind ErrorKind) *fakeAdapter {
	return f.returning(nil, NewProviderError(f.desc.Name, kind, "simulated "+string(kind)))
}

func (f *fakeAdapter) Descriptor() Descriptor {
	return f.desc
}

func (f *fakeAdapter) Invoke(ctx context.Context, req *Request) (*RawResponse, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.invokeFunc != nil {
		return f.invokeFunc(ctx, req)
	}
	if f.desc.Operation == OperationTranscribe {
		return &RawResponse{Transcript: &RawTranscript{Text: "mock transcription result"}}, nil
	}
	return &RawResponse{Summary: "mock summary"}, nil
}

func (f *fakeAdapter) callCount() int {
	return int(atomic.LoadInt32(&f.calls))
}

func registryWith(t interface{ Fatalf(string, ...interface{}) }, adapters ...Adapter) *CapabilityRegistry {
	registry := NewCapabilityRegistry()
	for _, adapter := range adapters {
		if err := registry.Register(adapter); err != nil {
			t.Fatalf("failed to register %s: %v", adapter.Descriptor().Name, err)
		}
	}
	return registry
}

package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	v1routes "briefly/internal/api/v1/routes"
	"briefly/internal/api/v1/services"
	"briefly/internal/app/api/provider"
	"briefly/internal/app/distill"
	"briefly/internal/app/testutil"
	"briefly/internal/config"
)

func newTestServer(t *testing.T, adapters ...provider.Adapter) *Server {
	t.Helper()

	promRegistry := prometheus.NewRegistry()
	collectors, err := provider.NewPrometheusCollectors(promRegistry)
	require.NoError(t, err)

	registry := testutil.RegistryWith(t, adapters...)
	collectors.SetConfigured(registry.Descriptors())
	metrics := provider.NewProviderMetrics(collectors)
	orchestrator := provider.NewOrchestrator(registry, metrics, provider.DefaultOrchestratorConfig(), zap.NewNop())

	container := &v1routes.ServiceContainer{
		DistillService:  distill.NewService(orchestrator, registry, zap.NewNop(), distill.WithClock(testutil.FixedClock)),
		ProviderService: services.NewProviderService(registry, metrics),
		StatsService:    services.NewStatsService(orchestrator, metrics, registry),
		RequestTimeout:  time.Minute,
	}

	cfg := config.ServerConfig{
		Host:           "127.0.0.1",
		Port:           8080,
		Environment:    "test",
		MaxUploadBytes: 1 << 20,
	}
	return NewServer(cfg, container, promRegistry, zap.NewNop())
}

func TestServer_ProcessChatEndToEnd(t *testing.T) {
	groq := testutil.NewStubAdapter("groq-llama", provider.OperationSummarize, 10).
		WithError(provider.ErrorKindRateLimited)
	deepgram := testutil.NewStubAdapter("deepgram-summarize", provider.OperationSummarize, 20).
		WithSummary(testutil.RefundSummaryRaw)
	srv := newTestServer(t, groq, deepgram)

	req := httptest.NewRequest(http.MethodPost, "/api/process-chat", strings.NewReader(`{"text":"`+testutil.RefundChat+`"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", "req-123")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "req-123", rec.Header().Get("X-Request-ID"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, testutil.RefundSummary, body["summary"])
	assert.Equal(t, "deepgram-summarize", body["summary_provider"])
	assert.Equal(t, "2024-01-15T10:30:00Z", body["timestamp"])

	assert.Equal(t, 1, groq.Calls())
	assert.Equal(t, 1, deepgram.Calls())

	metricsRec := httptest.NewRecorder()
	srv.Router().ServeHTTP(metricsRec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, metricsRec.Code)
	metricsBody, err := io.ReadAll(metricsRec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(metricsBody), `briefly_provider_attempts_total{error_kind="rate_limited",operation="summarize",outcome="failure",provider="groq-llama"} 1`)
	assert.Contains(t, string(metricsBody), `briefly_provider_configured{operation="summarize",provider="deepgram-summarize"} 1`)
}

func TestServer_RestrictedWithoutProviders(t *testing.T) {
	srv := newTestServer(t,
		testutil.NewStubAdapter("groq-llama", provider.OperationSummarize, 10).Unconfigured(),
	)

	healthRec := httptest.NewRecorder()
	srv.Router().ServeHTTP(healthRec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.Equal(t, http.StatusOK, healthRec.Code)

	var health distill.HealthReport
	require.NoError(t, json.Unmarshal(healthRec.Body.Bytes(), &health))
	assert.False(t, health.APIReady)
	assert.Equal(t, provider.StatusRestricted, health.Status)
	assert.Equal(t, map[string]bool{"groq-llama": false}, health.Fallbacks)
	assert.Empty(t, health.Summarization.Chain)

	req := httptest.NewRequest(http.MethodPost, "/api/process-chat", strings.NewReader(`{"text":"hello"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestServer_CORSPreflight(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/process-chat", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "3600", rec.Header().Get("Access-Control-Max-Age"))
}

func TestServer_ProviderRoutes(t *testing.T) {
	srv := newTestServer(t,
		testutil.NewStubAdapter("elevenlabs-scribe", provider.OperationTranscribe, 10).Diarizing(),
		testutil.NewStubAdapter("groq-llama", provider.OperationSummarize, 10),
	)

	for _, path := range []string{"/health", "/api/v1/providers", "/api/v1/providers/groq-llama", "/api/v1/providers/groq-llama/stats", "/api/v1/chains", "/api/v1/stats", "/"} {
		t.Run(path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		})
	}

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/providers/unknown", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

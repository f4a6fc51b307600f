// Package app assembles the distillation stack from an explicit configuration.
package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"briefly/internal/api/server"
	v1routes "briefly/internal/api/v1/routes"
	"briefly/internal/api/v1/services"
	"briefly/internal/app/api/provider"
	"briefly/internal/app/distill"
	"briefly/internal/app/history"
	"briefly/internal/config"
)

// Application is what the CLI commands need besides the HTTP server
type Application struct {
	Config    *config.Config
	Registry  *provider.CapabilityRegistry
	Distiller *distill.Service
	History   history.Sink
	Logger    *zap.Logger
}

func providePrometheusRegistry() *prometheus.Registry {
	return prometheus.NewRegistry()
}

func provideCollectors(reg *prometheus.Registry) (*provider.PrometheusCollectors, error) {
	return provider.NewPrometheusCollectors(reg)
}

// provideRegistry validates the configuration against the known adapter types
// and instantiates every configured provider instance
func provideRegistry(cfg *config.Config, factory *provider.ProviderFactory, collectors *provider.PrometheusCollectors) (*provider.CapabilityRegistry, error) {
	if err := cfg.Validate(factory.GetAvailableProviders()); err != nil {
		return nil, err
	}

	registry, err := factory.BuildRegistry(&cfg.Providers)
	if err != nil {
		return nil, err
	}

	collectors.SetConfigured(registry.Descriptors())
	return registry, nil
}

func provideOrchestrator(registry provider.Registry, metrics provider.ProviderMetrics, cfg *config.Config, logger *zap.Logger) *provider.Orchestrator {
	return provider.NewOrchestrator(registry, metrics, cfg.Providers.Orchestrator, logger)
}

func provideDistiller(executor provider.Executor, registry provider.Registry, cfg *config.Config, logger *zap.Logger) *distill.Service {
	return distill.NewService(executor, registry, logger, distill.WithConfiguredFlags(cfg.Keys.Flags()))
}

func provideHistory(cfg *config.Config) (history.Sink, func(), error) {
	sink, err := history.Open(cfg.HistoryPath)
	if err != nil {
		return nil, nil, err
	}
	return sink, func() { _ = sink.Close() }, nil
}

func provideServiceContainer(
	distiller *distill.Service,
	orchestrator *provider.Orchestrator,
	registry provider.Registry,
	metrics provider.ProviderMetrics,
	cfg *config.Config,
) *v1routes.ServiceContainer {
	return &v1routes.ServiceContainer{
		DistillService:  distiller,
		ProviderService: services.NewProviderService(registry, metrics),
		StatsService:    services.NewStatsService(orchestrator, metrics, registry),
		MaxUploadBytes:  cfg.Server.MaxUploadBytes,
		RequestTimeout:  cfg.Providers.Orchestrator.RequestTimeout,
	}
}

func provideServer(cfg *config.Config, container *v1routes.ServiceContainer, gatherer prometheus.Gatherer, logger *zap.Logger) *server.Server {
	return server.NewServer(cfg.Server, container, gatherer, logger)
}

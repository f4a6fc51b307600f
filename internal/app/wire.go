//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"briefly/internal/api/server"
	"briefly/internal/app/api/provider"
	"briefly/internal/config"
)

var providerSet = wire.NewSet(
	NewProviderFactory,
	providePrometheusRegistry,
	provideCollectors,
	provider.NewProviderMetrics,
	wire.Bind(new(provider.ProviderMetrics), new(*provider.DefaultProviderMetrics)),
	provideRegistry,
	wire.Bind(new(provider.Registry), new(*provider.CapabilityRegistry)),
	provideOrchestrator,
	wire.Bind(new(provider.Executor), new(*provider.Orchestrator)),
	provideDistiller,
)

// InitializeApplication builds the stack used by the one-shot CLI commands
func InitializeApplication(cfg *config.Config, logger *zap.Logger) (*Application, func(), error) {
	wire.Build(
		providerSet,
		provideHistory,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil, nil
}

// InitializeServer builds the HTTP API server
func InitializeServer(cfg *config.Config, logger *zap.Logger) (*server.Server, error) {
	wire.Build(
		providerSet,
		wire.Bind(new(prometheus.Gatherer), new(*prometheus.Registry)),
		provideServiceContainer,
		provideServer,
	)
	return nil, nil
}

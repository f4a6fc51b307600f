package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"briefly/internal/api/v1/handlers"
	"briefly/internal/api/v1/services"
)

// ServiceContainer holds all services needed by handlers
type ServiceContainer struct {
	DistillService  services.DistillService
	ProviderService services.ProviderService
	StatsService    services.StatsService

	MaxUploadBytes int64
	RequestTimeout time.Duration
}

// RegisterRoutes registers the distillation endpoints on api and the
// read-only catalog under api/v1
func RegisterRoutes(api *gin.RouterGroup, container *ServiceContainer) {
	distillHandler := handlers.NewDistillHandler(container.DistillService, container.MaxUploadBytes, container.RequestTimeout)
	api.POST("/process-chat", distillHandler.ProcessChat)
	api.POST("/process-file", distillHandler.ProcessFile)
	api.POST("/process-call", distillHandler.ProcessCall)
	api.GET("/health", distillHandler.Health)

	if container.ProviderService == nil {
		return
	}

	catalog := handlers.NewCatalogHandler(container.ProviderService, container.StatsService)
	v1 := api.Group("/v1")
	v1.GET("/providers", catalog.ListProviders)
	v1.GET("/providers/:id", catalog.GetProvider)
	v1.GET("/providers/:id/stats", catalog.GetProviderStats)
	v1.GET("/chains", catalog.Chains)
	if container.StatsService != nil {
		v1.GET("/stats", catalog.SystemStats)
	}
}

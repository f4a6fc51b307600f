package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"briefly/internal/api/middleware"
	"briefly/internal/api/v1/dto"
	"briefly/internal/api/v1/services"
)

// CatalogHandler serves the read-only provider catalog and orchestrator
// statistics. Nothing here calls a provider.
type CatalogHandler struct {
	providers services.ProviderService
	stats     services.StatsService
}

// NewCatalogHandler creates a catalog handler. stats may be nil when
// the statistics endpoint is not mounted.
func NewCatalogHandler(providers services.ProviderService, stats services.StatsService) *CatalogHandler {
	return &CatalogHandler{providers: providers, stats: stats}
}

// ListProviders handles GET /api/v1/providers?operation=&configured=
func (h *CatalogHandler) ListProviders(c *gin.Context) {
	var query dto.ProviderListQuery
	if err := middleware.ValidateQuery(c, &query); err != nil {
		middleware.HandleError(c, err)
		return
	}

	providers, err := h.providers.ListProviders(c.Request.Context(), query)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"providers": providers,
		"count":     len(providers),
	})
}

// GetProvider handles GET /api/v1/providers/:id
func (h *CatalogHandler) GetProvider(c *gin.Context) {
	resp, err := h.providers.GetProvider(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetProviderStats handles GET /api/v1/providers/:id/stats
func (h *CatalogHandler) GetProviderStats(c *gin.Context) {
	resp, err := h.providers.GetProviderStats(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Chains handles GET /api/v1/chains
func (h *CatalogHandler) Chains(c *gin.Context) {
	resp, err := h.providers.Chains(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SystemStats handles GET /api/v1/stats
func (h *CatalogHandler) SystemStats(c *gin.Context) {
	resp, err := h.stats.GetSystemStats(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

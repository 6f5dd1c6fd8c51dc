package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/civicgrid/triage/internal/config"
)

// registerHealthRoutes wires liveness and readiness probes. Readiness
// reports corpus size so an operator can spot a degraded (empty-corpus)
// deployment at a glance.
func registerHealthRoutes(router *gin.Engine, cfg *config.Config, handler *Handler) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": cfg.Service.Name,
			"version": cfg.Service.Version,
		})
	})

	router.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "ready",
			"policies": handler.retriever.Len(),
		})
	})
}

// registerAPIRoutes wires the triage API.
func registerAPIRoutes(router *gin.Engine, handler *Handler) {
	v1 := router.Group("/api/v1")
	{
		v1.POST("/analyze", handler.Analyze)
		v1.POST("/nearby", handler.Nearby)
		v1.POST("/clusters", handler.Clusters)
		v1.GET("/policies/search", handler.SearchPolicies)
	}
}

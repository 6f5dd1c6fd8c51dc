// Package api exposes the triage engines over HTTP. The engines themselves
// are pure in-process calls; this layer owns request validation, schemas,
// and status codes.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/civicgrid/triage/internal/config"
	"github.com/civicgrid/triage/internal/domain"
	"github.com/civicgrid/triage/internal/geo"
	"github.com/civicgrid/triage/internal/logger"
	"github.com/civicgrid/triage/internal/policy"
	"github.com/civicgrid/triage/internal/triage"
)

// Handler handles HTTP requests for the triage API.
type Handler struct {
	engine    *triage.Engine
	retriever *policy.Retriever
	geo       *geo.Engine
	geoCfg    config.GeoConfig
	log       logger.Logger
}

// NewHandler creates a new API handler. geoCfg supplies the clustering
// defaults used when a request leaves eps or min_points unset.
func NewHandler(engine *triage.Engine, retriever *policy.Retriever, geoEngine *geo.Engine, geoCfg config.GeoConfig, log logger.Logger) *Handler {
	return &Handler{
		engine:    engine,
		retriever: retriever,
		geo:       geoEngine,
		geoCfg:    geoCfg,
		log:       log,
	}
}

// Analyze handles POST /api/v1/analyze.
func (h *Handler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid analyze request", logger.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "description is required"})
		return
	}

	analysis := h.engine.Analyze(req.Description, req.ImageLabels)

	resp := AnalyzeResponse{
		Severity:            analysis.Severity,
		SeverityScore:       analysis.SeverityScore,
		UrgencyScore:        analysis.UrgencyScore,
		SuggestedCategories: analysis.SuggestedCategories,
		Reasoning:           analysis.Reasoning,
	}
	if excerpt, ok := h.retriever.Retrieve(req.Description); ok {
		resp.PolicyReference = excerpt
	}

	c.JSON(http.StatusOK, resp)
}

// Nearby handles POST /api/v1/nearby.
func (h *Handler) Nearby(c *gin.Context) {
	var req NearbyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid nearby request", logger.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	entities := issuesToLocatables(req.Issues)
	neighbors := h.geo.FindNearby(entities, *req.Latitude, *req.Longitude, req.RadiusMeters)

	matches := make([]NearbyMatch, 0, len(neighbors))
	for _, n := range neighbors {
		issue, ok := n.Entity.(*domain.Issue)
		if !ok {
			continue
		}
		matches = append(matches, NearbyMatch{Issue: issue, DistanceMeters: n.Meters})
	}

	c.JSON(http.StatusOK, NearbyResponse{Matches: matches, Total: len(matches)})
}

// Clusters handles POST /api/v1/clusters.
func (h *Handler) Clusters(c *gin.Context) {
	var req ClustersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid clusters request", logger.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	eps := req.EpsMeters
	if eps <= 0 {
		eps = h.geoCfg.ClusterEpsMeters
	}
	minPoints := req.MinPoints
	if minPoints <= 0 {
		minPoints = h.geoCfg.ClusterMinPoints
	}

	entities := issuesToLocatables(req.Issues)
	grouped := h.geo.Cluster(entities, eps, minPoints)

	clusters := make([][]*domain.Issue, 0, len(grouped))
	for _, group := range grouped {
		cluster := make([]*domain.Issue, 0, len(group))
		for _, entity := range group {
			if issue, ok := entity.(*domain.Issue); ok {
				cluster = append(cluster, issue)
			}
		}
		clusters = append(clusters, cluster)
	}

	c.JSON(http.StatusOK, ClustersResponse{Clusters: clusters, Total: len(clusters)})
}

// SearchPolicies handles GET /api/v1/policies/search?q=...
func (h *Handler) SearchPolicies(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "query parameter 'q' is required"})
		return
	}

	excerpt, ok := h.retriever.Retrieve(query)
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "no matching policy"})
		return
	}

	c.JSON(http.StatusOK, PolicySearchResponse{Query: query, Policy: excerpt})
}

func issuesToLocatables(issues []*domain.Issue) []domain.Locatable {
	entities := make([]domain.Locatable, 0, len(issues))
	for _, issue := range issues {
		if issue != nil {
			entities = append(entities, issue)
		}
	}
	return entities
}

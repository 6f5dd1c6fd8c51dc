package api

import "github.com/civicgrid/triage/internal/domain"

// AnalyzeRequest is the POST /api/v1/analyze payload. Description presence
// is validated here: the engine itself treats an empty string as a valid
// Low-severity input, so rejecting blanks is the HTTP layer's job.
type AnalyzeRequest struct {
	Description string   `json:"description" binding:"required"`
	ImageLabels []string `json:"image_labels"`
}

// AnalyzeResponse is the triage result plus the best-matching policy
// excerpt, when one clears the similarity threshold.
type AnalyzeResponse struct {
	Severity            domain.Severity `json:"severity"`
	SeverityScore       int             `json:"severity_score"`
	UrgencyScore        int             `json:"urgency_score"`
	SuggestedCategories []string        `json:"suggested_categories"`
	Reasoning           []string        `json:"reasoning"`
	PolicyReference     string          `json:"policy_reference,omitempty"`
}

// NearbyRequest asks which of the given issues lie within a radius of a
// reference point. Lat/lon are pointers so 0 (equator, prime meridian)
// survives required-field validation.
type NearbyRequest struct {
	Latitude     *float64        `json:"lat" binding:"required,min=-90,max=90"`
	Longitude    *float64        `json:"lon" binding:"required,min=-180,max=180"`
	RadiusMeters float64         `json:"radius_meters" binding:"required,gt=0"`
	Issues       []*domain.Issue `json:"issues" binding:"required"`
}

// NearbyMatch is one issue within the requested radius.
type NearbyMatch struct {
	Issue          *domain.Issue `json:"issue"`
	DistanceMeters float64       `json:"distance_meters"`
}

// NearbyResponse lists matches sorted ascending by distance.
type NearbyResponse struct {
	Matches []NearbyMatch `json:"matches"`
	Total   int           `json:"total"`
}

// ClustersRequest asks for density-based grouping of the given issues.
// Zero eps/min_points fall back to server defaults.
type ClustersRequest struct {
	EpsMeters float64         `json:"eps_meters"`
	MinPoints int             `json:"min_points"`
	Issues    []*domain.Issue `json:"issues" binding:"required"`
}

// ClustersResponse groups the valid input issues; unclustered issues come
// back as singleton groups.
type ClustersResponse struct {
	Clusters [][]*domain.Issue `json:"clusters"`
	Total    int               `json:"total"`
}

// PolicySearchResponse is a single policy excerpt match.
type PolicySearchResponse struct {
	Query  string `json:"query"`
	Policy string `json:"policy"`
}

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Package domain holds the value types shared by the triage engines.
package domain

// Severity is a categorical estimate of how dangerous an issue is.
type Severity string

// Severity tiers, highest first.
const (
	SeverityCritical Severity = "Critical"
	SeverityHigh     Severity = "High"
	SeverityMedium   Severity = "Medium"
	SeverityLow      Severity = "Low"
)

// Report is the text bundle analyzed for a single civic-issue report.
// Image labels are optional evidentiary keywords from an upstream vision
// step, not a separate signal channel.
type Report struct {
	Description string   `json:"description"`
	ImageLabels []string `json:"image_labels,omitempty"`
}

// Analysis is the triage result for one report.
type Analysis struct {
	Severity            Severity `json:"severity"`
	SeverityScore       int      `json:"severity_score"` // 0-100
	UrgencyScore        int      `json:"urgency_score"`  // 0-100
	SuggestedCategories []string `json:"suggested_categories"`
	Reasoning           []string `json:"reasoning"`
}

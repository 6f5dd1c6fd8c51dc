package triage

import (
	"strings"
	"testing"

	"github.com/civicgrid/triage/internal/domain"
	"github.com/civicgrid/triage/internal/logger"
)

func newTestEngine() *Engine {
	return NewEngine(logger.NewNop())
}

func TestAnalyze_CriticalKeyword(t *testing.T) {
	result := newTestEngine().Analyze("Fire in the building, help immediately!", nil)

	if result.Severity != domain.SeverityCritical {
		t.Fatalf("expected Critical severity, got %s", result.Severity)
	}
	if result.SeverityScore != 90 {
		t.Errorf("expected severity score 90, got %d", result.SeverityScore)
	}
	if result.UrgencyScore < 90 {
		t.Errorf("expected urgency >= 90, got %d", result.UrgencyScore)
	}

	// Explainability: the reasoning must surface both the severity keyword
	// and the urgency context that raised the score.
	var mentionsFire, mentionsImmediately bool
	for _, r := range result.Reasoning {
		lower := strings.ToLower(r)
		if strings.Contains(lower, "fire") {
			mentionsFire = true
		}
		if strings.Contains(lower, "immediately") {
			mentionsImmediately = true
		}
	}
	if !mentionsFire {
		t.Errorf("expected a reason mentioning fire, got %v", result.Reasoning)
	}
	if !mentionsImmediately {
		t.Errorf("expected a reason mentioning immediately, got %v", result.Reasoning)
	}
}

func TestAnalyze_SeverityTiers(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		severity  domain.Severity
		baseScore int
	}{
		{"critical gas leak", "strong gas smell near the market", domain.SeverityCritical, 90},
		{"high pothole", "huge pothole swallowing scooters", domain.SeverityHigh, 70},
		{"medium garbage", "garbage piling up on the corner", domain.SeverityMedium, 40},
		{"low default", "the bench could use a fresh coat", domain.SeverityLow, 10},
	}

	e := newTestEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := e.Analyze(tt.text, nil)
			if result.Severity != tt.severity {
				t.Errorf("expected %s, got %s", tt.severity, result.Severity)
			}
			if result.SeverityScore != tt.baseScore {
				t.Errorf("expected score %d, got %d", tt.baseScore, result.SeverityScore)
			}
		})
	}
}

func TestAnalyze_HigherTierWins(t *testing.T) {
	// "garbage" is a Medium keyword and "fire" is Critical; Critical must
	// win and Medium must not contribute a second severity reason.
	result := newTestEngine().Analyze("garbage fire near the school", nil)

	if result.Severity != domain.SeverityCritical {
		t.Fatalf("expected Critical, got %s", result.Severity)
	}

	severityReasons := 0
	for _, r := range result.Reasoning {
		if strings.HasPrefix(r, "Flagged as") {
			severityReasons++
		}
	}
	if severityReasons != 1 {
		t.Errorf("expected exactly one severity reason, got %d: %v", severityReasons, result.Reasoning)
	}
}

func TestAnalyze_SubstringMatching(t *testing.T) {
	// Keyword matching is raw substring containment: "fire" inside
	// "firefighter" still counts. Pinned behavior, not a bug.
	result := newTestEngine().Analyze("a firefighter visited the station", nil)
	if result.Severity != domain.SeverityCritical {
		t.Errorf("expected Critical via substring match, got %s", result.Severity)
	}
}

func TestAnalyze_NoMatchesDefaultsToLow(t *testing.T) {
	result := newTestEngine().Analyze("zzq vvb plk", nil)

	if result.Severity != domain.SeverityLow {
		t.Errorf("expected Low, got %s", result.Severity)
	}
	if result.SeverityScore != 10 {
		t.Errorf("expected score 10, got %d", result.SeverityScore)
	}
	if len(result.SuggestedCategories) != 0 {
		t.Errorf("expected no categories, got %v", result.SuggestedCategories)
	}

	found := false
	for _, r := range result.Reasoning {
		if r == lowSeverityReason {
			found = true
		}
	}
	if !found {
		t.Errorf("expected default low-severity reason, got %v", result.Reasoning)
	}
}

func TestAnalyze_EmptyInput(t *testing.T) {
	result := newTestEngine().Analyze("", nil)

	if result.Severity != domain.SeverityLow {
		t.Errorf("expected Low for empty input, got %s", result.Severity)
	}
	if len(result.Reasoning) == 0 {
		t.Error("expected non-empty reasoning for empty input")
	}
}

func TestAnalyze_ImageLabelsCountAsEvidence(t *testing.T) {
	result := newTestEngine().Analyze("There is a problem here.", []string{"fire", "smoke"})

	if result.Severity != domain.SeverityCritical {
		t.Fatalf("expected Critical from image labels, got %s", result.Severity)
	}

	hasFire := false
	for _, c := range result.SuggestedCategories {
		if c == "Fire" {
			hasFire = true
		}
	}
	if !hasFire {
		t.Errorf("expected Fire category, got %v", result.SuggestedCategories)
	}
}

func TestAnalyze_UrgencyBoundsAndAccumulation(t *testing.T) {
	e := newTestEngine()

	// Multiple urgency rules stack: injury (+25) and fire hazard (+30) on
	// top of a Critical base must clamp at 100.
	result := e.Analyze("blood everywhere after the explosion, fire still burning now", nil)
	if result.UrgencyScore != 100 {
		t.Errorf("expected clamped urgency 100, got %d", result.UrgencyScore)
	}

	inputs := []string{
		"", "zzq", "garbage", "pothole now", "fire blood trapped child hospital today",
	}
	for _, text := range inputs {
		r := e.Analyze(text, nil)
		if r.UrgencyScore < 0 || r.UrgencyScore > 100 {
			t.Errorf("urgency out of bounds for %q: %d", text, r.UrgencyScore)
		}
	}
}

func TestAnalyze_UrgencyWordBoundary(t *testing.T) {
	// Urgency patterns are word-bounded, unlike severity keywords:
	// "nowhere" must not trigger the immediacy rule.
	result := newTestEngine().Analyze("the bench is nowhere near the garden", nil)
	if result.UrgencyScore != result.SeverityScore {
		t.Errorf("expected urgency to equal severity base, got %d vs %d",
			result.UrgencyScore, result.SeverityScore)
	}
}

func TestAnalyze_CategoryRanking(t *testing.T) {
	// Three Garbage keywords against one hit elsewhere: Garbage must rank
	// first and the list is capped at three.
	result := newTestEngine().Analyze("garbage and trash litter all over the park", nil)

	if len(result.SuggestedCategories) == 0 || result.SuggestedCategories[0] != "Garbage" {
		t.Errorf("expected Garbage ranked first, got %v", result.SuggestedCategories)
	}
	if len(result.SuggestedCategories) > maxSuggestedCategories {
		t.Errorf("expected at most %d categories, got %v", maxSuggestedCategories, result.SuggestedCategories)
	}
}

func TestAnalyze_CategoryTieBreakIsDeclarationOrder(t *testing.T) {
	// "smoke" hits Fire and Air Pollution with one keyword each; Fire is
	// declared earlier so it must come first on the tie.
	result := newTestEngine().Analyze("smoke", nil)

	idx := func(name string) int {
		for i, c := range result.SuggestedCategories {
			if c == name {
				return i
			}
		}
		return -1
	}

	fire, air := idx("Fire"), idx("Air Pollution")
	if fire == -1 || air == -1 {
		t.Fatalf("expected Fire and Air Pollution, got %v", result.SuggestedCategories)
	}
	if fire > air {
		t.Errorf("expected Fire before Air Pollution, got %v", result.SuggestedCategories)
	}
}

func TestAnalyze_CategoriesFromFixedSet(t *testing.T) {
	known := make(map[string]bool)
	for _, name := range CategoryNames() {
		known[name] = true
	}

	e := newTestEngine()
	inputs := []string{
		"fire and smoke", "deep pothole on the road", "water pipe burst flooding",
		"stray dog bit a child", "loud music at night",
	}
	for _, text := range inputs {
		for _, c := range e.Analyze(text, nil).SuggestedCategories {
			if !known[c] {
				t.Errorf("unknown category %q for input %q", c, text)
			}
		}
	}
}

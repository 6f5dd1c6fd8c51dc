package triage

import (
	"fmt"
	"sort"
	"strings"

	"github.com/civicgrid/triage/internal/domain"
	"github.com/civicgrid/triage/internal/logger"
)

// Engine analyzes civic-issue report text and produces severity, urgency,
// and category suggestions. All rule tables are compiled once at
// construction and read-only afterwards, so one Engine is safe for
// concurrent use from any number of request handlers.
type Engine struct {
	severity   []severityTier
	categories []categoryMatcher
	log        logger.Logger
}

type severityTier struct {
	def   severityTierDef
	match *keywordMatcher
}

type categoryMatcher struct {
	def   categoryRuleDef
	match *keywordMatcher
}

// NewEngine compiles the keyword automatons and returns a ready engine.
// Construct once per process and inject it wherever analysis is needed.
func NewEngine(log logger.Logger) *Engine {
	e := &Engine{
		severity:   make([]severityTier, 0, len(severityTiers)),
		categories: make([]categoryMatcher, 0, len(categoryRules)),
		log:        log,
	}

	keywordTotal := 0
	for _, def := range severityTiers {
		e.severity = append(e.severity, severityTier{def: def, match: newKeywordMatcher(def.Keywords)})
		keywordTotal += len(def.Keywords)
	}
	for _, def := range categoryRules {
		e.categories = append(e.categories, categoryMatcher{def: def, match: newKeywordMatcher(def.Keywords)})
		keywordTotal += len(def.Keywords)
	}

	if log != nil {
		log.Info("triage engine initialized",
			logger.Int("severity_tiers", len(e.severity)),
			logger.Int("categories", len(e.categories)),
			logger.Int("urgency_rules", len(urgencyRules)),
			logger.Int("keywords", keywordTotal))
	}

	return e
}

// Analyze scores a report description plus optional image labels. It is a
// total function: every input, including the empty string, yields a valid
// result and it never errors.
func (e *Engine) Analyze(description string, imageLabels []string) domain.Analysis {
	combined := combineText(description, imageLabels)

	severity, severityScore, severityReasons := e.classifySeverity(combined)
	urgencyScore, urgencyReasons := e.scoreUrgency(combined, severityScore)
	categories := e.suggestCategories(combined)

	reasoning := make([]string, 0, len(severityReasons)+len(urgencyReasons))
	reasoning = append(reasoning, severityReasons...)
	reasoning = append(reasoning, urgencyReasons...)
	if len(reasoning) == 0 {
		reasoning = []string{defaultReason}
	}

	if e.log != nil {
		e.log.Debug("report analyzed",
			logger.String("severity", string(severity)),
			logger.Int("severity_score", severityScore),
			logger.Int("urgency_score", urgencyScore),
			logger.Strings("categories", categories))
	}

	return domain.Analysis{
		Severity:            severity,
		SeverityScore:       severityScore,
		UrgencyScore:        urgencyScore,
		SuggestedCategories: categories,
		Reasoning:           reasoning,
	}
}

// combineText lowercases the description and folds image labels in as extra
// keyword evidence.
func combineText(description string, imageLabels []string) string {
	combined := strings.ToLower(description)
	if len(imageLabels) > 0 {
		labels := make([]string, len(imageLabels))
		for i, l := range imageLabels {
			labels[i] = strings.ToLower(l)
		}
		combined += " " + strings.Join(labels, " ")
	}
	return combined
}

// classifySeverity scans the tier tables highest first; the first tier with
// a hit wins and lower tiers are not consulted.
func (e *Engine) classifySeverity(text string) (domain.Severity, int, []string) {
	for _, tier := range e.severity {
		found := tier.match.Found(text)
		if len(found) == 0 {
			continue
		}
		if len(found) > maxReasonKeywords {
			found = found[:maxReasonKeywords]
		}
		reason := fmt.Sprintf("Flagged as %s due to keywords: %s",
			tier.def.ReasonVerb, strings.Join(found, ", "))
		return tier.def.Label, tier.def.Score, []string{reason}
	}

	return domain.SeverityLow, lowScore, []string{lowSeverityReason}
}

// scoreUrgency starts from the severity base score and adds the weight of
// every matching context rule, clamped to 100.
func (e *Engine) scoreUrgency(text string, severityScore int) (int, []string) {
	urgency := severityScore
	var reasons []string

	for _, rule := range urgencyRules {
		if !rule.Pattern.MatchString(text) {
			continue
		}
		urgency += rule.Weight
		reasons = append(reasons,
			fmt.Sprintf("Urgency increased by context matching pattern: '%s'", rule.Pattern.String()))
	}

	if urgency > 100 {
		urgency = 100
	}
	return urgency, reasons
}

// suggestCategories ranks categories by keyword hit count. The sort is
// stable so equal counts keep the fixed declaration order.
func (e *Engine) suggestCategories(text string) []string {
	type scored struct {
		name string
		hits int
	}

	matches := make([]scored, 0, len(e.categories))
	for _, cat := range e.categories {
		if hits := cat.match.Count(text); hits > 0 {
			matches = append(matches, scored{name: cat.def.Name, hits: hits})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].hits > matches[j].hits
	})

	if len(matches) > maxSuggestedCategories {
		matches = matches[:maxSuggestedCategories]
	}

	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = m.name
	}
	return names
}

package policy

import (
	"fmt"
	"strings"

	"github.com/civicgrid/triage/internal/domain"
	"github.com/civicgrid/triage/internal/logger"
)

// DefaultThreshold is the minimum similarity score for a policy match.
const DefaultThreshold = 0.05

// titleBonus is added when any query token appears in the policy title.
// It is applied after the Jaccard computation and can push a score past
// 1.0; scores are compared, never re-normalized.
const titleBonus = 0.2

// Retriever answers "which policy explains how this issue will be handled"
// by Jaccard similarity over token sets. The corpus is fixed at
// construction, so a Retriever is safe for concurrent use.
type Retriever struct {
	policies  []domain.Policy
	threshold float64
	log       logger.Logger
}

// NewRetriever builds a retriever over an already-loaded corpus. A
// threshold <= 0 falls back to DefaultThreshold.
func NewRetriever(policies []domain.Policy, threshold float64, log logger.Logger) *Retriever {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Retriever{
		policies:  policies,
		threshold: threshold,
		log:       log,
	}
}

// Len returns the number of policies in the corpus.
func (r *Retriever) Len() int {
	return len(r.policies)
}

// Retrieve returns the formatted best-matching policy excerpt, or ok=false
// when nothing scores at or above the configured threshold. It never errors:
// empty queries and empty corpora simply produce no match.
func (r *Retriever) Retrieve(query string) (string, bool) {
	return r.RetrieveWithThreshold(query, r.threshold)
}

// RetrieveWithThreshold is Retrieve with an explicit score threshold.
func (r *Retriever) RetrieveWithThreshold(query string, threshold float64) (string, bool) {
	if query == "" || len(r.policies) == 0 {
		return "", false
	}

	queryTokens := tokenize(query)
	if len(queryTokens) == 0 {
		return "", false
	}

	bestScore := 0.0
	var best *domain.Policy

	for i := range r.policies {
		p := &r.policies[i]

		contentTokens := tokenize(p.Title + " " + p.Text)
		if len(contentTokens) == 0 {
			continue
		}

		score := jaccard(queryTokens, contentTokens)

		// Title hits are a strong relevance signal, e.g. "pothole" in the
		// query against a "Pothole Repair SLA" policy.
		if intersects(queryTokens, tokenize(p.Title)) {
			score += titleBonus
		}

		// Strict > keeps the first-seen policy on exact ties, matching
		// corpus file order.
		if score > bestScore {
			bestScore = score
			best = p
		}
	}

	if best == nil || bestScore < threshold {
		if r.log != nil {
			r.log.Debug("no policy above threshold",
				logger.Float64("best_score", bestScore),
				logger.Float64("threshold", threshold))
		}
		return "", false
	}

	return fmt.Sprintf("**%s**: %s (Source: %s)", best.Title, best.Text, best.Source), true
}

// tokenize lowercases text, strips every rune outside [a-z0-9] and
// whitespace, and collects the unique whitespace-separated tokens.
func tokenize(text string) map[string]struct{} {
	var b strings.Builder
	b.Grow(len(text))

	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '\t', r == '\n', r == '\r':
			b.WriteRune(r)
		}
	}

	tokens := make(map[string]struct{})
	for _, tok := range strings.Fields(b.String()) {
		tokens[tok] = struct{}{}
	}
	return tokens
}

// jaccard computes |a∩b| / |a∪b| for two token sets.
func jaccard(a, b map[string]struct{}) float64 {
	intersection := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func intersects(a, b map[string]struct{}) bool {
	for tok := range a {
		if _, ok := b[tok]; ok {
			return true
		}
	}
	return false
}
